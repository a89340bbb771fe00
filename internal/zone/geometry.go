package zone

import "github.com/osse101/BrandishEvents_Go/internal/domain"

// Shape is a containment test over world positions
type Shape interface {
	Contains(p domain.Vec3) bool
}

// Sphere contains points within Radius of Center, boundary included
type Sphere struct {
	Center domain.Vec3
	Radius float64
}

// Contains implements Shape
func (s Sphere) Contains(p domain.Vec3) bool {
	return s.Center.DistanceTo(p) <= s.Radius
}

// Box is an axis-aligned bounding box, boundary included
type Box struct {
	Min domain.Vec3
	Max domain.Vec3
}

// Contains implements Shape
func (b Box) Contains(p domain.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// NewShape builds the configured geometry. Box corners are normalized so Min
// holds the smaller coordinate on every axis.
func NewShape(s domain.ZoneSettings) Shape {
	if s.Shape == domain.ZoneBox {
		return Box{
			Min: domain.Vec3{X: min(s.Min.X, s.Max.X), Y: min(s.Min.Y, s.Max.Y), Z: min(s.Min.Z, s.Max.Z)},
			Max: domain.Vec3{X: max(s.Min.X, s.Max.X), Y: max(s.Min.Y, s.Max.Y), Z: max(s.Min.Z, s.Max.Z)},
		}
	}
	return Sphere{Center: s.Center, Radius: s.Radius}
}
