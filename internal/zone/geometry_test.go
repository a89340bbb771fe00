package zone

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/BrandishEvents_Go/internal/domain"
)

func TestSphereContains(t *testing.T) {
	s := NewShape(domain.ZoneSettings{Shape: domain.ZoneSphere, Center: domain.Vec3{X: 10}, Radius: 5})

	assert.True(t, s.Contains(domain.Vec3{X: 10}))
	assert.True(t, s.Contains(domain.Vec3{X: 15}), "boundary is inside")
	assert.True(t, s.Contains(domain.Vec3{X: 13, Y: 4}))
	assert.False(t, s.Contains(domain.Vec3{X: 15.001}))
	assert.False(t, s.Contains(domain.Vec3{X: 14, Y: 4}))
}

func TestBoxContains(t *testing.T) {
	s := NewShape(domain.ZoneSettings{
		Shape: domain.ZoneBox,
		Min:   domain.Vec3{X: 10, Y: 0, Z: 10},
		Max:   domain.Vec3{X: -10, Y: 20, Z: -10},
	})

	assert.True(t, s.Contains(domain.Vec3{}))
	assert.True(t, s.Contains(domain.Vec3{X: 10, Y: 20, Z: -10}), "corners are inside")
	assert.False(t, s.Contains(domain.Vec3{Y: -0.5}))
	assert.False(t, s.Contains(domain.Vec3{X: 10.1, Y: 1}))
}
