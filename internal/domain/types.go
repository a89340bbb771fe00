package domain

import (
	"math"
	"time"
)

// Vec3 is a world-space position.
type Vec3 struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
	Z float64 `json:"z" toml:"z"`
}

// DistanceTo returns the Euclidean distance between two points.
func (v Vec3) DistanceTo(o Vec3) float64 {
	dx, dy, dz := v.X-o.X, v.Y-o.Y, v.Z-o.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// EntityHandle is an opaque world-entity handle owned by the spawn collaborator.
type EntityHandle uint64

// FactionID identifies a faction in the host world.
type FactionID string

// Color is a notification color hint, passed through to the chat collaborator.
type Color string

// Notification colors
const (
	ColorInfo    Color = "#3b82f6"
	ColorSuccess Color = "#22c55e"
	ColorWarning Color = "#f59e0b"
	ColorDanger  Color = "#ef4444"
)

// PlayerState is a snapshot of an online player.
type PlayerState struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Position Vec3   `json:"position"`
}

// ItemSpec identifies a grantable world item.
type ItemSpec struct {
	Type    string `json:"item_type" validate:"required"`
	Subtype string `json:"item_subtype"`
}

// RewardItem is one purchasable or droppable item entry.
type RewardItem struct {
	Name         string  `json:"name" validate:"required"`
	ItemType     string  `json:"item_type" validate:"required"`
	ItemSubtype  string  `json:"item_subtype"`
	Amount       int     `json:"amount" validate:"min=1"`
	DropChance   float64 `json:"drop_chance" validate:"min=0,max=100"`
	CostInPoints int64   `json:"cost_in_points" validate:"min=0"`
}

// Spec returns the world item this entry grants.
func (r RewardItem) Spec() ItemSpec {
	return ItemSpec{Type: r.ItemType, Subtype: r.ItemSubtype}
}

// RewardSet is a named bundle of reward items.
type RewardSet struct {
	Name  string       `json:"name" validate:"required"`
	Items []RewardItem `json:"items" validate:"min=1,dive"`
}

// Cost is the total price of the bundle.
func (s RewardSet) Cost() int64 {
	var total int64
	for _, item := range s.Items {
		total += item.CostInPoints
	}
	return total
}

// RewardCatalog is the immutable reward configuration.
type RewardCatalog struct {
	Sets  []RewardSet  `json:"sets" validate:"dive"`
	Items []RewardItem `json:"items" validate:"dive"`
}

// PointsTransfer is a pending player-to-player transfer.
type PointsTransfer struct {
	Code      string    `json:"code"`
	SenderID  int64     `json:"sender_id"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// PlayerAccount is the persisted point balance of a player.
type PlayerAccount struct {
	ID         int64  `json:"id" toml:"id"`
	Name       string `json:"name" toml:"name"`
	Points     int64  `json:"points" toml:"points"`
	ExternalID string `json:"external_id,omitempty" toml:"external_id"`
}

// LeaderboardEntry is one row of the points leaderboard.
type LeaderboardEntry struct {
	Name   string `json:"name"`
	Points int64  `json:"points"`
}
