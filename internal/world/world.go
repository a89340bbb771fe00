// Package world declares the host-world collaborators the event service
// drives, and an in-memory implementation for standalone runs and tests.
package world

import (
	"context"

	"github.com/osse101/BrandishEvents_Go/internal/domain"
)

// World spawns and removes entities and manipulates players.
type World interface {
	SpawnPrefab(ctx context.Context, name string, pos domain.Vec3) ([]domain.EntityHandle, error)
	RemoveEntities(ctx context.Context, handles []domain.EntityHandle) error
	TeleportPlayer(ctx context.Context, id int64, pos domain.Vec3) error
	PlayerPosition(ctx context.Context, id int64) (domain.Vec3, error)
	OnlinePlayers(ctx context.Context) ([]domain.PlayerState, error)
	// GrantItem returns false when the player's inventory had no room.
	GrantItem(ctx context.Context, id int64, item domain.ItemSpec, qty int) (bool, error)
	ClearInventory(ctx context.Context, id int64) error
	ReturnHeldItems(ctx context.Context, id int64) error
}

// Factions answers faction membership and war status.
type Factions interface {
	GetFaction(ctx context.Context, id int64) (domain.FactionID, bool)
	AreEnemies(ctx context.Context, a, b domain.FactionID) bool
}
