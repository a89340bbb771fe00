package world

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BrandishEvents_Go/internal/domain"
)

func TestMemory_SpawnAndRemove(t *testing.T) {
	ctx := context.Background()
	w := NewMemory(0)

	a, err := w.SpawnPrefab(ctx, "arena", domain.Vec3{})
	require.NoError(t, err)
	b, err := w.SpawnPrefab(ctx, "flag", domain.Vec3{X: 1})
	require.NoError(t, err)
	assert.NotEqual(t, a[0], b[0])
	assert.Equal(t, 2, w.EntityCount())

	require.NoError(t, w.RemoveEntities(ctx, append(a, b...)))
	assert.Zero(t, w.EntityCount())
}

func TestMemory_GrantItemRespectsInventorySize(t *testing.T) {
	ctx := context.Background()
	w := NewMemory(1)
	w.AddPlayer(1, "alice", domain.Vec3{})

	sword := domain.ItemSpec{Type: "weapon", Subtype: "sword"}
	bow := domain.ItemSpec{Type: "weapon", Subtype: "bow"}

	ok, err := w.GrantItem(ctx, 1, sword, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = w.GrantItem(ctx, 1, sword, 2)
	require.NoError(t, err)
	assert.True(t, ok, "stacking onto an existing slot always fits")
	ok, err = w.GrantItem(ctx, 1, bow, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, map[domain.ItemSpec]int{sword: 3}, w.Inventory(1))
	require.NoError(t, w.ClearInventory(ctx, 1))
	assert.Empty(t, w.Inventory(1))

	_, err = w.GrantItem(ctx, 99, sword, 1)
	assert.ErrorIs(t, err, ErrUnknownPlayer)
}

func TestMemory_Factions(t *testing.T) {
	ctx := context.Background()
	w := NewMemory(0)
	w.AddPlayer(1, "alice", domain.Vec3{})

	_, ok := w.GetFaction(ctx, 1)
	assert.False(t, ok)

	w.SetFaction(1, "red")
	f, ok := w.GetFaction(ctx, 1)
	require.True(t, ok)
	assert.Equal(t, domain.FactionID("red"), f)

	w.SetWar("red", "blue", true)
	assert.True(t, w.AreEnemies(ctx, "blue", "red"))
	assert.False(t, w.AreEnemies(ctx, "red", "red"))
	w.SetWar("blue", "red", false)
	assert.False(t, w.AreEnemies(ctx, "red", "blue"))
}

func TestMemory_OnlinePlayers(t *testing.T) {
	ctx := context.Background()
	w := NewMemory(0)
	w.AddPlayer(1, "alice", domain.Vec3{})
	w.AddPlayer(2, "bob", domain.Vec3{})
	w.SetOnline(2, false)

	players, err := w.OnlinePlayers(ctx)
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, int64(1), players[0].ID)

	require.NoError(t, w.TeleportPlayer(ctx, 1, domain.Vec3{X: 9}))
	pos, err := w.PlayerPosition(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 9.0, pos.X)
}
