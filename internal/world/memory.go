package world

import (
	"context"
	"errors"
	"sync"

	"github.com/osse101/BrandishEvents_Go/internal/domain"
	"github.com/osse101/BrandishEvents_Go/internal/logger"
)

// ErrUnknownPlayer is returned for players the world has never seen
var ErrUnknownPlayer = errors.New("unknown player")

type memPlayer struct {
	name      string
	pos       domain.Vec3
	online    bool
	faction   domain.FactionID
	inventory map[domain.ItemSpec]int
}

// Memory is a World and Factions kept entirely in process. The daemon uses it
// when no game bridge is attached; tests script player movement through it.
type Memory struct {
	mu            sync.RWMutex
	players       map[int64]*memPlayer
	entities      map[domain.EntityHandle]string
	nextHandle    domain.EntityHandle
	wars          map[[2]domain.FactionID]bool
	inventorySize int
}

// NewMemory creates an empty world. inventorySize caps the number of distinct
// item stacks a player can hold; zero means unlimited.
func NewMemory(inventorySize int) *Memory {
	return &Memory{
		players:       make(map[int64]*memPlayer),
		entities:      make(map[domain.EntityHandle]string),
		wars:          make(map[[2]domain.FactionID]bool),
		inventorySize: inventorySize,
	}
}

// AddPlayer registers an online player at pos
func (m *Memory) AddPlayer(id int64, name string, pos domain.Vec3) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.players[id] = &memPlayer{name: name, pos: pos, online: true, inventory: make(map[domain.ItemSpec]int)}
}

// SetOnline toggles a player's presence
func (m *Memory) SetOnline(id int64, online bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.players[id]; ok {
		p.online = online
	}
}

// MovePlayer sets a player's position
func (m *Memory) MovePlayer(id int64, pos domain.Vec3) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.players[id]; ok {
		p.pos = pos
	}
}

// SetFaction assigns a faction; the empty id clears it
func (m *Memory) SetFaction(id int64, faction domain.FactionID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.players[id]; ok {
		p.faction = faction
	}
}

// SetWar declares or ends a war between two factions
func (m *Memory) SetWar(a, b domain.FactionID, atWar bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wars[warKey(a, b)] = atWar
}

func warKey(a, b domain.FactionID) [2]domain.FactionID {
	if a > b {
		a, b = b, a
	}
	return [2]domain.FactionID{a, b}
}

// Inventory returns a copy of a player's stacks
func (m *Memory) Inventory(id int64) map[domain.ItemSpec]int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[domain.ItemSpec]int)
	if p, ok := m.players[id]; ok {
		for k, v := range p.inventory {
			out[k] = v
		}
	}
	return out
}

// EntityCount returns the number of live spawned entities
func (m *Memory) EntityCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entities)
}

// SpawnPrefab implements World
func (m *Memory) SpawnPrefab(ctx context.Context, name string, pos domain.Vec3) ([]domain.EntityHandle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextHandle++
	h := m.nextHandle
	m.entities[h] = name
	logger.FromContext(ctx).Debug(LogMsgPrefabSpawned, "prefab", name, "handle", h, "x", pos.X, "y", pos.Y, "z", pos.Z)
	return []domain.EntityHandle{h}, nil
}

// RemoveEntities implements World
func (m *Memory) RemoveEntities(ctx context.Context, handles []domain.EntityHandle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, h := range handles {
		delete(m.entities, h)
	}
	logger.FromContext(ctx).Debug(LogMsgEntitiesRemoved, "count", len(handles))
	return nil
}

// TeleportPlayer implements World
func (m *Memory) TeleportPlayer(_ context.Context, id int64, pos domain.Vec3) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.players[id]
	if !ok {
		return ErrUnknownPlayer
	}
	p.pos = pos
	return nil
}

// PlayerPosition implements World
func (m *Memory) PlayerPosition(_ context.Context, id int64) (domain.Vec3, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.players[id]
	if !ok {
		return domain.Vec3{}, ErrUnknownPlayer
	}
	return p.pos, nil
}

// OnlinePlayers implements World
func (m *Memory) OnlinePlayers(_ context.Context) ([]domain.PlayerState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.PlayerState, 0, len(m.players))
	for id, p := range m.players {
		if p.online {
			out = append(out, domain.PlayerState{ID: id, Name: p.name, Position: p.pos})
		}
	}
	return out, nil
}

// GrantItem implements World
func (m *Memory) GrantItem(_ context.Context, id int64, item domain.ItemSpec, qty int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.players[id]
	if !ok {
		return false, ErrUnknownPlayer
	}
	if _, has := p.inventory[item]; !has && m.inventorySize > 0 && len(p.inventory) >= m.inventorySize {
		return false, nil
	}
	p.inventory[item] += qty
	return true, nil
}

// ClearInventory implements World
func (m *Memory) ClearInventory(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.players[id]; ok {
		p.inventory = make(map[domain.ItemSpec]int)
	}
	return nil
}

// ReturnHeldItems implements World. The in-memory world has no stash, so
// there is nothing to restore.
func (m *Memory) ReturnHeldItems(context.Context, int64) error {
	return nil
}

// GetFaction implements Factions
func (m *Memory) GetFaction(_ context.Context, id int64) (domain.FactionID, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.players[id]
	if !ok || p.faction == "" {
		return "", false
	}
	return p.faction, true
}

// AreEnemies implements Factions
func (m *Memory) AreEnemies(_ context.Context, a, b domain.FactionID) bool {
	if a == b {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.wars[warKey(a, b)]
}
