package economy

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BrandishEvents_Go/internal/domain"
	"github.com/osse101/BrandishEvents_Go/internal/event"
	"github.com/osse101/BrandishEvents_Go/internal/store"
	"github.com/osse101/BrandishEvents_Go/internal/utils"
	"github.com/osse101/BrandishEvents_Go/internal/world"
)

const (
	alice int64 = 1
	bob   int64 = 2
)

var testCatalog = domain.RewardCatalog{
	Sets: []domain.RewardSet{{
		Name: "Starter Kit",
		Items: []domain.RewardItem{
			{Name: "Iron Sword", ItemType: "weapon", ItemSubtype: "sword", Amount: 1, CostInPoints: 60},
			{Name: "Leather Armor", ItemType: "armor", ItemSubtype: "leather", Amount: 1, CostInPoints: 40},
		},
	}},
	Items: []domain.RewardItem{
		{Name: "Torch", ItemType: "tool", ItemSubtype: "torch", Amount: 5, CostInPoints: 5},
		{Name: "Free Map", ItemType: "tool", ItemSubtype: "map", Amount: 1},
	},
}

// eventLog captures everything published on a bus
type eventLog struct {
	mu     sync.Mutex
	events []event.Event
}

func (l *eventLog) handle(_ context.Context, e event.Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
	return nil
}

func (l *eventLog) ofType(t event.Type) []event.Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []event.Event
	for _, e := range l.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

type fixture struct {
	svc      *Service
	accounts *memAccounts
	world    *world.Memory
	events   *eventLog
}

func newFixture(t *testing.T, cfg Config, balances map[int64]int64, inventorySize int) *fixture {
	t.Helper()
	accounts := newMemAccounts(balances)
	w := world.NewMemory(inventorySize)
	w.AddPlayer(alice, "alice", domain.Vec3{})
	w.AddPlayer(bob, "bob", domain.Vec3{})

	bus := event.NewMemoryBus()
	log := &eventLog{}
	event.SubscribeAll(bus, log.handle)

	svc := NewService(accounts, w, bus, testCatalog, cfg).WithRandSource(utils.NewSeededSource(7))
	return &fixture{svc: svc, accounts: accounts, world: w, events: log}
}

func balance(t *testing.T, a store.Accounts, id int64) int64 {
	t.Helper()
	pts, err := a.GetPoints(context.Background(), id)
	require.NoError(t, err)
	return pts
}

func TestAwardPoints(t *testing.T) {
	ctx := context.Background()

	t.Run("credits and publishes", func(t *testing.T) {
		f := newFixture(t, DefaultConfig(), nil, 0)
		require.NoError(t, f.svc.AwardPoints(ctx, alice, 25, domain.PointReasonZone))
		assert.Equal(t, int64(25), balance(t, f.accounts, alice))

		published := f.events.ofType(event.PointsAwarded)
		require.Len(t, published, 1)
		p, err := event.DecodePayload[domain.PointsAwardedPayload](published[0].Payload)
		require.NoError(t, err)
		assert.Equal(t, int64(25), p.Delta)
		assert.Equal(t, domain.PointReasonZone, p.Reason)
	})

	t.Run("negative balance allowed by default", func(t *testing.T) {
		f := newFixture(t, DefaultConfig(), map[int64]int64{alice: 10}, 0)
		require.NoError(t, f.svc.AwardPoints(ctx, alice, -25, domain.PointReasonAdmin))
		assert.Equal(t, int64(-15), balance(t, f.accounts, alice))
	})

	t.Run("deductions clamp at zero when negative balances are off", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.AllowNegativeBalance = false
		f := newFixture(t, cfg, map[int64]int64{alice: 10}, 0)

		require.NoError(t, f.svc.AwardPoints(ctx, alice, -25, domain.PointReasonAdmin))
		assert.Equal(t, int64(0), balance(t, f.accounts, alice))

		published := f.events.ofType(event.PointsAwarded)
		require.Len(t, published, 1)
		p, err := event.DecodePayload[domain.PointsAwardedPayload](published[0].Payload)
		require.NoError(t, err)
		assert.Equal(t, int64(-10), p.Delta, "only the applied amount is reported")

		require.NoError(t, f.svc.AwardPoints(ctx, alice, -5, domain.PointReasonAdmin))
		assert.Equal(t, int64(0), balance(t, f.accounts, alice))
		assert.Len(t, f.events.ofType(event.PointsAwarded), 1, "no-op deductions publish nothing")
	})

	t.Run("zero delta touches nothing", func(t *testing.T) {
		m := &MockAccounts{}
		svc := NewService(m, world.NewMemory(0), nil, domain.RewardCatalog{}, DefaultConfig())
		require.NoError(t, svc.AwardPoints(ctx, alice, 0, domain.PointReasonAdmin))
		m.AssertExpectations(t)
	})
}

func TestLeaderboard(t *testing.T) {
	f := newFixture(t, DefaultConfig(), map[int64]int64{alice: 5, bob: 50, 3: 50}, 0)
	top, err := f.svc.Leaderboard(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "Player 2", top[0].Name)
	assert.Equal(t, "Player 3", top[1].Name)
}

func TestResolveDrops(t *testing.T) {
	f := newFixture(t, DefaultConfig(), nil, 0)
	items := []domain.RewardItem{
		{Name: "always", DropChance: 100},
		{Name: "never", DropChance: 0},
		{Name: "half", DropChance: 50},
	}

	const draws = 10000
	half := 0
	for range draws {
		won := f.svc.ResolveDrops(items)
		names := make(map[string]bool)
		for _, w := range won {
			names[w.Name] = true
		}
		assert.True(t, names["always"])
		assert.False(t, names["never"])
		if names["half"] {
			half++
		}
	}
	assert.InDelta(t, 0.5, float64(half)/draws, 0.03)
}

func TestPickWeighted_Converges(t *testing.T) {
	f := newFixture(t, DefaultConfig(), nil, 0)
	weights := []float64{0.2, 0.15, 0.10, 0.20, 0.20, 0.10, 0.10}

	const draws = 100000
	counts := make([]int, len(weights))
	for range draws {
		i := f.svc.PickWeighted(weights)
		require.GreaterOrEqual(t, i, 0)
		counts[i]++
	}
	// The weights sum to 1.05; picks follow each weight's share of the total.
	var sum float64
	for _, w := range weights {
		sum += w
	}
	for i, w := range weights {
		assert.InDelta(t, w/sum, float64(counts[i])/draws, 0.005, "index %d", i)
	}

	assert.Equal(t, -1, f.svc.PickWeighted([]float64{0, -1}))
	assert.Equal(t, -1, f.svc.PickWeighted(nil))
}

func TestPickLoadout(t *testing.T) {
	f := newFixture(t, DefaultConfig(), nil, 0)

	l, ok := f.svc.PickLoadout([]domain.Loadout{{Name: "never", Weight: 0}, {Name: "only", Weight: 2}})
	require.True(t, ok)
	assert.Equal(t, "only", l.Name)

	_, ok = f.svc.PickLoadout(nil)
	assert.False(t, ok)
}

func TestRewardSetLookupIgnoresCase(t *testing.T) {
	f := newFixture(t, DefaultConfig(), nil, 0)
	set, ok := f.svc.RewardSet("STARTER kit")
	require.True(t, ok)
	assert.Equal(t, int64(100), set.Cost())

	f.svc.SetCatalog(domain.RewardCatalog{})
	_, ok = f.svc.RewardSet("Starter Kit")
	assert.False(t, ok)
	assert.Empty(t, f.svc.Catalog().Sets)
}
