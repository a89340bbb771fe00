package lifecycle_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/osse101/BrandishEvents_Go/internal/domain"
	"github.com/osse101/BrandishEvents_Go/internal/economy"
	"github.com/osse101/BrandishEvents_Go/internal/event"
	"github.com/osse101/BrandishEvents_Go/internal/lifecycle"
	"github.com/osse101/BrandishEvents_Go/internal/lifecycle/teamfight"
	"github.com/osse101/BrandishEvents_Go/internal/lifecycle/zonecontrol"
	"github.com/osse101/BrandishEvents_Go/internal/notify"
	"github.com/osse101/BrandishEvents_Go/internal/store/flatfile"
	"github.com/osse101/BrandishEvents_Go/internal/utils"
	"github.com/osse101/BrandishEvents_Go/internal/worker"
	"github.com/osse101/BrandishEvents_Go/internal/world"
)

var (
	redSpawn  = domain.Vec3{X: 10}
	blueSpawn = domain.Vec3{X: -10}
	sword     = domain.RewardItem{Name: "Sword", ItemType: "weapon", ItemSubtype: "sword", Amount: 1}
	goldCoin  = domain.RewardItem{Name: "Gold Coin", ItemType: "currency", ItemSubtype: "gold", Amount: 3, DropChance: 100}
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

func at(hour, minute int) time.Time {
	return time.Date(2026, time.March, 15, hour, minute, 0, 0, time.UTC)
}

type recordedEvents struct {
	mu     sync.Mutex
	events []event.Event
}

func (r *recordedEvents) handle(_ context.Context, evt event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
	return nil
}

func (r *recordedEvents) ofType(t event.Type) []event.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []event.Event
	for _, e := range r.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

type harness struct {
	ctx      context.Context
	clock    *clock
	world    *world.Memory
	notes    *notify.Recorder
	events   *recordedEvents
	accounts *flatfile.Store
	econ     *economy.Service
	timers   *worker.RoundTimers
	mgr      *lifecycle.Manager
}

func arenaDef(name string, roundDuration time.Duration) domain.EventDefinition {
	return domain.EventDefinition{
		Name:      name,
		Variant:   domain.VariantTeamFight,
		Enabled:   true,
		StartTime: domain.NewTimeOfDay(18, 0, 0),
		EndTime:   domain.NewTimeOfDay(20, 0, 0),
		TeamFight: &domain.TeamFightSettings{
			TeamCount:           2,
			MaxPlayersPerTeam:   2,
			TeamNames:           []string{"Red", "Blue"},
			RoundDuration:       roundDuration,
			ArenaPrefab:         "arena",
			TeamSpawns:          []domain.Vec3{redSpawn, blueSpawn},
			KillPoints:          10,
			WinPoints:           50,
			ParticipationPoints: 5,
			RewardSet:           "Spoils",
			Loadouts:            []domain.Loadout{{Name: "Duelist", Weight: 1, Items: []domain.RewardItem{sword}}},
		},
	}
}

func hillDef() domain.EventDefinition {
	return domain.EventDefinition{
		Name:                            "Hill",
		Variant:                         domain.VariantZoneControl,
		Enabled:                         true,
		StartTime:                       domain.NewTimeOfDay(12, 0, 0),
		EndTime:                         domain.NewTimeOfDay(14, 0, 0),
		AllowParticipationInOtherEvents: true,
		ZoneControl: &domain.ZoneSettings{
			Shape:         domain.ZoneSphere,
			Radius:        10,
			AwardPoints:   10,
			AwardInterval: time.Minute,
			MarkerPrefab:  "flag",
		},
	}
}

func newHarness(t *testing.T, defs ...domain.EventDefinition) *harness {
	t.Helper()
	ctx := context.Background()

	accounts, err := flatfile.Open(t.TempDir())
	require.NoError(t, err)

	h := &harness{
		ctx:      ctx,
		clock:    &clock{t: at(10, 0)},
		world:    world.NewMemory(0),
		notes:    &notify.Recorder{},
		events:   &recordedEvents{},
		accounts: accounts,
		timers:   worker.NewRoundTimers(),
	}

	bus := event.NewMemoryBus()
	event.SubscribeAll(bus, h.events.handle)

	catalog := domain.RewardCatalog{Sets: []domain.RewardSet{{Name: "Spoils", Items: []domain.RewardItem{goldCoin}}}}
	h.econ = economy.NewService(accounts, h.world, bus, catalog, economy.DefaultConfig()).
		WithRandSource(utils.NewSeededSource(1))

	pool := worker.NewPool(2, 16)
	pool.Start()
	t.Cleanup(pool.Stop)
	t.Cleanup(func() { _ = h.timers.Shutdown(context.Background()) })

	deps := lifecycle.Deps{
		World:    h.world,
		Factions: h.world,
		Notifier: h.notes,
		Rewards:  h.econ,
		Bus:      bus,
		Pool:     pool,
		Timers:   h.timers,
		Now:      h.clock.Now,
	}
	factories := map[domain.Variant]lifecycle.Factory{
		domain.VariantTeamFight:   teamfight.New,
		domain.VariantZoneControl: zonecontrol.New,
	}
	h.mgr = lifecycle.NewManager(ctx, deps, factories, defs)
	t.Cleanup(func() { _ = h.mgr.Shutdown(context.Background()) })
	return h
}

// origin is where player id stands before any event moves them
func origin(id int64) domain.Vec3 {
	return domain.Vec3{X: 1000 + float64(id), Y: 5}
}

func (h *harness) addPlayers(ids ...int64) {
	for _, id := range ids {
		h.world.AddPlayer(id, "", origin(id))
	}
}

func (h *harness) machine(t *testing.T, name string) *lifecycle.Machine {
	t.Helper()
	m, ok := h.mgr.Machine(name)
	require.True(t, ok, "machine %s not registered", name)
	return m
}

func (h *harness) balance(t *testing.T, id int64) int64 {
	t.Helper()
	b, err := h.econ.Balance(h.ctx, id)
	require.NoError(t, err)
	return b
}

// fill starts name and joins players 1..4, giving Red {1,2} and Blue {3,4}
func (h *harness) fill(t *testing.T, name string) {
	t.Helper()
	h.addPlayers(1, 2, 3, 4)
	require.NoError(t, h.mgr.ForceStart(h.ctx, name))
	for id := int64(1); id <= 4; id++ {
		_, err := h.mgr.Join(h.ctx, name, id)
		require.NoError(t, err)
	}
	require.Equal(t, lifecycle.Active, h.machine(t, name).State())
}
