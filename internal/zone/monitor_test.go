package zone

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BrandishEvents_Go/internal/domain"
	"github.com/osse101/BrandishEvents_Go/internal/notify"
	"github.com/osse101/BrandishEvents_Go/internal/world"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type harness struct {
	world    *world.Memory
	notices  *notify.Recorder
	awarder  *MockAwarder
	clock    *fakeClock
	monitor  *Monitor
	settings domain.ZoneSettings
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		world:   world.NewMemory(0),
		notices: &notify.Recorder{},
		awarder: new(MockAwarder),
		clock:   &fakeClock{t: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)},
		settings: domain.ZoneSettings{
			Shape:         domain.ZoneSphere,
			Radius:        100,
			AwardPoints:   5,
			AwardInterval: 10 * time.Second,
		},
	}
	h.monitor = NewMonitor(Config{
		EventName: "Hill",
		Settings:  h.settings,
		Players:   h.world,
		Factions:  h.world,
		Notifier:  h.notices,
		Awarder:   h.awarder,
		Now:       h.clock.Now,
	})
	t.Cleanup(func() { h.awarder.AssertExpectations(t) })
	return h
}

func (h *harness) tick(t *testing.T) Result {
	t.Helper()
	res, err := h.monitor.Tick(context.Background())
	require.NoError(t, err)
	return res
}

func TestTick_EnemiesContestEachOther(t *testing.T) {
	h := newHarness(t)
	h.world.AddPlayer(1, "A", domain.Vec3{X: 10})
	h.world.AddPlayer(2, "B", domain.Vec3{Y: -20})
	h.world.SetFaction(1, "f1")
	h.world.SetFaction(2, "f2")
	h.world.SetWar("f1", "f2", true)

	res := h.tick(t)
	assert.Equal(t, []int64{1, 2}, res.Entered)
	assert.Equal(t, []int64{1, 2}, res.Contested)

	// Hold for well past several award intervals and contest-notice windows
	for i := 0; i < 120; i++ {
		h.clock.Advance(time.Second)
		res = h.tick(t)
		assert.Empty(t, res.Awarded)
		assert.Empty(t, res.Contested, "contested is edge-triggered")
	}

	for _, id := range []int64{1, 2} {
		assert.Equal(t, 1, h.notices.CountContaining(id, "Enemy entered"))
		assert.Equal(t, 1, h.notices.CountContaining(id, "You entered"))
	}
	h.awarder.AssertNotCalled(t, "AwardPoints", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTick_UncontestedEarnsEveryInterval(t *testing.T) {
	h := newHarness(t)
	h.world.AddPlayer(1, "A", domain.Vec3{})
	h.world.SetFaction(1, "f1")
	h.awarder.On("AwardPoints", mock.Anything, int64(1), int64(5), domain.PointReasonZone).Return(nil).Twice()

	h.tick(t)
	h.clock.Advance(9 * time.Second)
	assert.Empty(t, h.tick(t).Awarded)
	h.clock.Advance(time.Second)
	assert.Equal(t, []int64{1}, h.tick(t).Awarded)
	h.clock.Advance(5 * time.Second)
	assert.Empty(t, h.tick(t).Awarded)
	h.clock.Advance(5 * time.Second)
	assert.Equal(t, []int64{1}, h.tick(t).Awarded)
}

func TestTick_AlliesDoNotContest(t *testing.T) {
	h := newHarness(t)
	h.world.AddPlayer(1, "A", domain.Vec3{})
	h.world.AddPlayer(2, "B", domain.Vec3{X: 1})
	h.world.SetFaction(1, "f1")
	h.world.SetFaction(2, "f3")
	h.awarder.On("AwardPoints", mock.Anything, mock.Anything, int64(5), domain.PointReasonZone).Return(nil).Twice()

	h.tick(t)
	h.clock.Advance(10 * time.Second)
	res := h.tick(t)
	assert.Empty(t, res.Contested)
	assert.Equal(t, []int64{1, 2}, res.Awarded)
}

func TestTick_FactionlessNotifiedOnceAndExcluded(t *testing.T) {
	h := newHarness(t)
	h.world.AddPlayer(1, "A", domain.Vec3{})

	for i := 0; i < 5; i++ {
		res := h.tick(t)
		assert.Empty(t, res.Holding)
		h.clock.Advance(time.Minute)
	}
	assert.Equal(t, 1, h.notices.CountContaining(1, "must belong to a faction"))

	// Leaving and coming back re-arms the notice
	h.world.MovePlayer(1, domain.Vec3{X: 500})
	h.tick(t)
	h.world.MovePlayer(1, domain.Vec3{})
	h.tick(t)
	assert.Equal(t, 2, h.notices.CountContaining(1, "must belong to a faction"))
}

func TestTick_EnterLeaveAndResumeAreEdgeTriggered(t *testing.T) {
	h := newHarness(t)
	h.world.AddPlayer(1, "A", domain.Vec3{})
	h.world.AddPlayer(2, "B", domain.Vec3{X: 500})
	h.world.SetFaction(1, "f1")
	h.world.SetFaction(2, "f2")
	h.world.SetWar("f1", "f2", true)

	h.tick(t)
	h.world.MovePlayer(2, domain.Vec3{X: 50})
	res := h.tick(t)
	assert.Equal(t, []int64{2}, res.Entered)
	assert.Equal(t, []int64{1, 2}, res.Contested)

	h.world.MovePlayer(2, domain.Vec3{X: 500})
	res = h.tick(t)
	assert.Equal(t, []int64{2}, res.Left)
	assert.Equal(t, []int64{1}, res.Resumed)
	h.tick(t)

	assert.Equal(t, 1, h.notices.CountContaining(1, "Scoring resumed"))
	assert.Equal(t, 1, h.notices.CountContaining(2, "You left"))
}

func TestTick_ContestNoticeThrottled(t *testing.T) {
	h := newHarness(t)
	h.world.AddPlayer(1, "A", domain.Vec3{})
	h.world.AddPlayer(2, "B", domain.Vec3{})
	h.world.SetFaction(1, "f1")
	h.world.SetFaction(2, "f2")
	h.world.SetWar("f1", "f2", true)
	h.awarder.On("AwardPoints", mock.Anything, mock.Anything, int64(5), domain.PointReasonZone).Return(nil).Maybe()

	h.tick(t)
	// Flapping war status within 30s must not re-send the notice
	for i := 0; i < 5; i++ {
		h.world.SetWar("f1", "f2", false)
		h.clock.Advance(time.Second)
		h.tick(t)
		h.world.SetWar("f1", "f2", true)
		h.clock.Advance(time.Second)
		h.tick(t)
	}
	assert.Equal(t, 1, h.notices.CountContaining(1, "Enemy entered"))

	h.world.SetWar("f1", "f2", false)
	h.clock.Advance(30 * time.Second)
	h.tick(t)
	h.world.SetWar("f1", "f2", true)
	h.tick(t)
	assert.Equal(t, 2, h.notices.CountContaining(1, "Enemy entered"))
}

func TestTick_AwardFailureRetriesNextTick(t *testing.T) {
	h := newHarness(t)
	h.world.AddPlayer(1, "A", domain.Vec3{})
	h.world.SetFaction(1, "f1")
	h.awarder.On("AwardPoints", mock.Anything, int64(1), int64(5), domain.PointReasonZone).Return(errors.New("db down")).Once()
	h.awarder.On("AwardPoints", mock.Anything, int64(1), int64(5), domain.PointReasonZone).Return(nil).Once()

	h.tick(t)
	h.clock.Advance(10 * time.Second)
	assert.Empty(t, h.tick(t).Awarded)
	h.clock.Advance(time.Second)
	assert.Equal(t, []int64{1}, h.tick(t).Awarded)
}

func TestTick_IneligibleAndOfflinePlayers(t *testing.T) {
	h := newHarness(t)
	h.monitor.eligible = func(_ context.Context, id int64) bool { return id != 2 }
	h.world.AddPlayer(1, "A", domain.Vec3{})
	h.world.AddPlayer(2, "B", domain.Vec3{})
	h.world.SetFaction(1, "f1")
	h.world.SetFaction(2, "f2")
	h.world.SetWar("f1", "f2", true)

	res := h.tick(t)
	assert.Equal(t, []int64{1}, res.Holding)
	assert.Empty(t, res.Contested)

	h.world.SetOnline(1, false)
	res = h.tick(t)
	assert.Equal(t, []int64{1}, res.Left)
	assert.Empty(t, h.monitor.Holding())
	assert.Zero(t, h.notices.CountContaining(1, "You left"), "offline players leave silently")
}
