// Package lifecycle runs the round state machine of each registered event
// and the manager that schedules them.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/BrandishEvents_Go/internal/domain"
	"github.com/osse101/BrandishEvents_Go/internal/event"
	"github.com/osse101/BrandishEvents_Go/internal/logger"
	"github.com/osse101/BrandishEvents_Go/internal/participant"
	"github.com/osse101/BrandishEvents_Go/internal/scheduler"
	"github.com/osse101/BrandishEvents_Go/internal/worker"
)

// Machine drives one event type through
// Idle → SystemStarting → (Filling) → Active → Settling → SystemEnding → Idle.
//
// Transitions hold the write lock. Joins, leaves and ticks hold the read lock,
// so they run concurrently with one another but never observe a half-finished
// transition.
type Machine struct {
	deps      Deps
	directory Directory
	variant   Variant
	registry  *participant.Registry

	mu      sync.RWMutex
	state   atomic.Int32
	def     atomic.Pointer[domain.EventDefinition]
	pending atomic.Pointer[domain.EventDefinition]
	forced  atomic.Bool
	filled  atomic.Bool

	roundMu  sync.Mutex
	roundID  string
	group    *worker.Group
	entities []domain.EntityHandle
	tickID   scheduler.ID
	ticking  bool
}

// NewMachine creates an idle machine. directory may be nil when the event
// never needs the exclusivity check.
func NewMachine(def domain.EventDefinition, variant Variant, deps Deps, directory Directory) *Machine {
	deps.normalize()
	m := &Machine{
		deps:      deps,
		directory: directory,
		variant:   variant,
		registry:  participant.NewRegistry(),
	}
	m.def.Store(&def)
	return m
}

// Name returns the event name
func (m *Machine) Name() string { return m.Definition().Name }

// Definition returns the definition the current (or next) round runs with
func (m *Machine) Definition() domain.EventDefinition { return *m.def.Load() }

// State returns the current state
func (m *Machine) State() State { return State(m.state.Load()) }

// Registry returns the participant registry
func (m *Machine) Registry() *participant.Registry { return m.registry }

// Deps returns the shared collaborators
func (m *Machine) Deps() *Deps { return &m.deps }

// Variant returns the plugged-in round logic
func (m *Machine) Variant() Variant { return m.variant }

// Forced reports whether the current round was started by an admin
func (m *Machine) Forced() bool { return m.forced.Load() }

// RoundID identifies the current round, empty while Idle
func (m *Machine) RoundID() string {
	m.roundMu.Lock()
	defer m.roundMu.Unlock()
	return m.roundID
}

// Remaining returns the time left on the round timer
func (m *Machine) Remaining() (time.Duration, bool) {
	if m.deps.Timers == nil {
		return 0, false
	}
	return m.deps.Timers.Remaining(m.Name())
}

func (m *Machine) setState(s State) {
	m.state.Store(int32(s))
}

// SetDefinition replaces the definition. While a round is in progress the
// new definition is held until the machine returns to Idle.
func (m *Machine) SetDefinition(ctx context.Context, def domain.EventDefinition) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.State() == Idle {
		m.def.Store(&def)
		logger.FromContext(ctx).Info(LogMsgReloadApplied, "event", def.Name)
		return
	}
	m.pending.Store(&def)
	logger.FromContext(ctx).Info(LogMsgReloadDeferred, "event", def.Name, "state", m.State().String())
}

func (m *Machine) applyPendingLocked() {
	if def := m.pending.Swap(nil); def != nil {
		m.def.Store(def)
	}
}

// Start begins a round. Only valid from Idle. forced rounds ignore the
// schedule window until they end.
func (m *Machine) Start(ctx context.Context, forced bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if st := m.State(); st != Idle {
		return fmt.Errorf("%w: %s is %s", domain.ErrInvalidTransition, m.Name(), st)
	}
	m.applyPendingLocked()

	log := logger.FromContext(ctx)
	roundID := uuid.NewString()

	m.roundMu.Lock()
	m.roundID = roundID
	m.entities = nil
	m.group = nil
	if m.deps.Pool != nil {
		m.group = m.deps.Pool.NewGroup()
	}
	m.roundMu.Unlock()

	m.forced.Store(forced)
	m.setState(SystemStarting)
	log.Info(LogMsgRoundStarting, "event", m.Name(), "round_id", roundID, "forced", forced)
	m.publish(ctx, event.NewRoundEvent(event.RoundStarted, m.Name(), roundID, SystemStarting.String(), 0))

	fill, err := m.variant.Setup(ctx, m)
	if err != nil {
		log.Error(LogMsgRoundSetupFailed, "event", m.Name(), "round_id", roundID, "error", err)
		m.finishLocked(ctx, false)
		return fmt.Errorf("setting up %s: %w", m.Name(), err)
	}

	m.filled.Store(fill)
	if fill {
		m.setState(Filling)
		return nil
	}
	m.activateLocked(ctx)
	return nil
}

func (m *Machine) activateLocked(ctx context.Context) {
	m.setState(Active)
	m.variant.Activate(ctx, m)

	if d := m.variant.RoundDuration(); d > 0 && m.deps.Timers != nil {
		m.deps.Timers.Arm(m.Name(), d, m.timerFor(m.RoundID()))
	}
	if m.deps.Scheduler != nil {
		id := m.deps.Scheduler.Subscribe(m.Name(), scheduler.Fast, PriorityRound, m.Tick)
		m.roundMu.Lock()
		m.tickID, m.ticking = id, true
		m.roundMu.Unlock()
	}

	logger.FromContext(ctx).Info(LogMsgRoundActive, "event", m.Name(), "round_id", m.RoundID(), "participants", m.registry.Len())
	m.publish(ctx, event.NewRoundEvent(event.RoundActive, m.Name(), m.RoundID(), Active.String(), m.registry.Len()))
	m.deps.Notifier.Broadcast(ctx, fmt.Sprintf(MsgEventStarted, m.Name()), domain.ColorInfo)
}

// timerFor ends roundID when its timer fires. A callback that outlived its
// round leaves the next one alone.
func (m *Machine) timerFor(roundID string) func() {
	return func() {
		if m.RoundID() != roundID {
			logger.Debug(LogMsgStaleTimer, "event", m.Name(), "round_id", roundID)
			return
		}
		logger.Info(LogMsgRoundTimerExpired, "event", m.Name(), "round_id", roundID)
		_ = m.endRound(context.Background(), roundID)
	}
}

// Tick runs the variant's per-second logic while Active
func (m *Machine) Tick(ctx context.Context) {
	m.mu.RLock()
	if m.State() != Active {
		m.mu.RUnlock()
		return
	}
	done := m.variant.Tick(ctx, m)
	m.mu.RUnlock()

	if done {
		_ = m.End(ctx)
	}
}

// End settles and cleans up the current round. A round still Filling is
// cancelled without rewards.
func (m *Machine) End(ctx context.Context) error {
	return m.endRound(ctx, "")
}

// endRound ends the current round, or only roundID when it is set.
func (m *Machine) endRound(ctx context.Context, roundID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if roundID != "" && m.RoundID() != roundID {
		return fmt.Errorf("%w: round %s already ended", domain.ErrInvalidTransition, roundID)
	}
	st := m.State()
	if !st.Running() {
		return fmt.Errorf("%w: %s is %s", domain.ErrInvalidTransition, m.Name(), st)
	}
	completed := st == Active

	m.setState(Settling)
	logger.FromContext(ctx).Info(LogMsgRoundSettling, "event", m.Name(), "round_id", m.RoundID(), "completed", completed)
	if m.deps.Timers != nil {
		m.deps.Timers.Cancel(m.Name())
	}
	m.unsubscribeTick()

	participants := m.registry.Len()
	settlement := m.variant.Settle(ctx, m, completed)
	if completed {
		m.publish(ctx, event.NewRoundSettledEvent(m.Name(), m.RoundID(), participants, settlement.Winner, settlement.Teams))
	} else {
		m.deps.Notifier.Broadcast(ctx, fmt.Sprintf(MsgEventCancelled, m.Name()), domain.ColorWarning)
	}

	m.finishLocked(ctx, completed)
	return nil
}

func (m *Machine) unsubscribeTick() {
	m.roundMu.Lock()
	defer m.roundMu.Unlock()
	if m.ticking && m.deps.Scheduler != nil {
		m.deps.Scheduler.Unsubscribe(m.tickID)
	}
	m.ticking = false
}

// finishLocked runs SystemEnding: wait for spawn work, remove what it
// created, reset the variant and return to Idle.
func (m *Machine) finishLocked(ctx context.Context, announce bool) {
	log := logger.FromContext(ctx)
	m.setState(SystemEnding)
	m.registry.Clear()

	m.roundMu.Lock()
	group := m.group
	m.roundMu.Unlock()
	if group != nil {
		waitCtx, cancel := context.WithTimeout(ctx, SpawnWaitTimeout)
		if err := group.Wait(waitCtx); err != nil {
			log.Warn(LogMsgSpawnWaitTimeout, "event", m.Name(), "error", err)
		}
		cancel()
	}

	m.roundMu.Lock()
	entities := m.entities
	m.entities = nil
	roundID := m.roundID
	m.roundMu.Unlock()
	if len(entities) > 0 {
		if err := m.deps.World.RemoveEntities(ctx, entities); err != nil {
			log.Error(LogMsgRemoveFailed, "event", m.Name(), "count", len(entities), "error", err)
		}
	}

	m.variant.Teardown(ctx, m)
	m.publish(ctx, event.NewRoundEvent(event.RoundEnded, m.Name(), roundID, SystemEnding.String(), 0))
	if announce {
		m.deps.Notifier.Broadcast(ctx, fmt.Sprintf(MsgEventEnded, m.Name()), domain.ColorInfo)
	}

	m.roundMu.Lock()
	m.roundID = ""
	m.group = nil
	m.roundMu.Unlock()

	m.forced.Store(false)
	m.filled.Store(false)
	m.setState(Idle)
	m.applyPendingLocked()
	log.Info(LogMsgRoundEnded, "event", m.Name(), "round_id", roundID)
}

// Join adds a player to the current round
func (m *Machine) Join(ctx context.Context, id int64) (string, error) {
	m.mu.RLock()
	label, full, err := m.joinLocked(ctx, id)
	st := m.State()
	m.mu.RUnlock()
	if err != nil {
		return "", err
	}

	logger.FromContext(ctx).Info(LogMsgPlayerJoined, "event", m.Name(), "player_id", id, "label", label)
	m.publish(ctx, event.NewParticipantEvent(event.PlayerJoined, m.Name(), id, label))
	if label != "" {
		m.deps.Notifier.SendToPlayer(ctx, id, fmt.Sprintf(MsgJoinedTeam, m.Name(), label), domain.ColorSuccess)
	} else {
		m.deps.Notifier.SendToPlayer(ctx, id, fmt.Sprintf(MsgJoined, m.Name()), domain.ColorSuccess)
	}

	if full && st == Filling {
		m.activateIfFull(ctx)
	}
	return label, nil
}

func (m *Machine) joinLocked(ctx context.Context, id int64) (label string, full bool, err error) {
	switch st := m.State(); {
	case st == Filling:
	case st == Active && m.filled.Load():
		return "", false, domain.ErrEventAlreadyStarted
	case st == Active:
	default:
		return "", false, domain.ErrEventNotRunning
	}

	if m.registry.Contains(id) {
		return "", false, domain.ErrAlreadyParticipating
	}
	def := m.Definition()
	if def.Exclusive() && m.directory != nil {
		if other, busy := m.directory.ExclusiveHolder(id, def.Name); busy {
			return "", false, fmt.Errorf("%w: %s", domain.ErrInOtherEvent, other)
		}
	}
	if !m.registry.TryAdd(id) {
		return "", false, domain.ErrAlreadyParticipating
	}

	label, err = m.variant.Join(ctx, m, id)
	if err != nil {
		m.registry.TryRemove(id)
		// A concurrent join took the last slot and is about to activate
		if errors.Is(err, domain.ErrTeamsFull) && m.variant.Full() {
			return "", false, domain.ErrEventAlreadyStarted
		}
		return "", false, err
	}
	return label, m.variant.Full(), nil
}

// activateIfFull promotes a Filling round once every slot is taken. Racing
// joins may both see the round full; only the first one transitions.
func (m *Machine) activateIfFull(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.State() == Filling && m.variant.Full() {
		m.activateLocked(ctx)
	}
}

// Leave removes a player from the current round and restores them. Safe to
// call concurrently with the tick.
func (m *Machine) Leave(ctx context.Context, id int64) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.registry.TryRemove(id) {
		return domain.ErrNotParticipating
	}
	m.variant.Leave(ctx, m, id)

	logger.FromContext(ctx).Info(LogMsgPlayerLeft, "event", m.Name(), "player_id", id)
	m.publish(ctx, event.NewParticipantEvent(event.PlayerLeft, m.Name(), id, ""))
	m.deps.Notifier.SendToPlayer(ctx, id, fmt.Sprintf(MsgLeft, m.Name()), domain.ColorInfo)
	return nil
}

// RecordKill reports a kill to variants that score them. Only valid while
// Active.
func (m *Machine) RecordKill(ctx context.Context, killer, victim int64) error {
	rec, ok := m.variant.(KillRecorder)
	if !ok {
		return fmt.Errorf("%s does not score kills", m.Name())
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.State() != Active {
		return domain.ErrEventNotRunning
	}
	return rec.RecordKill(ctx, m, killer, victim)
}

// Spawn creates a prefab on the worker pool. Entities it creates are removed
// during SystemEnding, after the spawn has finished.
func (m *Machine) Spawn(prefab string, pos domain.Vec3) {
	if prefab == "" {
		return
	}
	job := worker.JobFunc(func(ctx context.Context) error {
		handles, err := m.deps.World.SpawnPrefab(ctx, prefab, pos)
		if err != nil {
			logger.FromContext(ctx).Warn(LogMsgSpawnFailed, "event", m.Name(), "prefab", prefab, "error", err)
			return nil
		}
		m.roundMu.Lock()
		m.entities = append(m.entities, handles...)
		m.roundMu.Unlock()
		return nil
	})

	m.roundMu.Lock()
	group := m.group
	m.roundMu.Unlock()
	if group == nil {
		_ = job(context.Background())
		return
	}
	group.Go(job)
}

// Publish sends an event on the bus, logging failures
func (m *Machine) Publish(ctx context.Context, evt event.Event) {
	m.publish(ctx, evt)
}

func (m *Machine) publish(ctx context.Context, evt event.Event) {
	if err := m.deps.Bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "event", m.Name(), "type", evt.Type, "error", err)
	}
}

// Status reports the machine's current state
func (m *Machine) Status() Status {
	def := m.Definition()
	s := Status{
		Name:         def.Name,
		Variant:      string(def.Variant),
		State:        m.State().String(),
		Enabled:      def.Enabled,
		Exclusive:    def.Exclusive(),
		Window:       def.StartTime.String() + "-" + def.EndTime.String(),
		RoundID:      m.RoundID(),
		Participants: m.registry.Len(),
	}
	if rem, ok := m.Remaining(); ok {
		s.Remaining = rem
	}
	m.variant.Describe(&s)
	return s
}
