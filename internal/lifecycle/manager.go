package lifecycle

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/osse101/BrandishEvents_Go/internal/concurrency"
	"github.com/osse101/BrandishEvents_Go/internal/domain"
	"github.com/osse101/BrandishEvents_Go/internal/logger"
	"github.com/osse101/BrandishEvents_Go/internal/scheduler"
)

// Factory builds the round logic for a definition. Variants live in their own
// packages and are handed to the manager at construction.
type Factory func(def domain.EventDefinition, deps *Deps, dir Directory) Variant

// ReloadResult lists what a reload changed, by event name
type ReloadResult struct {
	Added    []string `json:"added"`
	Updated  []string `json:"updated"`
	Removed  []string `json:"removed"`
	Deferred []string `json:"deferred"`
	Skipped  []string `json:"skipped"`
}

// Manager owns one machine per registered event type. It starts and stops
// rounds as their windows open and close, and routes commands to them.
type Manager struct {
	deps      Deps
	factories map[domain.Variant]Factory
	locks     *concurrency.LockManager

	mu       sync.RWMutex
	machines map[string]*Machine
	order    []string
	retired  map[string]bool
	replace  map[string]domain.EventDefinition

	pollID  scheduler.ID
	polling bool
}

// NewManager creates a manager and registers defs. Definitions without a
// factory for their variant are skipped with a log line.
func NewManager(ctx context.Context, deps Deps, factories map[domain.Variant]Factory, defs []domain.EventDefinition) *Manager {
	deps.normalize()
	mgr := &Manager{
		deps:      deps,
		factories: factories,
		locks:     concurrency.NewLockManager(),
		machines:  make(map[string]*Machine),
		retired:   make(map[string]bool),
		replace:   make(map[string]domain.EventDefinition),
	}
	for _, def := range defs {
		_ = mgr.Register(ctx, def)
	}
	return mgr
}

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register adds a machine for def
func (mgr *Manager) Register(ctx context.Context, def domain.EventDefinition) error {
	mgr.mu.Lock()
	defer mgr.mu.Unlock()
	return mgr.registerLocked(ctx, def)
}

func (mgr *Manager) registerLocked(ctx context.Context, def domain.EventDefinition) error {
	k := key(def.Name)
	if _, exists := mgr.machines[k]; exists {
		return fmt.Errorf("event %q already registered", def.Name)
	}
	m, err := mgr.build(ctx, def)
	if err != nil {
		return err
	}
	mgr.machines[k] = m
	mgr.order = append(mgr.order, k)
	logger.FromContext(ctx).Info(LogMsgEventRegistered, "event", def.Name, "variant", def.Variant)
	return nil
}

func (mgr *Manager) build(ctx context.Context, def domain.EventDefinition) (*Machine, error) {
	factory, ok := mgr.factories[def.Variant]
	if !ok {
		logger.FromContext(ctx).Warn(LogMsgUnknownVariant, "event", def.Name, "variant", def.Variant)
		return nil, fmt.Errorf("no factory for variant %q", def.Variant)
	}
	deps := mgr.deps
	return NewMachine(def, factory(def, &deps, mgr), deps, mgr), nil
}

func (mgr *Manager) unregisterLocked(ctx context.Context, k string) {
	delete(mgr.machines, k)
	delete(mgr.retired, k)
	mgr.order = slices.DeleteFunc(mgr.order, func(s string) bool { return s == k })
	logger.FromContext(ctx).Info(LogMsgEventUnregistered, "event", k)
}

// Machine returns the machine for name, case-insensitively
func (mgr *Manager) Machine(name string) (*Machine, bool) {
	mgr.mu.RLock()
	defer mgr.mu.RUnlock()
	m, ok := mgr.machines[key(name)]
	return m, ok
}

func (mgr *Manager) machine(name string) (*Machine, error) {
	m, ok := mgr.Machine(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrEventNotFound, name)
	}
	return m, nil
}

func (mgr *Manager) snapshot() []*Machine {
	mgr.mu.RLock()
	defer mgr.mu.RUnlock()
	out := make([]*Machine, 0, len(mgr.order))
	for _, k := range mgr.order {
		out = append(out, mgr.machines[k])
	}
	return out
}

// ExclusiveHolder implements Directory. The scan is a point-in-time read; a
// player racing two joins into different exclusive events can win both.
func (mgr *Manager) ExclusiveHolder(id int64, except string) (string, bool) {
	skip := key(except)
	for _, m := range mgr.snapshot() {
		def := m.Definition()
		if key(def.Name) == skip || !def.Exclusive() {
			continue
		}
		if m.Registry().Contains(id) {
			return def.Name, true
		}
	}
	return "", false
}

func playerLock(id int64) string {
	return "player:" + strconv.FormatInt(id, 10)
}

// Join adds a player to the named event. Joins by the same player are
// serialized so the exclusivity check cannot race itself.
func (mgr *Manager) Join(ctx context.Context, name string, id int64) (label string, err error) {
	m, err := mgr.machine(name)
	if err != nil {
		return "", err
	}
	err = mgr.locks.WithLock(playerLock(id), func() error {
		label, err = m.Join(ctx, id)
		return err
	})
	return label, err
}

// Leave removes a player from the named event
func (mgr *Manager) Leave(ctx context.Context, name string, id int64) error {
	m, err := mgr.machine(name)
	if err != nil {
		return err
	}
	return mgr.locks.WithLock(playerLock(id), func() error {
		return m.Leave(ctx, id)
	})
}

// RecordKill reports a kill to the named event
func (mgr *Manager) RecordKill(ctx context.Context, name string, killer, victim int64) error {
	m, err := mgr.machine(name)
	if err != nil {
		return err
	}
	return m.RecordKill(ctx, killer, victim)
}

// ForceStart starts a round outside the schedule window
func (mgr *Manager) ForceStart(ctx context.Context, name string) error {
	m, err := mgr.machine(name)
	if err != nil {
		return err
	}
	return m.Start(ctx, true)
}

// ForceStop ends the current round
func (mgr *Manager) ForceStop(ctx context.Context, name string) error {
	m, err := mgr.machine(name)
	if err != nil {
		return err
	}
	return m.End(ctx)
}

// List reports every registered event in registration order
func (mgr *Manager) List() []Status {
	machines := mgr.snapshot()
	out := make([]Status, 0, len(machines))
	for _, m := range machines {
		out = append(out, m.Status())
	}
	return out
}

// Poll starts events whose window has opened and ends those whose window has
// closed. Rounds with a running timer and forced rounds are left to finish.
func (mgr *Manager) Poll(ctx context.Context) {
	log := logger.FromContext(ctx)
	now := mgr.deps.Now()

	mgr.mu.RLock()
	retired := make(map[string]bool, len(mgr.retired))
	for k := range mgr.retired {
		retired[k] = true
	}
	mgr.mu.RUnlock()

	for _, m := range mgr.snapshot() {
		def := m.Definition()
		open := def.IsActiveAt(now) && !retired[key(def.Name)]
		st := m.State()

		switch {
		case st == Idle && open:
			log.Info(LogMsgPollStart, "event", def.Name)
			if err := m.Start(ctx, false); err != nil {
				log.Warn(LogMsgRoundSetupFailed, "event", def.Name, "error", err)
			}
		case st.Running() && !open && !m.Forced() && !mgr.timerRunning(def.Name):
			log.Info(LogMsgPollStop, "event", def.Name)
			_ = m.End(ctx)
		}
	}

	mgr.applyDeferred(ctx)
}

func (mgr *Manager) timerRunning(name string) bool {
	return mgr.deps.Timers != nil && mgr.deps.Timers.Active(name)
}

// applyDeferred completes reload changes that had to wait for a round to end
func (mgr *Manager) applyDeferred(ctx context.Context) {
	mgr.mu.Lock()
	defer mgr.mu.Unlock()

	for k := range mgr.retired {
		if m, ok := mgr.machines[k]; !ok || m.State() == Idle {
			mgr.unregisterLocked(ctx, k)
		}
	}
	for k, def := range mgr.replace {
		m, ok := mgr.machines[k]
		if ok && m.State() != Idle {
			continue
		}
		delete(mgr.replace, k)
		next, err := mgr.build(ctx, def)
		if err != nil {
			continue
		}
		if !ok {
			mgr.order = append(mgr.order, k)
		}
		mgr.machines[k] = next
		logger.FromContext(ctx).Info(LogMsgReloadApplied, "event", def.Name)
	}
}

type pendingUpdate struct {
	m   *Machine
	def domain.EventDefinition
}

// Reload swaps in a new set of definitions. Events with a round in progress
// keep their current definition until they return to Idle; events missing
// from defs are removed once idle.
func (mgr *Manager) Reload(ctx context.Context, defs []domain.EventDefinition) ReloadResult {
	res, updates := mgr.reloadLocked(ctx, defs)
	// Machines take the manager's read lock from inside joins, so their own
	// locks are only acquired once the manager lock is released.
	for _, u := range updates {
		u.m.SetDefinition(ctx, u.def)
	}
	return res
}

func (mgr *Manager) reloadLocked(ctx context.Context, defs []domain.EventDefinition) (ReloadResult, []pendingUpdate) {
	mgr.mu.Lock()
	defer mgr.mu.Unlock()

	var (
		res     ReloadResult
		updates []pendingUpdate
	)
	seen := make(map[string]bool, len(defs))
	for _, def := range defs {
		k := key(def.Name)
		seen[k] = true
		delete(mgr.retired, k)

		m, exists := mgr.machines[k]
		switch {
		case !exists:
			if err := mgr.registerLocked(ctx, def); err != nil {
				res.Skipped = append(res.Skipped, def.Name)
				continue
			}
			res.Added = append(res.Added, def.Name)
		case m.Definition().Variant == def.Variant:
			if m.State() != Idle {
				res.Deferred = append(res.Deferred, def.Name)
			}
			updates = append(updates, pendingUpdate{m: m, def: def})
			res.Updated = append(res.Updated, def.Name)
		default:
			if _, ok := mgr.factories[def.Variant]; !ok {
				logger.FromContext(ctx).Warn(LogMsgUnknownVariant, "event", def.Name, "variant", def.Variant)
				res.Skipped = append(res.Skipped, def.Name)
				continue
			}
			if m.State() == Idle {
				next, err := mgr.build(ctx, def)
				if err != nil {
					res.Skipped = append(res.Skipped, def.Name)
					continue
				}
				mgr.machines[k] = next
			} else {
				mgr.replace[k] = def
				res.Deferred = append(res.Deferred, def.Name)
			}
			res.Updated = append(res.Updated, def.Name)
		}
	}

	for _, k := range slices.Clone(mgr.order) {
		if seen[k] {
			continue
		}
		m := mgr.machines[k]
		name := m.Name()
		if m.State() == Idle {
			mgr.unregisterLocked(ctx, k)
		} else {
			mgr.retired[k] = true
			res.Deferred = append(res.Deferred, name)
		}
		res.Removed = append(res.Removed, name)
	}
	return res, updates
}

// Start subscribes the window poll to the slow tick and runs it once
func (mgr *Manager) Start(ctx context.Context) {
	mgr.Poll(ctx)
	if mgr.deps.Scheduler == nil {
		return
	}
	mgr.mu.Lock()
	mgr.pollID = mgr.deps.Scheduler.Subscribe("event-manager", scheduler.Slow, PriorityManagerPoll, mgr.Poll)
	mgr.polling = true
	mgr.mu.Unlock()
}

// Shutdown ends every running round and stops polling
func (mgr *Manager) Shutdown(ctx context.Context) error {
	logger.FromContext(ctx).Info(LogMsgManagerShutdown)
	mgr.mu.Lock()
	if mgr.polling {
		mgr.deps.Scheduler.Unsubscribe(mgr.pollID)
		mgr.polling = false
	}
	mgr.mu.Unlock()

	for _, m := range mgr.snapshot() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if m.State().Running() {
			_ = m.End(ctx)
		}
	}
	return nil
}
