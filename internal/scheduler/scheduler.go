package scheduler

import (
	"context"
	"fmt"
	"runtime/debug"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/osse101/BrandishEvents_Go/internal/domain"
	"github.com/osse101/BrandishEvents_Go/internal/logger"
)

// Cadence selects which tick drives a callback
type Cadence int

// Tick cadences
const (
	Fast Cadence = iota
	Slow
)

func (c Cadence) String() string {
	if c == Slow {
		return "slow"
	}
	return "fast"
}

// Callback is invoked once per tick of its cadence
type Callback func(ctx context.Context)

// ID identifies a subscription
type ID uint64

// Stats are per-callback timing counters
type Stats struct {
	Calls         uint64
	SlowCalls     uint64
	Panics        uint64
	TotalDuration time.Duration
	MaxDuration   time.Duration
}

// Observer receives one report per callback invocation. The metrics package
// implements it.
type Observer interface {
	ObserveCallback(name string, cadence string, d time.Duration, slow, panicked bool)
}

type subscription struct {
	id       ID
	name     string
	cadence  Cadence
	priority int
	seq      uint64
	fn       Callback
	active   atomic.Bool

	mu    sync.Mutex
	stats Stats
}

// Scheduler fires subscribed callbacks on a fast and a slow cadence. Within a
// tick, callbacks run sequentially in ascending priority, ties broken by
// registration order.
type Scheduler struct {
	subs     sync.Map // ID -> *subscription
	nextID   atomic.Uint64
	observer Observer

	fastInterval  time.Duration
	slowInterval  time.Duration
	slowThreshold time.Duration

	quit      chan struct{}
	wg        sync.WaitGroup
	startOnce sync.Once
	stopOnce  sync.Once
}

// Option customizes a Scheduler
type Option func(*Scheduler)

// WithIntervals overrides the fast and slow cadences
func WithIntervals(fast, slow time.Duration) Option {
	return func(s *Scheduler) {
		s.fastInterval = fast
		s.slowInterval = slow
	}
}

// WithSlowThreshold overrides the duration past which a callback is logged as slow
func WithSlowThreshold(d time.Duration) Option {
	return func(s *Scheduler) { s.slowThreshold = d }
}

// WithObserver attaches a per-callback observer
func WithObserver(o Observer) Option {
	return func(s *Scheduler) { s.observer = o }
}

// New creates a new scheduler
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		fastInterval:  domain.FastTickInterval,
		slowInterval:  domain.SlowTickInterval,
		slowThreshold: domain.SlowCallbackThreshold,
		quit:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers fn on the given cadence. It is safe to call from inside
// a running callback; the new subscription is picked up on the next tick.
func (s *Scheduler) Subscribe(name string, cadence Cadence, priority int, fn Callback) ID {
	seq := s.nextID.Add(1)
	sub := &subscription{
		id:       ID(seq),
		name:     name,
		cadence:  cadence,
		priority: priority,
		seq:      seq,
		fn:       fn,
	}
	sub.active.Store(true)
	s.subs.Store(sub.id, sub)
	return sub.id
}

// Unsubscribe removes a callback. A callback unsubscribed during a tick is
// skipped if it has not run yet in that tick.
func (s *Scheduler) Unsubscribe(id ID) bool {
	v, ok := s.subs.LoadAndDelete(id)
	if !ok {
		return false
	}
	v.(*subscription).active.Store(false)
	return true
}

// Stats returns the timing counters of a subscription
func (s *Scheduler) Stats(id ID) (Stats, bool) {
	v, ok := s.subs.Load(id)
	if !ok {
		return Stats{}, false
	}
	sub := v.(*subscription)
	sub.mu.Lock()
	defer sub.mu.Unlock()
	return sub.stats, true
}

// Len returns the number of live subscriptions
func (s *Scheduler) Len() int {
	n := 0
	s.subs.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Start launches one goroutine per cadence
func (s *Scheduler) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		s.loop(ctx, Fast, s.fastInterval)
		s.loop(ctx, Slow, s.slowInterval)
		logger.FromContext(ctx).Info(LogMsgSchedulerStarted,
			"fast_interval", s.fastInterval, "slow_interval", s.slowInterval)
	})
}

func (s *Scheduler) loop(ctx context.Context, cadence Cadence, interval time.Duration) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.RunOnce(ctx, cadence)
			case <-s.quit:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops both cadences and waits for an in-progress tick to finish
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.quit)
	})
	s.wg.Wait()
}

// RunOnce fires a single tick of the cadence on the calling goroutine.
func (s *Scheduler) RunOnce(ctx context.Context, cadence Cadence) {
	for _, sub := range s.snapshot(cadence) {
		if !sub.active.Load() {
			continue
		}
		s.invoke(ctx, sub)
	}
}

func (s *Scheduler) snapshot(cadence Cadence) []*subscription {
	var subs []*subscription
	s.subs.Range(func(_, v any) bool {
		sub := v.(*subscription)
		if sub.cadence == cadence {
			subs = append(subs, sub)
		}
		return true
	})
	sort.Slice(subs, func(i, j int) bool {
		if subs[i].priority != subs[j].priority {
			return subs[i].priority < subs[j].priority
		}
		return subs[i].seq < subs[j].seq
	})
	return subs
}

func (s *Scheduler) invoke(ctx context.Context, sub *subscription) {
	start := time.Now()
	panicked := false

	func() {
		defer func() {
			if r := recover(); r != nil {
				panicked = true
				logger.FromContext(ctx).Error(LogMsgCallbackPanicked,
					"callback", sub.name,
					"panic", fmt.Sprint(r),
					"stack", string(debug.Stack()))
			}
		}()
		sub.fn(ctx)
	}()

	elapsed := time.Since(start)
	slow := elapsed > s.slowThreshold
	if slow {
		logger.FromContext(ctx).Warn(LogMsgSlowCallback,
			"callback", sub.name,
			"cadence", sub.cadence.String(),
			"duration_ms", elapsed.Milliseconds())
	}

	sub.mu.Lock()
	sub.stats.Calls++
	sub.stats.TotalDuration += elapsed
	if elapsed > sub.stats.MaxDuration {
		sub.stats.MaxDuration = elapsed
	}
	if slow {
		sub.stats.SlowCalls++
	}
	if panicked {
		sub.stats.Panics++
	}
	sub.mu.Unlock()

	if s.observer != nil {
		s.observer.ObserveCallback(sub.name, sub.cadence.String(), elapsed, slow, panicked)
	}
}
