package worker

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/BrandishEvents_Go/internal/logger"
)

type roundTimer struct {
	id       uuid.UUID
	timer    *time.Timer
	deadline time.Time
}

// RoundTimers owns the single-shot round timers of every event, keyed by
// event name. Arming a key disposes whatever timer it held before.
type RoundTimers struct {
	mu     sync.Mutex
	timers map[string]*roundTimer
	wg     sync.WaitGroup
	closed bool
}

// NewRoundTimers creates an empty timer set
func NewRoundTimers() *RoundTimers {
	return &RoundTimers{timers: make(map[string]*roundTimer)}
}

// Arm schedules fn to run once after d. The returned id identifies this
// generation of the key's timer.
func (r *RoundTimers) Arm(key string, d time.Duration, fn func()) uuid.UUID {
	id := uuid.New()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return uuid.Nil
	}
	r.disposeLocked(key)

	rt := &roundTimer{id: id, deadline: time.Now().Add(d)}
	r.wg.Add(1)
	rt.timer = time.AfterFunc(d, func() {
		defer r.wg.Done()
		if !r.claim(key, id) {
			return
		}
		fn()
	})
	r.timers[key] = rt
	return id
}

// claim removes the fired timer if it is still the current generation.
func (r *RoundTimers) claim(key string, id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	rt, ok := r.timers[key]
	if !ok || rt.id != id {
		return false
	}
	delete(r.timers, key)
	return true
}

func (r *RoundTimers) disposeLocked(key string) bool {
	rt, ok := r.timers[key]
	if !ok {
		return false
	}
	if rt.timer.Stop() {
		r.wg.Done()
	}
	delete(r.timers, key)
	return true
}

// Cancel disposes the key's timer. Returns false if none was armed.
func (r *RoundTimers) Cancel(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.disposeLocked(key)
}

// Active reports whether the key has a pending timer.
func (r *RoundTimers) Active(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.timers[key]
	return ok
}

// Remaining returns the time left on the key's timer.
func (r *RoundTimers) Remaining(key string) (time.Duration, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rt, ok := r.timers[key]
	if !ok {
		return 0, false
	}
	left := time.Until(rt.deadline)
	if left < 0 {
		left = 0
	}
	return left, true
}

// Shutdown cancels every pending timer and waits for in-flight callbacks.
func (r *RoundTimers) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgRoundTimersShuttingDown)

	r.mu.Lock()
	r.closed = true
	for key := range r.timers {
		r.disposeLocked(key)
		log.Info(LogMsgRoundTimerCancelled, "event", key)
	}
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info(LogMsgRoundTimersShutdownComplete)
		return nil
	case <-ctx.Done():
		log.Warn(LogMsgRoundTimersShutdownTimeout)
		return ctx.Err()
	}
}
