package event

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/BrandishEvents_Go/internal/logger"
)

type retryItem struct {
	event   Event
	attempt int
	lastErr error
}

// ResilientPublisher wraps a Publisher with background retries and a
// dead-letter file. Publish never fails the caller once the event is queued.
type ResilientPublisher struct {
	inner      Publisher
	deadLetter *DeadLetterWriter
	maxRetries int
	baseDelay  time.Duration

	queue    chan retryItem
	shutdown chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
}

// NewResilientPublisher starts the retry worker. deadLetter may be nil, in
// which case exhausted events are only logged.
func NewResilientPublisher(inner Publisher, maxRetries int, baseDelay time.Duration, deadLetter *DeadLetterWriter) *ResilientPublisher {
	if maxRetries <= 0 {
		maxRetries = RetryMaxAttempts
	}
	if baseDelay <= 0 {
		baseDelay = RetryInitialDelaySeconds * time.Second
	}
	p := &ResilientPublisher{
		inner:      inner,
		deadLetter: deadLetter,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		queue:      make(chan retryItem, RetryQueueBufferSize),
		shutdown:   make(chan struct{}),
	}
	p.wg.Add(1)
	go p.retryWorker()
	return p
}

// Publish attempts delivery once and queues failures for retry
func (p *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	err := p.inner.Publish(ctx, event)
	if err == nil {
		return nil
	}

	logger.FromContext(ctx).Warn(LogMsgEventPublishFailed, "event_type", event.Type, "error", err)

	select {
	case p.queue <- retryItem{event: event, attempt: 1, lastErr: err}:
	default:
		logger.FromContext(ctx).Error(LogMsgRetryQueueFull, "event_type", event.Type)
		p.deadLettered(event, 1, err)
	}
	return nil
}

func (p *ResilientPublisher) retryWorker() {
	defer p.wg.Done()
	for {
		select {
		case item := <-p.queue:
			p.retry(item)
		case <-p.shutdown:
			p.drain()
			return
		}
	}
}

func (p *ResilientPublisher) retry(item retryItem) {
	ctx := context.Background()
	for item.attempt <= p.maxRetries {
		select {
		case <-time.After(CalculateRetryDelay(p.baseDelay, item.attempt)):
		case <-p.shutdown:
			p.deadLettered(item.event, item.attempt, item.lastErr)
			return
		}

		err := p.inner.Publish(ctx, item.event)
		if err == nil {
			logger.Info(LogMsgEventRetrySucceeded, "event_type", item.event.Type, "attempt", item.attempt)
			return
		}
		logger.Warn(LogMsgEventRetryFailed, "event_type", item.event.Type, "attempt", item.attempt, "error", err)
		item.lastErr = err
		item.attempt++
	}

	logger.Error(LogMsgEventRetryExhausted, "event_type", item.event.Type)
	p.deadLettered(item.event, item.attempt-1, item.lastErr)
}

func (p *ResilientPublisher) drain() {
	n := 0
	for {
		select {
		case item := <-p.queue:
			p.deadLettered(item.event, item.attempt, item.lastErr)
			n++
		default:
			if n > 0 {
				logger.Info(LogMsgQueueDrainedShutdown, "count", n)
			}
			return
		}
	}
}

func (p *ResilientPublisher) deadLettered(event Event, attempts int, lastErr error) {
	if p.deadLetter == nil {
		logger.Warn(LogMsgEventDroppedShutdown, "event_type", event.Type)
		return
	}
	if err := p.deadLetter.Write(event, attempts, lastErr); err != nil {
		logger.Error(LogMsgDeadLetterWriteFailed, "error", err)
	}
}

// Shutdown stops retrying and dead-letters anything still queued
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.once.Do(func() { close(p.shutdown) })

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		logger.Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}
}
