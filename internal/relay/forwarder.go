package relay

import (
	"context"
	"strings"
	"time"

	"github.com/osse101/BrandishEvents_Go/internal/event"
)

// sinkPublisher adapts a Sink to event.Publisher so it can sit behind a
// ResilientPublisher.
type sinkPublisher struct {
	sink   Sink
	prefix string
}

func (p sinkPublisher) Publish(ctx context.Context, e event.Event) error {
	return p.sink.Publish(ctx, Subject(p.prefix, e.Type), e)
}

// Subject maps an event type onto a relay subject, e.g. "events.round.started"
func Subject(prefix string, t event.Type) string {
	prefix = strings.TrimSuffix(prefix, ".")
	if prefix == "" {
		return string(t)
	}
	return prefix + "." + string(t)
}

// Forwarder copies every bus event to a relay sink. Delivery failures are
// retried in the background and never reach the publisher of the event.
type Forwarder struct {
	out *event.ResilientPublisher
}

// NewForwarder wraps sink with retries and dead-lettering. Zero values pick
// the ResilientPublisher defaults.
func NewForwarder(sink Sink, prefix string, maxRetries int, baseDelay time.Duration, dlq *event.DeadLetterWriter) *Forwarder {
	return &Forwarder{
		out: event.NewResilientPublisher(sinkPublisher{sink: sink, prefix: prefix}, maxRetries, baseDelay, dlq),
	}
}

// Attach subscribes the forwarder to every event type on the bus
func (f *Forwarder) Attach(bus event.Bus) {
	event.SubscribeAll(bus, f.handle)
}

func (f *Forwarder) handle(ctx context.Context, e event.Event) error {
	// ResilientPublisher owns failures from here on
	_ = f.out.Publish(ctx, e)
	return nil
}

// Shutdown stops the retry worker
func (f *Forwarder) Shutdown(ctx context.Context) error {
	return f.out.Shutdown(ctx)
}
