// Package relay forwards service events to peer nodes over an opaque message
// bus. Peers treat what they receive as informational only.
package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/osse101/BrandishEvents_Go/internal/logger"
)

// Sink publishes payloads to a subject
type Sink interface {
	Publish(ctx context.Context, subject string, payload any) error
	Close() error
}

// NoopSink discards everything. Used when no relay is configured.
type NoopSink struct{}

// Publish implements Sink
func (NoopSink) Publish(context.Context, string, any) error { return nil }

// Close implements Sink
func (NoopSink) Close() error { return nil }

// NATSSink publishes JSON-encoded payloads to NATS subjects.
type NATSSink struct {
	conn *nats.Conn
}

// NewNATSSink connects to url with automatic reconnection. Extra options are
// appended after the defaults.
func NewNATSSink(url, name string, opts ...nats.Option) (*NATSSink, error) {
	defaults := []nats.Option{
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn(LogMsgRelayDisconnected, "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info(LogMsgRelayReconnected, "url", nc.ConnectedUrl())
		}),
	}
	nc, err := nats.Connect(url, append(defaults, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS at %s: %w", url, err)
	}
	return &NATSSink{conn: nc}, nil
}

// Publish implements Sink
func (s *NATSSink) Publish(ctx context.Context, subject string, payload any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling relay payload: %w", err)
	}
	return s.conn.Publish(subject, data)
}

// Flush waits until the server has processed everything published so far
func (s *NATSSink) Flush() error {
	return s.conn.Flush()
}

// Close drains pending messages and closes the connection
func (s *NATSSink) Close() error {
	return s.conn.Drain()
}
