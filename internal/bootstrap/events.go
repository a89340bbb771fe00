package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/BrandishEvents_Go/internal/config"
	"github.com/osse101/BrandishEvents_Go/internal/event"
	"github.com/osse101/BrandishEvents_Go/internal/metrics"
	"github.com/osse101/BrandishEvents_Go/internal/relay"
)

// EventSystem is the in-process bus and the relay hanging off it
type EventSystem struct {
	Bus        *event.MemoryBus
	Forwarder  *relay.Forwarder
	Sink       relay.Sink
	DeadLetter *event.DeadLetterWriter
}

// InitializeEventSystem creates the bus, registers the metrics collector
// and attaches the cross-node relay. Without NATS_URL the relay forwards to
// a no-op sink so the pipeline is the same in every deployment.
func InitializeEventSystem(cfg *config.Config) (*EventSystem, error) {
	bus := event.NewMemoryBus()
	metrics.NewEventMetricsCollector().Register(bus)

	backlog, skipped, err := event.ReadDeadLetters(cfg.DeadLetterPath)
	if err != nil {
		slog.Warn(LogMsgDeadLetterUnreadable, "path", cfg.DeadLetterPath, "error", err)
	} else if len(backlog) > 0 || skipped > 0 {
		slog.Warn(LogMsgDeadLetterBacklog,
			"path", cfg.DeadLetterPath,
			"entries", len(backlog),
			"unparseable", skipped)
	}

	dlq, err := event.NewDeadLetterWriter(cfg.DeadLetterPath, cfg.NodeName)
	if err != nil {
		return nil, fmt.Errorf("open dead-letter file: %w", err)
	}

	var sink relay.Sink = relay.NoopSink{}
	if cfg.NATSURL != "" {
		nats, err := relay.NewNATSSink(cfg.NATSURL, cfg.NodeName)
		if err != nil {
			_ = dlq.Close()
			return nil, fmt.Errorf("connect relay: %w", err)
		}
		sink = nats
		slog.Info(LogMsgRelayNATS, "url", cfg.NATSURL, "prefix", cfg.RelayPrefix)
	} else {
		slog.Info(LogMsgRelayDisabled)
	}

	fwd := relay.NewForwarder(sink, cfg.RelayPrefix, cfg.RelayRetries, EventDefaultRetryDelay, dlq)
	fwd.Attach(bus)

	slog.Info(LogMsgEventSystemReady,
		"max_retries", cfg.RelayRetries,
		"deadletter_path", cfg.DeadLetterPath)

	return &EventSystem{Bus: bus, Forwarder: fwd, Sink: sink, DeadLetter: dlq}, nil
}
