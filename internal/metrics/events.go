package metrics

import (
	"context"

	"github.com/osse101/BrandishEvents_Go/internal/domain"
	"github.com/osse101/BrandishEvents_Go/internal/event"
	"github.com/osse101/BrandishEvents_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) {
	event.SubscribeAll(bus, e.HandleEvent)
}

// HandleEvent processes events and updates metrics. It never fails the
// publisher.
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.RoundStarted, event.RoundActive, event.RoundSettled, event.RoundEnded:
		var p domain.RoundPayload
		if p, err = event.DecodePayload[domain.RoundPayload](evt.Payload); err == nil {
			RoundTransitions.WithLabelValues(p.EventName, p.State).Inc()
		}
	}

	switch evt.Type {
	case event.RoundStarted:
		var p domain.RoundPayload
		if p, err = event.DecodePayload[domain.RoundPayload](evt.Payload); err == nil {
			RoundsStarted.WithLabelValues(p.EventName).Inc()
			Participants.WithLabelValues(p.EventName).Set(0)
		}

	case event.RoundActive:
		var p domain.RoundPayload
		if p, err = event.DecodePayload[domain.RoundPayload](evt.Payload); err == nil {
			Participants.WithLabelValues(p.EventName).Set(float64(p.ParticipantCount))
		}

	case event.RoundEnded:
		var p domain.RoundPayload
		if p, err = event.DecodePayload[domain.RoundPayload](evt.Payload); err == nil {
			Participants.WithLabelValues(p.EventName).Set(0)
		}

	case event.PlayerJoined, event.PlayerLeft:
		var p domain.ParticipantPayload
		if p, err = event.DecodePayload[domain.ParticipantPayload](evt.Payload); err == nil {
			if evt.Type == event.PlayerJoined {
				Participants.WithLabelValues(p.EventName).Inc()
			} else {
				Participants.WithLabelValues(p.EventName).Dec()
			}
		}

	case event.PointsAwarded:
		var p domain.PointsAwardedPayload
		if p, err = event.DecodePayload[domain.PointsAwardedPayload](evt.Payload); err == nil {
			if p.Delta >= 0 {
				PointsAwarded.WithLabelValues(p.Reason).Add(float64(p.Delta))
			} else {
				PointsDeducted.WithLabelValues(p.Reason).Add(float64(-p.Delta))
			}
		}

	case event.TransferCompleted:
		TransfersCompleted.Inc()

	case event.RewardPurchased:
		var p domain.RewardPurchasedPayload
		if p, err = event.DecodePayload[domain.RewardPurchasedPayload](evt.Payload); err == nil {
			RewardsPurchased.WithLabelValues(p.Reward).Inc()
			PointsDeducted.WithLabelValues(domain.PointReasonPurchase).Add(float64(p.Cost))
		}

	case event.ZoneContested:
		var p domain.ZoneContestedPayload
		if p, err = event.DecodePayload[domain.ZoneContestedPayload](evt.Payload); err == nil {
			ZoneContestations.WithLabelValues(p.EventName).Inc()
		}
	}

	if err != nil {
		log.Debug(LogMsgEventPayloadUndecodable, "type", evt.Type, "error", err)
		return nil
	}
	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
