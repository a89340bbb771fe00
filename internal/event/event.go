package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/BrandishEvents_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version  string         `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type           `json:"type"`
	Payload  any            `json:"payload"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) any {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// Event types published by the service
const (
	RoundStarted      Type = domain.EventTypeRoundStarted
	RoundActive       Type = domain.EventTypeRoundActive
	RoundSettled      Type = domain.EventTypeRoundSettled
	RoundEnded        Type = domain.EventTypeRoundEnded
	PlayerJoined      Type = domain.EventTypePlayerJoined
	PlayerLeft        Type = domain.EventTypePlayerLeft
	PointsAwarded     Type = domain.EventTypePointsAwarded
	TransferCompleted Type = domain.EventTypeTransferCompleted
	RewardPurchased   Type = domain.EventTypeRewardPurchased
	ZoneContested     Type = domain.EventTypeZoneContested
)

// AllTypes lists every published type, for subscribers that want everything
var AllTypes = []Type{
	RoundStarted, RoundActive, RoundSettled, RoundEnded,
	PlayerJoined, PlayerLeft,
	PointsAwarded, TransferCompleted, RewardPurchased,
	ZoneContested,
}

// Type-safe event constructors

func newEvent(t Type, payload any, metadata map[string]any) Event {
	return Event{
		Version:  EventSchemaVersion,
		Type:     t,
		Payload:  payload,
		Metadata: metadata,
	}
}

// NewRoundEvent creates a round.* event other than round.settled
func NewRoundEvent(t Type, eventName, roundID, state string, participants int) Event {
	return newEvent(t, domain.RoundPayload{
		EventName:        eventName,
		RoundID:          roundID,
		State:            state,
		ParticipantCount: participants,
		Timestamp:        time.Now().Unix(),
	}, map[string]any{"event_name": eventName})
}

// NewRoundSettledEvent creates a round.settled event
func NewRoundSettledEvent(eventName, roundID string, participants int, winner string, teams []domain.TeamResult) Event {
	return newEvent(RoundSettled, domain.RoundSettledPayload{
		RoundPayload: domain.RoundPayload{
			EventName:        eventName,
			RoundID:          roundID,
			State:            "Settling",
			ParticipantCount: participants,
			Timestamp:        time.Now().Unix(),
		},
		WinningTeam: winner,
		Teams:       teams,
	}, map[string]any{"event_name": eventName})
}

// NewParticipantEvent creates a player.joined or player.left event
func NewParticipantEvent(t Type, eventName string, playerID int64, team string) Event {
	return newEvent(t, domain.ParticipantPayload{
		EventName: eventName,
		PlayerID:  playerID,
		Team:      team,
		Timestamp: time.Now().Unix(),
	}, map[string]any{"event_name": eventName})
}

// NewPointsAwardedEvent creates a points.awarded event
func NewPointsAwardedEvent(playerID, delta int64, reason string) Event {
	return newEvent(PointsAwarded, domain.PointsAwardedPayload{
		PlayerID:  playerID,
		Delta:     delta,
		Reason:    reason,
		Timestamp: time.Now().Unix(),
	}, map[string]any{"reason": reason})
}

// NewTransferCompletedEvent creates a transfer.completed event
func NewTransferCompletedEvent(senderID, receiverID, amount int64) Event {
	return newEvent(TransferCompleted, domain.TransferCompletedPayload{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Amount:     amount,
		Timestamp:  time.Now().Unix(),
	}, nil)
}

// NewRewardPurchasedEvent creates a reward.purchased event
func NewRewardPurchasedEvent(playerID int64, reward string, delivered []string, cost int64) Event {
	return newEvent(RewardPurchased, domain.RewardPurchasedPayload{
		PlayerID:  playerID,
		Reward:    reward,
		Delivered: delivered,
		Cost:      cost,
		Timestamp: time.Now().Unix(),
	}, nil)
}

// NewZoneContestedEvent creates a zone.contested event
func NewZoneContestedEvent(eventName string, playerID int64, faction domain.FactionID) Event {
	return newEvent(ZoneContested, domain.ZoneContestedPayload{
		EventName: eventName,
		PlayerID:  playerID,
		Faction:   faction,
		Timestamp: time.Now().Unix(),
	}, map[string]any{"event_name": eventName})
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Publisher is the publishing half of a Bus. Services depend on this.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Bus defines the interface for an event bus
type Bus interface {
	Publisher
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscriber synchronously and joins their errors
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// SubscribeAll subscribes a handler to every published type
func SubscribeAll(b Bus, handler Handler) {
	for _, t := range AllTypes {
		b.Subscribe(t, handler)
	}
}

// NopPublisher discards events
type NopPublisher struct{}

// Publish implements Publisher
func (NopPublisher) Publish(context.Context, Event) error { return nil }
