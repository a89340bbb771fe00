package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BrandishEvents_Go/internal/domain"
	"github.com/osse101/BrandishEvents_Go/internal/event"
)

func TestEventMetricsCollector_Participants(t *testing.T) {
	bus := event.NewMemoryBus()
	NewEventMetricsCollector().Register(bus)
	ctx := context.Background()
	const name = "metrics-arena"

	require.NoError(t, bus.Publish(ctx, event.NewRoundEvent(event.RoundStarted, name, "r1", "SystemStarting", 0)))
	require.NoError(t, bus.Publish(ctx, event.NewParticipantEvent(event.PlayerJoined, name, 1, "Team A")))
	require.NoError(t, bus.Publish(ctx, event.NewParticipantEvent(event.PlayerJoined, name, 2, "Team B")))
	require.NoError(t, bus.Publish(ctx, event.NewParticipantEvent(event.PlayerLeft, name, 2, "Team B")))

	assert.Equal(t, 1.0, testutil.ToFloat64(Participants.WithLabelValues(name)))
	assert.Equal(t, 1.0, testutil.ToFloat64(RoundsStarted.WithLabelValues(name)))

	require.NoError(t, bus.Publish(ctx, event.NewRoundEvent(event.RoundEnded, name, "r1", "SystemEnding", 1)))
	assert.Equal(t, 0.0, testutil.ToFloat64(Participants.WithLabelValues(name)))
}

func TestEventMetricsCollector_Points(t *testing.T) {
	c := NewEventMetricsCollector()
	ctx := context.Background()
	before := testutil.ToFloat64(PointsAwarded.WithLabelValues(domain.PointReasonZone))
	beforeOut := testutil.ToFloat64(PointsDeducted.WithLabelValues(domain.PointReasonAdmin))

	require.NoError(t, c.HandleEvent(ctx, event.NewPointsAwardedEvent(1, 25, domain.PointReasonZone)))
	require.NoError(t, c.HandleEvent(ctx, event.NewPointsAwardedEvent(1, -10, domain.PointReasonAdmin)))

	assert.Equal(t, before+25, testutil.ToFloat64(PointsAwarded.WithLabelValues(domain.PointReasonZone)))
	assert.Equal(t, beforeOut+10, testutil.ToFloat64(PointsDeducted.WithLabelValues(domain.PointReasonAdmin)))
}

func TestEventMetricsCollector_GenericPayload(t *testing.T) {
	c := NewEventMetricsCollector()
	before := testutil.ToFloat64(RewardsPurchased.WithLabelValues("starter"))

	// Relayed events arrive with map payloads
	evt := event.Event{
		Type:    event.RewardPurchased,
		Payload: map[string]any{"player_id": 1, "reward": "starter", "cost": 50},
	}
	require.NoError(t, c.HandleEvent(context.Background(), evt))
	assert.Equal(t, before+1, testutil.ToFloat64(RewardsPurchased.WithLabelValues("starter")))
}

func TestEventMetricsCollector_BadPayloadIsIgnored(t *testing.T) {
	c := NewEventMetricsCollector()
	evt := event.Event{Type: event.ZoneContested, Payload: "garbage"}
	assert.NoError(t, c.HandleEvent(context.Background(), evt))
}

func TestSchedulerObserver(t *testing.T) {
	var o SchedulerObserver
	before := testutil.ToFloat64(SlowCallbacks.WithLabelValues("fast", "zone"))
	beforePanics := testutil.ToFloat64(CallbackPanics.WithLabelValues("fast", "zone"))

	o.ObserveCallback("zone", "fast", 150*time.Millisecond, true, false)
	o.ObserveCallback("zone", "fast", time.Millisecond, false, true)

	assert.Equal(t, before+1, testutil.ToFloat64(SlowCallbacks.WithLabelValues("fast", "zone")))
	assert.Equal(t, beforePanics+1, testutil.ToFloat64(CallbackPanics.WithLabelValues("fast", "zone")))
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/players/{id}/points", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/players/{id}/points", "418"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/players/42/points", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/players/{id}/points", "418")))
}
