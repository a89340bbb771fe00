package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	RequestsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRequestsRejected,
			Help: HelpTextRequestsRejected,
		},
		[]string{LabelReason},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Scheduler Metrics
var (
	CallbackDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameCallbackDuration,
			Help:    HelpTextCallbackDuration,
			Buckets: CallbackLatencyBuckets,
		},
		[]string{LabelCadence, LabelCallback},
	)

	SlowCallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSlowCallbacks,
			Help: HelpTextSlowCallbacks,
		},
		[]string{LabelCadence, LabelCallback},
	)

	CallbackPanics = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCallbackPanics,
			Help: HelpTextCallbackPanics,
		},
		[]string{LabelCadence, LabelCallback},
	)
)

// Business Metrics
var (
	RoundsStarted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRoundsStarted,
			Help: HelpTextRoundsStarted,
		},
		[]string{LabelEvent},
	)

	RoundTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRoundTransitions,
			Help: HelpTextRoundTransitions,
		},
		[]string{LabelEvent, LabelState},
	)

	JoinRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameJoinRejections,
			Help: HelpTextJoinRejections,
		},
		[]string{LabelReason},
	)

	Participants = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricNameParticipants,
			Help: HelpTextParticipants,
		},
		[]string{LabelEvent},
	)

	PointsAwarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePointsAwarded,
			Help: HelpTextPointsAwarded,
		},
		[]string{LabelReason},
	)

	PointsDeducted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePointsDeducted,
			Help: HelpTextPointsDeducted,
		},
		[]string{LabelReason},
	)

	TransfersCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTransfers,
			Help: HelpTextTransfers,
		},
	)

	RewardsPurchased = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRewardsPurchased,
			Help: HelpTextRewardsPurchased,
		},
		[]string{LabelReward},
	)

	ZoneContestations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameZoneContestations,
			Help: HelpTextZoneContestations,
		},
		[]string{LabelEvent},
	)
)
