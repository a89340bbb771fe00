package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
	MetricNameRequestsRejected     = "http_requests_rejected_total"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Scheduler metric names
const (
	MetricNameCallbackDuration = "scheduler_callback_duration_seconds"
	MetricNameSlowCallbacks    = "scheduler_slow_callbacks_total"
	MetricNameCallbackPanics   = "scheduler_callback_panics_total"
)

// Business metric names
const (
	MetricNameRoundsStarted     = "rounds_started_total"
	MetricNameRoundTransitions  = "round_transitions_total"
	MetricNameJoinRejections    = "join_rejections_total"
	MetricNameParticipants      = "event_participants"
	MetricNamePointsAwarded     = "points_awarded_total"
	MetricNamePointsDeducted    = "points_deducted_total"
	MetricNameTransfers         = "transfers_completed_total"
	MetricNameRewardsPurchased  = "rewards_purchased_total"
	MetricNameZoneContestations = "zone_contestations_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
	HelpTextRequestsRejected     = "Requests refused before routing, by reason"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Scheduler metric help text
const (
	HelpTextCallbackDuration = "Tick callback latency in seconds"
	HelpTextSlowCallbacks    = "Tick callbacks that exceeded the slow threshold"
	HelpTextCallbackPanics   = "Tick callbacks that panicked"
)

// Business metric help text
const (
	HelpTextRoundsStarted     = "Total number of event rounds started"
	HelpTextRoundTransitions  = "Lifecycle transitions, by event and target state"
	HelpTextJoinRejections    = "Rejected join attempts, by reason"
	HelpTextParticipants      = "Current participants per event"
	HelpTextPointsAwarded     = "Points credited, by reason"
	HelpTextPointsDeducted    = "Points debited, by reason"
	HelpTextTransfers         = "Total number of completed point transfers"
	HelpTextRewardsPurchased  = "Total number of reward purchases"
	HelpTextZoneContestations = "Enemy entries into held zones"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelType     = "type"
	LabelEvent    = "event"
	LabelState    = "state"
	LabelReason   = "reason"
	LabelReward   = "reward"
	LabelCadence  = "cadence"
	LabelCallback = "callback"
)

// Values for LabelReason on RequestsRejected
const (
	ReasonAuth      = "auth"
	ReasonRateLimit = "rate_limit"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets range from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// CallbackLatencyBuckets range from 100µs to 1s; anything past 100ms is slow
var CallbackLatencyBuckets = []float64{.0001, .0005, .001, .005, .01, .025, .05, .1, .25, 1}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadUndecodable = "Event payload could not be decoded"
	LogMsgMetricsRecorded         = "Metrics recorded for event"
)
