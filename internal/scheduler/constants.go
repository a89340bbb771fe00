package scheduler

// Log messages for tick scheduling
const (
	LogMsgSchedulerStarted = "Tick scheduler started"
	LogMsgCallbackPanicked = "Tick callback panicked"
	LogMsgSlowCallback     = "Tick callback exceeded budget"
)
