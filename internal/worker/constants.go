package worker

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// Log messages for pool operations
const (
	LogMsgWorkerJobFailed   = "Worker job failed"
	LogMsgWorkerJobPanicked = "Worker job panicked"
)

// ============================================================================
// Log Messages - Round Timers
// ============================================================================

// Log messages for round timer operations
const (
	LogMsgRoundTimersShuttingDown     = "Shutting down round timers"
	LogMsgRoundTimerCancelled         = "Cancelled pending round timer"
	LogMsgRoundTimersShutdownComplete = "Round timers shutdown complete"
	LogMsgRoundTimersShutdownTimeout  = "Round timers shutdown timeout"
)

// ============================================================================
// Test Configuration
// ============================================================================

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount           = 2
	TestQueueSize             = 10
	TestExpectedJobCount      = 2
	TestWorkerProcessWaitTime = 100 // milliseconds
)
