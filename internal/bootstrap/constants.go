package bootstrap

import "time"

// File system permissions
const (
	DirPermission     = 0755
	LogFilePermission = 0666
)

// Logger files
const (
	LogFileTimestampFormat = "2006-01-02_15-04-05"
	LogFileNamePattern     = "session_%s.log"
	LogFileExtension       = ".log"

	// LogFileRetentionCount is the number of older session logs kept
	LogFileRetentionCount = 9
)

// Event system defaults
const (
	EventDefaultRetryDelay = 2 * time.Second
	RelaySinkName          = "brandish-events"
)

// Worker pool sizing
const (
	PoolQueueSize = 256
)

// Log messages
const (
	LogMsgLoggingInitialized   = "Logging initialized"
	LogMsgStarting             = "Starting BrandishEvents"
	LogMsgConfigurationLoaded  = "Configuration loaded"
	LogMsgFailedDeleteOldLog   = "Failed to delete old log file"
	LogMsgStoreOpened          = "Account store opened"
	LogMsgEventSystemReady     = "Event system initialized"
	LogMsgRelayNATS            = "Relaying events to NATS"
	LogMsgRelayDisabled        = "NATS_URL not set, event relay disabled"
	LogMsgDeadLetterBacklog    = "Dead-lettered relay events from a previous run need replay"
	LogMsgDeadLetterUnreadable = "Could not read dead-letter file"
	LogMsgDiscordEnabled       = "Discord notifications enabled"
	LogMsgDiscordFailed        = "Discord notifier unavailable, falling back to log output"
	LogMsgCatalogReloaded      = "Catalog loaded"
	LogMsgShuttingDown         = "Shutting down"
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgManagerShutdownFail  = "Event manager shutdown incomplete"
	LogMsgTimersShutdownFail   = "Round timer shutdown incomplete"
	LogMsgRelayShutdownFailed  = "Relay forwarder shutdown failed"
	LogMsgCloseFailed          = "Close failed"
	LogMsgStopped              = "Stopped"
)
