package lifecycle

import "time"

// Tick priorities; lower runs first within a tick
const (
	PriorityManagerPoll = 0
	PriorityZone        = 10
	PriorityRound       = 20
)

// SpawnWaitTimeout bounds how long SystemEnding waits for spawn work
const SpawnWaitTimeout = 30 * time.Second

// Player-facing messages
const (
	MsgEventStarted   = "%s has started!"
	MsgEventCancelled = "%s was cancelled before it could start."
	MsgEventEnded     = "%s has ended."
	MsgJoined         = "You joined %s."
	MsgJoinedTeam     = "You joined %s on %s."
	MsgLeft           = "You left %s."
)

// Log messages
const (
	LogMsgRoundStarting     = "Round starting"
	LogMsgRoundSetupFailed  = "Round setup failed"
	LogMsgRoundActive       = "Round active"
	LogMsgRoundSettling     = "Round settling"
	LogMsgRoundEnded        = "Round ended"
	LogMsgRoundTimerExpired = "Round timer expired"
	LogMsgStaleTimer        = "Ignoring timer from an ended round"
	LogMsgSpawnFailed       = "Spawn failed"
	LogMsgRemoveFailed      = "Failed to remove spawned entities"
	LogMsgSpawnWaitTimeout  = "Timed out waiting for spawn work"
	LogMsgPlayerJoined      = "Player joined event"
	LogMsgPlayerLeft        = "Player left event"
	LogMsgPublishFailed     = "Failed to publish lifecycle event"
	LogMsgReloadDeferred    = "Definition reload deferred until round ends"
	LogMsgReloadApplied     = "Definition reloaded"
	LogMsgEventRegistered   = "Event registered"
	LogMsgEventUnregistered = "Event unregistered"
	LogMsgUnknownVariant    = "No factory for event variant"
	LogMsgPollStart         = "Window opened, starting event"
	LogMsgPollStop          = "Window closed, ending event"
	LogMsgManagerShutdown   = "Event manager shutting down"
)
