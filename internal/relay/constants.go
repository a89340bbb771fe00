package relay

// DefaultSubjectPrefix namespaces relay subjects
const DefaultSubjectPrefix = "brandish.events"

// Log messages
const (
	LogMsgRelayDisconnected = "Relay disconnected"
	LogMsgRelayReconnected  = "Relay reconnected"
)
