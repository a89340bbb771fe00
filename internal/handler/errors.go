package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
const (
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidPlayerID   = "Invalid player_id parameter"
	ErrMsgInvalidLimit      = "Invalid limit parameter"
	ErrMsgMissingEventName  = "Missing event name"

	ErrMsgReloadConfigFailed = "Failed to reload configuration"
	ErrMsgLinkFailed         = "Failed to link account"
)

// Success messages for API responses
const (
	MsgJoinedEvent     = "You joined %s."
	MsgJoinedEventTeam = "You joined %s on team %s."
	MsgLeftEvent       = "You left %s."
	MsgKillRecorded    = "Kill recorded"
	MsgBalance         = "You have %d points."
	MsgBalanceRanked   = "You have %d points and are ranked #%d."
	MsgTransferCreated = "Transfer of %d points created. Share code %s with the recipient."
	MsgTransferClaimed = "You received %d points."
	MsgRewardBought    = "You bought %s for %d points."
	MsgRewardPartial   = "You bought %s for %d points. %d item(s) did not fit and were refunded."
	MsgAccountLinked   = "Account linked"
	MsgPointsModified  = "Player %d balance changed by %d."
	MsgEventStarted    = "%s started"
	MsgEventStopped    = "%s stopped"
	MsgConfigReloaded  = "Configuration reloaded"
	MsgEventList       = "%d event(s)"
)

// Log messages
const (
	LogMsgDecodeFailed     = "Failed to decode request"
	LogMsgRequestDecoded   = "Request decoded"
	LogMsgServiceError     = "Service error"
	LogMsgMissingParam     = "Missing query parameter"
	LogMsgReloadFailed     = "Configuration reload failed"
	LogMsgReloadCompleted  = "Configuration reloaded"
	LogMsgReadinessFailed  = "Readiness check failed"
	LogMsgEncodeFailed     = "Failed to encode JSON response"
	LogMsgWriteFailed      = "Failed to write response buffer"
	LogMsgAdminModified    = "Admin modified points"
	LogMsgAdminForceStart  = "Admin force-started event"
	LogMsgAdminForceStop   = "Admin force-stopped event"
	LogMsgLinkedExternalID = "Linked external account"
)
