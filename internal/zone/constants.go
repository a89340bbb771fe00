package zone

// Player notices. Format verbs: event name, then interval seconds and points
// where applicable.
const (
	MsgEnteredZone      = "You entered the %s zone. Hold it for %d seconds to earn %d points."
	MsgLeftZone         = "You left the %s zone."
	MsgNeedFaction      = "You must belong to a faction to capture the %s zone."
	MsgEnemyEntered     = "Enemy entered the %s zone! Scoring is paused."
	MsgEnemiesLeft      = "Enemies left the %s zone. Scoring resumed."
	MsgPointsForHolding = "+%d points for holding the %s zone."
)

// Log messages
const (
	LogMsgOnlinePlayersFailed = "Failed to list online players"
	LogMsgZoneAwardFailed     = "Failed to award zone points"
)
