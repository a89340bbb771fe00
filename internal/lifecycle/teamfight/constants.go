package teamfight

// Player-facing messages
const (
	MsgEventOpen    = "%s is open! Join now, %d slots available."
	MsgLoadout      = "Your loadout: %s."
	MsgWinner       = "%s wins %s with %d kills!"
	MsgDraw         = "%s ended in a draw."
	MsgDropReceived = "You received %dx %s."
	MsgDropsSkipped = "Your inventory was full, %d reward(s) were lost."
)

// Log messages
const (
	LogMsgOriginUnknown   = "Could not read player position, they will not be returned"
	LogMsgTeleportFailed  = "Teleport failed"
	LogMsgRestoreFailed   = "Failed to restore player"
	LogMsgAwardFailed     = "Failed to award points"
	LogMsgKillRecorded    = "Kill recorded"
	LogMsgKillIgnored     = "Kill ignored, players are not on opposing teams"
	LogMsgRewardSetAbsent = "Reward set not found"
)
