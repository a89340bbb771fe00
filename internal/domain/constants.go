package domain

import "time"

// Scheduler cadences
const (
	FastTickInterval = 1 * time.Second
	SlowTickInterval = 1 * time.Minute

	// SlowCallbackThreshold is the duration past which a tick callback is logged
	SlowCallbackThreshold = 100 * time.Millisecond
)

// Zone defaults
const (
	DefaultContestNoticeInterval = 30 * time.Second
	DefaultAwardInterval         = 60 * time.Second
)

// Schedule defaults applied when a definition omits its window
const (
	DefaultStartTime TimeOfDay = 0
	DefaultEndTime   TimeOfDay = SecondsPerDay - 1
)

// Point reasons recorded with points.awarded
const (
	PointReasonAdmin         = "admin"
	PointReasonKill          = "kill"
	PointReasonWin           = "win"
	PointReasonParticipation = "participation"
	PointReasonZone          = "zone"
	PointReasonPurchase      = "purchase"
	PointReasonTransferOut   = "transfer_out"
	PointReasonTransferIn    = "transfer_in"
	PointReasonRefund        = "refund"
)

// LeaderboardSize is the default number of entries returned by the leaderboard
const LeaderboardSize = 10
