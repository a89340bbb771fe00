package domain

// Event type constants used for event bus subscriptions, metrics and
// cross-node relay subjects.
//
// Event types follow the pattern: <entity>.<action> (e.g., "round.started")
const (
	// EventTypeRoundStarted is published when a machine leaves Idle for SystemStarting
	EventTypeRoundStarted = "round.started"

	// EventTypeRoundActive is published when a round enters Active
	EventTypeRoundActive = "round.active"

	// EventTypeRoundSettled is published once settlement has paid out
	EventTypeRoundSettled = "round.settled"

	// EventTypeRoundEnded is published when a machine returns to Idle
	EventTypeRoundEnded = "round.ended"

	// EventTypePlayerJoined is published after a successful join
	EventTypePlayerJoined = "player.joined"

	// EventTypePlayerLeft is published after a participant is removed
	EventTypePlayerLeft = "player.left"

	// EventTypePointsAwarded is published for every applied balance change
	EventTypePointsAwarded = "points.awarded"

	// EventTypeTransferCompleted is published when a claim code is redeemed
	EventTypeTransferCompleted = "transfer.completed"

	// EventTypeRewardPurchased is published when a purchase delivered at least one item
	EventTypeRewardPurchased = "reward.purchased"

	// EventTypeZoneContested is published when a zone participant becomes contested
	EventTypeZoneContested = "zone.contested"
)
