package economy

import "time"

// DefaultMaxPendingTransfers bounds the pending transfer set. Initiating a
// transfer past it fails until codes are claimed or expire.
const DefaultMaxPendingTransfers = 10000

// codeAttempts is how many fresh codes are tried before giving up on a collision
const codeAttempts = 3

// Lock key prefixes
const (
	lockPrefixTransfer = "transfer:"
	lockPrefixPlayer   = "player:"
	lockPendingSet     = "transfers"
)

// noTTL marks transfer codes that never expire
const noTTL time.Duration = 0

// Error formats
const (
	ErrMsgGetPointsFailed    = "failed to get points: %w"
	ErrMsgUpdatePointsFailed = "failed to update points: %w"
	ErrMsgDebitFailed        = "failed to debit points: %w"
	ErrMsgCreditFailed       = "failed to credit receiver: %w"
	ErrMsgCodeFailed         = "failed to generate transfer code: %w"
	ErrMsgCodeCollision      = "could not generate a unique transfer code"
)

// Log messages
const (
	LogMsgPointsAwarded       = "Points awarded"
	LogMsgPointsClamped       = "Deduction clamped at zero"
	LogMsgPublishFailed       = "Failed to publish economy event"
	LogMsgGrantFailed         = "Failed to grant item"
	LogMsgRewardPurchased     = "Reward purchased"
	LogMsgChargeFailed        = "Failed to charge for delivered items"
	LogMsgTransferInitiated   = "Transfer initiated"
	LogMsgTransferCompleted   = "Transfer completed"
	LogMsgCompensationFailed  = "Failed to compensate sender after credit failure"
	LogMsgCatalogUpdated      = "Reward catalog updated"
	LogMsgDuplicateRewardName = "Duplicate reward name, first entry wins"
)
