package domain

import "errors"

// Error message string constants - single source of truth for user-facing reasons.
// Use these in assert.Equal/assert.Contains checks when testing messages.
const (
	// Participation errors
	ErrMsgAlreadyParticipating = "You are already participating in this event."
	ErrMsgInOtherEvent         = "You are already participating in another event."
	ErrMsgEventAlreadyStarted  = "Event has already started."
	ErrMsgEventNotRunning      = "Event is not running."
	ErrMsgTeamsFull            = "All teams are full."
	ErrMsgNotParticipating     = "You are not participating in this event."
	ErrMsgEventNotFound        = "Event not found."
	ErrMsgNoSignUp             = "This event has no sign-up. Enter the zone to take part."

	// Economy errors
	ErrMsgInsufficientPoints   = "You don't have enough points."
	ErrMsgInventoryFull        = "Your inventory is full."
	ErrMsgRewardNotFound       = "Reward not found."
	ErrMsgTransferCodeNotFound = "Transfer code not found."
	ErrMsgInvalidAmount        = "Amount must be positive."
	ErrMsgSelfTransfer         = "You cannot claim your own transfer."
	ErrMsgSenderShortOnPoints  = "The sender no longer has enough points."
	ErrMsgTooManyTransfers     = "Too many transfers are waiting to be claimed. Try again later."

	// Account errors
	ErrMsgAccountNotFound = "Player account not found."

	// Lifecycle errors
	ErrMsgInvalidTransition = "invalid state transition"
	ErrMsgEventBusy         = "Event is busy, try again."

	// Generic
	ErrMsgGeneric = "Something went wrong."
)

// Common domain errors.
// Wrap these with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context;
// Outcome still reports the bare user-facing message.
var (
	ErrAlreadyParticipating = errors.New(ErrMsgAlreadyParticipating)
	ErrInOtherEvent         = errors.New(ErrMsgInOtherEvent)
	ErrEventAlreadyStarted  = errors.New(ErrMsgEventAlreadyStarted)
	ErrEventNotRunning      = errors.New(ErrMsgEventNotRunning)
	ErrTeamsFull            = errors.New(ErrMsgTeamsFull)
	ErrNotParticipating     = errors.New(ErrMsgNotParticipating)
	ErrEventNotFound        = errors.New(ErrMsgEventNotFound)
	ErrNoSignUp             = errors.New(ErrMsgNoSignUp)

	ErrInsufficientPoints   = errors.New(ErrMsgInsufficientPoints)
	ErrInventoryFull        = errors.New(ErrMsgInventoryFull)
	ErrRewardNotFound       = errors.New(ErrMsgRewardNotFound)
	ErrTransferCodeNotFound = errors.New(ErrMsgTransferCodeNotFound)
	ErrInvalidAmount        = errors.New(ErrMsgInvalidAmount)
	ErrSelfTransfer         = errors.New(ErrMsgSelfTransfer)
	ErrSenderShortOnPoints  = errors.New(ErrMsgSenderShortOnPoints)

	ErrTooManyPendingTransfers = errors.New(ErrMsgTooManyTransfers)

	ErrAccountNotFound = errors.New(ErrMsgAccountNotFound)

	ErrInvalidTransition = errors.New(ErrMsgInvalidTransition)
	ErrEventBusy         = errors.New(ErrMsgEventBusy)
)

// userFacing lists the errors whose message is safe to show to players.
var userFacing = []error{
	ErrAlreadyParticipating,
	ErrInOtherEvent,
	ErrEventAlreadyStarted,
	ErrEventNotRunning,
	ErrTeamsFull,
	ErrNotParticipating,
	ErrEventNotFound,
	ErrNoSignUp,
	ErrInsufficientPoints,
	ErrInventoryFull,
	ErrRewardNotFound,
	ErrTransferCodeNotFound,
	ErrInvalidAmount,
	ErrSelfTransfer,
	ErrSenderShortOnPoints,
	ErrTooManyPendingTransfers,
	ErrAccountNotFound,
	ErrEventBusy,
}

// Outcome converts an operation error into the (success, message) pair the
// command surface returns. Unknown errors collapse to a generic message.
func Outcome(err error) (bool, string) {
	if err == nil {
		return true, ""
	}
	for _, known := range userFacing {
		if errors.Is(err, known) {
			return false, known.Error()
		}
	}
	return false, ErrMsgGeneric
}

// IsUserFacing reports whether err wraps one of the player-visible errors.
func IsUserFacing(err error) bool {
	for _, known := range userFacing {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}
