package lifecycle

// State is a lifecycle machine state
type State int32

// Lifecycle states, in round order
const (
	Idle State = iota
	SystemStarting
	Filling
	Active
	Settling
	SystemEnding
)

var stateNames = [...]string{"Idle", "SystemStarting", "Filling", "Active", "Settling", "SystemEnding"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "Unknown"
	}
	return stateNames[s]
}

// Running reports whether a round is in progress past setup
func (s State) Running() bool {
	return s == Filling || s == Active
}
