package transfer

import "fmt"

// State is a step in a transfer workflow. Both workflows walk the same
// four steps; which guards apply at each transition differs.
type State string

const (
	StateCollectDestination State = "COLLECT_DESTINATION"
	StateConfirmAmount      State = "CONFIRM_AMOUNT"
	StateSubmitting         State = "SUBMITTING"
	StateSuccess            State = "SUCCESS"
)

// transitions is the full set of legal moves. Anything not listed here is a
// programming error, not a user error.
var transitions = map[State][]State{
	StateCollectDestination: {StateConfirmAmount},
	StateConfirmAmount:      {StateCollectDestination, StateSubmitting},
	StateSubmitting:         {StateConfirmAmount, StateSuccess},
	StateSuccess:            {},
}

// TransitionError reports an attempted move outside the transition table.
type TransitionError struct {
	From, To State
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal workflow transition %s -> %s", e.From, e.To)
}

// machine holds the current step and enforces the transition table.
type machine struct {
	state State
}

func newMachine() machine {
	return machine{state: StateCollectDestination}
}

func (m *machine) State() State { return m.state }

func (m *machine) transition(to State) error {
	for _, next := range transitions[m.state] {
		if next == to {
			m.state = to
			return nil
		}
	}
	return &TransitionError{From: m.state, To: to}
}

// require returns a TransitionError when the machine is not at the given
// step, so misuse surfaces as the same error family as an illegal move.
func (m *machine) require(s State) error {
	if m.state != s {
		return &TransitionError{From: m.state, To: s}
	}
	return nil
}
