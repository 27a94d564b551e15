package dispatch

// State is a phase of a single turn's state machine.
type State int

const (
	StateDeciding State = iota
	StateSanitizing
	StateExecuting
	StateResponding
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateDeciding:
		return "DECIDING"
	case StateSanitizing:
		return "SANITIZING"
	case StateExecuting:
		return "EXECUTING"
	case StateResponding:
		return "RESPONDING"
	case StateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// validTransitions encodes the turn machine. Responding and Failed are
// terminal; Failed is reachable only from Deciding (model unavailability).
var validTransitions = map[State][]State{
	StateDeciding:   {StateResponding, StateSanitizing, StateExecuting, StateFailed},
	StateSanitizing: {StateExecuting},
	StateExecuting:  {StateResponding},
}

// turnMachine tracks one turn's progress. Each turn owns its own instance;
// nothing is shared across turns.
type turnMachine struct {
	current State
}

func newTurnMachine() *turnMachine {
	return &turnMachine{current: StateDeciding}
}

func (m *turnMachine) State() State { return m.current }

func (m *turnMachine) transitionValid(from, to State) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Transition moves to a new state with validation.
func (m *turnMachine) Transition(to State) error {
	if !m.transitionValid(m.current, to) {
		return &InvalidTransitionError{From: m.current, To: to}
	}
	m.current = to
	return nil
}

// InvalidTransitionError represents an invalid state transition attempt.
type InvalidTransitionError struct {
	From State
	To   State
}

func (e *InvalidTransitionError) Error() string {
	return "invalid turn transition from " + e.From.String() + " to " + e.To.String()
}
