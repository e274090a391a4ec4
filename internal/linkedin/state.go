package linkedin

import "fmt"

// State is the orchestrator position within a single application flow.
type State int

const (
	StateIdle State = iota
	StateLoggedIn
	StateBrowsing
	StateOpenedPosting
	StateFormOpen
	StateFilling
	StateUploading
	StateReviewing
	StateSubmitted
	StateDiscarded
	StateErrored
)

var stateNames = map[State]string{
	StateIdle:          "idle",
	StateLoggedIn:      "logged_in",
	StateBrowsing:      "browsing",
	StateOpenedPosting: "opened_posting",
	StateFormOpen:      "form_open",
	StateFilling:       "filling",
	StateUploading:     "uploading",
	StateReviewing:     "reviewing",
	StateSubmitted:     "submitted",
	StateDiscarded:     "discarded",
	StateErrored:       "errored",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Terminal reports whether the state ends the current posting.
func (s State) Terminal() bool {
	return s == StateSubmitted || s == StateDiscarded || s == StateErrored
}

// transitions lists the legal forward edges. Errored and Discarded are
// reachable from any state and handled separately in To.
var transitions = map[State][]State{
	StateIdle:          {StateLoggedIn},
	StateLoggedIn:      {StateBrowsing, StateIdle},
	StateBrowsing:      {StateOpenedPosting, StateLoggedIn},
	StateOpenedPosting: {StateFormOpen},
	StateFormOpen:      {StateFilling, StateReviewing},
	StateFilling:       {StateFilling, StateUploading, StateFormOpen},
	StateUploading:     {StateFilling},
	StateReviewing:     {StateSubmitted},
	StateSubmitted:     {StateBrowsing},
	StateDiscarded:     {StateBrowsing},
	StateErrored:       {StateBrowsing},
}

// InvalidTransitionError reports an illegal state-machine edge, which
// indicates a bug in the orchestrator rather than a site condition.
type InvalidTransitionError struct {
	From State
	To   State
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid application state transition %s -> %s", e.From, e.To)
}

// Machine tracks the orchestrator state and enforces the transition
// table.
type Machine struct {
	current State
}

// NewMachine starts in the idle state.
func NewMachine() *Machine {
	return &Machine{current: StateIdle}
}

// Current returns the present state.
func (m *Machine) Current() State {
	return m.current
}

// To moves the machine to next, failing on an edge the flow does not
// allow. Discarding and erroring are legal from any non-terminal state.
func (m *Machine) To(next State) error {
	if next == StateDiscarded || next == StateErrored {
		if m.current.Terminal() {
			return &InvalidTransitionError{From: m.current, To: next}
		}
		m.current = next
		return nil
	}
	for _, allowed := range transitions[m.current] {
		if allowed == next {
			m.current = next
			return nil
		}
	}
	return &InvalidTransitionError{From: m.current, To: next}
}
