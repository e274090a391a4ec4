package session

import "time"

// Readiness predicates, in the order setup normally satisfies them.
const (
	PredProfileSet     = "profile_set"
	PredAnswererSet    = "answerer_set"
	PredCredentialsSet = "credentials_set"
	PredParametersSet  = "parameters_set"
	PredLoggedIn       = "logged_in"
)

// Readiness tracks which setup steps have completed and when. Flags
// only move forward; Reset is the single way back.
type Readiness struct {
	marked map[string]time.Time
}

// NewReadiness starts with no predicate satisfied.
func NewReadiness() *Readiness {
	return &Readiness{marked: make(map[string]time.Time)}
}

// Mark satisfies a predicate. Re-marking keeps the original timestamp.
func (r *Readiness) Mark(pred string) {
	if _, ok := r.marked[pred]; !ok {
		r.marked[pred] = time.Now()
	}
}

// Is reports whether a predicate is satisfied.
func (r *Readiness) Is(pred string) bool {
	_, ok := r.marked[pred]
	return ok
}

// MarkedAt returns when a predicate was satisfied.
func (r *Readiness) MarkedAt(pred string) (time.Time, bool) {
	ts, ok := r.marked[pred]
	return ts, ok
}

// Missing filters the given predicates down to the unsatisfied ones.
func (r *Readiness) Missing(preds ...string) []string {
	var missing []string
	for _, pred := range preds {
		if !r.Is(pred) {
			missing = append(missing, pred)
		}
	}
	return missing
}

// Reset clears every predicate.
func (r *Readiness) Reset() {
	r.marked = make(map[string]time.Time)
}
