package answers

import "fmt"

// CacheError indicates the persistent question cache could not be read
// or rewritten. Append failures are downgraded to warnings by the
// dispatcher and never surface as this error.
type CacheError struct {
	Path    string
	Message string
	Cause   error
}

func (e *CacheError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("question cache %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("question cache %s: %s", e.Path, e.Message)
}

func (e *CacheError) Unwrap() error {
	return e.Cause
}
