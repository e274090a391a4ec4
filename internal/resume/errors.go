package resume

import "fmt"

// ParseError represents malformed YAML in the plain-text resume source.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("resume parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("resume parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// ValidationError represents a constraint violation at a specific field path.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("resume validation error in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("resume validation error: %s", e.Message)
}
