package styles

import "fmt"

// UnknownStyleError indicates a style name that no discovered CSS file
// declares.
type UnknownStyleError struct {
	Name string
}

func (e *UnknownStyleError) Error() string {
	return fmt.Sprintf("unknown resume style %q", e.Name)
}

// DiscoverError indicates that the styles directory could not be read.
type DiscoverError struct {
	Dir   string
	Cause error
}

func (e *DiscoverError) Error() string {
	return fmt.Sprintf("failed to discover styles in %s: %v", e.Dir, e.Cause)
}

func (e *DiscoverError) Unwrap() error {
	return e.Cause
}
