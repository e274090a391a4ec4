package session

import (
	"fmt"
	"strings"
)

// PreconditionError aggregates every unsatisfied readiness predicate of
// an operation into one message.
type PreconditionError struct {
	Operation string
	Missing   []string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s requires: %s", e.Operation, strings.Join(e.Missing, ", "))
}

// ArgumentError reports an empty or invalid facade argument.
type ArgumentError struct {
	Message string
}

func (e *ArgumentError) Error() string {
	return e.Message
}
