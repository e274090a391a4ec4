package llm

import "fmt"

// UnsupportedBackendError is returned when the configured backend name
// does not match any known provider.
type UnsupportedBackendError struct {
	Backend string
}

func (e *UnsupportedBackendError) Error() string {
	return fmt.Sprintf("unsupported LLM backend %q", e.Backend)
}

// APICallError represents a failed completion request against a provider.
type APICallError struct {
	Backend string
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s API call failed: %s: %v", e.Backend, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s API call failed: %s", e.Backend, e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}
