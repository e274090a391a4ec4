package linkedin

import "fmt"

// Posting failure reasons recorded in the outcome files.
const (
	ReasonPremiumRedirect = "premium_redirect"
	ReasonNoEasyApply     = "no_easy_apply"
	ReasonFormRejected    = "form_rejected"
	ReasonNavigation      = "navigation_failed"
	ReasonSkipSubmit      = "skip_apply"
)

// AuthError indicates the login flow could not complete.
type AuthError struct {
	Message string
	Cause   error
}

func (e *AuthError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("login failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("login failed: %s", e.Message)
}

func (e *AuthError) Unwrap() error {
	return e.Cause
}

// PostingError indicates one posting could not be applied to. The
// manager records it and moves on to the next posting.
type PostingError struct {
	Reason  string
	Message string
	Cause   error
}

func (e *PostingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("posting failed (%s): %s: %v", e.Reason, e.Message, e.Cause)
	}
	return fmt.Sprintf("posting failed (%s): %s", e.Reason, e.Message)
}

func (e *PostingError) Unwrap() error {
	return e.Cause
}
