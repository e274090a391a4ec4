package linkedin

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/jonathan/auto-applier/internal/browser"
)

// Authenticator drives the login flow. A security checkpoint is waited
// out rather than failed, because the user may complete it by hand in a
// headed browser.
type Authenticator struct {
	driver   browser.Driver
	email    string
	password string

	// PollInterval is how often the current URL is observed while
	// waiting for the feed.
	PollInterval time.Duration

	// LoginWait bounds the wait for the feed after submitting
	// credentials.
	LoginWait time.Duration

	// CheckpointWait bounds the wait for manual completion of a
	// security checkpoint.
	CheckpointWait time.Duration
}

// NewAuthenticator builds an authenticator with the standard waits.
func NewAuthenticator(driver browser.Driver, email, password string) *Authenticator {
	return &Authenticator{
		driver:         driver,
		email:          email,
		password:       password,
		PollInterval:   4 * time.Second,
		LoginWait:      60 * time.Second,
		CheckpointWait: 300 * time.Second,
	}
}

// Login navigates to the feed and, when a session cookie is not already
// present, submits the credentials and waits for the feed URL. Wait
// timeouts are logged, not fatal.
func (a *Authenticator) Login(ctx context.Context) error {
	if err := a.driver.Navigate(ctx, feedURL); err != nil {
		return &AuthError{Message: "failed to open feed", Cause: err}
	}

	current, err := a.driver.CurrentURL(ctx)
	if err != nil {
		return &AuthError{Message: "failed to read current URL", Cause: err}
	}
	if strings.Contains(current, feedMarker) && !strings.Contains(current, "login") {
		log.Printf("[LOGIN] Session already active, skipping login")
		return nil
	}

	if err := a.driver.Navigate(ctx, loginURL); err != nil {
		return &AuthError{Message: "failed to open login page", Cause: err}
	}
	if err := a.driver.WaitVisible(ctx, selUsername); err != nil {
		return &AuthError{Message: "login form not found", Cause: err}
	}
	if err := a.driver.SendKeys(ctx, selUsername, a.email); err != nil {
		return &AuthError{Message: "failed to enter email", Cause: err}
	}
	if err := a.driver.SendKeys(ctx, selPassword, a.password); err != nil {
		return &AuthError{Message: "failed to enter password", Cause: err}
	}
	if err := a.driver.Click(ctx, selLoginSubmit); err != nil {
		return &AuthError{Message: "failed to submit login form", Cause: err}
	}

	return a.awaitFeed(ctx)
}

// awaitFeed polls the current URL until the feed appears. A checkpoint
// URL extends the wait so the user can complete the challenge.
func (a *Authenticator) awaitFeed(ctx context.Context) error {
	deadline := time.Now().Add(a.LoginWait)
	checkpointSeen := false

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(a.PollInterval):
		}

		current, err := a.driver.CurrentURL(ctx)
		if err != nil {
			return &AuthError{Message: "failed to read current URL", Cause: err}
		}
		if strings.Contains(current, feedMarker) && !strings.Contains(current, "login") {
			log.Printf("[LOGIN] Logged in")
			return nil
		}
		if strings.Contains(current, checkpointMarker) && !checkpointSeen {
			checkpointSeen = true
			deadline = time.Now().Add(a.CheckpointWait)
			log.Printf("[LOGIN] Security checkpoint detected, waiting up to %s for manual completion", a.CheckpointWait)
		}
		if time.Now().After(deadline) {
			log.Printf("[LOGIN] Timed out waiting for the feed; continuing, the session may still complete")
			return nil
		}
	}
}
