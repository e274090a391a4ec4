package config

import "fmt"

// ConfigError represents an invalid or missing configuration value.
// Configuration errors abort the session before login.
type ConfigError struct {
	File    string
	Key     string
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	msg := "config error"
	if e.File != "" {
		msg += " in " + e.File
	}
	if e.Key != "" {
		msg += fmt.Sprintf(": key %q", e.Key)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}
