package config

import (
	"os"
	"strconv"
)

// Environment holds the environment-variable knobs read once at
// startup.
type Environment struct {
	// LogLevel raises CLI verbosity when greater than zero.
	LogLevel int
	// SkipApply fills forms but never presses the final submit.
	SkipApply bool
}

// Env reads the supported environment variables. Missing variables fall
// back to safe defaults; malformed integers read as zero.
func Env() Environment {
	logLevel, _ := strconv.Atoi(os.Getenv("DRIVER_LOG_LEVEL"))
	return Environment{
		LogLevel:  logLevel,
		SkipApply: os.Getenv("SKIP_APPLY") == "True",
	}
}
