// Package main provides the entry point for the quick-apply agent CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "apply_agent",
	Short: "LinkedIn quick-apply automation",
	Long:  "apply_agent drives a real browser through the LinkedIn job search, answers application form questions with an LLM backed by a persistent answer cache, and submits quick-apply forms matching the configured search filters.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
