package main

import (
	"github.com/spf13/cobra"
)

var applyCommand = &cobra.Command{
	Use:   "start-apply",
	Short: "Search postings and submit quick-apply applications",
	Long: `Logs in with the configured credentials, walks the search plan built from
the filter bundle and applies to every posting that passes the blacklists.
Outcomes are appended to success.csv, failed.csv and skipped.csv under the
output directory.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runDrive(cmd, false)
	},
}

func init() {
	registerDriveFlags(applyCommand)
	rootCmd.AddCommand(applyCommand)
}
