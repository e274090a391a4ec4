package main

import (
	"github.com/spf13/cobra"
)

var collectCommand = &cobra.Command{
	Use:   "start-collect-data",
	Short: "Walk the search plan and record postings without applying",
	Long: `Runs the same login and search flow as start-apply but never opens an
application form. Every discovered posting is recorded as skipped, which
makes for a dry run of the filters and blacklists.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runDrive(cmd, true)
	},
}

func init() {
	registerDriveFlags(collectCommand)
	rootCmd.AddCommand(collectCommand)
}
