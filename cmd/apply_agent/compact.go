package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/auto-applier/internal/answers"
)

var compactCommand = &cobra.Command{
	Use:   "compact-cache",
	Short: "Rewrite the answer cache keeping only the newest entry per question",
	RunE:  runCompactCache,
}

var compactDataDir string

func init() {
	compactCommand.Flags().StringVarP(&compactDataDir, "data-dir", "d", "data_folder", "Directory whose output/answers.jsonl cache should be compacted")
	rootCmd.AddCommand(compactCommand)
}

func runCompactCache(_ *cobra.Command, _ []string) error {
	path := filepath.Join(compactDataDir, "output", "answers.jsonl")
	cache, err := answers.OpenCache(path)
	if err != nil {
		return err
	}
	before := cache.Len()
	if err := cache.Compact(); err != nil {
		return err
	}
	fmt.Printf("compacted %s: %d entries in, %d kept\n", path, before, cache.Len())
	return nil
}
