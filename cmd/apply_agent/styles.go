package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/auto-applier/internal/styles"
)

var stylesCommand = &cobra.Command{
	Use:   "styles",
	Short: "List the discovered resume styles",
	RunE:  runStyles,
}

var stylesListDir string

func init() {
	stylesCommand.Flags().StringVar(&stylesListDir, "styles-dir", "styles", "Directory holding style sheets")
	rootCmd.AddCommand(stylesCommand)
}

func runStyles(_ *cobra.Command, _ []string) error {
	registry, err := styles.Discover(stylesListDir)
	if err != nil {
		return err
	}
	if registry.Len() == 0 {
		fmt.Printf("no styles found in %s\n", stylesListDir)
		return nil
	}
	for _, choice := range registry.Choices() {
		fmt.Println(choice)
	}
	return nil
}
