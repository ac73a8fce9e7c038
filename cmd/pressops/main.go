package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pressops",
	Short: "Publishing operations toolbox",
	Long: `Command-line tools for the puzzle-book publishing workflow:
print math, KDP metadata validation, and launch checklists.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
