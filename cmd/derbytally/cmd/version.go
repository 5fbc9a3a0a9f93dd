package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/packleader/derbytally/internal/cmd/globals"
)

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Printf("derbytally %s\n", Version)
		if globals.Parse(cmd).Verbose {
			fmt.Printf("  commit: %s\n", Commit)
			fmt.Printf("  built:  %s\n", Date)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
