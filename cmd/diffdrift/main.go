// Package main provides the entry point for the diffdrift CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/diffdrift/cmd/diffdrift/commands"
	"github.com/Sumatoshi-tech/diffdrift/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "diffdrift",
		Short: "Diffdrift - diff algorithm discrepancy mining",
		Long: `Diffdrift mines git history and measures how often the myers and
histogram diff algorithms disagree on per-file diffs.

Commands:
  mine      Mine repositories and build the discrepancy dataset`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewMineCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintln(os.Stdout, version.String())
		},
	}
}
