// Package commands implements the mediatorc CLI.
package commands

import (
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mediatorc",
		Short: "Compile-time mediator dispatch generator",
		Long: color.CyanString(`mediatorc - declarative dispatch-table compiler

mediatorc reads annotated request and handler declarations and generates a
dispatcher that routes every request to its handler with zero runtime type
lookup, replacing reflection-based mediator frameworks.

Pipeline:
  1. Scan      - find role-annotated declarations
  2. Model     - build request/handler descriptors
  3. Validate  - cross-check the model, report diagnostics
  4. Project   - emit normalized requests and adapters
  5. Dispatch  - emit exhaustive routing functions`),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(NewGenerateCommand())
	rootCmd.AddCommand(NewCheckCommand())

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("mediatorc %s\n", Version)
			fmt.Printf("  commit:  %s\n", GitCommit)
			fmt.Printf("  built:   %s\n", BuildDate)
			fmt.Printf("  go:      %s\n", runtime.Version())
		},
	}
}
