package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mediatorc/mediatorc/internal/cli/config"
)

var (
	checkManifest string
	checkJSON     bool
	checkVerbose  bool
)

// NewCheckCommand creates the check command
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a declaration manifest without writing artifacts",
		Long: `Run the scanner, model builder and validator over a declaration
manifest and report diagnostics. Nothing is written to disk; the exit code
is non-zero when errors are present.`,
		RunE: runCheck,
	}

	cmd.Flags().StringVarP(&checkManifest, "manifest", "m", "", "Declaration manifest path (default from mediatorc.yml)")
	cmd.Flags().BoolVar(&checkJSON, "json", false, "Output diagnostics in JSON format")
	cmd.Flags().BoolVarP(&checkVerbose, "verbose", "v", false, "Show detailed pipeline output")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	manifestPath := cfg.Manifest
	if checkManifest != "" {
		manifestPath = checkManifest
	}

	result, err := runPipeline(manifestPath, "", checkVerbose)
	if err != nil {
		return err
	}

	if err := reportDiagnostics(result.Diagnostics, checkJSON); err != nil {
		return err
	}

	color.Green("✓ %d request(s), %d handler(s), no errors",
		len(result.Model.Requests), len(result.Model.Handlers))
	return nil
}
