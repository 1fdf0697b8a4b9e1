package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mediatorc/mediatorc/internal/cli/config"
	"github.com/mediatorc/mediatorc/internal/compiler/decl"
	"github.com/mediatorc/mediatorc/internal/compiler/errors"
	"github.com/mediatorc/mediatorc/internal/compiler/pipeline"
)

var (
	generateManifest  string
	generateOut       string
	generateNamespace string
	generateJSON      bool
	generateVerbose   bool
)

// NewGenerateCommand creates the generate command
func NewGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate dispatch code from a declaration manifest",
		Long: `Run the full pipeline over a declaration manifest and write the
generated artifacts: normalized request types, handler adapters, the
dispatcher routing functions and registration wiring.

The command exits non-zero when the diagnostics contain errors; warnings
degrade generation to best-effort but do not fail the build.`,
		Example: `  # Generate using mediatorc.yml settings
  mediatorc generate

  # Generate from an explicit manifest into a custom directory
  mediatorc generate --manifest decls.json --out gen/mediator

  # Emit diagnostics as JSON for tooling
  mediatorc generate --json`,
		RunE: runGenerate,
	}

	cmd.Flags().StringVarP(&generateManifest, "manifest", "m", "", "Declaration manifest path (default from mediatorc.yml)")
	cmd.Flags().StringVarP(&generateOut, "out", "o", "", "Output directory (default from mediatorc.yml)")
	cmd.Flags().StringVar(&generateNamespace, "namespace", "", "Override the output namespace grouping")
	cmd.Flags().BoolVar(&generateJSON, "json", false, "Output diagnostics in JSON format")
	cmd.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "Show detailed pipeline output")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	start := time.Now()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	manifestPath := cfg.Manifest
	if generateManifest != "" {
		manifestPath = generateManifest
	}
	outDir := cfg.Output.Dir
	if generateOut != "" {
		outDir = generateOut
	}
	outNS := cfg.Output.Namespace
	if generateNamespace != "" {
		outNS = generateNamespace
	}

	result, err := runPipeline(manifestPath, outNS, generateVerbose)
	if err != nil {
		return err
	}

	if err := reportDiagnostics(result.Diagnostics, generateJSON); err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for name, body := range result.Artifacts {
		path := filepath.Join(outDir, name)
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	color.Green("✓ Generated %d artifact(s) in %s (%.2fs)",
		len(result.Artifacts), outDir, time.Since(start).Seconds())
	return nil
}

// runPipeline loads the manifest and runs one analysis pass
func runPipeline(manifestPath, outNS string, verbose bool) (*pipeline.Result, error) {
	manifest, err := decl.LoadManifest(manifestPath)
	if err != nil {
		return nil, err
	}

	logger := zap.NewNop()
	if verbose {
		logger, err = zap.NewDevelopment()
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
		defer logger.Sync() //nolint:errcheck
	}

	return pipeline.Run(manifest.Elements, pipeline.Options{OutputNamespace: outNS}, logger), nil
}

// reportDiagnostics prints the diagnostic list and returns an error when it
// contains any error-severity entry
func reportDiagnostics(diags errors.DiagnosticList, asJSON bool) error {
	if len(diags) > 0 {
		if asJSON {
			out, err := diags.ToJSON()
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, out)
		} else {
			fmt.Fprintln(os.Stderr, errors.FormatDiagnosticList(diags))
		}
	}
	if diags.HasErrors() {
		return fmt.Errorf("generation completed with errors")
	}
	return nil
}
