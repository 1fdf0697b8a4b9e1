// Package pipeline runs one full analysis pass: scan, model, validate,
// project, synthesize. The pass is single-threaded over an immutable
// element snapshot; nothing is cached between runs, so two runs over the
// same snapshot produce byte-identical diagnostics and artifacts.
package pipeline

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mediatorc/mediatorc/internal/compiler/codegen"
	"github.com/mediatorc/mediatorc/internal/compiler/decl"
	"github.com/mediatorc/mediatorc/internal/compiler/errors"
	"github.com/mediatorc/mediatorc/internal/compiler/model"
	"github.com/mediatorc/mediatorc/internal/compiler/scanner"
	"github.com/mediatorc/mediatorc/internal/compiler/validate"
)

// Options tune one analysis pass
type Options struct {
	// OutputNamespace overrides the namespace-grouping post-pass when set
	OutputNamespace string
}

// Result is everything one pass produces: the generated artifacts, every
// diagnostic raised along the way, and the surviving descriptor set
type Result struct {
	Artifacts       map[string]string
	Diagnostics     errors.DiagnosticList
	Model           *model.Set
	OutputNamespace string
}

// Run executes the full pipeline over a declaration snapshot. Diagnostics
// never abort the pass wholesale; errors discard their descriptor and the
// rest keeps generating.
func Run(elements []decl.Element, opts Options, logger *zap.Logger) *Result {
	if logger == nil {
		logger = zap.NewNop()
	}
	log := logger.With(zap.String("run_id", uuid.NewString()))

	scanned := scanner.Scan(elements)
	log.Debug("scan complete",
		zap.Int("elements", len(elements)),
		zap.Int("annotated_types", len(scanned.Types)),
		zap.Int("annotated_methods", len(scanned.Methods)))

	set := model.BuildSet(scanned.Types, scanned.Methods)
	log.Debug("model built",
		zap.Int("requests", len(set.Requests)),
		zap.Int("handlers", len(set.Handlers)),
		zap.Int("legacy", len(set.Legacy)))

	res := validate.New().Validate(set)
	diags := res.Diagnostics
	errCount, warnCount, _ := diags.Counts()
	log.Debug("validation complete",
		zap.Int("errors", errCount),
		zap.Int("warnings", warnCount))

	outNS := opts.OutputNamespace
	if outNS == "" {
		outNS = codegen.GroupNamespace(res.Valid)
	}

	artifacts, genDiags := codegen.NewGenerator(outNS).Generate(res.Valid)
	diags = append(diags, genDiags...)
	log.Debug("generation complete",
		zap.String("namespace", outNS),
		zap.Int("artifacts", len(artifacts)))

	return &Result{
		Artifacts:       artifacts,
		Diagnostics:     diags,
		Model:           res.Valid,
		OutputNamespace: outNS,
	}
}
