// Package errors provides structured diagnostics for the mediatorc
// compiler. It defines diagnostic codes, severities, and formatting for both
// human-readable terminal output and machine-parseable JSON so external
// tooling can filter or fail builds on specific codes.
package errors

import (
	"encoding/json"
	"fmt"

	"github.com/mediatorc/mediatorc/internal/compiler/decl"
)

// Code is a stable, unique diagnostic code (e.g. "MED001")
type Code string

// Severity indicates the severity level of a diagnostic
type Severity string

const (
	// SeverityError indicates a problem that discards the offending descriptor
	SeverityError Severity = "error"
	// SeverityWarning indicates best-effort generation with degraded output
	SeverityWarning Severity = "warning"
	// SeverityInfo indicates informational messages
	SeverityInfo Severity = "info"
)

// Diagnostic represents one structured finding produced by the validator or
// the generation boundary. Diagnostics are never mutated after creation.
type Diagnostic struct {
	// Code is the stable diagnostic code (e.g. "MED001")
	Code Code `json:"code"`
	// Type is a machine-readable identifier (e.g. "duplicate_role")
	Type string `json:"type"`
	// Severity is the diagnostic severity level
	Severity Severity `json:"severity"`
	// Message is the rendered message
	Message string `json:"message"`
	// Element names the offending declared element or artifact
	Element string `json:"element,omitempty"`
	// Location is the source location of the offending declaration
	Location decl.SourceLocation `json:"location"`
	// Args holds the positional values the message was built from, so
	// tooling does not have to re-parse the message text
	Args []string `json:"args,omitempty"`
	// Suggestion provides a hint for fixing the problem (optional)
	Suggestion string `json:"suggestion,omitempty"`
}

// Error implements the error interface
func (d *Diagnostic) Error() string {
	return FormatDiagnostic(d)
}

// WithSuggestion sets a fix hint on the diagnostic
func (d *Diagnostic) WithSuggestion(s string) *Diagnostic {
	d.Suggestion = s
	return d
}

// ToJSON returns the diagnostic as a JSON string
func (d *Diagnostic) ToJSON() (string, error) {
	bytes, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// DiagnosticList is an ordered collection of diagnostics
type DiagnosticList []*Diagnostic

// Error implements the error interface
func (dl DiagnosticList) Error() string {
	if len(dl) == 0 {
		return "no diagnostics"
	}
	return FormatDiagnosticList(dl)
}

// HasErrors returns true if the list contains any errors (excludes warnings/info)
func (dl DiagnosticList) HasErrors() bool {
	for _, d := range dl {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// HasWarnings returns true if the list contains any warnings
func (dl DiagnosticList) HasWarnings() bool {
	for _, d := range dl {
		if d.Severity == SeverityWarning {
			return true
		}
	}
	return false
}

// Counts returns the number of diagnostics by severity
func (dl DiagnosticList) Counts() (errors, warnings, info int) {
	for _, d := range dl {
		switch d.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		case SeverityInfo:
			info++
		}
	}
	return
}

// ToJSON returns all diagnostics as a JSON array
func (dl DiagnosticList) ToJSON() (string, error) {
	bytes, err := json.MarshalIndent(dl, "", "  ")
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// newDiagnostic creates a Diagnostic with the given parameters
func newDiagnostic(
	code Code,
	typ string,
	severity Severity,
	element string,
	loc decl.SourceLocation,
	format string,
	args ...string,
) *Diagnostic {
	anyArgs := make([]interface{}, len(args))
	for i, a := range args {
		anyArgs[i] = a
	}
	return &Diagnostic{
		Code:     code,
		Type:     typ,
		Severity: severity,
		Message:  fmt.Sprintf(format, anyArgs...),
		Element:  element,
		Location: loc,
		Args:     args,
	}
}
