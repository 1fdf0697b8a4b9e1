package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// FormatDiagnostic returns a human-readable message for terminal output
func FormatDiagnostic(d *Diagnostic) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s [%s] %s\n", severityLabel(d.Severity), d.Code, d.Message)

	if d.Element != "" {
		fmt.Fprintf(&b, "  element: %s\n", d.Element)
	}
	if d.Location.Line > 0 {
		fmt.Fprintf(&b, "  at line %d, column %d\n", d.Location.Line, d.Location.Column)
	}
	if d.Suggestion != "" {
		fmt.Fprintf(&b, "  hint: %s\n", d.Suggestion)
	}

	return b.String()
}

// FormatDiagnosticList returns a formatted report of all diagnostics with a
// summary header
func FormatDiagnosticList(list DiagnosticList) string {
	if len(list) == 0 {
		return "no diagnostics"
	}

	var b strings.Builder

	errCount, warnCount, infoCount := list.Counts()
	fmt.Fprintf(&b, "%d error(s), %d warning(s), %d info\n\n",
		errCount, warnCount, infoCount)

	for i, d := range list {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(FormatDiagnostic(d))
	}

	return b.String()
}

// FormatCompact returns a compact one-line diagnostic format
func FormatCompact(d *Diagnostic) string {
	return fmt.Sprintf("%d:%d: %s: %s [%s]",
		d.Location.Line, d.Location.Column,
		d.Severity, d.Message, d.Code)
}

// severityLabel returns the colored label for a severity level
func severityLabel(severity Severity) string {
	switch severity {
	case SeverityError:
		return color.RedString("error")
	case SeverityWarning:
		return color.YellowString("warning")
	case SeverityInfo:
		return color.CyanString("info")
	default:
		return string(severity)
	}
}
