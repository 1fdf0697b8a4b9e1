package errors

import (
	"strings"

	"github.com/mediatorc/mediatorc/internal/compiler/decl"
)

// Modeling error codes (MED001-099): the descriptor is discarded
const (
	// ErrDuplicateRole indicates an element carries more than one role annotation
	ErrDuplicateRole Code = "MED001"
	// ErrMissingName indicates a request or handler has no logical name
	ErrMissingName Code = "MED002"
	// ErrSymbolUnresolved indicates the underlying symbol could not be resolved
	ErrSymbolUnresolved Code = "MED003"
	// ErrMissingHandlerMethod indicates no conventional processing method matched
	ErrMissingHandlerMethod Code = "MED004"
	// ErrAbstractLegacyMethod indicates a retrofit annotation on an abstract method
	ErrAbstractLegacyMethod Code = "MED005"
	// ErrUnsupportedParameters indicates ref/out-style parameters on a retrofit method
	ErrUnsupportedParameters Code = "MED006"
)

// Modeling warning codes (MED101-199): generation proceeds best-effort
const (
	// WarnOrphanHandler indicates a handler targeting no known request
	WarnOrphanHandler Code = "MED101"
	// WarnUnhandledRequest indicates a request with no matching handler
	WarnUnhandledRequest Code = "MED102"
	// WarnConflictingConfiguration indicates incompatible option combinations
	WarnConflictingConfiguration Code = "MED103"
)

// Generation codes (MED900+)
const (
	// ErrGenerationFailure is the per-artifact catch-all for synthesis panics
	ErrGenerationFailure Code = "MED900"
)

// NewDuplicateRole creates a MED001 error
func NewDuplicateRole(element string, loc decl.SourceLocation, roles []string) *Diagnostic {
	return newDiagnostic(
		ErrDuplicateRole, "duplicate_role", SeverityError, element, loc,
		"Element '%s' carries conflicting role annotations: %s",
		element, strings.Join(roles, ", "),
	).WithSuggestion("Keep exactly one role annotation per element")
}

// NewMissingName creates a MED002 error
func NewMissingName(element string, loc decl.SourceLocation) *Diagnostic {
	return newDiagnostic(
		ErrMissingName, "missing_name", SeverityError, element, loc,
		"Element '%s' is missing the required 'name' annotation argument",
		element,
	).WithSuggestion("Add name = \"...\" to the role annotation")
}

// NewSymbolUnresolved creates a MED003 error
func NewSymbolUnresolved(element string, loc decl.SourceLocation) *Diagnostic {
	return newDiagnostic(
		ErrSymbolUnresolved, "symbol_unresolved", SeverityError, element, loc,
		"Type symbol for '%s' could not be resolved",
		element,
	)
}

// NewMissingHandlerMethod creates a MED004 error
func NewMissingHandlerMethod(service string, loc decl.SourceLocation, category string) *Diagnostic {
	return newDiagnostic(
		ErrMissingHandlerMethod, "missing_handler_method", SeverityError, service, loc,
		"Service '%s' has no conventional %s processing method",
		service, category,
	).WithSuggestion("Add a method such as HandleAsync(ctx, request) to the service")
}

// NewAbstractLegacyMethod creates a MED005 error
func NewAbstractLegacyMethod(method string, loc decl.SourceLocation) *Diagnostic {
	return newDiagnostic(
		ErrAbstractLegacyMethod, "abstract_legacy_method", SeverityError, method, loc,
		"Annotated method '%s' is abstract and cannot be dispatched to",
		method,
	)
}

// NewUnsupportedParameters creates a MED006 error
func NewUnsupportedParameters(method string, loc decl.SourceLocation, params []string) *Diagnostic {
	return newDiagnostic(
		ErrUnsupportedParameters, "unsupported_parameters", SeverityError, method, loc,
		"Annotated method '%s' has parameters that cannot be represented as fields: %s",
		method, strings.Join(params, ", "),
	)
}

// NewOrphanHandler creates a MED101 warning
func NewOrphanHandler(handler string, loc decl.SourceLocation, target string) *Diagnostic {
	return newDiagnostic(
		WarnOrphanHandler, "orphan_handler", SeverityWarning, handler, loc,
		"Handler '%s' targets unknown request '%s'; no route will be generated for it",
		handler, target,
	)
}

// NewUnhandledRequest creates a MED102 warning
func NewUnhandledRequest(request string, loc decl.SourceLocation) *Diagnostic {
	return newDiagnostic(
		WarnUnhandledRequest, "unhandled_request", SeverityWarning, request, loc,
		"Request '%s' has no matching handler; dispatching it will fail at runtime",
		request,
	)
}

// NewConflictingConfiguration creates a MED103 warning
func NewConflictingConfiguration(element string, loc decl.SourceLocation, detail string) *Diagnostic {
	return newDiagnostic(
		WarnConflictingConfiguration, "conflicting_configuration", SeverityWarning, element, loc,
		"Element '%s' has a conflicting configuration: %s",
		element, detail,
	)
}

// NewGenerationFailure creates a MED900 error naming the artifact that failed
func NewGenerationFailure(artifact string, detail string) *Diagnostic {
	return newDiagnostic(
		ErrGenerationFailure, "generation_failure", SeverityError, artifact,
		decl.SourceLocation{},
		"Generation of artifact '%s' failed: %s",
		artifact, detail,
	)
}
