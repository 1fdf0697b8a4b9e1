package model

import (
	"sort"

	"github.com/mediatorc/mediatorc/internal/compiler/decl"
)

// DefaultHint describes the default-initializer a projected field carries
type DefaultHint int

const (
	// DefaultNone means the field gets no explicit initializer
	DefaultNone DefaultHint = iota
	// DefaultEmptyString initializes string fields to ""
	DefaultEmptyString
	// DefaultNotNil marks non-nullable reference fields that must be
	// asserted non-nil on construction
	DefaultNotNil
)

// Field is one projected request field
type Field struct {
	// Name is the PascalCase field name used in the normalized type
	Name string
	// DeclaredName is the name as it appeared on the original element
	DeclaredName string
	Type         decl.TypeRef
	Default      DefaultHint
}

// RequestDescriptor summarizes one declared request type
type RequestDescriptor struct {
	// DeclaredName is the identifier of the annotated element
	DeclaredName string
	// Namespace is the module path of the annotated element
	Namespace string
	// LogicalName is the unique key handlers match against
	LogicalName string
	Category    Category
	// ResponseType is required for queries and stream queries, optional for
	// commands, and always nil for notifications
	ResponseType *decl.TypeRef
	Fields       []Field
	// Positional records whether fields came from a primary constructor,
	// which changes how the projector reconstructs the original instance
	Positional bool
	// Roles holds every recognized role found on the element, in
	// declaration order; more than one is a validator error
	Roles      []Role
	Unresolved bool
	// Shadowed marks a request whose logical name lost a uniqueness
	// conflict; projection skips it
	Shadowed bool
	Loc      decl.SourceLocation
}

// HandlerDescriptor summarizes one declared handler bound to a backing service
type HandlerDescriptor struct {
	// ServiceName is the annotated type that performs the work
	ServiceName string
	Namespace   string
	LogicalName string
	Category    Category
	// TargetRequestName is the LogicalName of the request (or event type,
	// for notifications) this handler serves
	TargetRequestName string
	// PublisherRef optionally names a follow-up event publisher; only
	// meaningful for command handlers
	PublisherRef string
	// CandidateMethod is the resolved service method name, or "" when none
	// of the conventional names matched
	CandidateMethod string
	// HasContext records whether the resolved method takes a leading
	// context parameter; adapters only forward ctx when it does
	HasContext bool
	// Legacy marks handlers derived from the method-level retrofit path;
	// their adapters pass fields as arguments instead of rebuilding a
	// request instance
	Legacy     bool
	Roles      []Role
	Unresolved bool
	Loc        decl.SourceLocation
}

// LegacyMethodDescriptor summarizes one method carrying the retrofit
// annotation; it synthesizes its own request/handler pair
type LegacyMethodDescriptor struct {
	ServiceName string
	MethodName  string
	Namespace   string
	// RequestName and HandlerName default to {Service}_{Method} unless the
	// annotation names them explicitly
	RequestName string
	HandlerName string
	Category    Category
	Fields      []Field
	// HasContext records whether the annotated method takes a context or
	// cancellation parameter; it is excluded from Fields either way
	HasContext bool
	// ResponseType is nil for void-returning methods
	ResponseType *decl.TypeRef
	Abstract     bool
	// UnsupportedParams lists ref/out-style parameters that cannot be
	// represented as named fields
	UnsupportedParams []string
	Unresolved        bool
	Loc               decl.SourceLocation
}

// Set is the immutable descriptor snapshot one analysis pass operates on.
// Collections are kept sorted by logical name so every downstream stage
// observes a deterministic order.
type Set struct {
	Requests []*RequestDescriptor
	Handlers []*HandlerDescriptor
	Legacy   []*LegacyMethodDescriptor
}

// Sort orders all collections by logical name, breaking ties on the
// declared element name
func (s *Set) Sort() {
	sort.SliceStable(s.Requests, func(i, j int) bool {
		if s.Requests[i].LogicalName != s.Requests[j].LogicalName {
			return s.Requests[i].LogicalName < s.Requests[j].LogicalName
		}
		return s.Requests[i].DeclaredName < s.Requests[j].DeclaredName
	})
	sort.SliceStable(s.Handlers, func(i, j int) bool {
		if s.Handlers[i].LogicalName != s.Handlers[j].LogicalName {
			return s.Handlers[i].LogicalName < s.Handlers[j].LogicalName
		}
		return s.Handlers[i].ServiceName < s.Handlers[j].ServiceName
	})
	sort.SliceStable(s.Legacy, func(i, j int) bool {
		return s.Legacy[i].RequestName < s.Legacy[j].RequestName
	})
}

// RequestByName returns the request descriptor with the given logical name
func (s *Set) RequestByName(name string) (*RequestDescriptor, bool) {
	for _, r := range s.Requests {
		if r.LogicalName == name {
			return r, true
		}
	}
	return nil, false
}

// HandlersFor returns every handler targeting the given request name whose
// category mirrors the request's, in sorted order. Notifications may match
// many; other categories at most one. A handler declared under the wrong
// category never routes; the validator reports it separately.
func (s *Set) HandlersFor(name string, cat Category) []*HandlerDescriptor {
	var out []*HandlerDescriptor
	for _, h := range s.Handlers {
		if h.TargetRequestName == name && h.Category == cat {
			out = append(out, h)
		}
	}
	return out
}
