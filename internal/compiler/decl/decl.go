// Package decl defines the declared-element model that forms the input
// boundary of the mediatorc compiler. Elements describe already-resolved
// program declarations (types and methods) with their annotations, members
// and signatures; mediatorc does not care how they were discovered.
package decl

// SourceLocation tracks the position of a declaration in source code
type SourceLocation struct {
	Line   int `json:"line"`   // Line number (1-indexed)
	Column int `json:"column"` // Column number (1-indexed)
}

// ElementKind represents the kind of declared element
type ElementKind string

const (
	// KindType represents a type declaration (struct, record, class)
	KindType ElementKind = "type"
	// KindMethod represents a method declaration on a type
	KindMethod ElementKind = "method"
)

// TypeRef is a resolved reference to a type
type TypeRef struct {
	// Name is the type's declared name (e.g. "User", "string", "int64")
	Name string `json:"name"`
	// Package is the import path the type lives in; empty for builtins
	Package string `json:"package,omitempty"`
	// Nullable marks an explicitly nullable reference
	Nullable bool `json:"nullable,omitempty"`
	// ValueType marks non-reference types (numerics, bool, structs by value)
	ValueType bool `json:"value_type,omitempty"`
}

// IsString reports whether the reference names the builtin string type
func (t TypeRef) IsString() bool {
	return t.Name == "string" && t.Package == ""
}

// Qualified returns the package-qualified type name for display
func (t TypeRef) Qualified() string {
	if t.Package == "" {
		return t.Name
	}
	return t.Package + "." + t.Name
}

// Attribute is one annotation attached to an element, with its raw payload
type Attribute struct {
	Name string            `json:"name"`
	Args map[string]string `json:"args,omitempty"`
	Loc  SourceLocation    `json:"loc"`
}

// Arg returns the payload value for a key, or "" when absent
func (a Attribute) Arg(key string) string {
	return a.Args[key]
}

// Param is one method or constructor parameter
type Param struct {
	Name string  `json:"name"`
	Type TypeRef `json:"type"`
	// ByRef marks ref/out-style parameters the legacy path cannot represent
	ByRef bool `json:"by_ref,omitempty"`
}

// Method describes one method on a declared type
type Method struct {
	Name     string         `json:"name"`
	Params   []Param        `json:"params,omitempty"`
	Returns  []TypeRef      `json:"returns,omitempty"`
	Static   bool           `json:"static,omitempty"`
	Abstract bool           `json:"abstract,omitempty"`
	Exported bool           `json:"exported"`
	Loc      SourceLocation `json:"loc"`
}

// Property describes one property or field on a declared type
type Property struct {
	Name     string         `json:"name"`
	Type     TypeRef        `json:"type"`
	ReadOnly bool           `json:"read_only,omitempty"`
	Exported bool           `json:"exported"`
	Loc      SourceLocation `json:"loc"`
}

// Element is one declared program element as exposed by the host front-end
type Element struct {
	Kind       ElementKind    `json:"kind"`
	Name       string         `json:"name"`
	Namespace  string         `json:"namespace"`
	Attributes []Attribute    `json:"attributes,omitempty"`
	Loc        SourceLocation `json:"loc"`

	// Type members (Kind == KindType)
	Properties []Property `json:"properties,omitempty"`
	Methods    []Method   `json:"methods,omitempty"`
	// CtorParams holds primary-constructor parameters for positional/record
	// forms; nil means the element is a plain property bag
	CtorParams []Param `json:"ctor_params,omitempty"`

	// Method payload (Kind == KindMethod)
	Method *Method `json:"method,omitempty"`
	// Receiver names the declaring type of a method element
	Receiver string `json:"receiver,omitempty"`

	// Unresolved marks elements whose underlying symbol the front-end could
	// not resolve; they are carried through so the validator can report them
	Unresolved bool `json:"unresolved,omitempty"`
}

// IsPositional reports whether the element declares a primary constructor
func (e *Element) IsPositional() bool {
	return e.Kind == KindType && len(e.CtorParams) > 0
}

// FindMethod returns the first visible instance method with the given name
func (e *Element) FindMethod(name string) (Method, bool) {
	for _, m := range e.Methods {
		if m.Name == name && m.Exported && !m.Static {
			return m, true
		}
	}
	return Method{}, false
}
