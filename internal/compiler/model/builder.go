package model

import (
	"strings"

	"github.com/mediatorc/mediatorc/internal/compiler/decl"
	utilstrings "github.com/mediatorc/mediatorc/internal/util/strings"
)

// Annotation payload keys recognized by the builder
const (
	argName      = "name"
	argResponse  = "response"
	argTarget    = "target"
	argPublisher = "publisher"
	argCategory  = "category"
)

// BuildResult carries the descriptors materialized from one element. At most
// one of the three is set; nil result means the element carried no
// recognized role.
type BuildResult struct {
	Request *RequestDescriptor
	Handler *HandlerDescriptor
	Legacy  *LegacyMethodDescriptor
}

// BuildSet materializes descriptors for every scanned element. Elements with
// conflicting or incomplete annotations still get partial descriptors so the
// validator can point back at them; nothing is rejected here.
func BuildSet(types, methods []*decl.Element) *Set {
	set := &Set{}
	for _, el := range types {
		res := BuildType(el)
		if res == nil {
			continue
		}
		if res.Request != nil {
			set.Requests = append(set.Requests, res.Request)
		}
		if res.Handler != nil {
			set.Handlers = append(set.Handlers, res.Handler)
		}
	}
	for _, el := range methods {
		res := BuildMethod(el)
		if res == nil {
			continue
		}
		if res.Legacy != nil {
			set.Legacy = append(set.Legacy, res.Legacy)
		}
	}
	set.Sort()
	return set
}

// BuildType materializes a request or handler descriptor from an annotated
// type element. The first recognized role decides the descriptor shape; all
// recognized roles are recorded for the validator's uniqueness check.
func BuildType(el *decl.Element) *BuildResult {
	var roles []Role
	var attrs []decl.Attribute
	for _, a := range el.Attributes {
		if r, ok := ParseRole(a.Name); ok && !r.IsLegacy() {
			roles = append(roles, r)
			attrs = append(attrs, a)
		}
	}
	if len(roles) == 0 {
		return nil
	}

	primary := roles[0]
	attr := attrs[0]

	if primary.IsHandler() {
		h := &HandlerDescriptor{
			ServiceName:       el.Name,
			Namespace:         el.Namespace,
			LogicalName:       attr.Arg(argName),
			Category:          primary.Category(),
			TargetRequestName: attr.Arg(argTarget),
			PublisherRef:      attr.Arg(argPublisher),
			Roles:             roles,
			Unresolved:        el.Unresolved,
			Loc:               el.Loc,
		}
		if name, ok := ResolveCandidateMethod(el, h.Category); ok {
			h.CandidateMethod = name
			if m, found := el.FindMethod(name); found && len(m.Params) > 0 {
				h.HasContext = isContextParam(m.Params[0])
			}
		}
		return &BuildResult{Handler: h}
	}

	r := &RequestDescriptor{
		DeclaredName: el.Name,
		Namespace:    el.Namespace,
		LogicalName:  attr.Arg(argName),
		Category:     primary.Category(),
		ResponseType: responseType(attr, primary.Category()),
		Fields:       extractFields(el),
		Positional:   el.IsPositional(),
		Roles:        roles,
		Unresolved:   el.Unresolved,
		Loc:          el.Loc,
	}
	return &BuildResult{Request: r}
}

// BuildMethod materializes a legacy retrofit descriptor from an annotated
// method element. The request/handler pair it implies is derived later, once
// the validator has accepted it.
func BuildMethod(el *decl.Element) *BuildResult {
	var attr *decl.Attribute
	for i, a := range el.Attributes {
		if r, ok := ParseRole(a.Name); ok && r.IsLegacy() {
			attr = &el.Attributes[i]
			break
		}
	}
	if attr == nil || el.Method == nil {
		return nil
	}

	m := el.Method
	l := &LegacyMethodDescriptor{
		ServiceName: el.Receiver,
		MethodName:  m.Name,
		Namespace:   el.Namespace,
		Category:    legacyCategory(attr, m),
		Abstract:    m.Abstract,
		Unresolved:  el.Unresolved,
		Loc:         el.Loc,
	}

	base := el.Receiver + "_" + m.Name
	l.RequestName = attr.Arg(argName)
	if l.RequestName == "" {
		l.RequestName = base
	}
	l.HandlerName = l.RequestName + "Handler"

	for _, p := range m.Params {
		if isContextParam(p) {
			l.HasContext = true
			continue
		}
		if p.ByRef {
			l.UnsupportedParams = append(l.UnsupportedParams, p.Name)
			continue
		}
		l.Fields = append(l.Fields, Field{
			Name:         utilstrings.ToPascalCase(p.Name),
			DeclaredName: p.Name,
			Type:         p.Type,
			Default:      defaultHint(p.Type),
		})
	}

	if rt := legacyResponse(m); rt != nil {
		l.ResponseType = rt
	}
	return &BuildResult{Legacy: l}
}

// Derive expands a valid legacy descriptor into the request/handler pair it
// implies, merged into the same collections as the declared ones before
// projection.
func (l *LegacyMethodDescriptor) Derive() (*RequestDescriptor, *HandlerDescriptor) {
	req := &RequestDescriptor{
		DeclaredName: l.RequestName,
		Namespace:    l.Namespace,
		LogicalName:  l.RequestName,
		Category:     l.Category,
		ResponseType: l.ResponseType,
		Fields:       l.Fields,
		Positional:   true,
		Roles:        []Role{RoleRequestHandler},
		Loc:          l.Loc,
	}
	if req.ResponseType == nil && l.Category == CategoryQuery {
		req.ResponseType = &decl.TypeRef{Name: "any"}
	}
	h := &HandlerDescriptor{
		ServiceName:       l.ServiceName,
		Namespace:         l.Namespace,
		LogicalName:       l.HandlerName,
		Category:          l.Category,
		TargetRequestName: l.RequestName,
		CandidateMethod:   l.MethodName,
		HasContext:        l.HasContext,
		Legacy:            true,
		Roles:             []Role{RoleRequestHandler},
		Loc:               l.Loc,
	}
	return req, h
}

// extractFields pulls projected fields from a positional constructor when
// one exists, otherwise from the element's exported read/write properties.
func extractFields(el *decl.Element) []Field {
	var fields []Field
	if el.IsPositional() {
		for _, p := range el.CtorParams {
			fields = append(fields, Field{
				Name:         utilstrings.ToPascalCase(p.Name),
				DeclaredName: p.Name,
				Type:         p.Type,
				Default:      defaultHint(p.Type),
			})
		}
		return fields
	}
	for _, p := range el.Properties {
		if !p.Exported || p.ReadOnly {
			continue
		}
		fields = append(fields, Field{
			Name:         utilstrings.ToPascalCase(p.Name),
			DeclaredName: p.Name,
			Type:         p.Type,
			Default:      defaultHint(p.Type),
		})
	}
	return fields
}

// defaultHint picks the default-initializer for a field: strings always get
// "", other non-nullable reference types get a non-nil assertion marker,
// value types get nothing
func defaultHint(t decl.TypeRef) DefaultHint {
	if t.IsString() {
		return DefaultEmptyString
	}
	if !t.ValueType && !t.Nullable {
		return DefaultNotNil
	}
	return DefaultNone
}

// responseType reads the explicit response type from the annotation payload.
// Queries and stream queries fall back to an opaque placeholder when the
// payload omits it; commands legitimately have none. A response declared on
// a notification is kept so the validator can flag it.
func responseType(attr decl.Attribute, cat Category) *decl.TypeRef {
	raw := attr.Arg(argResponse)
	if raw != "" {
		return parseTypeRef(raw)
	}
	if cat == CategoryQuery || cat == CategoryStreamQuery {
		return &decl.TypeRef{Name: "any"}
	}
	return nil
}

// legacyCategory infers the retrofit category: an explicit payload wins,
// otherwise a value-returning method is a query and a void one a command
func legacyCategory(attr *decl.Attribute, m *decl.Method) Category {
	switch attr.Arg(argCategory) {
	case "query":
		return CategoryQuery
	case "command":
		return CategoryCommand
	case "notification":
		return CategoryNotification
	case "stream_query":
		return CategoryStreamQuery
	}
	if legacyResponse(m) != nil {
		return CategoryQuery
	}
	return CategoryCommand
}

// legacyResponse infers the response type from a method's return shape,
// ignoring a trailing error return
func legacyResponse(m *decl.Method) *decl.TypeRef {
	for _, r := range m.Returns {
		if r.Name == "error" && r.Package == "" {
			continue
		}
		rt := r
		return &rt
	}
	return nil
}

// parseTypeRef splits a package-qualified type name from an annotation
// payload into a resolved reference
func parseTypeRef(raw string) *decl.TypeRef {
	if idx := strings.LastIndex(raw, "."); idx > 0 {
		return &decl.TypeRef{Name: raw[idx+1:], Package: raw[:idx]}
	}
	return &decl.TypeRef{Name: raw}
}
