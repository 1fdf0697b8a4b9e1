package codegen

import (
	"github.com/mediatorc/mediatorc/internal/compiler/decl"
	"github.com/mediatorc/mediatorc/internal/compiler/model"
)

// goType renders a type reference as a Go type expression, registering the
// import it needs. Package-level reference types render as pointers, so
// both nullability and the non-nil assertion hint are expressible; nullable
// value types also become pointers.
func (g *Generator) goType(t *decl.TypeRef) string {
	if t == nil || t.Name == "any" && t.Package == "" {
		return "any"
	}

	name := t.Name
	if qual := g.addImport(t.Package); qual != "" {
		name = qual + "." + name
	}
	if t.Package != "" && !t.ValueType {
		return "*" + name
	}
	if t.Nullable && t.ValueType {
		return "*" + name
	}
	return name
}

// nilable reports whether a type's Go rendering admits nil, which decides
// whether a non-nil assertion guard can be emitted for it
func nilable(t *decl.TypeRef) bool {
	if t == nil {
		return false
	}
	if t.Package != "" && !t.ValueType {
		return true
	}
	return t.Name == "any" ||
		len(t.Name) > 0 && (t.Name[0] == '*' || t.Name[0] == '[') ||
		len(t.Name) > 3 && t.Name[:4] == "map["
}

// runtimeQual registers the runtime support import and returns its qualifier
func (g *Generator) runtimeQual() string {
	return g.addImport(RuntimeImport)
}

// kindConst maps a category to its runtime kind constant
func kindConst(cat model.Category) string {
	switch cat {
	case model.CategoryQuery:
		return "KindQuery"
	case model.CategoryCommand:
		return "KindCommand"
	case model.CategoryNotification:
		return "KindNotification"
	case model.CategoryStreamQuery:
		return "KindStreamQuery"
	}
	return "KindQuery"
}

// requestType is the name of the normalized request type for a descriptor
func requestType(r *model.RequestDescriptor) string {
	return r.LogicalName
}

// adapterType is the name of the generated adapter for a handler
func adapterType(h *model.HandlerDescriptor) string {
	return h.LogicalName + "Adapter"
}

// adapterField is the dispatcher field holding an adapter reference
func adapterField(h *model.HandlerDescriptor) string {
	name := h.LogicalName
	return lowerFirst(name) + "Adapter"
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]|0x20) + s[1:]
}

// projectedRequests returns the requests that make it into generated code:
// valid, not shadowed by a name conflict
func projectedRequests(set *model.Set) []*model.RequestDescriptor {
	var out []*model.RequestDescriptor
	for _, r := range set.Requests {
		if !r.Shadowed {
			out = append(out, r)
		}
	}
	return out
}

// routedPair is one (request, handler) routing branch
type routedPair struct {
	Request *model.RequestDescriptor
	Handler *model.HandlerDescriptor
}

// routedPairs returns the routable (request, handler) associations for a
// category, in request order. Orphan and category-mismatched handlers have
// no pair and are omitted; non-notification requests route only to their
// first handler.
func routedPairs(set *model.Set, cat model.Category) []routedPair {
	var out []routedPair
	for _, r := range projectedRequests(set) {
		if r.Category != cat {
			continue
		}
		handlers := set.HandlersFor(r.LogicalName, r.Category)
		if len(handlers) == 0 {
			continue
		}
		if cat == model.CategoryNotification {
			for _, h := range handlers {
				out = append(out, routedPair{Request: r, Handler: h})
			}
			continue
		}
		out = append(out, routedPair{Request: r, Handler: handlers[0]})
	}
	return out
}

// commandHasResult distinguishes the two command routing functions
func commandHasResult(r *model.RequestDescriptor) bool {
	return r.Category == model.CategoryCommand && r.ResponseType != nil
}
