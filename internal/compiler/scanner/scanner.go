// Package scanner filters declared elements down to the ones carrying
// recognized mediator role annotations. It does no semantic validation; an
// element with conflicting roles passes through untouched and is left for
// the validator.
package scanner

import (
	"github.com/mediatorc/mediatorc/internal/compiler/decl"
	"github.com/mediatorc/mediatorc/internal/compiler/model"
)

// Result holds the two filtered element sequences a scan produces
type Result struct {
	// Types are type elements carrying at least one type-level role
	Types []*decl.Element
	// Methods are method elements carrying the legacy retrofit annotation
	Methods []*decl.Element
}

// Scan partitions annotated elements by kind. Elements without any
// recognized role are dropped silently; unresolvable elements are kept so
// the model builder can report them.
func Scan(elements []decl.Element) *Result {
	res := &Result{}
	for i := range elements {
		el := &elements[i]
		switch el.Kind {
		case decl.KindType:
			if hasTypeRole(el) {
				res.Types = append(res.Types, el)
			}
		case decl.KindMethod:
			if hasLegacyRole(el) {
				res.Methods = append(res.Methods, el)
			}
		}
	}
	return res
}

func hasTypeRole(el *decl.Element) bool {
	for _, a := range el.Attributes {
		if r, ok := model.ParseRole(a.Name); ok && !r.IsLegacy() {
			return true
		}
	}
	return false
}

func hasLegacyRole(el *decl.Element) bool {
	for _, a := range el.Attributes {
		if r, ok := model.ParseRole(a.Name); ok && r.IsLegacy() {
			return true
		}
	}
	return false
}
