package model

import "github.com/mediatorc/mediatorc/internal/compiler/decl"

// methodCandidates lists the conventional processing-method names tried for
// each handler category, in resolution order. The first visible method with
// a compatible parameter shape wins; the list is never consulted past the
// first hit, so ties cannot occur.
var methodCandidates = map[Category][]string{
	CategoryQuery: {
		"GetAsync", "QueryAsync", "FetchAsync", "FindAsync", "HandleAsync", "Handle",
	},
	CategoryCommand: {
		"CreateAsync", "UpdateAsync", "DeleteAsync", "ExecuteAsync", "ProcessAsync", "HandleAsync", "Handle",
	},
	CategoryNotification: {
		"OnEventAsync", "ProcessAsync", "NotifyAsync", "HandleAsync", "Handle",
	},
	CategoryStreamQuery: {
		"StreamAsync", "QueryAsync", "FetchAsync", "HandleAsync", "Handle",
	},
}

// ResolveCandidateMethod finds the conventional processing method on a
// service shape for the given category. It is a pure function over the
// service's visible methods; no resolution means the handler cannot be
// generated and the validator reports it.
func ResolveCandidateMethod(service *decl.Element, category Category) (string, bool) {
	for _, name := range methodCandidates[category] {
		m, ok := service.FindMethod(name)
		if !ok {
			continue
		}
		if compatibleShape(m) {
			return name, true
		}
	}
	return "", false
}

// compatibleShape accepts a (ctx, request) or (request) parameter list. A
// leading context parameter is the conventional Go form; a bare request is
// tolerated for synchronous handlers.
func compatibleShape(m decl.Method) bool {
	switch len(m.Params) {
	case 1:
		return !isContextParam(m.Params[0])
	case 2:
		return isContextParam(m.Params[0]) && !isContextParam(m.Params[1])
	}
	return false
}

func isContextParam(p decl.Param) bool {
	return p.Type.Name == "Context" && p.Type.Package == "context"
}
