// Package validate cross-checks the descriptor collections produced by the
// model builder. Checks run in a fixed order and are independent of each
// other, so the same input set always yields the same diagnostics in the
// same order. Errors discard only the offending descriptor; warnings leave
// the descriptor in place and degrade generation to best-effort.
package validate

import (
	"github.com/mediatorc/mediatorc/internal/compiler/errors"
	"github.com/mediatorc/mediatorc/internal/compiler/model"
)

// Result carries the surviving descriptors and every diagnostic raised.
// Valid legacy descriptors are already expanded into their request/handler
// pairs and merged into the main collections.
type Result struct {
	Valid       *model.Set
	Diagnostics errors.DiagnosticList
}

// Validator applies the ordered rule set to one descriptor snapshot
type Validator struct {
	diags errors.DiagnosticList
}

// New creates a validator
func New() *Validator {
	return &Validator{diags: make(errors.DiagnosticList, 0)}
}

// Validate runs every check against the snapshot and returns the surviving
// descriptors plus accumulated diagnostics. The input set must be sorted;
// model.BuildSet guarantees that.
func (v *Validator) Validate(set *model.Set) *Result {
	valid := &model.Set{}

	// Per-descriptor checks: role uniqueness, name presence, symbol
	// resolution, method existence. Each failure discards only the
	// offending descriptor.
	for _, r := range set.Requests {
		if v.checkRequest(r) {
			valid.Requests = append(valid.Requests, r)
		}
	}
	for _, h := range set.Handlers {
		if v.checkHandler(h) {
			valid.Handlers = append(valid.Handlers, h)
		}
	}
	for _, l := range set.Legacy {
		if v.checkLegacy(l) {
			valid.Legacy = append(valid.Legacy, l)
			req, h := l.Derive()
			valid.Requests = append(valid.Requests, req)
			valid.Handlers = append(valid.Handlers, h)
		}
	}
	valid.Sort()

	// Cross-descriptor checks over the survivors
	v.checkUniqueRequestNames(valid)
	v.checkOrphanHandlers(valid)
	v.checkUnhandledRequests(valid)
	v.checkConfigurationConflicts(valid)

	return &Result{Valid: valid, Diagnostics: v.diags}
}

func (v *Validator) checkRequest(r *model.RequestDescriptor) bool {
	if len(r.Roles) > 1 {
		v.diags = append(v.diags, errors.NewDuplicateRole(r.DeclaredName, r.Loc, roleNames(r.Roles)))
		return false
	}
	if r.LogicalName == "" {
		v.diags = append(v.diags, errors.NewMissingName(r.DeclaredName, r.Loc))
		return false
	}
	if r.Unresolved {
		v.diags = append(v.diags, errors.NewSymbolUnresolved(r.DeclaredName, r.Loc))
		return false
	}
	return true
}

func (v *Validator) checkHandler(h *model.HandlerDescriptor) bool {
	if len(h.Roles) > 1 {
		v.diags = append(v.diags, errors.NewDuplicateRole(h.ServiceName, h.Loc, roleNames(h.Roles)))
		return false
	}
	if h.LogicalName == "" {
		v.diags = append(v.diags, errors.NewMissingName(h.ServiceName, h.Loc))
		return false
	}
	if h.Unresolved {
		v.diags = append(v.diags, errors.NewSymbolUnresolved(h.ServiceName, h.Loc))
		return false
	}
	if h.CandidateMethod == "" {
		// Generation of this handler is skipped; others are unaffected
		v.diags = append(v.diags, errors.NewMissingHandlerMethod(h.ServiceName, h.Loc, string(h.Category)))
		return false
	}
	return true
}

func (v *Validator) checkLegacy(l *model.LegacyMethodDescriptor) bool {
	if l.Unresolved {
		v.diags = append(v.diags, errors.NewSymbolUnresolved(l.ServiceName+"."+l.MethodName, l.Loc))
		return false
	}
	if l.Abstract {
		v.diags = append(v.diags, errors.NewAbstractLegacyMethod(l.ServiceName+"."+l.MethodName, l.Loc))
		return false
	}
	if len(l.UnsupportedParams) > 0 {
		v.diags = append(v.diags, errors.NewUnsupportedParameters(l.ServiceName+"."+l.MethodName, l.Loc, l.UnsupportedParams))
		return false
	}
	return true
}

// checkUniqueRequestNames warns on duplicate logical names. The first
// declaration wins; projection skips the rest so routing stays unambiguous.
func (v *Validator) checkUniqueRequestNames(set *model.Set) {
	seen := make(map[string]bool)
	for _, r := range set.Requests {
		if seen[r.LogicalName] {
			v.diags = append(v.diags, errors.NewConflictingConfiguration(
				r.DeclaredName, r.Loc,
				"logical name '"+r.LogicalName+"' is already declared; this declaration is ignored"))
			r.Shadowed = true
			continue
		}
		seen[r.LogicalName] = true
	}
}

// checkOrphanHandlers warns on handlers whose target request does not
// exist; the dispatcher simply omits their routing
func (v *Validator) checkOrphanHandlers(set *model.Set) {
	for _, h := range set.Handlers {
		if h.TargetRequestName == "" {
			v.diags = append(v.diags, errors.NewOrphanHandler(h.LogicalName, h.Loc, "<unset>"))
			continue
		}
		if _, ok := set.RequestByName(h.TargetRequestName); !ok {
			v.diags = append(v.diags, errors.NewOrphanHandler(h.LogicalName, h.Loc, h.TargetRequestName))
		}
	}
}

// checkUnhandledRequests warns on requests with no matching handler; the
// dispatcher still emits an explicit failure branch for them, never a
// silent drop
func (v *Validator) checkUnhandledRequests(set *model.Set) {
	for _, r := range set.Requests {
		if r.Shadowed {
			continue
		}
		if len(set.HandlersFor(r.LogicalName, r.Category)) == 0 {
			v.diags = append(v.diags, errors.NewUnhandledRequest(r.LogicalName, r.Loc))
		}
	}
}

// checkConfigurationConflicts warns on incompatible option combinations;
// generation proceeds with best-effort defaults
func (v *Validator) checkConfigurationConflicts(set *model.Set) {
	for _, r := range set.Requests {
		if r.Category == model.CategoryNotification && r.ResponseType != nil {
			v.diags = append(v.diags, errors.NewConflictingConfiguration(
				r.DeclaredName, r.Loc,
				"notifications cannot declare a response type; it will be ignored"))
		}
		if r.Category != model.CategoryNotification && len(set.HandlersFor(r.LogicalName, r.Category)) > 1 {
			v.diags = append(v.diags, errors.NewConflictingConfiguration(
				r.DeclaredName, r.Loc,
				"multiple handlers target '"+r.LogicalName+"'; only the first is routed"))
		}
	}
	for _, h := range set.Handlers {
		if r, ok := set.RequestByName(h.TargetRequestName); ok && r.Category != h.Category {
			v.diags = append(v.diags, errors.NewConflictingConfiguration(
				h.LogicalName, h.Loc,
				"handler category '"+string(h.Category)+"' does not mirror request '"+r.LogicalName+"' category '"+string(r.Category)+"'; the handler is not routed"))
		}
		if h.PublisherRef != "" && h.Category != model.CategoryCommand {
			v.diags = append(v.diags, errors.NewConflictingConfiguration(
				h.LogicalName, h.Loc,
				"publisher references are only meaningful for command handlers"))
		}
	}
}

func roleNames(roles []model.Role) []string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return names
}
