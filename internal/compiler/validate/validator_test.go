package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediatorc/mediatorc/internal/compiler/decl"
	"github.com/mediatorc/mediatorc/internal/compiler/errors"
	"github.com/mediatorc/mediatorc/internal/compiler/model"
)

func request(name string, cat model.Category) *model.RequestDescriptor {
	return &model.RequestDescriptor{
		DeclaredName: name + "Decl",
		LogicalName:  name,
		Category:     cat,
		Roles:        []model.Role{model.RoleQuery},
	}
}

func handler(name, target string, cat model.Category) *model.HandlerDescriptor {
	return &model.HandlerDescriptor{
		ServiceName:       name + "Service",
		LogicalName:       name,
		Category:          cat,
		TargetRequestName: target,
		CandidateMethod:   "HandleAsync",
		Roles:             []model.Role{model.RoleQueryHandler},
	}
}

func validate(set *model.Set) *Result {
	set.Sort()
	return New().Validate(set)
}

func codes(diags errors.DiagnosticList) []errors.Code {
	out := make([]errors.Code, len(diags))
	for i, d := range diags {
		out[i] = d.Code
	}
	return out
}

func TestValidate_CleanPair(t *testing.T) {
	res := validate(&model.Set{
		Requests: []*model.RequestDescriptor{request("GetUserQuery", model.CategoryQuery)},
		Handlers: []*model.HandlerDescriptor{handler("GetUserHandler", "GetUserQuery", model.CategoryQuery)},
	})

	assert.Empty(t, res.Diagnostics)
	assert.Len(t, res.Valid.Requests, 1)
	assert.Len(t, res.Valid.Handlers, 1)
}

func TestValidate_DuplicateRoleDiscards(t *testing.T) {
	r := request("GetUserQuery", model.CategoryQuery)
	r.Roles = []model.Role{model.RoleQuery, model.RoleCommand}

	res := validate(&model.Set{Requests: []*model.RequestDescriptor{r}})

	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, errors.ErrDuplicateRole, res.Diagnostics[0].Code)
	assert.Empty(t, res.Valid.Requests, "conflicting element must be excluded from projection")
}

func TestValidate_MissingNameDiscards(t *testing.T) {
	r := request("", model.CategoryQuery)

	res := validate(&model.Set{Requests: []*model.RequestDescriptor{r}})

	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, errors.ErrMissingName, res.Diagnostics[0].Code)
	assert.Empty(t, res.Valid.Requests)
}

func TestValidate_UnresolvedSymbolDiscards(t *testing.T) {
	r := request("GetUserQuery", model.CategoryQuery)
	r.Unresolved = true

	res := validate(&model.Set{Requests: []*model.RequestDescriptor{r}})

	require.NotEmpty(t, res.Diagnostics)
	assert.Equal(t, errors.ErrSymbolUnresolved, res.Diagnostics[0].Code)
}

func TestValidate_MissingMethodSkipsHandlerOnly(t *testing.T) {
	h1 := handler("BrokenHandler", "AQuery", model.CategoryQuery)
	h1.CandidateMethod = ""
	h2 := handler("GoodHandler", "BQuery", model.CategoryQuery)

	res := validate(&model.Set{
		Requests: []*model.RequestDescriptor{
			request("AQuery", model.CategoryQuery),
			request("BQuery", model.CategoryQuery),
		},
		Handlers: []*model.HandlerDescriptor{h1, h2},
	})

	assert.Contains(t, codes(res.Diagnostics), errors.ErrMissingHandlerMethod)
	// The broken handler is skipped; its request is now unhandled, the
	// other pair is untouched
	assert.Contains(t, codes(res.Diagnostics), errors.WarnUnhandledRequest)
	assert.Len(t, res.Valid.Handlers, 1)
	assert.Len(t, res.Valid.Requests, 2)
}

func TestValidate_OrphanHandlerWarns(t *testing.T) {
	h := handler("LostHandler", "NoSuchQuery", model.CategoryQuery)

	res := validate(&model.Set{Handlers: []*model.HandlerDescriptor{h}})

	require.NotEmpty(t, res.Diagnostics)
	assert.Equal(t, errors.WarnOrphanHandler, res.Diagnostics[0].Code)
	assert.Equal(t, errors.SeverityWarning, res.Diagnostics[0].Severity)
	// Warnings never discard
	assert.Len(t, res.Valid.Handlers, 1)
}

func TestValidate_UnhandledRequestWarns(t *testing.T) {
	res := validate(&model.Set{
		Requests: []*model.RequestDescriptor{request("LonelyQuery", model.CategoryQuery)},
	})

	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, errors.WarnUnhandledRequest, res.Diagnostics[0].Code)
	assert.Len(t, res.Valid.Requests, 1, "unhandled requests still project; the dispatcher emits a failure branch")
}

func TestValidate_NotificationFanOutIsNotAConflict(t *testing.T) {
	res := validate(&model.Set{
		Requests: []*model.RequestDescriptor{request("UserCreated", model.CategoryNotification)},
		Handlers: []*model.HandlerDescriptor{
			handler("AuditHandler", "UserCreated", model.CategoryNotification),
			handler("EmailHandler", "UserCreated", model.CategoryNotification),
		},
	})

	assert.Empty(t, res.Diagnostics, "many handlers per notification is the point of fan-out")
}

func TestValidate_MultipleQueryHandlersConflict(t *testing.T) {
	res := validate(&model.Set{
		Requests: []*model.RequestDescriptor{request("GetUserQuery", model.CategoryQuery)},
		Handlers: []*model.HandlerDescriptor{
			handler("FirstHandler", "GetUserQuery", model.CategoryQuery),
			handler("SecondHandler", "GetUserQuery", model.CategoryQuery),
		},
	})

	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, errors.WarnConflictingConfiguration, res.Diagnostics[0].Code)
	assert.Len(t, res.Valid.Handlers, 2, "warnings do not discard; routing picks the first")
}

func TestValidate_NotificationWithResponseConflict(t *testing.T) {
	r := request("UserCreated", model.CategoryNotification)
	r.ResponseType = &decl.TypeRef{Name: "User"}

	res := validate(&model.Set{
		Requests: []*model.RequestDescriptor{r},
		Handlers: []*model.HandlerDescriptor{handler("AuditHandler", "UserCreated", model.CategoryNotification)},
	})

	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, errors.WarnConflictingConfiguration, res.Diagnostics[0].Code)
}

func TestValidate_CategoryMismatchWarns(t *testing.T) {
	h := handler("DeleteUserHandler", "GetUserQuery", model.CategoryCommand)

	res := validate(&model.Set{
		Requests: []*model.RequestDescriptor{request("GetUserQuery", model.CategoryQuery)},
		Handlers: []*model.HandlerDescriptor{h},
	})

	// The handler does not mirror its target's category: it is reported and
	// never routed, and the query is reported as unhandled
	assert.Contains(t, codes(res.Diagnostics), errors.WarnConflictingConfiguration)
	assert.Contains(t, codes(res.Diagnostics), errors.WarnUnhandledRequest)
	// Warnings never discard
	assert.Len(t, res.Valid.Handlers, 1)
	assert.Empty(t, res.Valid.HandlersFor("GetUserQuery", model.CategoryQuery))
}

func TestValidate_PublisherOnNonCommandConflict(t *testing.T) {
	h := handler("GetUserHandler", "GetUserQuery", model.CategoryQuery)
	h.PublisherRef = "EventBus"

	res := validate(&model.Set{
		Requests: []*model.RequestDescriptor{request("GetUserQuery", model.CategoryQuery)},
		Handlers: []*model.HandlerDescriptor{h},
	})

	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, errors.WarnConflictingConfiguration, res.Diagnostics[0].Code)
}

func TestValidate_DuplicateLogicalNameShadows(t *testing.T) {
	a := request("GetUserQuery", model.CategoryQuery)
	b := request("GetUserQuery", model.CategoryQuery)
	b.DeclaredName = "ZOtherDecl"

	res := validate(&model.Set{
		Requests: []*model.RequestDescriptor{a, b},
		Handlers: []*model.HandlerDescriptor{handler("GetUserHandler", "GetUserQuery", model.CategoryQuery)},
	})

	assert.Contains(t, codes(res.Diagnostics), errors.WarnConflictingConfiguration)
	shadowed := 0
	for _, r := range res.Valid.Requests {
		if r.Shadowed {
			shadowed++
		}
	}
	assert.Equal(t, 1, shadowed, "exactly one of the duplicates is shadowed")
}

func TestValidate_LegacyDerivation(t *testing.T) {
	l := &model.LegacyMethodDescriptor{
		ServiceName: "OrderService",
		MethodName:  "Submit",
		RequestName: "OrderService_Submit",
		HandlerName: "OrderService_SubmitHandler",
		Category:    model.CategoryCommand,
	}

	res := validate(&model.Set{Legacy: []*model.LegacyMethodDescriptor{l}})

	assert.Empty(t, res.Diagnostics)
	require.Len(t, res.Valid.Requests, 1)
	require.Len(t, res.Valid.Handlers, 1)
	assert.True(t, res.Valid.Handlers[0].Legacy)
}

func TestValidate_LegacyAbstractDiscards(t *testing.T) {
	l := &model.LegacyMethodDescriptor{
		ServiceName: "S", MethodName: "M",
		RequestName: "S_M", HandlerName: "S_MHandler",
		Category: model.CategoryCommand, Abstract: true,
	}

	res := validate(&model.Set{Legacy: []*model.LegacyMethodDescriptor{l}})

	require.NotEmpty(t, res.Diagnostics)
	assert.Equal(t, errors.ErrAbstractLegacyMethod, res.Diagnostics[0].Code)
	assert.Empty(t, res.Valid.Requests)
}

func TestValidate_Deterministic(t *testing.T) {
	build := func() *model.Set {
		return &model.Set{
			Requests: []*model.RequestDescriptor{
				request("BQuery", model.CategoryQuery),
				request("AQuery", model.CategoryQuery),
			},
			Handlers: []*model.HandlerDescriptor{
				handler("XHandler", "Missing1", model.CategoryQuery),
				handler("WHandler", "Missing2", model.CategoryQuery),
			},
		}
	}

	first := validate(build())
	second := validate(build())

	require.Equal(t, len(first.Diagnostics), len(second.Diagnostics))
	for i := range first.Diagnostics {
		assert.Equal(t, first.Diagnostics[i].Message, second.Diagnostics[i].Message)
	}
}
