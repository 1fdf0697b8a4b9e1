package pipeline

import (
	"strings"
	"testing"

	"github.com/mediatorc/mediatorc/internal/compiler/decl"
	"github.com/mediatorc/mediatorc/internal/compiler/errors"
)

func snapshot() []decl.Element {
	return []decl.Element{
		{
			Kind:      decl.KindType,
			Name:      "GetUserRequest",
			Namespace: "example.com/app/users",
			Attributes: []decl.Attribute{
				{Name: "Query", Args: map[string]string{"name": "GetUserQuery", "response": "example.com/app/users.User"}},
			},
			Properties: []decl.Property{
				{Name: "user_id", Type: decl.TypeRef{Name: "int64", ValueType: true}, Exported: true},
			},
			Loc: decl.SourceLocation{Line: 10, Column: 1},
		},
		{
			Kind:      decl.KindType,
			Name:      "UserService",
			Namespace: "example.com/app/users",
			Attributes: []decl.Attribute{
				{Name: "QueryHandler", Args: map[string]string{"name": "GetUserHandler", "target": "GetUserQuery"}},
			},
			Methods: []decl.Method{
				{
					Name: "GetAsync",
					Params: []decl.Param{
						{Name: "ctx", Type: decl.TypeRef{Name: "Context", Package: "context"}},
						{Name: "req", Type: decl.TypeRef{Name: "GetUserRequest", Package: "example.com/app/users"}},
					},
					Returns:  []decl.TypeRef{{Name: "User", Package: "example.com/app/users"}, {Name: "error"}},
					Exported: true,
				},
			},
			Loc: decl.SourceLocation{Line: 30, Column: 1},
		},
		// Unannotated noise the scanner must drop silently.
		{
			Kind:      decl.KindType,
			Name:      "AuditLog",
			Namespace: "example.com/app/audit",
		},
	}
}

func TestRun_EndToEnd(t *testing.T) {
	res := Run(snapshot(), Options{}, nil)

	if res.Diagnostics.HasErrors() {
		t.Fatalf("unexpected errors: %s", res.Diagnostics)
	}
	if res.OutputNamespace != "example.com/app/users" {
		t.Errorf("output namespace = %q", res.OutputNamespace)
	}
	if len(res.Artifacts) != 4 {
		t.Fatalf("artifacts = %d, want 4", len(res.Artifacts))
	}

	requests := res.Artifacts["requests.gen.go"]
	if !strings.Contains(requests, "type GetUserQuery struct") {
		t.Error("normalized request type missing")
	}
	if !strings.Contains(requests, "UserID int64") {
		t.Error("field not normalized to Go naming")
	}

	adapters := res.Artifacts["adapters.gen.go"]
	if !strings.Contains(adapters, "type GetUserHandlerAdapter struct") {
		t.Error("adapter type missing")
	}
	if !strings.Contains(adapters, "a.service.GetAsync(ctx") {
		t.Error("adapter does not delegate to the resolved method")
	}

	dispatcher := res.Artifacts["dispatcher.gen.go"]
	if !strings.Contains(dispatcher, "case *GetUserQuery:") {
		t.Error("dispatcher misses the query branch")
	}

	registration := res.Artifacts["registration.gen.go"]
	if !strings.Contains(registration, "func NewDispatcher(") {
		t.Error("registration entry point missing")
	}
}

func TestRun_NamespaceOverride(t *testing.T) {
	res := Run(snapshot(), Options{OutputNamespace: "example.com/app/gen/mediator"}, nil)

	if res.OutputNamespace != "example.com/app/gen/mediator" {
		t.Errorf("override ignored: %q", res.OutputNamespace)
	}
	if !strings.Contains(res.Artifacts["requests.gen.go"], "package mediator") {
		t.Error("package clause does not follow the override")
	}
}

func TestRun_Deterministic(t *testing.T) {
	first := Run(snapshot(), Options{}, nil)
	second := Run(snapshot(), Options{}, nil)

	if len(first.Artifacts) != len(second.Artifacts) {
		t.Fatal("artifact counts differ between runs")
	}
	for name, code := range first.Artifacts {
		if second.Artifacts[name] != code {
			t.Errorf("artifact %s differs between runs", name)
		}
	}
	if first.Diagnostics.Error() != second.Diagnostics.Error() {
		t.Error("diagnostics differ between runs")
	}
}

func TestRun_ConflictingRolesExcluded(t *testing.T) {
	elements := append(snapshot(), decl.Element{
		Kind:      decl.KindType,
		Name:      "BrokenRequest",
		Namespace: "example.com/app/users",
		Attributes: []decl.Attribute{
			{Name: "Query", Args: map[string]string{"name": "BrokenQuery", "response": "example.com/app/users.User"}},
			{Name: "Command", Args: map[string]string{"name": "BrokenQuery"}},
		},
		Loc: decl.SourceLocation{Line: 50, Column: 1},
	})

	res := Run(elements, Options{}, nil)

	if !res.Diagnostics.HasErrors() {
		t.Fatal("expected a duplicate-role error")
	}
	found := false
	for _, d := range res.Diagnostics {
		if d.Code == errors.ErrDuplicateRole {
			found = true
		}
	}
	if !found {
		t.Error("MED001 not raised")
	}

	// The conflicting descriptor is discarded; the rest still generates.
	for name, code := range res.Artifacts {
		if strings.Contains(code, "BrokenQuery") {
			t.Errorf("discarded request leaked into %s", name)
		}
	}
	if !strings.Contains(res.Artifacts["requests.gen.go"], "GetUserQuery") {
		t.Error("healthy descriptors stopped generating")
	}
}
