package decl

import (
	"strings"
	"testing"
)

const sampleManifest = `{
  "module": "example.com/app",
  "elements": [
    {
      "kind": "type",
      "name": "GetUserRequest",
      "namespace": "example.com/app/users",
      "attributes": [
        {"name": "Query", "args": {"name": "GetUserQuery", "response": "example.com/app/users.User"}, "loc": {"line": 3, "column": 1}}
      ],
      "properties": [
        {"name": "user_id", "type": {"name": "int64", "value_type": true}, "exported": true, "loc": {"line": 4, "column": 2}}
      ],
      "loc": {"line": 3, "column": 1}
    },
    {
      "kind": "method",
      "name": "OrderService.Submit",
      "namespace": "example.com/app/orders",
      "receiver": "OrderService",
      "attributes": [{"name": "RequestHandler", "loc": {"line": 20, "column": 1}}],
      "method": {
        "name": "Submit",
        "params": [{"name": "order_id", "type": {"name": "int64", "value_type": true}}],
        "returns": [{"name": "error"}],
        "exported": true,
        "loc": {"line": 20, "column": 1}
      },
      "loc": {"line": 20, "column": 1}
    }
  ]
}`

func TestParseManifest(t *testing.T) {
	m, err := ParseManifest([]byte(sampleManifest))
	if err != nil {
		t.Fatalf("ParseManifest failed: %v", err)
	}

	if m.Module != "example.com/app" {
		t.Errorf("module = %q", m.Module)
	}
	if len(m.Elements) != 2 {
		t.Fatalf("elements = %d, want 2", len(m.Elements))
	}

	el := m.Elements[0]
	if el.Kind != KindType || el.Name != "GetUserRequest" {
		t.Errorf("element 0 = %+v", el)
	}
	if el.Attributes[0].Arg("response") != "example.com/app/users.User" {
		t.Errorf("attribute payload = %+v", el.Attributes[0])
	}
	if el.Loc.Line != 3 {
		t.Errorf("loc = %+v", el.Loc)
	}

	me := m.Elements[1]
	if me.Kind != KindMethod || me.Method == nil || me.Method.Name != "Submit" {
		t.Errorf("method element = %+v", me)
	}
}

func TestParseManifest_UnknownKind(t *testing.T) {
	_, err := ParseManifest([]byte(`{"elements":[{"kind":"enum","name":"X"}]}`))
	if err == nil || !strings.Contains(err.Error(), "unknown kind") {
		t.Errorf("err = %v, want unknown kind", err)
	}
}

func TestParseManifest_MethodWithoutSignature(t *testing.T) {
	_, err := ParseManifest([]byte(`{"elements":[{"kind":"method","name":"X.M"}]}`))
	if err == nil || !strings.Contains(err.Error(), "missing its signature") {
		t.Errorf("err = %v, want missing signature", err)
	}
}

func TestElement_IsPositional(t *testing.T) {
	el := Element{Kind: KindType, CtorParams: []Param{{Name: "id"}}}
	if !el.IsPositional() {
		t.Error("element with ctor params is positional")
	}
	if (&Element{Kind: KindType}).IsPositional() {
		t.Error("property bag is not positional")
	}
}

func TestElement_FindMethod(t *testing.T) {
	el := Element{Methods: []Method{
		{Name: "hidden", Exported: false},
		{Name: "Static", Exported: true, Static: true},
		{Name: "GetAsync", Exported: true},
	}}

	if _, ok := el.FindMethod("hidden"); ok {
		t.Error("unexported methods are invisible")
	}
	if _, ok := el.FindMethod("Static"); ok {
		t.Error("static methods are invisible")
	}
	if m, ok := el.FindMethod("GetAsync"); !ok || m.Name != "GetAsync" {
		t.Error("visible instance method not found")
	}
}
