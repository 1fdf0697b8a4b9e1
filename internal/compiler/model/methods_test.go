package model

import (
	"testing"

	"github.com/mediatorc/mediatorc/internal/compiler/decl"
)

func svcWith(methods ...decl.Method) *decl.Element {
	return &decl.Element{Kind: decl.KindType, Name: "Svc", Methods: methods}
}

func method(name string, params ...decl.Param) decl.Method {
	return decl.Method{Name: name, Params: params, Exported: true}
}

func ctxParam() decl.Param {
	return decl.Param{Name: "ctx", Type: decl.TypeRef{Name: "Context", Package: "context"}}
}

func reqParam() decl.Param {
	return decl.Param{Name: "req", Type: decl.TypeRef{Name: "Req", Package: "example.com/app"}}
}

func TestResolveCandidateMethod_OrderWins(t *testing.T) {
	svc := svcWith(
		method("HandleAsync", ctxParam(), reqParam()),
		method("GetAsync", ctxParam(), reqParam()),
	)

	name, ok := ResolveCandidateMethod(svc, CategoryQuery)
	if !ok || name != "GetAsync" {
		t.Errorf("resolved %q, want GetAsync (list order, not declaration order)", name)
	}
}

func TestResolveCandidateMethod_SkipsIncompatibleShape(t *testing.T) {
	svc := svcWith(
		method("GetAsync"), // no params: incompatible
		method("HandleAsync", ctxParam(), reqParam()),
	)

	name, ok := ResolveCandidateMethod(svc, CategoryQuery)
	if !ok || name != "HandleAsync" {
		t.Errorf("resolved %q, want HandleAsync", name)
	}
}

func TestResolveCandidateMethod_BareRequestTolerated(t *testing.T) {
	svc := svcWith(method("Handle", reqParam()))

	name, ok := ResolveCandidateMethod(svc, CategoryCommand)
	if !ok || name != "Handle" {
		t.Errorf("resolved %q, want Handle", name)
	}
}

func TestResolveCandidateMethod_None(t *testing.T) {
	svc := svcWith(method("DoWork", reqParam()))

	if name, ok := ResolveCandidateMethod(svc, CategoryQuery); ok {
		t.Errorf("resolved %q, want no match", name)
	}
}

func TestResolveCandidateMethod_IgnoresStaticAndUnexported(t *testing.T) {
	svc := svcWith(
		decl.Method{Name: "GetAsync", Params: []decl.Param{ctxParam(), reqParam()}, Exported: true, Static: true},
		decl.Method{Name: "QueryAsync", Params: []decl.Param{ctxParam(), reqParam()}, Exported: false},
	)

	if name, ok := ResolveCandidateMethod(svc, CategoryQuery); ok {
		t.Errorf("resolved %q, want no match (static/unexported are invisible)", name)
	}
}

func TestResolveCandidateMethod_CategorySpecificLists(t *testing.T) {
	svc := svcWith(
		method("CreateAsync", ctxParam(), reqParam()),
		method("StreamAsync", ctxParam(), reqParam()),
	)

	if name, _ := ResolveCandidateMethod(svc, CategoryCommand); name != "CreateAsync" {
		t.Errorf("command resolved %q, want CreateAsync", name)
	}
	if name, _ := ResolveCandidateMethod(svc, CategoryStreamQuery); name != "StreamAsync" {
		t.Errorf("stream query resolved %q, want StreamAsync", name)
	}
}
