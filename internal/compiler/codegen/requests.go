package codegen

import (
	"strings"

	"github.com/mediatorc/mediatorc/internal/compiler/model"
)

// GenerateRequests emits one normalized request type per projected request
// descriptor: a plain data holder with exactly the descriptor's fields plus
// the category marker methods the dispatcher matches on.
func (g *Generator) GenerateRequests(set *model.Set) (string, error) {
	g.begin()

	for _, r := range projectedRequests(set) {
		g.generateRequestType(r)
		g.writeLine("")
	}

	return g.finish(), nil
}

func (g *Generator) generateRequestType(r *model.RequestDescriptor) {
	name := requestType(r)
	rt := g.runtimeQual()

	g.writeLine("// %s is the normalized form of %s.", name, r.DeclaredName)
	g.writeLine("type %s struct {", name)
	g.indent++
	for i := range r.Fields {
		f := &r.Fields[i]
		g.writeLine("%s %s", f.Name, g.goType(&f.Type))
	}
	g.indent--
	g.writeLine("}")
	g.writeLine("")

	// Constructor honoring the field default hints: strings are valid at
	// their zero value, non-nullable references are asserted non-nil
	g.generateConstructor(r)

	g.writeLine("// RequestName returns the logical name %q.", r.LogicalName)
	g.writeLine("func (r *%s) RequestName() string { return %q }", name, r.LogicalName)
	g.writeLine("")
	g.writeLine("// RequestKind returns the dispatch category.")
	g.writeLine("func (r *%s) RequestKind() %s.Kind { return %s.%s }", name, rt, rt, kindConst(r.Category))
}

func (g *Generator) generateConstructor(r *model.RequestDescriptor) {
	name := requestType(r)

	params := make([]string, 0, len(r.Fields))
	for i := range r.Fields {
		f := &r.Fields[i]
		params = append(params, lowerFirst(f.Name)+" "+g.goType(&f.Type))
	}

	g.writeLine("// New%s constructs the normalized request.", name)
	g.writeLine("func New%s(%s) *%s {", name, strings.Join(params, ", "), name)
	g.indent++
	for i := range r.Fields {
		f := &r.Fields[i]
		if f.Default == model.DefaultNotNil && nilable(&f.Type) {
			g.writeLine("if %s == nil {", lowerFirst(f.Name))
			g.indent++
			g.writeLine("panic(%q)", name+": "+f.Name+" must not be nil")
			g.indent--
			g.writeLine("}")
		}
	}
	g.writeLine("return &%s{", name)
	g.indent++
	for i := range r.Fields {
		f := &r.Fields[i]
		g.writeLine("%s: %s,", f.Name, lowerFirst(f.Name))
	}
	g.indent--
	g.writeLine("}")
	g.indent--
	g.writeLine("}")
	g.writeLine("")
}
