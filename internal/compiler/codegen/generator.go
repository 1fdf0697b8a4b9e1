// Package codegen projects validated descriptors into Go source artifacts:
// normalized request types, handler adapters, the dispatcher routing
// functions, and registration wiring. All output ordering follows the sorted
// descriptor collections so repeated runs produce byte-identical artifacts.
package codegen

import (
	"bytes"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/mediatorc/mediatorc/internal/compiler/errors"
	"github.com/mediatorc/mediatorc/internal/compiler/model"
)

// RuntimeImport is the support package generated code links against
const RuntimeImport = "github.com/mediatorc/mediatorc/pkg/runtime"

// header goes at the top of every generated file
const header = "// Code generated by mediatorc. DO NOT EDIT.\n"

// Generator transforms a validated descriptor set into Go code
type Generator struct {
	buf     *bytes.Buffer
	indent  int
	imports map[string]string // import path -> alias ("" for default)

	// outNS is the namespace generated artifacts are placed in, computed
	// by the grouping post-pass; types declared there are referenced
	// unqualified
	outNS string
	// pkg is the package name of the generated artifacts
	pkg string
}

// NewGenerator creates a code generator emitting into the given namespace
func NewGenerator(outNS string) *Generator {
	pkg := "mediator"
	if outNS != "" {
		pkg = path.Base(outNS)
	}
	return &Generator{
		buf:     &bytes.Buffer{},
		imports: make(map[string]string),
		outNS:   outNS,
		pkg:     pkg,
	}
}

// Generate emits every artifact for the descriptor set. A panic or error
// while synthesizing one artifact is converted into a GenerationFailure
// diagnostic naming that artifact; the remaining artifacts are still
// produced.
func (g *Generator) Generate(set *model.Set) (map[string]string, errors.DiagnosticList) {
	artifacts := make(map[string]string)
	var diags errors.DiagnosticList

	emit := func(name string, fn func() (string, error)) {
		defer func() {
			if r := recover(); r != nil {
				diags = append(diags, errors.NewGenerationFailure(name, fmt.Sprint(r)))
			}
		}()
		code, err := fn()
		if err != nil {
			diags = append(diags, errors.NewGenerationFailure(name, err.Error()))
			return
		}
		artifacts[name] = code
	}

	emit("requests.gen.go", func() (string, error) { return g.GenerateRequests(set) })
	emit("adapters.gen.go", func() (string, error) { return g.GenerateAdapters(set) })
	emit("dispatcher.gen.go", func() (string, error) { return g.GenerateDispatcher(set) })
	emit("registration.gen.go", func() (string, error) { return g.GenerateRegistration(set) })

	return artifacts, diags
}

// reset clears the generator state between artifacts
func (g *Generator) reset() {
	g.buf.Reset()
	g.indent = 0
	g.imports = make(map[string]string)
}

// writeLine writes a formatted line with proper indentation
func (g *Generator) writeLine(format string, args ...interface{}) {
	if format == "" {
		g.buf.WriteString("\n")
		return
	}

	for i := 0; i < g.indent; i++ {
		g.buf.WriteString("\t")
	}

	if len(args) > 0 {
		g.buf.WriteString(fmt.Sprintf(format, args...))
	} else {
		g.buf.WriteString(format)
	}
	g.buf.WriteString("\n")
}

// begin starts an artifact: header, package clause, placeholder for imports
func (g *Generator) begin() {
	g.reset()
	g.buf.WriteString(header)
	g.writeLine("")
	g.writeLine("package %s", g.pkg)
	g.writeLine("")
}

// finish splices the collected import block after the package clause and
// returns the artifact body
func (g *Generator) finish() string {
	body := g.buf.String()
	if len(g.imports) == 0 {
		return body
	}

	var ib bytes.Buffer
	ib.WriteString("import (\n")

	var stdlib, external []string
	for imp := range g.imports {
		if strings.Contains(imp, ".") {
			external = append(external, imp)
		} else {
			stdlib = append(stdlib, imp)
		}
	}
	sort.Strings(stdlib)
	sort.Strings(external)

	writeImp := func(imp string) {
		if alias := g.imports[imp]; alias != "" && alias != path.Base(imp) {
			fmt.Fprintf(&ib, "\t%s %q\n", alias, imp)
		} else {
			fmt.Fprintf(&ib, "\t%q\n", imp)
		}
	}
	for _, imp := range stdlib {
		writeImp(imp)
	}
	if len(stdlib) > 0 && len(external) > 0 {
		ib.WriteString("\n")
	}
	for _, imp := range external {
		writeImp(imp)
	}
	ib.WriteString(")\n")

	// Imports go right after the package clause
	marker := fmt.Sprintf("package %s\n", g.pkg)
	idx := strings.Index(body, marker)
	return body[:idx+len(marker)] + "\n" + ib.String() + body[idx+len(marker):]
}

// addImport registers an import path and returns the qualifier to use for
// names from it. The output namespace itself needs no import.
func (g *Generator) addImport(pkgPath string) string {
	if pkgPath == "" || pkgPath == g.outNS {
		return ""
	}
	if alias, ok := g.imports[pkgPath]; ok {
		if alias == "" {
			return path.Base(pkgPath)
		}
		return alias
	}

	base := path.Base(pkgPath)
	alias := ""
	name := base
	// Disambiguate clashes with an already-imported package of the same base
	for n := 2; g.aliasTaken(name, pkgPath); n++ {
		name = fmt.Sprintf("%s%d", base, n)
		alias = name
	}
	g.imports[pkgPath] = alias
	return name
}

func (g *Generator) aliasTaken(name string, self string) bool {
	for imp, alias := range g.imports {
		if imp == self {
			continue
		}
		used := alias
		if used == "" {
			used = path.Base(imp)
		}
		if used == name {
			return true
		}
	}
	return false
}
