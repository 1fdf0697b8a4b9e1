package codegen

import (
	"strings"

	"github.com/mediatorc/mediatorc/internal/compiler/decl"
	"github.com/mediatorc/mediatorc/internal/compiler/model"
)

// GenerateAdapters emits one adapter per routed handler. An adapter owns a
// reference to the backing service, reconstructs the originally declared
// request shape from the normalized request's fields, and invokes the
// resolved service method. Orphan handlers and handlers shadowed by a
// routing conflict get no adapter.
func (g *Generator) GenerateAdapters(set *model.Set) (string, error) {
	g.begin()

	for _, cat := range []model.Category{
		model.CategoryQuery, model.CategoryCommand,
		model.CategoryNotification, model.CategoryStreamQuery,
	} {
		for _, p := range routedPairs(set, cat) {
			g.generateAdapter(p.Request, p.Handler)
			g.writeLine("")
		}
	}

	return g.finish(), nil
}

func (g *Generator) generateAdapter(r *model.RequestDescriptor, h *model.HandlerDescriptor) {
	name := adapterType(h)
	svcType := g.serviceType(h)

	g.writeLine("// %s maps %s onto %s.%s.", name, requestType(r), h.ServiceName, h.CandidateMethod)
	g.writeLine("type %s struct {", name)
	g.indent++
	g.writeLine("service %s", svcType)
	if pub := g.publisherType(h); pub != "" {
		g.writeLine("publisher %s", pub)
	}
	g.indent--
	g.writeLine("}")
	g.writeLine("")

	g.generateAdapterConstructor(h, svcType)
	g.generateAdapterHandle(r, h)
}

func (g *Generator) generateAdapterConstructor(h *model.HandlerDescriptor, svcType string) {
	name := adapterType(h)
	if pub := g.publisherType(h); pub != "" {
		g.writeLine("// New%s binds the adapter to its service and follow-up publisher.", name)
		g.writeLine("func New%s(service %s, publisher %s) *%s {", name, svcType, pub, name)
		g.indent++
		g.writeLine("return &%s{service: service, publisher: publisher}", name)
	} else {
		g.writeLine("// New%s binds the adapter to its backing service.", name)
		g.writeLine("func New%s(service %s) *%s {", name, svcType, name)
		g.indent++
		g.writeLine("return &%s{service: service}", name)
	}
	g.indent--
	g.writeLine("}")
	g.writeLine("")
}

func (g *Generator) generateAdapterHandle(r *model.RequestDescriptor, h *model.HandlerDescriptor) {
	name := adapterType(h)
	reqType := requestType(r)

	g.addImport("context")

	switch r.Category {
	case model.CategoryQuery:
		g.writeLine("// Handle routes the query to the backing service.")
		g.writeLine("func (a *%s) Handle(ctx context.Context, req *%s) (%s, error) {",
			name, reqType, g.goType(r.ResponseType))
	case model.CategoryCommand:
		if commandHasResult(r) {
			g.writeLine("// Handle routes the command and returns its result.")
			g.writeLine("func (a *%s) Handle(ctx context.Context, req *%s) (%s, error) {",
				name, reqType, g.goType(r.ResponseType))
		} else {
			g.writeLine("// Handle routes the fire-and-forget command.")
			g.writeLine("func (a *%s) Handle(ctx context.Context, req *%s) error {", name, reqType)
		}
	case model.CategoryNotification:
		g.writeLine("// Handle delivers the notification to this subscriber.")
		g.writeLine("func (a *%s) Handle(ctx context.Context, req *%s) error {", name, reqType)
	case model.CategoryStreamQuery:
		rt := g.runtimeQual()
		g.writeLine("// Handle opens the element stream, forwarding one element at a")
		g.writeLine("// time; stopping the consumer cancels the service's own stream.")
		g.writeLine("func (a *%s) Handle(ctx context.Context, req *%s) *%s.Stream[%s] {",
			name, reqType, rt, g.goType(r.ResponseType))
	}
	g.indent++

	if r.Category == model.CategoryStreamQuery {
		g.generateStreamBody(r, h)
	} else if h.Legacy {
		args := make([]string, 0, len(r.Fields)+1)
		if h.HasContext {
			args = append(args, "ctx")
		}
		for i := range r.Fields {
			args = append(args, "req."+r.Fields[i].Name)
		}
		g.writeLine("return a.service.%s(%s)", h.CandidateMethod, strings.Join(args, ", "))
	} else {
		g.writeLine("original := %s", g.reconstructLiteral(r))
		g.writeLine("return a.service.%s(%s)", h.CandidateMethod, callArgs(h, "original"))
	}

	g.indent--
	g.writeLine("}")
}

// generateStreamBody emits the lazy element-by-element forwarding loop
func (g *Generator) generateStreamBody(r *model.RequestDescriptor, h *model.HandlerDescriptor) {
	rt := g.runtimeQual()
	elem := g.goType(r.ResponseType)

	g.writeLine("return %s.NewStream(ctx, func(ctx context.Context, yield func(%s) error) error {", rt, elem)
	g.indent++
	g.writeLine("original := %s", g.reconstructLiteral(r))
	g.writeLine("src, err := a.service.%s(%s)", h.CandidateMethod, callArgs(h, "original"))
	g.writeLine("if err != nil {")
	g.indent++
	g.writeLine("return err")
	g.indent--
	g.writeLine("}")
	g.writeLine("defer src.Close()")
	g.writeLine("for {")
	g.indent++
	g.writeLine("v, ok, err := src.Next()")
	g.writeLine("if err != nil {")
	g.indent++
	g.writeLine("return err")
	g.indent--
	g.writeLine("}")
	g.writeLine("if !ok {")
	g.indent++
	g.writeLine("return nil")
	g.indent--
	g.writeLine("}")
	g.writeLine("if err := yield(v); err != nil {")
	g.indent++
	g.writeLine("return err")
	g.indent--
	g.writeLine("}")
	g.indent--
	g.writeLine("}")
	g.indent--
	g.writeLine("})")
}

// callArgs renders the service call argument list, forwarding ctx only when
// the resolved method declares a context parameter
func callArgs(h *model.HandlerDescriptor, rest string) string {
	if h.HasContext {
		return "ctx, " + rest
	}
	return rest
}

// reconstructLiteral rebuilds the originally declared request shape from the
// normalized fields: an unkeyed literal for positional/record forms, a
// keyed literal for property bags
func (g *Generator) reconstructLiteral(r *model.RequestDescriptor) string {
	name := r.DeclaredName
	if qual := g.addImport(r.Namespace); qual != "" {
		name = qual + "." + name
	}

	var b strings.Builder
	b.WriteString(name)
	b.WriteString("{")
	for i := range r.Fields {
		f := &r.Fields[i]
		if i > 0 {
			b.WriteString(", ")
		}
		if r.Positional {
			b.WriteString("req." + f.Name)
		} else {
			b.WriteString(f.Name + ": req." + f.Name)
		}
	}
	b.WriteString("}")
	return b.String()
}

// serviceType renders the backing service's pointer type
func (g *Generator) serviceType(h *model.HandlerDescriptor) string {
	t := decl.TypeRef{Name: h.ServiceName, Package: h.Namespace}
	return g.goType(&t)
}

// publisherType renders the follow-up publisher type for command handlers
// that declare one; other categories never get the field
func (g *Generator) publisherType(h *model.HandlerDescriptor) string {
	if h.PublisherRef == "" || h.Category != model.CategoryCommand {
		return ""
	}
	name := h.PublisherRef
	pkg := h.Namespace
	if idx := strings.LastIndex(name, "."); idx > 0 {
		pkg, name = name[:idx], name[idx+1:]
	}
	t := decl.TypeRef{Name: name, Package: pkg}
	return g.goType(&t)
}
