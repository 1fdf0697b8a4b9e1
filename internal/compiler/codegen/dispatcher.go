package codegen

import "github.com/mediatorc/mediatorc/internal/compiler/model"

// GenerateDispatcher emits the routing functions, one per request category.
// Each is an exhaustive type switch over the normalized request types of
// its category, with branches sorted by logical name; requests without a
// handler get an explicit failure branch, and anything unknown falls
// through to a NoHandlerError. Matching is type-identity based: the
// normalized types are generated and nothing subclasses them.
func (g *Generator) GenerateDispatcher(set *model.Set) (string, error) {
	g.begin()
	g.addImport("context")
	rt := g.runtimeQual()

	g.writeLine("// Dispatcher routes normalized requests to their generated adapters.")
	g.writeLine("// It holds no mutable state, so one instance can serve concurrent")
	g.writeLine("// callers; ordering between independent calls is caller-determined.")
	g.writeLine("type Dispatcher struct {")
	g.indent++
	for _, cat := range []model.Category{
		model.CategoryQuery, model.CategoryCommand,
		model.CategoryNotification, model.CategoryStreamQuery,
	} {
		for _, p := range routedPairs(set, cat) {
			g.writeLine("%s *%s", adapterField(p.Handler), adapterType(p.Handler))
		}
	}
	g.indent--
	g.writeLine("}")
	g.writeLine("")

	g.generateQueryRoute(set, rt)
	g.writeLine("")
	g.generateSendRoute(set, rt)
	g.writeLine("")
	g.generateExecuteRoute(set, rt)
	g.writeLine("")
	g.generatePublishRoute(set, rt)
	g.writeLine("")
	g.generateStreamRoute(set, rt)

	return g.finish(), nil
}

// branchCount counts the routing branches a category switch will carry
func branchCount(set *model.Set, cat model.Category, withResult bool) int {
	n := 0
	for _, r := range projectedRequests(set) {
		if r.Category != cat {
			continue
		}
		if cat == model.CategoryCommand && commandHasResult(r) != withResult {
			continue
		}
		n++
	}
	return n
}

func (g *Generator) generateQueryRoute(set *model.Set, rt string) {
	g.writeLine("// Query dispatches a point-to-point query and returns its response.")
	g.writeLine("func (d *Dispatcher) Query(ctx context.Context, req %s.Request) (any, error) {", rt)
	g.indent++
	if branchCount(set, model.CategoryQuery, false) == 0 {
		g.writeLine("return nil, %s.NoHandlerFor(req)", rt)
		g.indent--
		g.writeLine("}")
		return
	}
	g.writeLine("switch q := req.(type) {")
	for _, r := range projectedRequests(set) {
		if r.Category != model.CategoryQuery {
			continue
		}
		g.writeLine("case *%s:", requestType(r))
		g.indent++
		if handlers := set.HandlersFor(r.LogicalName, r.Category); len(handlers) > 0 {
			g.writeLine("return d.%s.Handle(ctx, q)", adapterField(handlers[0]))
		} else {
			g.writeLine("return nil, %s.NoHandlerFor(q)", rt)
		}
		g.indent--
	}
	g.writeLine("default:")
	g.indent++
	g.writeLine("return nil, %s.NoHandlerFor(req)", rt)
	g.indent--
	g.writeLine("}")
	g.indent--
	g.writeLine("}")
}

// generateSendRoute and generateExecuteRoute emit the two command forms
// separately: their awaited-value semantics differ, so they cannot share
// one switch
func (g *Generator) generateSendRoute(set *model.Set, rt string) {
	g.writeLine("// Send dispatches a fire-and-forget command.")
	g.writeLine("func (d *Dispatcher) Send(ctx context.Context, cmd %s.Request) error {", rt)
	g.indent++
	if branchCount(set, model.CategoryCommand, false) == 0 {
		g.writeLine("return %s.NoHandlerFor(cmd)", rt)
		g.indent--
		g.writeLine("}")
		return
	}
	g.writeLine("switch c := cmd.(type) {")
	for _, r := range projectedRequests(set) {
		if r.Category != model.CategoryCommand || commandHasResult(r) {
			continue
		}
		g.writeLine("case *%s:", requestType(r))
		g.indent++
		if handlers := set.HandlersFor(r.LogicalName, r.Category); len(handlers) > 0 {
			g.writeLine("return d.%s.Handle(ctx, c)", adapterField(handlers[0]))
		} else {
			g.writeLine("return %s.NoHandlerFor(c)", rt)
		}
		g.indent--
	}
	g.writeLine("default:")
	g.indent++
	g.writeLine("return %s.NoHandlerFor(cmd)", rt)
	g.indent--
	g.writeLine("}")
	g.indent--
	g.writeLine("}")
}

func (g *Generator) generateExecuteRoute(set *model.Set, rt string) {
	g.writeLine("// Execute dispatches a command and returns its result.")
	g.writeLine("func (d *Dispatcher) Execute(ctx context.Context, cmd %s.Request) (any, error) {", rt)
	g.indent++
	if branchCount(set, model.CategoryCommand, true) == 0 {
		g.writeLine("return nil, %s.NoHandlerFor(cmd)", rt)
		g.indent--
		g.writeLine("}")
		return
	}
	g.writeLine("switch c := cmd.(type) {")
	for _, r := range projectedRequests(set) {
		if !commandHasResult(r) {
			continue
		}
		g.writeLine("case *%s:", requestType(r))
		g.indent++
		if handlers := set.HandlersFor(r.LogicalName, r.Category); len(handlers) > 0 {
			g.writeLine("return d.%s.Handle(ctx, c)", adapterField(handlers[0]))
		} else {
			g.writeLine("return nil, %s.NoHandlerFor(c)", rt)
		}
		g.indent--
	}
	g.writeLine("default:")
	g.indent++
	g.writeLine("return nil, %s.NoHandlerFor(cmd)", rt)
	g.indent--
	g.writeLine("}")
	g.indent--
	g.writeLine("}")
}

// generatePublishRoute emits the notification fan-out: every matching
// subscriber runs concurrently, the join waits for the whole set, and a
// failing subscriber never cancels its siblings
func (g *Generator) generatePublishRoute(set *model.Set, rt string) {
	g.writeLine("// Publish fans a notification out to every bound subscriber and")
	g.writeLine("// waits for all of them before surfacing the first failure.")
	g.writeLine("func (d *Dispatcher) Publish(ctx context.Context, evt %s.Request) error {", rt)
	g.indent++
	if branchCount(set, model.CategoryNotification, false) == 0 {
		g.writeLine("return %s.NoHandlerFor(evt)", rt)
		g.indent--
		g.writeLine("}")
		return
	}
	g.writeLine("switch e := evt.(type) {")
	for _, r := range projectedRequests(set) {
		if r.Category != model.CategoryNotification {
			continue
		}
		g.writeLine("case *%s:", requestType(r))
		g.indent++
		handlers := set.HandlersFor(r.LogicalName, r.Category)
		if len(handlers) == 0 {
			g.writeLine("return %s.NoHandlerFor(e)", rt)
		} else {
			g.writeLine("return %s.FanOut(ctx,", rt)
			g.indent++
			for _, h := range handlers {
				g.writeLine("func(ctx context.Context) error { return d.%s.Handle(ctx, e) },", adapterField(h))
			}
			g.indent--
			g.writeLine(")")
		}
		g.indent--
	}
	g.writeLine("default:")
	g.indent++
	g.writeLine("return %s.NoHandlerFor(evt)", rt)
	g.indent--
	g.writeLine("}")
	g.indent--
	g.writeLine("}")
}

func (g *Generator) generateStreamRoute(set *model.Set, rt string) {
	g.writeLine("// Stream dispatches a streaming query; the returned value is the")
	g.writeLine("// adapter's typed *runtime.Stream, pulled element-by-element by the")
	g.writeLine("// caller, who can stop at any point to cancel the producer.")
	g.writeLine("func (d *Dispatcher) Stream(ctx context.Context, req %s.Request) (any, error) {", rt)
	g.indent++
	if branchCount(set, model.CategoryStreamQuery, false) == 0 {
		g.writeLine("return nil, %s.NoHandlerFor(req)", rt)
		g.indent--
		g.writeLine("}")
		return
	}
	g.writeLine("switch q := req.(type) {")
	for _, r := range projectedRequests(set) {
		if r.Category != model.CategoryStreamQuery {
			continue
		}
		g.writeLine("case *%s:", requestType(r))
		g.indent++
		if handlers := set.HandlersFor(r.LogicalName, r.Category); len(handlers) > 0 {
			g.writeLine("return d.%s.Handle(ctx, q), nil", adapterField(handlers[0]))
		} else {
			g.writeLine("return nil, %s.NoHandlerFor(q)", rt)
		}
		g.indent--
	}
	g.writeLine("default:")
	g.indent++
	g.writeLine("return nil, %s.NoHandlerFor(req)", rt)
	g.indent--
	g.writeLine("}")
	g.indent--
	g.writeLine("}")
}
