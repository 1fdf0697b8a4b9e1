package codegen

import (
	"fmt"
	"strings"

	"github.com/mediatorc/mediatorc/internal/compiler/model"
)

// construction is one entry of the registration manifest: a service,
// publisher, adapter or the dispatcher singleton that the host wiring must
// construct
type construction struct {
	kind string // "service", "publisher", "handler", "dispatcher"
	name string
	typ  string
}

// GenerateRegistration emits the wiring boundary: a NewDispatcher
// constructor binding every adapter to its service, and a Manifest function
// describing what the host's own wiring (DI container, manual factory) has
// to construct. How these get wired into a live process is not this
// generator's concern.
func (g *Generator) GenerateRegistration(set *model.Set) (string, error) {
	g.begin()

	pairs := g.allPairs(set)
	services, params := g.collectServices(pairs)

	g.writeLine("// NewDispatcher wires every generated adapter to its backing service")
	g.writeLine("// and returns the dispatcher singleton.")
	g.writeLine("func NewDispatcher(%s) *Dispatcher {", strings.Join(params, ", "))
	g.indent++
	g.writeLine("return &Dispatcher{")
	g.indent++
	for _, p := range pairs {
		h := p.Handler
		svc := services[serviceKey(h)]
		if pub := g.publisherType(h); pub != "" {
			g.writeLine("%s: New%s(%s, %s),", adapterField(h), adapterType(h), svc, publisherParam(h))
		} else {
			g.writeLine("%s: New%s(%s),", adapterField(h), adapterType(h), svc)
		}
	}
	g.indent--
	g.writeLine("}")
	g.indent--
	g.writeLine("}")
	g.writeLine("")

	g.generateManifest(set, pairs)

	return g.finish(), nil
}

func (g *Generator) generateManifest(set *model.Set, pairs []routedPair) {
	g.writeLine("// Registration is one construction the host wiring must perform.")
	g.writeLine("type Registration struct {")
	g.indent++
	g.writeLine("Kind string")
	g.writeLine("Name string")
	g.writeLine("Type string")
	g.indent--
	g.writeLine("}")
	g.writeLine("")

	var entries []construction
	seen := make(map[string]bool)
	for _, p := range pairs {
		h := p.Handler
		key := serviceKey(h)
		if !seen[key] {
			seen[key] = true
			entries = append(entries, construction{"service", h.ServiceName, h.Namespace + "." + h.ServiceName})
		}
		if h.PublisherRef != "" && h.Category == model.CategoryCommand {
			pkey := "pub:" + h.PublisherRef
			if !seen[pkey] {
				seen[pkey] = true
				entries = append(entries, construction{"publisher", h.PublisherRef, h.PublisherRef})
			}
		}
		entries = append(entries, construction{"handler", h.LogicalName, adapterType(h)})
	}
	entries = append(entries, construction{"dispatcher", "Dispatcher", "Dispatcher"})

	g.writeLine("// Manifest lists the constructions, in dependency order.")
	g.writeLine("func Manifest() []Registration {")
	g.indent++
	g.writeLine("return []Registration{")
	g.indent++
	for _, e := range entries {
		g.writeLine("{Kind: %q, Name: %q, Type: %q},", e.kind, e.name, e.typ)
	}
	g.indent--
	g.writeLine("}")
	g.indent--
	g.writeLine("}")
}

// allPairs returns every routed pair across the categories, in the fixed
// category-then-name order the other artifacts use
func (g *Generator) allPairs(set *model.Set) []routedPair {
	var pairs []routedPair
	for _, cat := range []model.Category{
		model.CategoryQuery, model.CategoryCommand,
		model.CategoryNotification, model.CategoryStreamQuery,
	} {
		pairs = append(pairs, routedPairs(set, cat)...)
	}
	return pairs
}

// collectServices builds the constructor parameter list: one parameter per
// distinct backing service, plus one per distinct command publisher
func (g *Generator) collectServices(pairs []routedPair) (map[string]string, []string) {
	services := make(map[string]string) // service key -> parameter name
	var params []string
	taken := make(map[string]bool)

	for _, p := range pairs {
		h := p.Handler
		key := serviceKey(h)
		if _, ok := services[key]; ok {
			continue
		}
		name := lowerFirst(h.ServiceName)
		for n := 2; taken[name]; n++ {
			name = fmt.Sprintf("%s%d", lowerFirst(h.ServiceName), n)
		}
		taken[name] = true
		services[key] = name
		params = append(params, name+" "+g.serviceType(h))
	}

	pubSeen := make(map[string]bool)
	for _, p := range pairs {
		h := p.Handler
		pub := g.publisherType(h)
		if pub == "" || pubSeen[h.PublisherRef] {
			continue
		}
		pubSeen[h.PublisherRef] = true
		params = append(params, publisherParam(h)+" "+pub)
	}

	return services, params
}

func serviceKey(h *model.HandlerDescriptor) string {
	return h.Namespace + "." + h.ServiceName
}

func publisherParam(h *model.HandlerDescriptor) string {
	name := h.PublisherRef
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[idx+1:]
	}
	return lowerFirst(name)
}
