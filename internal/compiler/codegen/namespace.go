package codegen

import (
	"sort"

	"github.com/mediatorc/mediatorc/internal/compiler/model"
)

// GroupNamespace computes where the generated artifacts are placed: the
// most common namespace among the handler descriptors, falling back to the
// requests when no handlers survived. Ties break lexicographically so the
// result is stable across runs. This is an explicit post-pass over the
// final descriptor list, not state threaded through the pipeline.
func GroupNamespace(set *model.Set) string {
	counts := make(map[string]int)
	for _, h := range set.Handlers {
		if h.Namespace != "" {
			counts[h.Namespace]++
		}
	}
	if len(counts) == 0 {
		for _, r := range set.Requests {
			if r.Namespace != "" {
				counts[r.Namespace]++
			}
		}
	}
	if len(counts) == 0 {
		return ""
	}

	namespaces := make([]string, 0, len(counts))
	for ns := range counts {
		namespaces = append(namespaces, ns)
	}
	sort.Strings(namespaces)

	best := namespaces[0]
	for _, ns := range namespaces[1:] {
		if counts[ns] > counts[best] {
			best = ns
		}
	}
	return best
}
