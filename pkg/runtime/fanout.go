package runtime

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// FanOut invokes every handler concurrently and waits for the full set to
// finish before returning. A failing handler does not cancel its siblings;
// the first failure is surfaced only after every handler has been attempted.
// The context is passed through untouched so no implicit cancellation
// crosses the fan-out set.
func FanOut(ctx context.Context, handlers ...func(context.Context) error) error {
	if len(handlers) == 0 {
		return nil
	}

	// A bare errgroup (no WithContext) waits for all members and reports
	// the first error without cancelling the rest, which is exactly the
	// wait-for-all join notification dispatch requires.
	var g errgroup.Group
	for _, h := range handlers {
		h := h
		g.Go(func() error {
			return h(ctx)
		})
	}
	return g.Wait()
}
