package runtime

import "context"

// Stream is a lazily-produced element sequence backing stream-query
// dispatch. The consumer pulls elements one at a time; stopping early
// cancels the producer through the stream's context, so nothing past the
// last pulled element is buffered.
type Stream[T any] struct {
	elems  chan T
	errc   chan error
	cancel context.CancelFunc

	done bool
	err  error
}

// NewStream starts producer in its own goroutine and returns the stream it
// feeds. The producer yields elements until it runs out, fails, or the
// consumer closes the stream; yield returns the context error once the
// consumer has gone away.
func NewStream[T any](ctx context.Context, producer func(ctx context.Context, yield func(T) error) error) *Stream[T] {
	ctx, cancel := context.WithCancel(ctx)
	s := &Stream[T]{
		elems:  make(chan T),
		errc:   make(chan error, 1),
		cancel: cancel,
	}

	yield := func(v T) error {
		select {
		case s.elems <- v:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	go func() {
		defer close(s.elems)
		s.errc <- producer(ctx, yield)
	}()

	return s
}

// Next pulls the next element. ok is false once the sequence is exhausted;
// err then carries the producer's failure, if any.
func (s *Stream[T]) Next() (v T, ok bool, err error) {
	if s.done {
		return v, false, s.err
	}
	v, ok = <-s.elems
	if ok {
		return v, true, nil
	}
	s.done = true
	s.err = <-s.errc
	return v, false, s.err
}

// Close stops the producer. Pending elements are discarded, not buffered.
func (s *Stream[T]) Close() {
	s.cancel()
	// Drain so the producer goroutine can exit its yield
	for range s.elems {
	}
}

// Collect pulls the remaining elements into a slice. Mostly useful in tests
// and small consumers; large sequences should be pulled element-by-element.
func (s *Stream[T]) Collect() ([]T, error) {
	var out []T
	for {
		v, ok, err := s.Next()
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, v)
	}
}
