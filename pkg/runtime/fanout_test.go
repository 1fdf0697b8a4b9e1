package runtime

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFanOut_InvokesAllExactlyOnce(t *testing.T) {
	var calls [3]int32
	handlers := make([]func(context.Context) error, 3)
	for i := range handlers {
		i := i
		handlers[i] = func(ctx context.Context) error {
			atomic.AddInt32(&calls[i], 1)
			return nil
		}
	}

	err := FanOut(context.Background(), handlers...)

	require.NoError(t, err)
	for i := range calls {
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls[i]))
	}
}

func TestFanOut_SlowSiblingStillAwaited(t *testing.T) {
	boom := errors.New("boom")
	var slowFinished atomic.Bool

	err := FanOut(context.Background(),
		func(ctx context.Context) error {
			return boom
		},
		func(ctx context.Context) error {
			time.Sleep(50 * time.Millisecond)
			slowFinished.Store(true)
			return nil
		},
	)

	assert.ErrorIs(t, err, boom)
	assert.True(t, slowFinished.Load(), "the join must wait for the slow handler even after a sibling failed")
}

func TestFanOut_NoCancellationAcrossSiblings(t *testing.T) {
	var sawCancel atomic.Bool

	err := FanOut(context.Background(),
		func(ctx context.Context) error {
			return errors.New("first failure")
		},
		func(ctx context.Context) error {
			time.Sleep(20 * time.Millisecond)
			if ctx.Err() != nil {
				sawCancel.Store(true)
			}
			return nil
		},
	)

	require.Error(t, err)
	assert.False(t, sawCancel.Load(), "a failing handler must not cancel its siblings")
}

func TestFanOut_FirstErrorSurfaced(t *testing.T) {
	first := errors.New("first")

	err := FanOut(context.Background(),
		func(ctx context.Context) error { return first },
		func(ctx context.Context) error {
			time.Sleep(10 * time.Millisecond)
			return errors.New("second")
		},
	)

	assert.ErrorIs(t, err, first)
}

func TestFanOut_Empty(t *testing.T) {
	assert.NoError(t, FanOut(context.Background()))
}

func TestNoHandlerError_NamesType(t *testing.T) {
	type ghostQuery struct{}
	err := NoHandlerFor(&ghostQuery{})

	assert.Contains(t, err.Error(), "no handler registered for type")
	assert.Contains(t, err.Error(), "ghostQuery")
}
