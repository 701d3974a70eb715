package async_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/inkhive/pkg/async"
)

func TestAsync_Await(t *testing.T) {
	t.Parallel()

	f := async.Async(context.Background(), 21, func(_ context.Context, n int) (int, error) {
		return n * 2, nil
	})
	got, err := f.Await()
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	select {
	case <-f.Done():
	default:
		t.Fatal("future should be done after Await")
	}
}

func TestAsync_CanceledContextSkipsCall(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var called atomic.Bool
	f := async.Go(ctx, func(context.Context) (string, error) {
		called.Store(true)
		return "x", nil
	})
	_, err := f.Await()
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called.Load())
}

func TestFuture_AwaitContext(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	defer close(release)

	f := async.Go(context.Background(), func(context.Context) (int, error) {
		<-release
		return 1, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := f.AwaitContext(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWaitAll(t *testing.T) {
	t.Parallel()

	t.Run("all succeed", func(t *testing.T) {
		t.Parallel()
		a := async.Go(context.Background(), func(context.Context) (int, error) { return 1, nil })
		b := async.Go(context.Background(), func(context.Context) (int, error) { return 2, nil })
		got, err := async.WaitAll(a, b)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2}, got)
	})

	t.Run("stops at first error", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		a := async.Go(context.Background(), func(context.Context) (int, error) { return 0, boom })
		b := async.Go(context.Background(), func(context.Context) (int, error) { return 2, nil })
		_, err := async.WaitAll(a, b)
		assert.ErrorIs(t, err, boom)
	})
}

func TestSettle_IndependentOutcomes(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	slow := async.Go(context.Background(), func(context.Context) (string, error) {
		time.Sleep(5 * time.Millisecond)
		return "posts", nil
	})
	failing := async.Go(context.Background(), func(context.Context) (string, error) {
		return "", boom
	})

	results := async.Settle(failing, slow)
	require.Len(t, results, 2)
	assert.ErrorIs(t, results[0].Err, boom)
	assert.NoError(t, results[1].Err)
	assert.Equal(t, "posts", results[1].Value)
}
