package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func instantPolicy(slept *[]time.Duration) Policy {
	p := AIBatchPolicy()
	p.JitterFraction = 0
	p.Sleep = func(_ context.Context, d time.Duration) error {
		*slept = append(*slept, d)
		return nil
	}
	return p
}

func TestDoSucceedsFirstAttempt(t *testing.T) {
	var slept []time.Duration
	calls := 0
	err := instantPolicy(&slept).Do(context.Background(), func(context.Context, int) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Empty(t, slept)
}

func TestDoRetriesWithDoublingDelay(t *testing.T) {
	var slept []time.Duration
	var seen []int
	err := instantPolicy(&slept).Do(context.Background(), func(_ context.Context, attempt int) error {
		seen = append(seen, attempt)
		if attempt < 3 {
			return errors.New("flaky")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, seen)
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, slept)
}

func TestDoExhausted(t *testing.T) {
	var slept []time.Duration
	calls := 0
	boom := errors.New("boom")
	err := instantPolicy(&slept).Do(context.Background(), func(context.Context, int) error {
		calls++
		return boom
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExhausted)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, calls)
	assert.Len(t, slept, 2)
}

func TestDoPermanentStops(t *testing.T) {
	var slept []time.Duration
	calls := 0
	boom := errors.New("bad request")
	err := instantPolicy(&slept).Do(context.Background(), func(context.Context, int) error {
		calls++
		return Permanent(boom)
	})
	assert.Equal(t, boom, err)
	assert.Equal(t, 1, calls)
}

func TestDoContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := AIBatchPolicy().Do(ctx, func(context.Context, int) error {
		calls++
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, calls)
}

func TestDoOnRetryHook(t *testing.T) {
	var slept []time.Duration
	p := instantPolicy(&slept)
	var hooks []int
	p.OnRetry = func(attempt int, _ time.Duration, _ error) { hooks = append(hooks, attempt) }

	_ = p.Do(context.Background(), func(context.Context, int) error { return errors.New("x") })
	assert.Equal(t, []int{1, 2}, hooks)
}

func TestDelayCapped(t *testing.T) {
	p := Policy{BaseDelay: time.Second, MaxDelay: 3 * time.Second, Multiplier: 2}
	assert.Equal(t, time.Second, p.Delay(1))
	assert.Equal(t, 2*time.Second, p.Delay(2))
	assert.Equal(t, 3*time.Second, p.Delay(3))
}
