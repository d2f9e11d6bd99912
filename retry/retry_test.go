package retry_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gpahal/mtrand/random"
	"github.com/gpahal/mtrand/retry"
)

var errFlaky = errors.New("flaky")

func TestDo_SucceedsAfterRetries(t *testing.T) {
	calls := 0
	err := retry.Do(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errFlaky
		}
		return nil
	}, retry.Options{
		Delayer: retry.FixedDelayer(time.Millisecond),
		Stopper: retry.MaxAttemptsStopper(5),
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_StopsAtMaxAttempts(t *testing.T) {
	calls := 0
	err := retry.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return errFlaky
	}, retry.Options{
		Delayer: retry.FixedDelayer(0),
		Stopper: retry.MaxAttemptsStopper(4),
	})

	require.ErrorIs(t, err, errFlaky)
	assert.Equal(t, 4, calls)
}

func TestDo_ErrStop(t *testing.T) {
	calls := 0
	err := retry.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return errors.Wrap(retry.ErrStop, "permanent")
	}, retry.Options{
		Delayer: retry.FixedDelayer(0),
		Stopper: retry.MaxAttemptsStopper(10),
	})

	require.ErrorIs(t, err, retry.ErrStop)
	assert.Equal(t, 1, calls)
}

func TestDo_WithoutOptionsCallsOnce(t *testing.T) {
	calls := 0
	err := retry.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return errFlaky
	}, retry.Options{})

	require.ErrorIs(t, err, errFlaky)
	assert.Equal(t, 1, calls)
	assert.NoError(t, retry.Do(context.Background(), nil, retry.Options{}))
}

func TestDo_ContextCancelledWhileWaiting(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := retry.Do(ctx, func(ctx context.Context) error {
		return errFlaky
	}, retry.Options{
		Delayer: retry.FixedDelayer(time.Hour),
		Stopper: retry.MaxAttemptsStopper(10),
	})

	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "flaky")
}

func TestDelayers(t *testing.T) {
	now := time.Now()

	assert.Equal(t, 3*time.Second, retry.LinearDelayer(time.Second).Delay(now, 3, nil))
	assert.Equal(t, 8*time.Millisecond, retry.ExponentialBackoffDelayer(time.Millisecond).Delay(now, 3, nil))
	assert.Nil(t, retry.ExponentialBackoffDelayer(0))
	assert.Positive(t, retry.ExponentialBackoffDelayer(time.Millisecond).Delay(now, 1000, nil))

	limited := retry.LimitDelayer(retry.LinearDelayer(time.Second), 2*time.Second)
	assert.Equal(t, 2*time.Second, limited.Delay(now, 5, nil))

	fixed1, fixed3 := retry.FixedDelayer(time.Second), retry.FixedDelayer(3*time.Second)
	assert.Equal(t, time.Second, retry.MinDelayer(fixed3, fixed1).Delay(now, 1, nil))
	assert.Equal(t, 3*time.Second, retry.MaxDelayer(fixed1, fixed3).Delay(now, 1, nil))
	assert.Equal(t, 4*time.Second, retry.SumDelayer(fixed1, nil, fixed3).Delay(now, 1, nil))
	assert.Nil(t, retry.SumDelayer())
}

func TestRandomDelayer(t *testing.T) {
	d := retry.RandomDelayer(time.Second, 500*time.Millisecond, random.NewWithSeed(1))

	for range 1000 {
		v := d.Delay(time.Now(), 1, nil)
		require.GreaterOrEqual(t, v, time.Second)
		require.Less(t, v, 1500*time.Millisecond)
	}

	noJitter := retry.RandomDelayer(time.Second, 0, nil)
	assert.Equal(t, time.Second, noJitter.Delay(time.Now(), 1, nil))
}

func TestJitterDelayer(t *testing.T) {
	d := retry.JitterDelayer(retry.FixedDelayer(time.Second), 0.25, random.NewWithSeed(2))

	for range 1000 {
		v := d.Delay(time.Now(), 1, nil)
		require.GreaterOrEqual(t, v, 750*time.Millisecond)
		require.Less(t, v, 1250*time.Millisecond)
	}

	none := retry.JitterDelayer(retry.FixedDelayer(time.Second), 0, nil)
	assert.Equal(t, time.Second, none.Delay(time.Now(), 1, nil))
	assert.Nil(t, retry.JitterDelayer(nil, 0.5, nil))
}

func TestStoppers(t *testing.T) {
	now := time.Now()

	assert.False(t, retry.MaxAttemptsStopper(3).Stop(now, 2, nil))
	assert.True(t, retry.MaxAttemptsStopper(3).Stop(now, 3, nil))
	assert.True(t, retry.TimeoutStopper(time.Second).Stop(now.Add(-2*time.Second), 1, nil))
	assert.False(t, retry.TimeoutStopper(time.Hour).Stop(now, 1, nil))
	assert.True(t, retry.DeadlineStopper(now.Add(-time.Second)).Stop(now, 1, nil))

	permanent := retry.PredicateStopper(func(err error) bool { return !errors.Is(err, retry.ErrStop) })
	assert.True(t, permanent.Stop(now, 1, retry.ErrStop))
	assert.False(t, permanent.Stop(now, 1, errFlaky))

	yes, no := retry.MaxAttemptsStopper(0), retry.MaxAttemptsStopper(100)
	assert.True(t, retry.AnyStopper(no, yes).Stop(now, 1, nil))
	assert.False(t, retry.AllStoppers(no, yes).Stop(now, 1, nil))
	assert.True(t, retry.AllStoppers(yes, yes).Stop(now, 1, nil))
	assert.False(t, retry.AllStoppers().Stop(now, 1, nil))
}
