package retry

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var (
	// ErrStop can be returned (or wrapped) by a RetryableFunc to stop retrying.
	ErrStop = errors.New("stop retries")
)

type RetryableFunc func(ctx context.Context) error

type Options struct {
	Delayer Delayer
	Stopper Stopper
}

// Do calls fn until it succeeds, returns ErrStop, or the stopper gives up.
// Without both a Delayer and a Stopper fn is called once. Waiting between
// attempts is interrupted when ctx is done.
func Do(ctx context.Context, fn RetryableFunc, opts Options) error {
	if fn == nil {
		return nil
	}

	startTime := time.Now()
	attempts := 0
	for {
		err := fn(ctx)
		if err == nil || errors.Is(err, ErrStop) || opts.Stopper == nil || opts.Delayer == nil {
			return err
		}

		attempts += 1
		if opts.Stopper.Stop(startTime, attempts, err) {
			return err
		}

		d := opts.Delayer.Delay(startTime, attempts, err)
		if d <= 0 {
			continue
		}

		timer := time.NewTimer(d)
		select {
		case <-ctx.Done():
			timer.Stop()
			return errors.Wrapf(ctx.Err(), "retry interrupted after %d attempts: %v", attempts, err)
		case <-timer.C:
		}
	}
}
