package retry

import (
	"time"
)

type Stopper interface {
	Stop(startTime time.Time, attempts int, err error) bool
}

type StopperFunc func(startTime time.Time, attempts int, err error) bool

func (sf StopperFunc) Stop(startTime time.Time, attempts int, err error) bool {
	return sf(startTime, attempts, err)
}

func MaxAttemptsStopper(maxAttempts int) Stopper {
	return StopperFunc(func(startTime time.Time, attempts int, err error) bool {
		return attempts >= maxAttempts
	})
}

func TimeoutStopper(d time.Duration) Stopper {
	return StopperFunc(func(startTime time.Time, attempts int, err error) bool {
		return time.Since(startTime) >= d
	})
}

func DeadlineStopper(deadline time.Time) Stopper {
	return StopperFunc(func(startTime time.Time, attempts int, err error) bool {
		return !time.Now().Before(deadline)
	})
}

// PredicateStopper stops as soon as retryable reports err as permanent.
func PredicateStopper(retryable func(err error) bool) Stopper {
	return StopperFunc(func(startTime time.Time, attempts int, err error) bool {
		return !retryable(err)
	})
}

func AnyStopper(stoppers ...Stopper) Stopper {
	return StopperFunc(func(startTime time.Time, attempts int, err error) bool {
		for _, stopper := range stoppers {
			if stopper != nil && stopper.Stop(startTime, attempts, err) {
				return true
			}
		}
		return false
	})
}

func AllStoppers(stoppers ...Stopper) Stopper {
	return StopperFunc(func(startTime time.Time, attempts int, err error) bool {
		for _, stopper := range stoppers {
			if stopper != nil && !stopper.Stop(startTime, attempts, err) {
				return false
			}
		}
		return len(stoppers) > 0
	})
}
