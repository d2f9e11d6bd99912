package retry

import (
	"math"
	"time"

	"github.com/gpahal/mtrand/random"
)

const (
	// 1 << 63 would overflow signed int64 (time.Duration), thus 62
	maxExp = 62
)

type Delayer interface {
	Delay(startTime time.Time, attempts int, err error) time.Duration
}

type DelayerFunc func(startTime time.Time, attempts int, err error) time.Duration

func (df DelayerFunc) Delay(startTime time.Time, attempts int, err error) time.Duration {
	return df(startTime, attempts, err)
}

func FixedDelayer(d time.Duration) Delayer {
	return DelayerFunc(func(startTime time.Time, attempts int, err error) time.Duration {
		return d
	})
}

func LinearDelayer(step time.Duration) Delayer {
	return DelayerFunc(func(startTime time.Time, attempts int, err error) time.Duration {
		return time.Duration(attempts) * step
	})
}

// ExponentialBackoffDelayer waits coefficient * 2^attempts. It returns nil
// for a non-positive coefficient.
func ExponentialBackoffDelayer(coefficient time.Duration) Delayer {
	if coefficient <= 0 {
		return nil
	}

	currMaxExp := maxExp - int(math.Floor(math.Log2(float64(coefficient))))
	return DelayerFunc(func(startTime time.Time, attempts int, err error) time.Duration {
		attempts = min(attempts, currMaxExp)
		return coefficient * (1 << attempts)
	})
}

// RandomDelayer waits minDelay plus a jitter drawn uniformly from
// [0,maxJitter). A nil rnd draws from random.Default().
func RandomDelayer(minDelay time.Duration, maxJitter time.Duration, rnd *random.Random) Delayer {
	if rnd == nil {
		rnd = random.Default()
	}
	return DelayerFunc(func(startTime time.Time, attempts int, err error) time.Duration {
		jitter, jitterErr := rnd.Int64n(int64(maxJitter))
		if jitterErr != nil {
			jitter = 0
		}
		return max(minDelay, 0) + time.Duration(jitter)
	})
}

// JitterDelayer scales every delay of inner by a factor drawn uniformly from
// [1-fraction,1+fraction). fraction is clamped to [0,1].
func JitterDelayer(inner Delayer, fraction float64, rnd *random.Random) Delayer {
	if inner == nil {
		return nil
	}
	if rnd == nil {
		rnd = random.Default()
	}

	fraction = math.Min(math.Max(fraction, 0), 1)
	return DelayerFunc(func(startTime time.Time, attempts int, err error) time.Duration {
		d := inner.Delay(startTime, attempts, err)
		factor, factorErr := rnd.Float64Range(1-fraction, 1+fraction)
		if factorErr != nil {
			return d
		}
		return time.Duration(float64(d) * factor)
	})
}

func LimitDelayer(inner Delayer, limit time.Duration) Delayer {
	if inner == nil {
		return nil
	}

	return DelayerFunc(func(startTime time.Time, attempts int, err error) time.Duration {
		return min(inner.Delay(startTime, attempts, err), limit)
	})
}

func MinDelayer(delayers ...Delayer) Delayer {
	return CombineDelayers(func(ds []time.Duration) time.Duration {
		least := ds[0]
		for _, d := range ds[1:] {
			least = min(least, d)
		}
		return least
	}, delayers...)
}

func MaxDelayer(delayers ...Delayer) Delayer {
	return CombineDelayers(func(ds []time.Duration) time.Duration {
		var most time.Duration
		for _, d := range ds {
			most = max(most, d)
		}
		return most
	}, delayers...)
}

func SumDelayer(delayers ...Delayer) Delayer {
	return CombineDelayers(func(ds []time.Duration) time.Duration {
		var sum time.Duration
		for _, d := range ds {
			sum += d
		}
		return sum
	}, delayers...)
}

// CombineDelayers merges the delays of delayers with combine. nil delayers
// contribute 0. It returns nil when no delayers are given.
func CombineDelayers(combine func(ds []time.Duration) time.Duration, delayers ...Delayer) Delayer {
	if len(delayers) == 0 {
		return nil
	}

	return DelayerFunc(func(startTime time.Time, attempts int, err error) time.Duration {
		ds := make([]time.Duration, 0, len(delayers))
		for _, delayer := range delayers {
			if delayer == nil {
				ds = append(ds, 0)
				continue
			}
			ds = append(ds, delayer.Delay(startTime, attempts, err))
		}
		return combine(ds)
	})
}
