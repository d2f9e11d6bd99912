package random

import (
	"math"
	"sync"

	"github.com/pkg/errors"
)

// Random is a source of random numbers backed by an Engine. It is safe for
// concurrent use: every operation holds an internal lock for all of its draws,
// so a single call always consumes a contiguous run of the engine's output.
type Random struct {
	mu     sync.Mutex
	engine Engine
}

// New returns a new Random backed by an MT19937 seeded from system entropy.
func New() *Random {
	return NewWithSeed(NewRandomSeed())
}

// NewWithSeed returns a new Random backed by an MT19937 seeded with seed. Two
// values created with the same seed produce the same sequence of results.
func NewWithSeed(seed uint32) *Random {
	return NewWithEngine(NewMT19937(seed))
}

// NewWithEngine returns a new Random drawing from engine. A nil engine is
// replaced by an entropy-seeded MT19937.
func NewWithEngine(engine Engine) *Random {
	if engine == nil {
		engine = NewMT19937(NewRandomSeed())
	}
	return &Random{engine: engine}
}

// Float64 returns, as a float64, a pseudo-random number in [0.0,1.0).
func (r *Random) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.engine.Float64()
}

// Float32 returns, as a float32, a pseudo-random number in [0.0,1.0).
func (r *Random) Float32() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	for {
		// float32 conversion can round values just below 1 up to 1.
		if f := float32(r.engine.Float64()); f < 1 {
			return f
		}
	}
}

// Float64n returns, as a float64, a pseudo-random number in [0.0,n).
// It returns ErrInvalidRange if n is not a positive finite number.
func (r *Random) Float64n(n float64) (float64, error) {
	return r.Float64Range(0, n)
}

// Float64Range returns, as a float64, a pseudo-random number in [min,max).
// It returns ErrInvalidRange unless min < max and both are finite.
func (r *Random) Float64Range(min, max float64) (float64, error) {
	if err := validateFloat64Range(min, max); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.float64Range(min, max), nil
}

func validateFloat64Range(min, max float64) error {
	if math.IsNaN(min) || math.IsInf(min, 0) || math.IsNaN(max) || math.IsInf(max, 0) {
		return errors.Wrapf(ErrInvalidRange, "bounds [%v,%v) must be finite", min, max)
	}
	if !(min < max) {
		return errors.Wrapf(ErrInvalidRange, "min %v must be less than max %v", min, max)
	}
	return nil
}

// float64Range expects a validated range and the lock to be held.
func (r *Random) float64Range(min, max float64) float64 {
	span := max - min
	for {
		f := r.engine.Float64()

		var x float64
		if math.IsInf(span, 0) {
			// The halved span always fits in a float64.
			x = 2 * (min/2 + f*(max/2-min/2))
		} else {
			x = min + f*span
		}

		// Rounding may land exactly on max when f is close to 1.
		if x < max {
			return x
		}
	}
}

// Int returns a non-negative pseudo-random int.
func (r *Random) Int() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := uint(r.engine.Uint64())
	return int(u << 1 >> 1)
}

// Intn returns, as an int, a non-negative pseudo-random number in [0,n).
// It returns ErrInvalidRange if n <= 0.
func (r *Random) Intn(n int) (int, error) {
	v, err := r.Int64n(int64(n))
	return int(v), err
}

// IntRange returns, as an int, a pseudo-random number in [min,max).
// It returns ErrInvalidRange if max <= min.
func (r *Random) IntRange(min, max int) (int, error) {
	v, err := r.Int64Range(int64(min), int64(max))
	return int(v), err
}

// Int64 returns a non-negative pseudo-random 63-bit integer as an int64.
func (r *Random) Int64() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(r.engine.Uint64() >> 1)
}

// Int64n returns, as an int64, a non-negative pseudo-random number in [0,n).
// It returns ErrInvalidRange if n <= 0.
func (r *Random) Int64n(n int64) (int64, error) {
	if n <= 0 {
		return 0, errors.Wrapf(ErrInvalidRange, "n %d must be positive", n)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(r.engine.Uint64n(uint64(n))), nil
}

// Int64Range returns, as an int64, a pseudo-random number in [min,max). The
// whole int64 span is supported. It returns ErrInvalidRange if max <= min.
func (r *Random) Int64Range(min, max int64) (int64, error) {
	if max <= min {
		return 0, errors.Wrapf(ErrInvalidRange, "min %d must be less than max %d", min, max)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.int64Range(min, max), nil
}

// int64Range expects a validated range and the lock to be held.
func (r *Random) int64Range(min, max int64) int64 {
	span := uint64(max) - uint64(min)
	return int64(uint64(min) + r.engine.Uint64n(span))
}

// intn expects n > 0 and the lock to be held.
func (r *Random) intn(n int) int {
	return int(r.engine.Uint64n(uint64(n)))
}

// Uint32 returns a pseudo-random 32-bit value as a uint32.
func (r *Random) Uint32() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return uint32(r.engine.Uint64() >> 32)
}

// Uint64 returns a pseudo-random 64-bit value as a uint64.
func (r *Random) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.engine.Uint64()
}

// Bytes returns a slice of length pseudo-random bytes.
// It returns ErrInvalidLength if length < 0.
func (r *Random) Bytes(length int) ([]byte, error) {
	if length < 0 {
		return nil, errors.Wrapf(ErrInvalidLength, "length %d must not be negative", length)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	b := make([]byte, length)
	for i := 0; i < length; i += 8 {
		v := r.engine.Uint64()
		for j := i; j < i+8 && j < length; j++ {
			b[j] = byte(v)
			v >>= 8
		}
	}
	return b, nil
}
