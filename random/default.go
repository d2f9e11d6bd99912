package random

import "sync"

var (
	defaultOnce   sync.Once
	defaultRandom *Random
)

// Default returns the process-wide Random. It is seeded from system entropy
// the first time it is used.
func Default() *Random {
	defaultOnce.Do(func() {
		defaultRandom = New()
	})
	return defaultRandom
}

// Float64 returns a number in [0.0,1.0) from the default Random.
func Float64() float64 {
	return Default().Float64()
}

// Float64Range returns a number in [min,max) from the default Random.
func Float64Range(min, max float64) (float64, error) {
	return Default().Float64Range(min, max)
}

// Intn returns an int in [0,n) from the default Random.
func Intn(n int) (int, error) {
	return Default().Intn(n)
}

// IntRange returns an int in [min,max) from the default Random.
func IntRange(min, max int) (int, error) {
	return Default().IntRange(min, max)
}

// SelectIndex selects a weighted index using the default Random.
func SelectIndex(weights []float64) (int, error) {
	return Default().SelectIndex(weights)
}

// String returns a random string from charset using the default Random.
func String(length int, charset string) (string, error) {
	return Default().String(length, charset)
}
