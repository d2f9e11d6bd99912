package random

import (
	"crypto/rand"
	"encoding/binary"
	"time"
)

// Engine is the uniform bit source a Random draws from. Implementations need
// not be safe for concurrent use.
type Engine interface {
	// Float64 returns a pseudo-random number in [0.0,1.0).
	Float64() float64
	// Uint64 returns a pseudo-random 64-bit value.
	Uint64() uint64
	// Uint64n returns a pseudo-random number in [0,n). It returns 0 if n == 0.
	Uint64n(n uint64) uint64
}

// NewRandomSeed returns a 32-bit seed mixed from the system entropy source
// and the wall clock.
func NewRandomSeed() uint32 {
	var b [4]byte
	var entropy uint32
	if _, err := rand.Read(b[:]); err == nil {
		entropy = binary.LittleEndian.Uint32(b[:])
	}
	now := time.Now().UnixNano()
	return entropy ^ uint32(now) ^ uint32(now>>32)
}
