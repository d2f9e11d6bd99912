package random

import "math/bits"

const (
	mtN        = 624
	mtM        = 397
	matrixA    = 0x9908b0df
	upperMask  = 0x80000000
	lowerMask  = 0x7fffffff
	temperingB = 0x9d2c5680
	temperingC = 0xefc60000

	// DefaultSeed is the seed used by the reference MT19937 implementation
	// when none is supplied.
	DefaultSeed uint32 = 5489
)

// MT19937 is a 32-bit Mersenne Twister. It is not safe for concurrent use;
// wrap it in a Random to share it between goroutines.
//
// MT19937 also satisfies math/rand/v2.Source.
type MT19937 struct {
	mt  [mtN]uint32
	mti int
}

var _ Engine = (*MT19937)(nil)

// NewMT19937 returns a generator seeded with a 32-bit seed.
func NewMT19937(seed uint32) *MT19937 {
	mt := &MT19937{}
	mt.Seed(seed)
	return mt
}

// NewMT19937Array returns a generator seeded with an array of 32-bit words.
// An empty key is treated as a key of a single zero word.
func NewMT19937Array(key []uint32) *MT19937 {
	mt := &MT19937{}
	mt.SeedArray(key)
	return mt
}

// Seed resets the generator state from a 32-bit seed.
func (mt *MT19937) Seed(seed uint32) {
	mt.mt[0] = seed
	for i := 1; i < mtN; i++ {
		mt.mt[i] = 1812433253*(mt.mt[i-1]^(mt.mt[i-1]>>30)) + uint32(i)
	}
	mt.mti = mtN
}

// SeedArray resets the generator state from an array of 32-bit words.
func (mt *MT19937) SeedArray(key []uint32) {
	if len(key) == 0 {
		key = []uint32{0}
	}

	mt.Seed(19650218)
	i, j := 1, 0
	for k := max(mtN, len(key)); k > 0; k-- {
		mt.mt[i] = (mt.mt[i] ^ ((mt.mt[i-1] ^ (mt.mt[i-1] >> 30)) * 1664525)) + key[j] + uint32(j)
		i++
		j++
		if i >= mtN {
			mt.mt[0] = mt.mt[mtN-1]
			i = 1
		}
		if j >= len(key) {
			j = 0
		}
	}
	for k := mtN - 1; k > 0; k-- {
		mt.mt[i] = (mt.mt[i] ^ ((mt.mt[i-1] ^ (mt.mt[i-1] >> 30)) * 1566083941)) - uint32(i)
		i++
		if i >= mtN {
			mt.mt[0] = mt.mt[mtN-1]
			i = 1
		}
	}
	// MSB is 1, assuring a non-zero initial array.
	mt.mt[0] = 0x80000000
	mt.mti = mtN
}

func (mt *MT19937) generate() {
	var y uint32
	mag01 := [2]uint32{0, matrixA}

	var kk int
	for kk = 0; kk < mtN-mtM; kk++ {
		y = (mt.mt[kk] & upperMask) | (mt.mt[kk+1] & lowerMask)
		mt.mt[kk] = mt.mt[kk+mtM] ^ (y >> 1) ^ mag01[y&1]
	}
	for ; kk < mtN-1; kk++ {
		y = (mt.mt[kk] & upperMask) | (mt.mt[kk+1] & lowerMask)
		mt.mt[kk] = mt.mt[kk+(mtM-mtN)] ^ (y >> 1) ^ mag01[y&1]
	}
	y = (mt.mt[mtN-1] & upperMask) | (mt.mt[0] & lowerMask)
	mt.mt[mtN-1] = mt.mt[mtM-1] ^ (y >> 1) ^ mag01[y&1]
	mt.mti = 0
}

// Uint32 returns a pseudo-random 32-bit value.
func (mt *MT19937) Uint32() uint32 {
	if mt.mti >= mtN {
		mt.generate()
	}

	y := mt.mt[mt.mti]
	mt.mti++

	y ^= y >> 11
	y ^= (y << 7) & temperingB
	y ^= (y << 15) & temperingC
	y ^= y >> 18
	return y
}

// Uint64 returns a pseudo-random 64-bit value built from two consecutive
// 32-bit outputs, the first one in the high word.
func (mt *MT19937) Uint64() uint64 {
	hi := uint64(mt.Uint32())
	lo := uint64(mt.Uint32())
	return hi<<32 | lo
}

// Float64 returns a pseudo-random number in [0.0,1.0) with 53-bit
// resolution. This matches numpy's RandomState.random_sample.
func (mt *MT19937) Float64() float64 {
	a := mt.Uint32() >> 5
	b := mt.Uint32() >> 6
	return (float64(a)*67108864.0 + float64(b)) * (1.0 / 9007199254740992.0)
}

// Uint64n returns an unbiased pseudo-random number in [0,n) using
// multiply-and-reject. It returns 0 if n == 0.
func (mt *MT19937) Uint64n(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	if n&(n-1) == 0 {
		return mt.Uint64() & (n - 1)
	}
	hi, lo := bits.Mul64(mt.Uint64(), n)
	if lo < n {
		thresh := -n % n
		for lo < thresh {
			hi, lo = bits.Mul64(mt.Uint64(), n)
		}
	}
	return hi
}
