package random

import "github.com/pkg/errors"

// Shuffle returns a pseudo-randomly permuted copy of s using the
// Fisher-Yates algorithm. Every permutation is equally likely. s is not
// modified.
func Shuffle[T any](r *Random, s []T) []T {
	out := make([]T, len(s))
	copy(out, s)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// ShuffleBiased returns a permuted copy of s where every position i, from
// first to last, is swapped with a position drawn from the whole slice.
//
// Permutations are NOT equally likely. Use it only to reproduce the output
// distribution of older systems that shuffle this way; prefer Shuffle.
func ShuffleBiased[T any](r *Random, s []T) []T {
	out := make([]T, len(s))
	copy(out, s)

	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range out {
		j := r.intn(len(out))
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// ShuffleFunc pseudo-randomizes the order of elements in place.
// n is the number of elements and swap swaps the elements with indexes i and
// j. It returns ErrInvalidLength if n < 0.
func (r *Random) ShuffleFunc(n int, swap func(i, j int)) error {
	if n < 0 {
		return errors.Wrapf(ErrInvalidLength, "n %d must not be negative", n)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.shuffle(n, swap)
	return nil
}

// Perm returns, as a slice of n ints, a pseudo-random permutation of the
// integers [0,n). It returns an empty slice if n <= 0.
func (r *Random) Perm(n int) []int {
	p := make([]int, max(n, 0))
	for i := range p {
		p[i] = i
	}
	return Shuffle(r, p)
}

// shuffle expects the lock to be held.
func (r *Random) shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := r.intn(i + 1)
		swap(i, j)
	}
}
