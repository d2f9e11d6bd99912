package random

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// NoSelection is the index returned when there is nothing to select from.
const NoSelection = -1

// WeightedSelector selects indexes with probability proportional to a fixed
// vector of non-negative weights. The zero value selects nothing.
//
// Index i owns the half-open interval [c[i-1], c[i]) of [0,total), where c
// holds the prefix sums of the weights. Indexes with zero weight own an empty
// interval and are never selected.
type WeightedSelector struct {
	cumulative []float64
}

// NewWeightedSelector validates weights and precomputes their prefix sums.
// The weights slice is not retained or modified.
//
// Every weight must be finite and non-negative, otherwise ErrInvalidWeight is
// returned. If all weights are zero, every index is equally likely.
func NewWeightedSelector(weights []float64) (*WeightedSelector, error) {
	n := len(weights)
	if n == 0 {
		return &WeightedSelector{}, nil
	}

	maxWeight := 0.0
	for i, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return nil, errors.Wrapf(ErrInvalidWeight, "weight %v at index %d", w, i)
		}
		maxWeight = max(maxWeight, w)
	}

	local := make([]float64, n)
	if maxWeight == 0 {
		for i := range local {
			local[i] = 1 / float64(n)
		}
	} else {
		copy(local, weights)
	}

	cumulative := floats.CumSum(make([]float64, n), local)
	if math.IsInf(cumulative[n-1], 1) {
		floats.Scale(1/maxWeight, local)
		floats.CumSum(cumulative, local)
	}
	return &WeightedSelector{cumulative: cumulative}, nil
}

// Len returns the number of indexes the selector chooses from.
func (s *WeightedSelector) Len() int {
	return len(s.cumulative)
}

// Total returns the width of the interval draws are taken from.
func (s *WeightedSelector) Total() float64 {
	if len(s.cumulative) == 0 {
		return 0
	}
	return s.cumulative[len(s.cumulative)-1]
}

// Probability returns the probability of index i being selected, or 0 if i is
// out of range.
func (s *WeightedSelector) Probability(i int) float64 {
	if i < 0 || i >= len(s.cumulative) {
		return 0
	}
	lower := 0.0
	if i > 0 {
		lower = s.cumulative[i-1]
	}
	return (s.cumulative[i] - lower) / s.Total()
}

// Select draws an index using r. It returns NoSelection if the selector is
// empty.
func (s *WeightedSelector) Select(r *Random) int {
	if len(s.cumulative) == 0 {
		return NoSelection
	}

	r.mu.Lock()
	x := r.float64Range(0, s.Total())
	r.mu.Unlock()

	return sort.Search(len(s.cumulative), func(i int) bool {
		return x < s.cumulative[i]
	})
}

// SelectIndex returns an index i of weights with probability
// weights[i] / sum(weights). It returns NoSelection for an empty slice and
// ErrInvalidWeight if a weight is negative or not finite. If all weights are
// zero, every index is equally likely. weights is never modified.
func (r *Random) SelectIndex(weights []float64) (int, error) {
	s, err := NewWeightedSelector(weights)
	if err != nil {
		return NoSelection, err
	}
	return s.Select(r), nil
}

// Choose returns an element of items picked with probability proportional to
// the weight at the same index. The boolean is false when items is empty.
func Choose[T any](r *Random, items []T, weights []float64) (T, bool, error) {
	var zero T
	if len(items) != len(weights) {
		return zero, false, errors.Wrapf(ErrLengthMismatch, "%d items and %d weights", len(items), len(weights))
	}

	i, err := r.SelectIndex(weights)
	if err != nil || i == NoSelection {
		return zero, false, err
	}
	return items[i], true, nil
}
