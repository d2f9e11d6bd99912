package random_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gpahal/mtrand/random"
	"github.com/gpahal/mtrand/random/mocks"
)

func TestSelectIndex_Distribution(t *testing.T) {
	r := random.NewWithSeed(20)
	weights := []float64{20, 20, 10, 50}

	const num = 1000000
	distribution := make([]int, len(weights))
	for range num {
		i, err := r.SelectIndex(weights)
		require.NoError(t, err)
		distribution[i]++
	}

	prob := make([]float64, len(distribution))
	for i, count := range distribution {
		prob[i] = math.Round(float64(count) / num * 100)
	}
	assert.Equal(t, weights, prob)
}

func TestSelectIndex_Empty(t *testing.T) {
	r := random.NewWithSeed(21)

	i, err := r.SelectIndex([]float64{})
	require.NoError(t, err)
	assert.Equal(t, random.NoSelection, i)

	i, err = r.SelectIndex(nil)
	require.NoError(t, err)
	assert.Equal(t, -1, i)
}

func TestSelectIndex_AllZeroIsUniform(t *testing.T) {
	r := random.NewWithSeed(22)
	weights := []float64{0, 0, 0, 0}

	const num = 400000
	counts := make([]int, len(weights))
	for range num {
		i, err := r.SelectIndex(weights)
		require.NoError(t, err)
		counts[i]++
	}
	for i, count := range counts {
		assert.InDelta(t, 0.25, float64(count)/num, 0.01, "index %d", i)
	}
	assert.Equal(t, []float64{0, 0, 0, 0}, weights, "weights must not be modified")
}

func TestSelectIndex_InvalidWeight(t *testing.T) {
	r := random.NewWithSeed(23)

	for name, weights := range map[string][]float64{
		"negative":          {-1, 5},
		"negative zero sum": {1, -1},
		"nan":               {1, math.NaN()},
		"positive infinity": {math.Inf(1), 1},
		"negative infinity": {1, math.Inf(-1)},
	} {
		t.Run(name, func(t *testing.T) {
			i, err := r.SelectIndex(weights)
			require.ErrorIs(t, err, random.ErrInvalidWeight)
			assert.Equal(t, random.NoSelection, i)
		})
	}
}

func TestSelectIndex_ZeroWeightNeverSelected(t *testing.T) {
	r := random.NewWithSeed(24)
	weights := []float64{0, 1, 0, 3, 0}

	for range draws {
		i, err := r.SelectIndex(weights)
		require.NoError(t, err)
		require.Contains(t, []int{1, 3}, i)
	}
}

func TestSelectIndex_SingleWeight(t *testing.T) {
	r := random.NewWithSeed(25)

	for _, w := range []float64{0, 1e-300, 7} {
		i, err := r.SelectIndex([]float64{w})
		require.NoError(t, err)
		assert.Equal(t, 0, i)
	}
}

func TestSelectIndex_IntervalBoundaries(t *testing.T) {
	engine := mocks.NewEngine()
	r := random.NewWithEngine(engine)
	weights := []float64{1, 1, 2}

	// Draws are scaled by the total weight of 4.
	cases := []struct {
		deviate  float64
		expected int
	}{
		{0, 0},
		{0.2, 0},
		{math.Nextafter(0.25, 0), 0},
		{0.25, 1},
		{0.4, 1},
		{0.5, 2},
		{math.Nextafter(1, 0), 2},
	}
	for _, tc := range cases {
		engine.QueueFloat64(tc.deviate)
		i, err := r.SelectIndex(weights)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, i, "deviate %v", tc.deviate)
	}
}

func TestSelectIndex_OverflowingTotal(t *testing.T) {
	r := random.NewWithSeed(26)
	weights := []float64{math.MaxFloat64, math.MaxFloat64, 0}

	s, err := random.NewWeightedSelector(weights)
	require.NoError(t, err)
	assert.False(t, math.IsInf(s.Total(), 0))
	assert.InDelta(t, 0.5, s.Probability(0), 1e-12)
	assert.InDelta(t, 0.5, s.Probability(1), 1e-12)
	assert.Zero(t, s.Probability(2))

	seen := make(map[int]bool)
	for range 1000 {
		i, err := r.SelectIndex(weights)
		require.NoError(t, err)
		seen[i] = true
	}
	assert.Equal(t, map[int]bool{0: true, 1: true}, seen)
}

func TestWeightedSelector(t *testing.T) {
	s, err := random.NewWeightedSelector([]float64{20, 20, 10, 50})
	require.NoError(t, err)

	assert.Equal(t, 4, s.Len())
	assert.Equal(t, 100.0, s.Total())
	for i, p := range []float64{0.2, 0.2, 0.1, 0.5} {
		assert.InDelta(t, p, s.Probability(i), 1e-12)
	}
	assert.Zero(t, s.Probability(-1))
	assert.Zero(t, s.Probability(4))

	r := random.NewWithSeed(27)
	for range draws {
		i := s.Select(r)
		require.GreaterOrEqual(t, i, 0)
		require.Less(t, i, 4)
	}
}

func TestWeightedSelector_Empty(t *testing.T) {
	s, err := random.NewWeightedSelector(nil)
	require.NoError(t, err)

	assert.Equal(t, 0, s.Len())
	assert.Zero(t, s.Total())
	assert.Equal(t, random.NoSelection, s.Select(random.NewWithSeed(28)))

	var zero random.WeightedSelector
	assert.Equal(t, random.NoSelection, zero.Select(random.NewWithSeed(28)))
}

func TestChoose(t *testing.T) {
	r := random.NewWithSeed(29)

	item, ok, err := random.Choose(r, []string{"a", "b", "c"}, []float64{0, 1, 0})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "b", item)

	_, ok, err = random.Choose(r, []string{}, []float64{})
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = random.Choose(r, []string{"a"}, []float64{1, 2})
	require.ErrorIs(t, err, random.ErrLengthMismatch)

	_, _, err = random.Choose(r, []string{"a"}, []float64{-2})
	require.ErrorIs(t, err, random.ErrInvalidWeight)
}
