package distribution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/jtcramer/pandaphone/counter"
)

const trials = 1000

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		dist []float64
		want []float64
	}{
		{
			name: "already normalized",
			dist: []float64{0.3, 0.7},
			want: []float64{0.3, 0.7},
		},
		{
			name: "scales down",
			dist: []float64{1, 3},
			want: []float64{0.25, 0.75},
		},
		{
			name: "scales up",
			dist: []float64{0.1, 0.1},
			want: []float64{0.5, 0.5},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := append([]float64(nil), tt.dist...)

			got := Normalize(tt.dist)
			assert.InDeltaSlice(t, tt.want, got, 1e-12)

			// input untouched
			assert.Equal(t, in, tt.dist)
		})
	}

	t.Run("zero sum unchanged", func(t *testing.T) {
		dist := []float64{0, 0, 0}
		got := Normalize(dist)
		assert.Equal(t, []float64{0, 0, 0}, got)
	})
}

func TestNormalizeCounter(t *testing.T) {
	c := counter.Counter[string]{
		"a": 1,
		"b": 3,
	}

	got := NormalizeCounter(c)

	assert.InDelta(t, 1.0, got.Total(), 1e-12)
	assert.InDelta(t, 0.25, got.Get("a"), 1e-12)
	assert.InDelta(t, 0.75, got.Get("b"), 1e-12)

	// input untouched
	assert.Equal(t, counter.Counter[string]{"a": 1, "b": 3}, c)

	t.Run("zero total unchanged", func(t *testing.T) {
		z := counter.Counter[string]{"a": 0}
		assert.Equal(t, z, NormalizeCounter(z))
	})
}

func TestSampleDegenerate(t *testing.T) {
	for i := 0; i < trials; i++ {
		got, err := Sample([]float64{1.0}, []string{"x"})
		require.NoError(t, err)
		assert.Equal(t, "x", got)
	}

	for i := 0; i < trials; i++ {
		got, err := Sample([]float64{0.0, 1.0}, []string{"x", "y"})
		require.NoError(t, err)
		assert.Equal(t, "y", got)
	}
}

func TestSampleUnnormalized(t *testing.T) {
	// weights that do not sum to 1 behave as if normalized
	for i := 0; i < trials; i++ {
		got, err := Sample([]float64{0, 5}, []string{"x", "y"})
		require.NoError(t, err)
		assert.Equal(t, "y", got)
	}
}

func TestSampleFrequencies(t *testing.T) {
	const n = 200_000

	hits := make([]float64, n)
	for i := 0; i < n; i++ {
		got, err := Sample([]float64{1, 3}, []string{"x", "y"})
		require.NoError(t, err)
		if got == "y" {
			hits[i] = 1
		}
	}

	// expected 0.75; the tolerance is many standard errors wide
	assert.InDelta(t, 0.75, stat.Mean(hits, nil), 0.02)
}

func TestSampleInvalid(t *testing.T) {
	tests := []struct {
		name   string
		dist   []float64
		values []string
	}{
		{
			name: "empty",
		},
		{
			name:   "length mismatch",
			dist:   []float64{0.5, 0.5},
			values: []string{"x"},
		},
		{
			name:   "negative weight",
			dist:   []float64{0.5, -0.5},
			values: []string{"x", "y"},
		},
		{
			name:   "zero sum",
			dist:   []float64{0, 0},
			values: []string{"x", "y"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Sample(tt.dist, tt.values)
			assert.ErrorIs(t, err, ErrInvalidDistribution)
		})
	}
}

func TestSampleCounter(t *testing.T) {
	c := counter.Counter[string]{
		"x": 0,
		"y": 2,
	}

	for i := 0; i < trials; i++ {
		got, err := SampleCounter(c)
		require.NoError(t, err)
		assert.Equal(t, "y", got)
	}

	t.Run("empty", func(t *testing.T) {
		_, err := SampleCounter(counter.New[string]())
		assert.ErrorIs(t, err, ErrInvalidDistribution)
	})
}

func TestNSampleDegenerate(t *testing.T) {
	got, err := NSample([]float64{1.0}, []string{"x"}, 100)
	require.NoError(t, err)
	require.Len(t, got, 100)
	for _, v := range got {
		assert.Equal(t, "x", v)
	}
}

func TestNSampleZero(t *testing.T) {
	got, err := NSample([]float64{1.0}, []string{"x"}, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNSampleNegativePanics(t *testing.T) {
	assert.Panics(t, func() {
		NSample([]float64{1.0}, []string{"x"}, -1)
	})
}

func TestNSampleFrequencies(t *testing.T) {
	const n = 200_000

	got, err := NSample([]float64{1, 1, 2}, []string{"a", "b", "c"}, n)
	require.NoError(t, err)
	require.Len(t, got, n)

	hits := make([]float64, n)
	for i, v := range got {
		if v == "c" {
			hits[i] = 1
		}
	}

	assert.InDelta(t, 0.5, stat.Mean(hits, nil), 0.02)
}

func TestNSampleInvalid(t *testing.T) {
	_, err := NSample(nil, []string(nil), 10)
	assert.ErrorIs(t, err, ErrInvalidDistribution)
}

func TestProbability(t *testing.T) {
	dist := []float64{0.3, 0.7}
	values := []string{"x", "y"}

	assert.InDelta(t, 0.7, Probability("y", dist, values), 1e-12)
	assert.InDelta(t, 0.3, Probability("x", dist, values), 1e-12)
	assert.Equal(t, 0.0, Probability("z", dist, values))
}

func TestProbabilityDuplicates(t *testing.T) {
	// duplicate values map to the same outcome and sum together
	dist := []float64{0.2, 0.5, 0.3}
	values := []string{"x", "y", "x"}

	assert.InDelta(t, 0.5, Probability("x", dist, values), 1e-12)
}

func TestProbabilityPanics(t *testing.T) {
	assert.Panics(t, func() {
		Probability("x", []float64{0.5}, []string{"x", "y"})
	})
}

func TestFlipCoin(t *testing.T) {
	for i := 0; i < trials; i++ {
		assert.False(t, FlipCoin(0.0))
	}

	for i := 0; i < trials; i++ {
		assert.True(t, FlipCoin(1.0))
	}
}

func TestChoose(t *testing.T) {
	choices := []Choice[string]{
		{Weight: 0, Value: "x"},
		{Weight: 1, Value: "y"},
	}

	for i := 0; i < trials; i++ {
		got, err := Choose(choices)
		require.NoError(t, err)
		assert.Equal(t, "y", got)
	}

	t.Run("empty", func(t *testing.T) {
		_, err := Choose[string](nil)
		assert.ErrorIs(t, err, ErrInvalidDistribution)
	})
}
