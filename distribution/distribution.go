// Package distribution provides helpers for working with discrete
// probability distributions: normalization, single and batched
// weighted draws, coin flips, and probability queries.
//
// A distribution is a slice of non-negative weights paired with an
// equal-length slice of outcome values. Weights do not need to sum
// to 1: every draw scales by the weight sum, which is equivalent to
// normalizing first. Draws use the shared math/rand source.
package distribution

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/floats"

	"github.com/jtcramer/pandaphone/counter"
)

// ErrInvalidDistribution is returned when a distribution cannot be
// sampled from: it is empty, its weights and values differ in
// length, a weight is negative or NaN, or all weights are zero.
var ErrInvalidDistribution = errors.New("distribution: invalid distribution")

// validate rejects distributions that cannot produce a draw.
// Silently mis-sampling from a malformed distribution is worse
// than failing loudly.
func validate[V any](dist []float64, values []V) error {
	if len(dist) == 0 {
		return fmt.Errorf("%w: no weights", ErrInvalidDistribution)
	}

	if len(dist) != len(values) {
		return fmt.Errorf("%w: %d weights for %d values",
			ErrInvalidDistribution, len(dist), len(values))
	}

	for i, w := range dist {
		if w < 0 || math.IsNaN(w) {
			return fmt.Errorf("%w: weight %v at index %d",
				ErrInvalidDistribution, w, i)
		}
	}

	if floats.Sum(dist) == 0 {
		return fmt.Errorf("%w: weights sum to zero", ErrInvalidDistribution)
	}

	return nil
}

// Normalize returns a fresh slice with the weights scaled to sum
// to 1, preserving their ratios. If the weights sum to 0 the input
// slice is returned unchanged. The input is never modified.
func Normalize(dist []float64) []float64 {
	sum := floats.Sum(dist)
	if sum == 0 {
		return dist
	}

	out := make([]float64, len(dist))
	floats.ScaleTo(out, 1/sum, dist)

	return out
}

// NormalizeCounter returns a fresh counter with the weights scaled
// to sum to 1. If the counter's total is 0 the input counter is
// returned unchanged. The input is never modified.
func NormalizeCounter[K comparable](c counter.Counter[K]) counter.Counter[K] {
	cp := c.Copy()
	if err := cp.Normalize(); err != nil {
		return c
	}

	return cp
}

// Sample draws one value from the distribution: values[i] is
// returned with probability proportional to dist[i]. The weights
// need not sum to 1.
func Sample[V any](dist []float64, values []V) (V, error) {
	var zero V

	if err := validate(dist, values); err != nil {
		return zero, err
	}

	x := rand.Float64() * floats.Sum(dist)

	var cum float64
	for i, w := range dist {
		cum += w
		if x < cum {
			return values[i], nil
		}
	}

	// x can creep past the final cumulative weight through
	// floating-point drift; the last bucket absorbs the residue
	return values[len(values)-1], nil
}

// SampleCounter draws one key from the counter, with probability
// proportional to the key's weight. The (weight, outcome) pairing
// is taken over the keys in ascending order.
func SampleCounter[K constraints.Ordered](c counter.Counter[K]) (K, error) {
	var zero K

	if len(c) == 0 {
		return zero, fmt.Errorf("%w: empty counter", ErrInvalidDistribution)
	}

	keys := maps.Keys(c)
	slices.Sort(keys)

	dist := make([]float64, len(keys))
	for i, k := range keys {
		dist[i] = c.Get(k)
	}

	return Sample(dist, keys)
}

// NSample draws n values from the distribution. It sorts n uniform
// draws and walks the cumulative weights once, so the cost is
// O(n log n + len(dist)) rather than n independent scans of the
// distribution. The returned samples are not in draw order.
// A negative n is programmer error and panics.
func NSample[V any](dist []float64, values []V, n int) ([]V, error) {
	if n < 0 {
		panic("n is negative")
	}

	if err := validate(dist, values); err != nil {
		return nil, err
	}

	if n == 0 {
		return []V{}, nil
	}

	sum := floats.Sum(dist)

	draws := make([]float64, n)
	for i := range draws {
		draws[i] = rand.Float64() * sum
	}
	sort.Float64s(draws)

	samples := make([]V, 0, n)

	var cum float64
	pos := 0
	for _, x := range draws {
		// advance to the bucket containing x, clamping to the
		// last bucket so drift past the total cannot run off
		// the end
		for pos < len(dist)-1 && x >= cum+dist[pos] {
			cum += dist[pos]
			pos++
		}
		samples = append(samples, values[pos])
	}

	return samples, nil
}

// Probability returns the probability of drawing value from the
// distribution: the sum of the weights of every entry whose value
// equals value. Duplicate values mapping to the same outcome are
// summed together. dist and values must be the same length.
func Probability[V comparable](value V, dist []float64, values []V) float64 {
	if len(dist) != len(values) {
		panic("weights and values differ in length")
	}

	var total float64

	for i, v := range values {
		if v == value {
			total += dist[i]
		}
	}

	return total
}

// FlipCoin returns true with probability p. FlipCoin(0) is always
// false and FlipCoin(1) is always true.
func FlipCoin(p float64) bool {
	return rand.Float64() < p
}

// Choice is a weight-value pair for Choose.
type Choice[V any] struct {
	Weight float64
	Value  V
}

// Choose draws one value from a slice of weight-value pairs, with
// probability proportional to each pair's weight. To draw from a
// counter instead, use SampleCounter.
func Choose[V any](choices []Choice[V]) (V, error) {
	dist := make([]float64, len(choices))
	values := make([]V, len(choices))

	for i, c := range choices {
		dist[i] = c.Weight
		values[i] = c.Value
	}

	return Sample(dist, values)
}
