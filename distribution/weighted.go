package distribution

import (
	"math/rand"
	"sort"

	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/floats"
)

// Weighted draws repeatedly from a fixed distribution. The
// cumulative weights are computed once at construction, so each
// draw is a single binary search, O(log n), instead of the O(n)
// scan Sample performs. Prefer Weighted when sampling many times
// from the same distribution.
//
// Weighted is not safe for concurrent use, since draws share the
// math/rand source.
type Weighted[V any] struct {
	cum    []float64
	values []V
}

// NewWeighted validates the distribution and precomputes its
// cumulative weights. The input slices are copied and may be
// modified afterwards.
func NewWeighted[V any](dist []float64, values []V) (*Weighted[V], error) {
	if err := validate(dist, values); err != nil {
		return nil, err
	}

	cum := make([]float64, len(dist))
	floats.CumSum(cum, dist)

	return &Weighted[V]{
		cum:    cum,
		values: slices.Clone(values),
	}, nil
}

// Len returns the number of outcomes in the distribution.
func (w *Weighted[_]) Len() int {
	return len(w.values)
}

// Sample draws one value, with probability proportional to its
// weight.
func (w *Weighted[V]) Sample() V {
	x := rand.Float64() * w.cum[len(w.cum)-1]

	// first bucket whose upper cumulative edge lies beyond x
	i := sort.Search(len(w.cum), func(i int) bool {
		return w.cum[i] > x
	})

	if i == len(w.cum) {
		// floating-point drift past the total
		i = len(w.cum) - 1
	}

	return w.values[i]
}
