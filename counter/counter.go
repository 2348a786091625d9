// Package counter provides a numeric counter: a mapping from keys to
// float64 weights in which absent keys read as zero. Counters support
// elementwise arithmetic (Add, Sub, Dot), in-place normalization and
// scaling, and max/sorted-key queries.
//
// Counter is a named map type, so the usual map operations apply:
// c[k] reads zero for an absent key, c[k] += x creates the entry as
// needed, and delete(c, k) removes one. Counter is not safe for
// concurrent use.
package counter

import (
	"errors"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ErrZeroTotal is returned by Normalize when the counter's total is
// exactly zero, including when the counter is empty. There is no
// scaling of an all-zero counter that sums to 1.
var ErrZeroTotal = errors.New("counter: total is zero, cannot normalize")

// Counter maps keys to float64 weights. A nil Counter may be read
// from (Get, Total, ArgMax, Dot and friends all work) but not
// written to. Use New, Count or FromMap, or an ordinary composite
// literal, to create a writable Counter.
type Counter[K comparable] map[K]float64

// New returns an empty writable Counter.
func New[K comparable]() Counter[K] {
	return make(Counter[K])
}

// Count tallies occurrences of each element of the slice: the
// resulting Counter maps every distinct element to the number of
// times it appears.
func Count[S ~[]K, K comparable](s S) Counter[K] {
	c := make(Counter[K])

	for _, v := range s {
		c[v]++
	}

	return c
}

// FromMap copies m into a new Counter.
func FromMap[K comparable](m map[K]float64) Counter[K] {
	c := make(Counter[K], len(m))

	for k, v := range m {
		c[k] = v
	}

	return c
}

// Get returns the weight stored for k, or 0 if k is absent.
// Reading a missing key is not an error.
func (c Counter[K]) Get(k K) float64 {
	return c[k]
}

// IncrementAll adds amount to every key in keys, creating entries
// as needed.
func (c Counter[K]) IncrementAll(keys []K, amount float64) {
	for _, k := range keys {
		c[k] += amount
	}
}

// Total returns the sum of all weights.
func (c Counter[K]) Total() float64 {
	var sum float64

	for _, v := range c {
		sum += v
	}

	return sum
}

// ArgMax returns the key with the largest weight. If the counter is
// empty, ok is false. When several keys are tied for the maximum,
// which of them is returned is unspecified (it depends on map
// iteration order).
func (c Counter[K]) ArgMax() (k K, ok bool) {
	var best float64

	for key, v := range c {
		if !ok || v > best {
			k, best, ok = key, v, true
		}
	}

	return
}

// SortedKeys returns the keys ordered by descending weight. The
// relative order of keys with equal weights is unspecified.
func (c Counter[K]) SortedKeys() []K {
	keys := maps.Keys(c)

	slices.SortFunc(keys, func(a, b K) int {
		switch x, y := c[a], c[b]; {
		case x > y:
			return -1
		case x < y:
			return 1
		default:
			return 0
		}
	})

	return keys
}

// Normalize scales every weight in place so the total becomes 1,
// preserving the ratios between weights. If the total is exactly
// zero the counter is left unchanged and ErrZeroTotal is returned.
func (c Counter[K]) Normalize() error {
	total := c.Total()
	if total == 0 {
		return ErrZeroTotal
	}

	for k := range c {
		c[k] /= total
	}

	return nil
}

// DivideAll divides every weight by divisor, in place.
// A zero divisor is programmer error and panics.
func (c Counter[K]) DivideAll(divisor float64) {
	if divisor == 0 {
		panic("zero divisor")
	}

	for k := range c {
		c[k] /= divisor
	}
}

// Copy returns an independent copy of the counter. Writes to the
// copy do not affect the original.
func (c Counter[K]) Copy() Counter[K] {
	cp := make(Counter[K], len(c))

	for k, v := range c {
		cp[k] = v
	}

	return cp
}

// fold copies a, then folds b into the copy using f. Keys present in
// only one of the two counters contribute their weight against an
// implicit zero on the other side.
func fold[K comparable](a, b Counter[K], f func(x, y float64) float64) Counter[K] {
	out := make(Counter[K], len(a))

	for k, v := range a {
		out[k] = v
	}

	for k, v := range b {
		out[k] = f(out[k], v)
	}

	return out
}

// Add returns a new Counter over the union of keys, with each key's
// weight being the sum of its weights in c and other. Neither input
// is modified.
func (c Counter[K]) Add(other Counter[K]) Counter[K] {
	return fold(c, other, func(x, y float64) float64 { return x + y })
}

// Sub returns a new Counter over the union of keys, with each key's
// weight being its weight in c minus its weight in other. A key
// absent from c contributes -other[k]. Neither input is modified.
func (c Counter[K]) Sub(other Counter[K]) Counter[K] {
	return fold(c, other, func(x, y float64) float64 { return x - y })
}

// Dot returns the dot product of the two counters viewed as sparse
// vectors: the sum of c[k]*other[k] over all keys. Only keys present
// in both counters contribute, since a missing key reads as zero.
func (c Counter[K]) Dot(other Counter[K]) float64 {
	a, b := c, other
	if len(a) > len(b) {
		a, b = b, a
	}

	var sum float64

	for k, v := range a {
		if w, ok := b[k]; ok {
			sum += v * w
		}
	}

	return sum
}
