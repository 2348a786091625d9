// Package series provides a forward-filling series: an ordered map
// in which a lookup for a missing key returns the value of the
// nearest key before it. It is useful for observing state that
// changes at known points in time and asking what the state was at
// an arbitrary moment in between.
package series

import (
	"errors"
	"fmt"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// ErrBeforeFirst is returned by Get when the queried key comes
// before every stored key and no default value was configured.
var ErrBeforeFirst = errors.New("series: key is before any stored entry")

// ForwardFill is a series of key-value entries kept in ascending key
// order. Get returns the value of the greatest stored key less than
// or equal to the queried key. ForwardFill is not safe for
// concurrent use.
//
// Entries are held in a sorted slice with binary-search lookup and
// insertion, so Get is O(log n) and Set is O(n) in the worst case.
type ForwardFill[K constraints.Ordered, V any] struct {
	keys []K
	vals []V

	def    V
	hasDef bool
}

// New returns an empty ForwardFill with no default value:
// a Get before the first stored key returns ErrBeforeFirst.
func New[K constraints.Ordered, V any]() *ForwardFill[K, V] {
	return &ForwardFill[K, V]{}
}

// NewWithDefault returns an empty ForwardFill that returns def for
// any Get before the first stored key, instead of an error. The
// zero value of V is a valid default.
func NewWithDefault[K constraints.Ordered, V any](def V) *ForwardFill[K, V] {
	return &ForwardFill[K, V]{
		def:    def,
		hasDef: true,
	}
}

// Get returns the value stored at the greatest key less than or
// equal to k. If every stored key is greater than k, the configured
// default is returned if there is one; otherwise the zero V and an
// error wrapping ErrBeforeFirst.
func (f *ForwardFill[K, V]) Get(k K) (V, error) {
	i, found := slices.BinarySearch(f.keys, k)
	if found {
		return f.vals[i], nil
	}

	// i is where k would be inserted, so the entry
	// at i-1 holds the greatest key before k
	if i == 0 {
		if f.hasDef {
			return f.def, nil
		}

		var zero V
		return zero, fmt.Errorf("%w: %v", ErrBeforeFirst, k)
	}

	return f.vals[i-1], nil
}

// Set stores v at key k, keeping the entries sorted. If k is
// already present its value is overwritten.
func (f *ForwardFill[K, V]) Set(k K, v V) {
	i, found := slices.BinarySearch(f.keys, k)
	if found {
		f.vals[i] = v
		return
	}

	f.keys = slices.Insert(f.keys, i, k)
	f.vals = slices.Insert(f.vals, i, v)
}

// Delete removes the entry stored exactly at k. It does no forward
// filling: only an exact key match is removed. If the key was not
// found, ok is false.
func (f *ForwardFill[K, V]) Delete(k K) (ok bool) {
	i, found := slices.BinarySearch(f.keys, k)
	if !found {
		return false
	}

	f.keys = slices.Delete(f.keys, i, i+1)
	f.vals = slices.Delete(f.vals, i, i+1)

	return true
}

// Len returns the number of stored entries.
func (f *ForwardFill[K, _]) Len() int {
	return len(f.keys)
}

// Keys returns the stored keys in ascending order.
// The returned slice is a copy.
func (f *ForwardFill[K, _]) Keys() []K {
	return slices.Clone(f.keys)
}

// ForEach calls fn for every stored entry in ascending key order.
// If fn returns false at any entry, iteration stops early.
// The result of modifying the series while iterating is undefined.
func (f *ForwardFill[K, V]) ForEach(fn func(k K, v V) bool) {
	for i, k := range f.keys {
		if !fn(k, f.vals[i]) {
			break
		}
	}
}

// Copy returns a deep copy of the series. Note: pointer-typed
// values will still end up pointing to the same location in memory.
func (f *ForwardFill[K, V]) Copy() *ForwardFill[K, V] {
	return &ForwardFill[K, V]{
		keys:   slices.Clone(f.keys),
		vals:   slices.Clone(f.vals),
		def:    f.def,
		hasDef: f.hasDef,
	}
}
