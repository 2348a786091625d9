package counter

import "container/heap"

// Entry is a key-weight pair.
type Entry[K comparable] struct {
	Key    K
	Weight float64
}

// entries is used to implement a max-heap.
type entries[K comparable] []*Entry[K]

var _ heap.Interface = (*entries[int])(nil)

func (e entries[_]) Len() int {
	return len(e)
}

func (e entries[K]) Less(i, j int) bool {
	// yes, the sign is correct
	// see container/heap PriorityQueue example
	return e[i].Weight > e[j].Weight
}

func (e entries[_]) Swap(i, j int) {
	e[i], e[j] = e[j], e[i]
}

func (e *entries[K]) Push(x any) {
	*e = append(*e, x.(*Entry[K]))
}

func (e *entries[K]) Pop() any {
	x := (*e)[len(*e)-1]
	*e = (*e)[:len(*e)-1]
	return x
}

// entriesMin is used to implement a min-heap.
type entriesMin[K comparable] struct {
	entries[K]
}

var _ heap.Interface = (*entriesMin[int])(nil)

func (e entriesMin[_]) Less(i, j int) bool {
	return e.entries[i].Weight < e.entries[j].Weight
}

// heapk creates either a min- or max-heap from the key-weight pairs
// in the counter, then pops off k entries and returns them.
func heapk[K comparable](c Counter[K], k int, max bool) []Entry[K] {
	if k == 0 {
		return []Entry[K]{}
	} else if k > len(c) {
		panic("k is larger than number of entries in the counter")
	} else if k < 0 {
		panic("k is negative")
	}

	heapslice := make([]*Entry[K], len(c))
	i := 0
	for key, w := range c {
		heapslice[i] = &Entry[K]{
			Key:    key,
			Weight: w,
		}
		i++
	}

	var hptr heap.Interface

	if max {
		h := entries[K](heapslice)
		hptr = &h
	} else {
		h := entriesMin[K]{entries: heapslice}
		hptr = &h
	}

	heap.Init(hptr)

	out := make([]Entry[K], k)
	for i := 0; i < k; i++ {
		entry := heap.Pop(hptr).(*Entry[K])
		out[i] = *entry
	}

	return out
}

// TopK returns the k heaviest entries in the counter, in descending
// order of weight. If two keys have the same weight, their relative
// order in the returned slice is undefined, however they will be
// after all keys with larger weights.
func (c Counter[K]) TopK(k int) []Entry[K] {
	return heapk(c, k, true)
}

// BottomK returns the k lightest entries in the counter, in
// ascending order of weight. If two keys have the same weight, their
// relative order in the returned slice is undefined, however they
// will be after all keys with smaller weights.
func (c Counter[K]) BottomK(k int) []Entry[K] {
	return heapk(c, k, false)
}
