/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: topbottomk.go
Description: Exact top-K / bottom-K order statistics over a stream. Keeps the K smallest
and K largest distinct values seen so far in two sorted slices; membership and insertion
points are found by binary search.
*/

package stats

import "slices"

// DefaultK is the default number of values kept at each end
const DefaultK = 10

// TopBottomK tracks the K smallest and K largest distinct values of a stream
type TopBottomK[T any] struct {
	k      int
	cmp    func(a, b T) int
	bottom []T // ascending
	top    []T // ascending, the largest value last
}

// NewTopBottomK creates a tracker ordered by cmp. A non-positive k selects DefaultK.
func NewTopBottomK[T any](k int, cmp func(a, b T) int) *TopBottomK[T] {
	if k <= 0 {
		k = DefaultK
	}
	return &TopBottomK[T]{k: k, cmp: cmp}
}

// K returns the number of values kept at each end
func (t *TopBottomK[T]) K() int { return t.k }

// Observe offers v to both ends
func (t *TopBottomK[T]) Observe(v T) {
	t.bottom = t.insert(t.bottom, v, true)
	t.top = t.insert(t.top, v, false)
}

// insert adds v to a sorted slice of at most k distinct values. keepSmall selects
// which end survives when the slice is full.
func (t *TopBottomK[T]) insert(s []T, v T, keepSmall bool) []T {
	pos, found := slices.BinarySearchFunc(s, v, t.cmp)
	if found {
		return s
	}
	if len(s) < t.k {
		return slices.Insert(s, pos, v)
	}
	if keepSmall {
		if pos == len(s) {
			return s
		}
		s = slices.Insert(s, pos, v)
		return s[:t.k]
	}
	if pos == 0 {
		return s
	}
	s = slices.Insert(s, pos, v)
	return s[1:]
}

// Bottom returns the smallest values in ascending order
func (t *TopBottomK[T]) Bottom() []T {
	return slices.Clone(t.bottom)
}

// Top returns the largest values in descending order
func (t *TopBottomK[T]) Top() []T {
	out := slices.Clone(t.top)
	slices.Reverse(out)
	return out
}

// Min returns the smallest value seen
func (t *TopBottomK[T]) Min() (T, bool) {
	var zero T
	if len(t.bottom) == 0 {
		return zero, false
	}
	return t.bottom[0], true
}

// Max returns the largest value seen
func (t *TopBottomK[T]) Max() (T, bool) {
	var zero T
	if len(t.top) == 0 {
		return zero, false
	}
	return t.top[len(t.top)-1], true
}
