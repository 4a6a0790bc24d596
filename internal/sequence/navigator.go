// Package sequence provides circular next/previous lookup over a set of ids.
package sequence

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/hitchlog/backend/internal/domain"
)

// Navigator pages through a fixed, ordered set of ids, wrapping around at
// both ends.
type Navigator[T cmp.Ordered] struct {
	ids []T
}

// New builds a Navigator over ids. The input is copied, sorted and
// deduplicated; the caller's slice is not modified.
func New[T cmp.Ordered](ids []T) *Navigator[T] {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	return &Navigator[T]{ids: slices.Compact(sorted)}
}

// Len returns the number of distinct ids.
func (n *Navigator[T]) Len() int {
	return len(n.ids)
}

// Next returns the smallest id greater than id, or the smallest id overall
// when none is greater. id does not have to be one of the navigated ids.
func (n *Navigator[T]) Next(id T) (T, error) {
	if len(n.ids) == 0 {
		var zero T
		return zero, fmt.Errorf("sequence.Navigator.Next: %w", domain.ErrEmptyCollection)
	}
	i, found := slices.BinarySearch(n.ids, id)
	if found {
		i++
	}
	if i == len(n.ids) {
		return n.ids[0], nil
	}
	return n.ids[i], nil
}

// Prev returns the largest id smaller than id, or the largest id overall
// when none is smaller.
func (n *Navigator[T]) Prev(id T) (T, error) {
	if len(n.ids) == 0 {
		var zero T
		return zero, fmt.Errorf("sequence.Navigator.Prev: %w", domain.ErrEmptyCollection)
	}
	i, _ := slices.BinarySearch(n.ids, id)
	if i == 0 {
		return n.ids[len(n.ids)-1], nil
	}
	return n.ids[i-1], nil
}
