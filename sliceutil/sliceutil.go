// Package sliceutil has the element-removal helpers used by entity lists.
package sliceutil

// Remove deletes the first occurrence of item from s, preserving order, and
// returns the shortened slice. If item is absent s is returned unchanged.
// The vacated tail slot is zeroed so removed pointers are not retained.
func Remove[T comparable](s []T, item T) []T {
	for i, v := range s {
		if v == item {
			copy(s[i:], s[i+1:])
			var zero T
			s[len(s)-1] = zero
			return s[:len(s)-1]
		}
	}
	return s
}

// RemoveAll empties s from the back, calling fn (if non-nil) on each element
// before it is removed. The returned slice has length zero and keeps the
// backing array for reuse.
func RemoveAll[T any](s []T, fn func(T)) []T {
	var zero T
	for i := len(s) - 1; i >= 0; i-- {
		if fn != nil {
			fn(s[i])
		}
		s[i] = zero
	}
	return s[:0]
}
