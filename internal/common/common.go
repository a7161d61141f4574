package common

import (
	"unsafe"
)

// CloneBytes returns a freshly allocated copy of b. A nil input yields an
// empty, non-nil buffer so owners can always append to the result.
func CloneBytes(b []byte) []byte {
	c := make([]byte, len(b))
	copy(c, b)
	return c
}

// CloneSlice copies s element by element with plain assignment.
func CloneSlice[T any](s []T) []T {
	c := make([]T, len(s))
	copy(c, s)
	return c
}

// CloneSliceFunc duplicates every element of s through dup, preserving order.
// The first error from dup is returned as-is and the partial result dropped.
func CloneSliceFunc[T any](s []T, dup func(T) (T, error)) ([]T, error) {
	c := make([]T, len(s))
	for i := range s {
		v, err := dup(s[i])
		if err != nil {
			return nil, err
		}
		c[i] = v
	}
	return c, nil
}

// BytesToString aliases b as a string without copying.
// b must not be modified while the string is in use.
func BytesToString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}
