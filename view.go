package takeref

import (
	"iter"
)

// View is a read-only window over contiguous elements. It has no method that
// writes, so code holding only a View cannot modify the backing array.
type View[T any] struct {
	s []T
}

func ViewOf[T any](s []T) View[T] {
	return View[T]{s: s}
}

func (v View[T]) Len() int { return len(v.s) }

func (v View[T]) At(i int) T { return v.s[i] }

// Slice returns the sub-view [i:j].
func (v View[T]) Slice(i, j int) View[T] { return View[T]{s: v.s[i:j:j]} }

// Copy copies up to len(dst) elements into dst and returns how many were copied.
func (v View[T]) Copy(dst []T) int { return copy(dst, v.s) }

func (v View[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, e := range v.s {
			if !yield(i, e) {
				return
			}
		}
	}
}

func (v View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, e := range v.s {
			if !yield(e) {
				return
			}
		}
	}
}

// EqualView reports whether v holds exactly the elements of s, in order.
func EqualView[T comparable](v View[T], s []T) bool {
	if len(v.s) != len(s) {
		return false
	}
	for i := range s {
		if v.s[i] != s[i] {
			return false
		}
	}
	return true
}
