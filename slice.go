package takeref

import (
	"github.com/rawbytedev/takeref/internal/common"
)

// TakeSlice is the parameter type for functions that may or may not need to
// own a []T.
type TakeSlice[T any] interface {
	AsSlice() View[T]
	Take() ([]T, error)
}

var _ TakeSlice[int] = (*Slice[int])(nil)

// Slice holds a sequence that is either owned or a borrowed view.
// There is no mutable-borrow form.
type Slice[T any] struct {
	kind  Kind
	s     []T
	dup   Dup[T] // nil means element-wise assignment
	taken consumed
}

// OwnSlice wraps a slice the caller gives up. Take returns it without
// reallocating.
func OwnSlice[T any](s []T) *Slice[T] {
	return &Slice[T]{kind: Owned, s: s}
}

// BorrowSlice wraps a view of scalars; Take copies them into a new slice.
func BorrowSlice[T Scalar](s []T) *Slice[T] {
	return &Slice[T]{kind: Borrowed, s: s}
}

// BorrowSliceClone wraps a view whose elements are cloned one by one on Take.
func BorrowSliceClone[T Cloner[T]](s []T) *Slice[T] {
	return &Slice[T]{kind: Borrowed, s: s, dup: CloneDup[T]}
}

// BorrowSliceWith wraps a view whose elements are duplicated by dup on Take.
func BorrowSliceWith[T any](s []T, dup Dup[T]) *Slice[T] {
	if dup == nil {
		panic(ErrNilBorrow)
	}
	return &Slice[T]{kind: Borrowed, s: s, dup: dup}
}

func (s *Slice[T]) Kind() Kind { return s.kind }

func (s *Slice[T]) Taken() bool { return bool(s.taken) }

func (s *Slice[T]) Len() int {
	s.taken.check()
	return len(s.s)
}

// AsSlice returns a read-only view of the elements. It panics with ErrTaken
// once the slice has been taken.
func (s *Slice[T]) AsSlice() View[T] {
	s.taken.check()
	return View[T]{s: s.s}
}

// Take consumes s. A borrowed view is duplicated into a new slice of the same
// length and order; an owned slice is returned as is.
func (s *Slice[T]) Take() ([]T, error) {
	if err := s.taken.take(); err != nil {
		return nil, err
	}
	src := s.s
	s.s = nil
	if s.kind == Owned {
		return src, nil
	}
	if s.dup == nil {
		return common.CloneSlice[T](src), nil
	}
	return common.CloneSliceFunc[T](src, s.dup)
}

func (s *Slice[T]) MustTake() []T {
	v, err := s.Take()
	if err != nil {
		panic(err)
	}
	return v
}
