// Package takeref lets a function accept either an owned value or a borrowed
// view of it through one signature, and defers the copy until the callee
// actually asks for ownership.
//
// Three accessors share the same two-step protocol:
//
//	Ref[T]   single values     AsRef() *T        Take() (T, error)
//	Slice[T] sequences         AsSlice() View[T] Take() ([]T, error)
//	String   text              AsStr() string    Take() ([]byte, error)
//
// The read accessor may be called any number of times. Take consumes the
// instance: owned forms hand over what they hold, borrowed forms duplicate
// the referent and leave it untouched. A consumed instance answers Take with
// ErrTaken and panics on read. The takecheck analyzer (pkg/takecheck) rejects
// the same mistakes at build time.
//
// Instances are not safe for concurrent use.
package takeref

import (
	"errors"
)

var (
	ErrTaken     = errors.New("takeref: value already taken")
	ErrNilBorrow = errors.New("takeref: nil borrow")
)

// Kind tells which form an instance was built from.
type Kind uint8

const (
	// Owned instances hold the value themselves; Take never copies.
	Owned Kind = iota
	// Borrowed instances read a value owned elsewhere.
	Borrowed
	// BorrowedMut instances hold an exclusive reference to a value owned
	// elsewhere. Take still copies; the referent is left as it was.
	BorrowedMut
)

func (k Kind) String() string {
	switch k {
	case Owned:
		return "own"
	case Borrowed:
		return "&"
	case BorrowedMut:
		return "&mut"
	default:
		return "?"
	}
}

// Cloner is implemented by types that know how to deep copy themselves.
type Cloner[T any] interface {
	Clone() T
}

// Scalar lists the types whose assignment is already a full duplication.
type Scalar interface {
	~bool |
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64 |
		~complex64 | ~complex128 |
		~string
}

// Dup produces an independent copy of v. Errors are returned from Take
// unchanged.
type Dup[T any] func(v T) (T, error)

// CloneDup duplicates through T's Clone method.
func CloneDup[T Cloner[T]](v T) (T, error) {
	return v.Clone(), nil
}

// CopyDup duplicates by assignment.
func CopyDup[T Scalar](v T) (T, error) {
	return v, nil
}

// consumed tracks the single permitted Take.
type consumed bool

func (c *consumed) take() error {
	if *c {
		return ErrTaken
	}
	*c = true
	return nil
}

func (c consumed) check() {
	if c {
		panic(ErrTaken)
	}
}
