package takeref

// TakeRef is the parameter type for functions that may or may not need to
// own a T.
type TakeRef[T any] interface {
	AsRef() *T
	Take() (T, error)
}

var _ TakeRef[int] = (*Ref[int])(nil)

// Ref holds a single T, either owned or borrowed.
type Ref[T any] struct {
	kind  Kind
	val   T
	ptr   *T
	dup   Dup[T]
	taken consumed
}

// Own wraps a value the caller gives up.
func Own[T any](v T) *Ref[T] {
	return &Ref[T]{kind: Owned, val: v}
}

// Borrow wraps a read-only reference; Take clones the referent.
func Borrow[T Cloner[T]](p *T) *Ref[T] {
	return borrow(Borrowed, p, CloneDup[T])
}

// BorrowCopy wraps a read-only reference to a scalar; Take copies it.
func BorrowCopy[T Scalar](p *T) *Ref[T] {
	return borrow(Borrowed, p, CopyDup[T])
}

// BorrowWith wraps a read-only reference duplicated by dup on Take.
func BorrowWith[T any](p *T, dup Dup[T]) *Ref[T] {
	return borrow(Borrowed, p, dup)
}

// BorrowMut wraps an exclusive reference; Take clones the referent.
func BorrowMut[T Cloner[T]](p *T) *Ref[T] {
	return borrow(BorrowedMut, p, CloneDup[T])
}

func BorrowMutCopy[T Scalar](p *T) *Ref[T] {
	return borrow(BorrowedMut, p, CopyDup[T])
}

func BorrowMutWith[T any](p *T, dup Dup[T]) *Ref[T] {
	return borrow(BorrowedMut, p, dup)
}

func borrow[T any](k Kind, p *T, dup Dup[T]) *Ref[T] {
	if p == nil || dup == nil {
		panic(ErrNilBorrow)
	}
	return &Ref[T]{kind: k, ptr: p, dup: dup}
}

func (r *Ref[T]) Kind() Kind { return r.kind }

// Taken reports whether Take has already run.
func (r *Ref[T]) Taken() bool { return bool(r.taken) }

// AsRef returns a view of the value. Callers must not write through it.
// It panics with ErrTaken once the value has been taken.
func (r *Ref[T]) AsRef() *T {
	r.taken.check()
	if r.kind == Owned {
		return &r.val
	}
	return r.ptr
}

// Take consumes r and returns an owned T. Owned values are handed over as
// is; borrowed ones are duplicated and the referent is not modified.
func (r *Ref[T]) Take() (T, error) {
	var zero T
	if err := r.taken.take(); err != nil {
		return zero, err
	}
	if r.kind == Owned {
		v := r.val
		r.val = zero
		return v, nil
	}
	p := r.ptr
	r.ptr = nil
	v, err := r.dup(*p)
	if err != nil {
		return zero, err
	}
	return v, nil
}

// MustTake is Take that panics on error.
func (r *Ref[T]) MustTake() T {
	v, err := r.Take()
	if err != nil {
		panic(err)
	}
	return v
}
