// Package takeref is a trimmed copy of the real API surface, enough for the
// analyzer fixtures to type-check in GOPATH mode.
package takeref

type TakeRef[T any] interface {
	AsRef() *T
	Take() (T, error)
}

type Ref[T any] struct{ v T }

func Own[T any](v T) *Ref[T]       { return &Ref[T]{v: v} }
func (r *Ref[T]) AsRef() *T        { return &r.v }
func (r *Ref[T]) Take() (T, error) { return r.v, nil }
func (r *Ref[T]) MustTake() T      { return r.v }

type Slice[T any] struct{ s []T }

func OwnSlice[T any](s []T) *Slice[T]  { return &Slice[T]{s: s} }
func (s *Slice[T]) Take() ([]T, error) { return s.s, nil }
func (s *Slice[T]) MustTake() []T      { return s.s }
func (s *Slice[T]) Len() int           { return len(s.s) }

type String struct{ b []byte }

func BorrowString(s string) *String     { return &String{b: []byte(s)} }
func (s *String) AsStr() string         { return string(s.b) }
func (s *String) Take() ([]byte, error) { return s.b, nil }
