package takeref

import (
	"github.com/rawbytedev/takeref/internal/common"
)

// TakeString is the parameter type for functions that may or may not need to
// own a text buffer.
type TakeString interface {
	AsStr() string
	Take() ([]byte, error)
}

var _ TakeString = (*String)(nil)

// String holds text that is either an owned []byte buffer or a borrowed view.
// Bytes are never re-encoded or validated.
type String struct {
	kind  Kind
	s     string
	b     []byte
	taken consumed
}

// OwnString wraps a buffer the caller gives up. Take returns it without
// copying.
func OwnString(b []byte) *String {
	return &String{kind: Owned, b: b}
}

// BorrowString wraps a string view; Take copies its bytes.
func BorrowString(s string) *String {
	return &String{kind: Borrowed, s: s}
}

// BorrowBytes wraps a view of a buffer owned elsewhere; Take copies it. The
// owner must not modify b while the instance is alive.
func BorrowBytes(b []byte) *String {
	return &String{kind: Borrowed, s: common.BytesToString(b)}
}

func (s *String) Kind() Kind { return s.kind }

func (s *String) Taken() bool { return bool(s.taken) }

func (s *String) Len() int {
	s.taken.check()
	if s.kind == Owned {
		return len(s.b)
	}
	return len(s.s)
}

// AsStr returns the text without copying. The string stays valid until Take
// hands the buffer to someone who may modify it. It panics with ErrTaken once
// the text has been taken.
func (s *String) AsStr() string {
	s.taken.check()
	if s.kind == Owned {
		return common.BytesToString(s.b)
	}
	return s.s
}

// Take consumes s and returns an owned buffer.
func (s *String) Take() ([]byte, error) {
	if err := s.taken.take(); err != nil {
		return nil, err
	}
	if s.kind == Owned {
		b := s.b
		s.b = nil
		return b, nil
	}
	b := []byte(s.s)
	s.s = ""
	return b, nil
}

func (s *String) MustTake() []byte {
	b, err := s.Take()
	if err != nil {
		panic(err)
	}
	return b
}
