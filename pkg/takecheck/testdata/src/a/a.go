package a

import (
	"fmt"

	"github.com/rawbytedev/takeref"
)

func refTaken(v takeref.TakeRef[int64]) {
	v.Take()
	v.AsRef() // want `v used after Take consumed it`
}

func takeTaken(v takeref.TakeRef[int64]) {
	v.Take()
	v.Take() // want `v used after Take consumed it`
}

func sameStatement(r *takeref.Ref[int]) {
	a, _ := r.Take()
	fmt.Println(a, r.MustTake()) // want `r used after Take consumed it`
}

func inInit(r *takeref.Ref[int]) {
	if _, err := r.Take(); err != nil {
		fmt.Println(*r.AsRef()) // want `r used after Take consumed it`
	}
}

func sliceLen(s *takeref.Slice[byte]) {
	s.MustTake()
	_ = s.Len() // want `s used after MustTake consumed it`
}

func text(s *takeref.String) string {
	b, _ := s.Take()
	return string(b) + s.AsStr() // want `s used after Take consumed it`
}

func closure(r *takeref.Ref[int]) func() int {
	r.Take()
	return func() int { return *r.AsRef() } // want `r used after Take consumed it`
}

func loop(r *takeref.Ref[int], n int) {
	for i := 0; i < n; i++ {
		r.Take() // want `r.Take called in a loop: r is consumed on the first iteration`
	}
}

func rangeLoop(s *takeref.String, items []int) {
	for range items {
		s.Take() // want `s.Take called in a loop: s is consumed on the first iteration`
	}
}

func laterIf(r *takeref.Ref[int], ok bool) {
	r.Take()
	if ok {
		_ = r.AsRef() // want `r used after Take consumed it`
	}
}

func laterLoop(s *takeref.String, n int) {
	s.Take()
	for i := 0; i < n; i++ {
		fmt.Println(s.AsStr()) // want `s used after Take consumed it`
	}
}

// Nothing below is reported.

func deferred(r *takeref.Ref[int]) int {
	defer r.Take()
	return *r.AsRef()
}

func deferredClosure(r *takeref.Ref[int]) int {
	defer func() { r.Take() }()
	return *r.AsRef()
}

func goroutine(r *takeref.Ref[int], done chan struct{}) {
	go r.Take()
	<-done
}

func deferredInLoop(n int) {
	for i := 0; i < n; i++ {
		r := takeref.Own(i)
		defer r.Take()
		_ = r.AsRef()
	}
}

func readThenTake(v takeref.TakeRef[int64]) int64 {
	_ = *v.AsRef()
	_ = *v.AsRef()
	n, _ := v.Take()
	return n
}

func branches(r *takeref.Ref[int], keep bool) {
	if keep {
		r.Take()
	} else {
		_ = r.AsRef()
	}
}

func reassigned(r *takeref.Ref[int]) {
	r.Take()
	r = takeref.Own(1)
	r.Take()
}

func loopWithBreak(r *takeref.Ref[int], n int) {
	for i := 0; i < n; i++ {
		r.Take()
		break
	}
}

func loopWithReturn(r *takeref.Ref[int], n int) int {
	for i := 0; i < n; i++ {
		v, _ := r.Take()
		return v
	}
	return 0
}

func loopLocal(n int) {
	for i := 0; i < n; i++ {
		r := takeref.Own(i)
		r.Take()
	}
}

func rangeVars(refs []*takeref.Ref[int]) {
	for _, r := range refs {
		r.Take()
	}
}

type holder struct{ r *takeref.Ref[int] }

func fields(h holder) {
	h.r.Take()
	h.r.Take()
}

type other struct{}

func (other) Take() (int, error) { return 0, nil }
func (other) AsRef() *int        { return nil }

func untracked(o other) {
	o.Take()
	o.AsRef()
}
