package takeref_test

import (
	"fmt"

	"github.com/rawbytedev/takeref"
)

// keepIfLarge only pays for a copy when it decides to keep the value.
func keepIfLarge(v takeref.TakeRef[int64], store *[]int64) {
	if *v.AsRef() < 10 {
		return
	}
	n, err := v.Take()
	if err != nil {
		panic(err)
	}
	*store = append(*store, n)
}

func Example() {
	var kept []int64

	keepIfLarge(takeref.Own(int64(42)), &kept)

	i := int64(42)
	keepIfLarge(takeref.BorrowCopy(&i), &kept)

	small := int64(3)
	keepIfLarge(takeref.BorrowMutCopy(&small), &kept)

	fmt.Println(kept, i, small)
	// Output: [42 42] 42 3
}

func ExampleSlice() {
	numbers := []int{1, 2, 3}
	s := takeref.BorrowSlice(numbers)
	fmt.Println(s.AsSlice().Len(), s.AsSlice().At(0))

	owned := s.MustTake()
	owned[0] = 9
	fmt.Println(owned, numbers)
	// Output:
	// 3 1
	// [9 2 3] [1 2 3]
}

func ExampleString() {
	s := takeref.BorrowString("Hi!")
	fmt.Println(s.AsStr())

	buf := s.MustTake()
	buf = append(buf, '!')
	fmt.Println(string(buf))

	_, err := s.Take()
	fmt.Println(err)
	// Output:
	// Hi!
	// Hi!!
	// takeref: value already taken
}
