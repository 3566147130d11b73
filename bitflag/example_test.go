package bitflag_test

import (
	"fmt"

	"github.com/skybi/bitflags/bitflag"
)

func ExampleBitFlag_Set() {
	flag := bitflag.New[uint8]()
	flag.Set(0, true)
	flag.Set(2, true)
	flag.Set(8, true) // out of range, ignored
	fmt.Println(flag, flag.Raw(), flag.Len())
	// Output: 00000101 5 2
}

func ExampleBitFlag_SetRange() {
	flag := bitflag.New[uint32]()
	flag.SetRange(bitflag.Range{Start: 28, End: 31}, 0b1011)
	fmt.Println(flag)
	// Output: 10110000000000000000000000000000
}

func ExampleBitFlag_GetRange() {
	flag := bitflag.NewWithValue[uint8](0b101110)
	field, ok := flag.GetRange(bitflag.Range{Start: 1, End: 2})
	fmt.Printf("%b %t\n", field, ok)
	_, ok = flag.GetRange(bitflag.Range{Start: 3, End: 0})
	fmt.Println(ok)
	// Output:
	// 11 true
	// false
}

func ExampleBitFlag_Add() {
	sum := bitflag.NewWithValue[uint8](3).Add(bitflag.NewWithValue[uint8](1))
	fmt.Println(sum.Raw())
	// Output: 4
}
