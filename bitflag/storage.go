package bitflag

import (
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Storage is the constraint every backing scalar of a BitFlag has to satisfy.
// It is met by every signed and unsigned integer type and by all types derived from them.
type Storage interface {
	constraints.Integer
}

// Size returns the amount of bits that can be addressed for the storage type T
func Size[T Storage]() uint {
	var zero T
	return uint(unsafe.Sizeof(zero)) * 8
}

// IsOverflow returns true if pos is no addressable bit position of the storage type T
func IsOverflow[T Storage](pos uint) bool {
	return pos >= Size[T]()
}

func isSigned[T Storage]() bool {
	var zero T
	return ^zero < 0
}

// widthMask returns the pattern of T's bits widened to 64 bits with the sign extension removed
func widthMask[T Storage](val T) uint64 {
	raw := uint64(val)
	if size := Size[T](); size < 64 {
		raw &= 1<<size - 1
	}
	return raw
}
