// Package bitflag provides BitFlag, a thin wrapper over a fixed-width integer which allows to address single bits
// and inclusive bit ranges of the wrapped value without hand-written shift and mask arithmetic.
//
// The zero value of a BitFlag is ready to use and has no bit set.
// A BitFlag has the exact memory layout of its storage type and is copied by value.
// It provides no synchronization; callers sharing one instance between goroutines have to guard it themselves.
package bitflag

import (
	"iter"
	"math/bits"
)

// BitFlag wraps a value of the storage type T and provides bit-indexed access to it.
//
// Every accessor exists in a checked and an unchecked form.
// The checked form silently ignores positions outside [0, Size()) (Set is a no-op, Get reports false).
// The unchecked form skips this validation and expects the caller to guarantee pos < Size().
type BitFlag[T Storage] struct {
	val T
}

// New creates a new BitFlag with no bit set
func New[T Storage]() BitFlag[T] {
	return BitFlag[T]{}
}

// NewWithValue creates a new BitFlag wrapping val verbatim
func NewWithValue[T Storage](val T) BitFlag[T] {
	return BitFlag[T]{val: val}
}

// From converts a raw value into a BitFlag; it is equivalent to NewWithValue
func From[T Storage](val T) BitFlag[T] {
	return NewWithValue(val)
}

// Size returns the amount of addressable bit positions
func (flag BitFlag[T]) Size() uint {
	return Size[T]()
}

// IsOverflow returns true if pos is outside the addressable bit positions
func (flag BitFlag[T]) IsOverflow(pos uint) bool {
	return IsOverflow[T](pos)
}

// Set sets the bit at pos to val.
// Positions outside [0, Size()) are ignored.
func (flag *BitFlag[T]) Set(pos uint, val bool) {
	if IsOverflow[T](pos) {
		return
	}
	flag.SetUnchecked(pos, val)
}

// SetUnchecked sets the bit at pos to val without the overflow check.
// The caller has to make sure that pos < Size(); larger positions leave the value untouched when val is true and
// clear nothing when it is false, but relying on this is a bug.
func (flag *BitFlag[T]) SetUnchecked(pos uint, val bool) {
	mask := T(1) << pos
	if val {
		flag.val |= mask
	} else {
		flag.val &^= mask
	}
}

// Get reports whether the bit at pos is set.
// Positions outside [0, Size()) are reported as unset.
func (flag BitFlag[T]) Get(pos uint) bool {
	if IsOverflow[T](pos) {
		return false
	}
	return flag.GetUnchecked(pos)
}

// GetUnchecked reports whether the bit at pos is set without the overflow check.
// The caller has to make sure that pos < Size().
func (flag BitFlag[T]) GetUnchecked(pos uint) bool {
	mask := T(1) << pos
	return flag.val&mask != 0
}

// Raw returns the wrapped value
func (flag BitFlag[T]) Raw() T {
	return flag.val
}

// Clear unsets every bit
func (flag *BitFlag[T]) Clear() {
	flag.val = 0
}

// Len returns the amount of set bits
func (flag BitFlag[T]) Len() int {
	return bits.OnesCount64(widthMask(flag.val))
}

// IsEmpty returns true if no bit is set
func (flag BitFlag[T]) IsEmpty() bool {
	return flag.val == 0
}

// Iter returns a sequence of Size() booleans, one for every bit position in ascending order starting at bit 0.
// The sequence iterates over the value the BitFlag held when Iter was called.
func (flag BitFlag[T]) Iter() iter.Seq[bool] {
	return func(yield func(bool) bool) {
		for pos := uint(0); pos < Size[T](); pos++ {
			if !yield(flag.GetUnchecked(pos)) {
				return
			}
		}
	}
}
