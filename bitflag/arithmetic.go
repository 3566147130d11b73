package bitflag

import "cmp"

// Add returns a new BitFlag holding the arithmetic sum of both wrapped values.
//
// This is integer addition, not a union of the set bits: 0b11 + 0b01 yields 0b100.
// The sum wraps around exactly like T does. Use Set or SetRange to combine flags.
func (flag BitFlag[T]) Add(other BitFlag[T]) BitFlag[T] {
	return NewWithValue(flag.val + other.val)
}

// AddValue returns a new BitFlag holding the arithmetic sum of the wrapped value and val.
// Like Add, this is integer addition and not a union of bits.
func (flag BitFlag[T]) AddValue(val T) BitFlag[T] {
	return NewWithValue(val + flag.val)
}

// AddAssign adds the wrapped value of other to the wrapped value of flag (integer addition)
func (flag *BitFlag[T]) AddAssign(other BitFlag[T]) {
	flag.val += other.val
}

// AddAssignValue adds val to the wrapped value (integer addition)
func (flag *BitFlag[T]) AddAssignValue(val T) {
	flag.val += val
}

// Equal reports whether both wrapped values are equal
func (flag BitFlag[T]) Equal(other BitFlag[T]) bool {
	return flag.val == other.val
}

// Compare compares the wrapped values the same way cmp.Compare does
func (flag BitFlag[T]) Compare(other BitFlag[T]) int {
	return cmp.Compare(flag.val, other.val)
}
