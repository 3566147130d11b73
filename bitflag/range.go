package bitflag

// Range represents an inclusive span of bit positions.
// Bit 0 of a value written to or read from a range maps to bit Start of the BitFlag, bit 1 to Start+1 and so on.
type Range struct {
	Start uint
	End   uint
}

// Len returns the amount of bit positions covered by the range.
// The result is meaningless for ranges with Start > End.
func (r Range) Len() uint {
	return r.End - r.Start + 1
}

// IsValid returns true if the range is well-formed and fits into the storage type T
func IsValid[T Storage](r Range) bool {
	return r.Start <= r.End && !IsOverflow[T](r.End)
}

// SetRange sets the bits inside r to the lowest r.Len() bits of val.
// Malformed ranges (Start > End) and ranges exceeding Size() are ignored.
func (flag *BitFlag[T]) SetRange(r Range, val T) {
	flag.SetRangeFlag(r, NewWithValue(val))
}

// SetRangeFlag sets the bits inside r to the lowest r.Len() bits of src.
// Malformed ranges (Start > End) and ranges exceeding Size() are ignored.
func (flag *BitFlag[T]) SetRangeFlag(r Range, src BitFlag[T]) {
	if !IsValid[T](r) {
		return
	}
	flag.SetRangeFlagUnchecked(r, src)
}

// SetRangeUnchecked is SetRange without validating r
func (flag *BitFlag[T]) SetRangeUnchecked(r Range, val T) {
	flag.SetRangeFlagUnchecked(r, NewWithValue(val))
}

// SetRangeFlagUnchecked is SetRangeFlag without validating r.
// The caller has to make sure that r.Start <= r.End < Size().
func (flag *BitFlag[T]) SetRangeFlagUnchecked(r Range, src BitFlag[T]) {
	for i := uint(0); i <= r.End-r.Start; i++ {
		flag.SetUnchecked(r.Start+i, src.GetUnchecked(i))
	}
}

// SetRangeFrom sets the bits of dst inside r to the lowest r.Len() bits of src, which may use a different storage
// type than dst.
// Bits beyond the width of src are read through its checked Get and thus written as zero.
// Malformed ranges (Start > End) and ranges exceeding the size of dst are ignored.
func SetRangeFrom[T, S Storage](dst *BitFlag[T], r Range, src BitFlag[S]) {
	if !IsValid[T](r) {
		return
	}
	for i := uint(0); i <= r.End-r.Start; i++ {
		dst.SetUnchecked(r.Start+i, src.Get(i))
	}
}

// GetRange returns the bits inside r right-aligned, so that bit r.Start becomes bit 0 of the result.
// The boolean is false if r is malformed (Start > End) or exceeds Size().
func (flag BitFlag[T]) GetRange(r Range) (T, bool) {
	if !IsValid[T](r) {
		return 0, false
	}
	return flag.GetRangeUnchecked(r), true
}

// GetRangeUnchecked is GetRange without validating r.
// The caller has to make sure that r.Start <= r.End < Size().
func (flag BitFlag[T]) GetRangeUnchecked(r Range) T {
	var out BitFlag[T]
	for i := uint(0); i <= r.End-r.Start; i++ {
		out.SetUnchecked(i, flag.GetUnchecked(r.Start+i))
	}
	return out.val
}
