package bitflag

import (
	"database/sql/driver"
	"fmt"
	"iter"
)

// Size128 is the amount of addressable bit positions of a BitFlag128
const Size128 = 128

// BitFlag128 is the 128-bit counterpart of BitFlag.
// It provides the same operations with the same checked and unchecked semantics on top of a Uint128.
type BitFlag128 struct {
	val Uint128
}

// New128 creates a new BitFlag128 with no bit set
func New128() BitFlag128 {
	return BitFlag128{}
}

// New128WithValue creates a new BitFlag128 wrapping val verbatim
func New128WithValue(val Uint128) BitFlag128 {
	return BitFlag128{val: val}
}

var one128 = Uint128{Lo: 1}

// Size returns the amount of addressable bit positions
func (flag BitFlag128) Size() uint {
	return Size128
}

// IsOverflow returns true if pos is outside the addressable bit positions
func (flag BitFlag128) IsOverflow(pos uint) bool {
	return pos >= Size128
}

// Set sets the bit at pos to val; positions outside [0, 128) are ignored
func (flag *BitFlag128) Set(pos uint, val bool) {
	if flag.IsOverflow(pos) {
		return
	}
	flag.SetUnchecked(pos, val)
}

// SetUnchecked sets the bit at pos to val without the overflow check.
// The caller has to make sure that pos < 128.
func (flag *BitFlag128) SetUnchecked(pos uint, val bool) {
	mask := one128.Lsh(pos)
	if val {
		flag.val = flag.val.Or(mask)
	} else {
		flag.val = flag.val.AndNot(mask)
	}
}

// Get reports whether the bit at pos is set; positions outside [0, 128) are reported as unset
func (flag BitFlag128) Get(pos uint) bool {
	if flag.IsOverflow(pos) {
		return false
	}
	return flag.GetUnchecked(pos)
}

// GetUnchecked reports whether the bit at pos is set without the overflow check.
// The caller has to make sure that pos < 128.
func (flag BitFlag128) GetUnchecked(pos uint) bool {
	return !flag.val.And(one128.Lsh(pos)).IsZero()
}

// Raw returns the wrapped value
func (flag BitFlag128) Raw() Uint128 {
	return flag.val
}

// Clear unsets every bit
func (flag *BitFlag128) Clear() {
	flag.val = Uint128{}
}

// Len returns the amount of set bits
func (flag BitFlag128) Len() int {
	return flag.val.OnesCount()
}

// IsEmpty returns true if no bit is set
func (flag BitFlag128) IsEmpty() bool {
	return flag.val.IsZero()
}

// Iter returns a sequence of 128 booleans, one for every bit position in ascending order starting at bit 0
func (flag BitFlag128) Iter() iter.Seq[bool] {
	return func(yield func(bool) bool) {
		for pos := uint(0); pos < Size128; pos++ {
			if !yield(flag.GetUnchecked(pos)) {
				return
			}
		}
	}
}

func (flag BitFlag128) isValid(r Range) bool {
	return r.Start <= r.End && !flag.IsOverflow(r.End)
}

// SetRange sets the bits inside r to the lowest r.Len() bits of val.
// Malformed ranges and ranges exceeding 128 bits are ignored.
func (flag *BitFlag128) SetRange(r Range, val Uint128) {
	if !flag.isValid(r) {
		return
	}
	flag.SetRangeUnchecked(r, val)
}

// SetRangeUnchecked is SetRange without validating r
func (flag *BitFlag128) SetRangeUnchecked(r Range, val Uint128) {
	src := New128WithValue(val)
	for i := uint(0); i <= r.End-r.Start; i++ {
		flag.SetUnchecked(r.Start+i, src.GetUnchecked(i))
	}
}

// GetRange returns the bits inside r right-aligned.
// The boolean is false if r is malformed or exceeds 128 bits.
func (flag BitFlag128) GetRange(r Range) (Uint128, bool) {
	if !flag.isValid(r) {
		return Uint128{}, false
	}
	return flag.GetRangeUnchecked(r), true
}

// GetRangeUnchecked is GetRange without validating r
func (flag BitFlag128) GetRangeUnchecked(r Range) Uint128 {
	var out BitFlag128
	for i := uint(0); i <= r.End-r.Start; i++ {
		out.SetUnchecked(i, flag.GetUnchecked(r.Start+i))
	}
	return out.val
}

// Add returns a new BitFlag128 holding the arithmetic (wrapping) sum of both wrapped values.
// Like BitFlag.Add, this is not a union of the set bits.
func (flag BitFlag128) Add(other BitFlag128) BitFlag128 {
	return New128WithValue(flag.val.Add(other.val))
}

// AddValue returns a new BitFlag128 holding the arithmetic sum of the wrapped value and val
func (flag BitFlag128) AddValue(val Uint128) BitFlag128 {
	return New128WithValue(val.Add(flag.val))
}

// AddAssign adds the wrapped value of other to the wrapped value of flag
func (flag *BitFlag128) AddAssign(other BitFlag128) {
	flag.val = flag.val.Add(other.val)
}

// AddAssignValue adds val to the wrapped value
func (flag *BitFlag128) AddAssignValue(val Uint128) {
	flag.val = flag.val.Add(val)
}

// Equal reports whether both wrapped values are equal
func (flag BitFlag128) Equal(other BitFlag128) bool {
	return flag.val == other.val
}

// Compare compares the wrapped values
func (flag BitFlag128) Compare(other BitFlag128) int {
	return flag.val.Cmp(other.val)
}

// String returns the radix-2 representation of the wrapped value, zero-padded to 128 digits
func (flag BitFlag128) String() string {
	return fmt.Sprintf("%064b%064b", flag.val.Hi, flag.val.Lo)
}

// Format implements fmt.Formatter.
// The verbs %v and %s render String, %d the decimal and %b the unpadded binary value.
func (flag BitFlag128) Format(state fmt.State, verb rune) {
	switch verb {
	case 'v', 's':
		fmt.Fprintf(state, fmt.FormatString(state, 's'), flag.String())
	case 'b':
		fmt.Fprintf(state, fmt.FormatString(state, 's'), flag.val.Binary())
	default:
		fmt.Fprintf(state, fmt.FormatString(state, verb), flag.val.Big())
	}
}

// MarshalJSON encodes the wrapped value as a plain JSON number
func (flag BitFlag128) MarshalJSON() ([]byte, error) {
	return flag.val.MarshalJSON()
}

// UnmarshalJSON decodes a plain JSON number into the wrapped value
func (flag *BitFlag128) UnmarshalJSON(data []byte) error {
	return flag.val.UnmarshalJSON(data)
}

// MarshalText encodes the wrapped value in base 10
func (flag BitFlag128) MarshalText() ([]byte, error) {
	return flag.val.MarshalText()
}

// UnmarshalText decodes an integer literal into the wrapped value
func (flag *BitFlag128) UnmarshalText(text []byte) error {
	return flag.val.UnmarshalText(text)
}

// Value implements driver.Valuer by passing the decimal representation, suitable for numeric columns
func (flag BitFlag128) Value() (driver.Value, error) {
	return flag.val.String(), nil
}

// Scan implements sql.Scanner
func (flag *BitFlag128) Scan(src any) error {
	switch val := src.(type) {
	case nil:
		flag.val = Uint128{}
	case int64:
		if val < 0 {
			return fmt.Errorf("bitflag: cannot scan negative value %d into a 128-bit flag", val)
		}
		flag.val = Uint128From64(uint64(val))
	case []byte:
		return flag.val.UnmarshalText(val)
	case string:
		return flag.val.UnmarshalText([]byte(val))
	default:
		return fmt.Errorf("bitflag: cannot scan value of type %T", src)
	}
	return nil
}
