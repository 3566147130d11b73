package bitflag

import (
	"encoding/json"
	"fmt"
	"math/big"
	"math/bits"
	"strings"
)

// Uint128 is an unsigned 128-bit integer made of two 64-bit halves.
// Go lacks a native 128-bit integer; Uint128 provides the operations BitFlag128 relies on.
type Uint128 struct {
	Hi uint64
	Lo uint64
}

// Uint128From64 widens a 64-bit value
func Uint128From64(val uint64) Uint128 {
	return Uint128{Lo: val}
}

// MaxUint128 returns the largest value a Uint128 can hold
func MaxUint128() Uint128 {
	return Uint128{Hi: ^uint64(0), Lo: ^uint64(0)}
}

// IsZero reports whether u == 0
func (u Uint128) IsZero() bool {
	return u.Hi|u.Lo == 0
}

// Or returns u|v
func (u Uint128) Or(v Uint128) Uint128 {
	return Uint128{u.Hi | v.Hi, u.Lo | v.Lo}
}

// And returns u&v
func (u Uint128) And(v Uint128) Uint128 {
	return Uint128{u.Hi & v.Hi, u.Lo & v.Lo}
}

// AndNot returns u&^v
func (u Uint128) AndNot(v Uint128) Uint128 {
	return Uint128{u.Hi &^ v.Hi, u.Lo &^ v.Lo}
}

// Xor returns u^v
func (u Uint128) Xor(v Uint128) Uint128 {
	return Uint128{u.Hi ^ v.Hi, u.Lo ^ v.Lo}
}

// Not returns ^u
func (u Uint128) Not() Uint128 {
	return Uint128{^u.Hi, ^u.Lo}
}

// Lsh returns u<<n; shifting by 128 or more yields 0
func (u Uint128) Lsh(n uint) Uint128 {
	switch {
	case n >= 128:
		return Uint128{}
	case n >= 64:
		return Uint128{Hi: u.Lo << (n - 64)}
	default:
		return Uint128{Hi: u.Hi<<n | u.Lo>>(64-n), Lo: u.Lo << n}
	}
}

// Rsh returns u>>n; shifting by 128 or more yields 0
func (u Uint128) Rsh(n uint) Uint128 {
	switch {
	case n >= 128:
		return Uint128{}
	case n >= 64:
		return Uint128{Lo: u.Hi >> (n - 64)}
	default:
		return Uint128{Hi: u.Hi >> n, Lo: u.Lo>>n | u.Hi<<(64-n)}
	}
}

// Add returns u+v, wrapping around on overflow
func (u Uint128) Add(v Uint128) Uint128 {
	lo, carry := bits.Add64(u.Lo, v.Lo, 0)
	hi, _ := bits.Add64(u.Hi, v.Hi, carry)
	return Uint128{Hi: hi, Lo: lo}
}

// Cmp returns -1, 0 or +1 depending on whether u is less than, equal to or greater than v
func (u Uint128) Cmp(v Uint128) int {
	switch {
	case u.Hi < v.Hi:
		return -1
	case u.Hi > v.Hi:
		return 1
	case u.Lo < v.Lo:
		return -1
	case u.Lo > v.Lo:
		return 1
	}
	return 0
}

// OnesCount returns the amount of set bits
func (u Uint128) OnesCount() int {
	return bits.OnesCount64(u.Hi) + bits.OnesCount64(u.Lo)
}

// Big converts u into a big.Int
func (u Uint128) Big() *big.Int {
	val := new(big.Int).SetUint64(u.Hi)
	val.Lsh(val, 64)
	return val.Or(val, new(big.Int).SetUint64(u.Lo))
}

// Uint128FromBig converts a big.Int into a Uint128.
// It fails for negative values and values that need more than 128 bits.
func Uint128FromBig(val *big.Int) (Uint128, error) {
	if val.Sign() < 0 || val.BitLen() > 128 {
		return Uint128{}, fmt.Errorf("bitflag: %s does not fit into 128 unsigned bits", val)
	}
	lo := new(big.Int).And(val, new(big.Int).SetUint64(^uint64(0)))
	hi := new(big.Int).Rsh(val, 64)
	return Uint128{Hi: hi.Uint64(), Lo: lo.Uint64()}, nil
}

// ParseUint128 parses an integer literal; base prefixes (0b, 0o, 0x) are accepted
func ParseUint128(raw string) (Uint128, error) {
	val, ok := new(big.Int).SetString(strings.TrimSpace(raw), 0)
	if !ok {
		return Uint128{}, fmt.Errorf("bitflag: invalid 128-bit integer literal %q", raw)
	}
	return Uint128FromBig(val)
}

// String returns the base 10 representation of u
func (u Uint128) String() string {
	if u.Hi == 0 {
		return fmt.Sprint(u.Lo)
	}
	return u.Big().String()
}

// Binary returns the base 2 representation of u without leading zeros
func (u Uint128) Binary() string {
	if u.Hi == 0 {
		return fmt.Sprintf("%b", u.Lo)
	}
	return fmt.Sprintf("%b%064b", u.Hi, u.Lo)
}

// MarshalText encodes u in base 10
func (u Uint128) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText decodes an integer literal into u
func (u *Uint128) UnmarshalText(text []byte) error {
	val, err := ParseUint128(string(text))
	if err != nil {
		return err
	}
	*u = val
	return nil
}

// MarshalJSON encodes u as a plain JSON number
func (u Uint128) MarshalJSON() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalJSON decodes a plain JSON number (or a JSON string holding a decimal number) into u
func (u *Uint128) UnmarshalJSON(data []byte) error {
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	return u.UnmarshalText([]byte(num))
}
