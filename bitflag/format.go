package bitflag

import (
	"fmt"
	"strconv"
	"strings"
)

var _ fmt.Formatter = BitFlag[uint8]{}

// String returns the radix-2 representation of the wrapped value, zero-padded to Size() digits.
// Signed storage types are rendered as their two's complement bit pattern.
func (flag BitFlag[T]) String() string {
	return padBinary(strconv.FormatUint(widthMask(flag.val), 2), Size[T]())
}

// Format implements fmt.Formatter.
// The verbs %v and %s render String, honoring width and the '-' flag; every other verb formats the wrapped value
// itself.
func (flag BitFlag[T]) Format(state fmt.State, verb rune) {
	switch verb {
	case 'v', 's':
		fmt.Fprintf(state, fmt.FormatString(state, 's'), flag.String())
	default:
		fmt.Fprintf(state, fmt.FormatString(state, verb), flag.val)
	}
}

func padBinary(digits string, size uint) string {
	if uint(len(digits)) >= size {
		return digits
	}
	return strings.Repeat("0", int(size)-len(digits)) + digits
}
