package register

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/skybi/bitflags/bitflag"
)

// MaxNameLength is the maximum amount of characters a register name may consist of
const MaxNameLength = 64

// Flags is the bit flag container every register holds
type Flags = bitflag.BitFlag[uint64]

// Register represents a named 64-bit flag register
type Register struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Flags   Flags     `json:"value"`
	Created int64     `json:"created"`
}

// SanitizeName trims the given register name and reports whether it is valid
func SanitizeName(name string) (string, bool) {
	name = strings.TrimSpace(name)
	n := utf8.RuneCountInString(name)
	return name, n > 0 && n <= MaxNameLength
}
