package bitflag

import (
	"database/sql"
	"database/sql/driver"
	"encoding"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

var (
	_ json.Marshaler           = BitFlag[uint8]{}
	_ json.Unmarshaler         = (*BitFlag[uint8])(nil)
	_ encoding.TextMarshaler   = BitFlag[uint8]{}
	_ encoding.TextUnmarshaler = (*BitFlag[uint8])(nil)
	_ driver.Valuer            = BitFlag[uint8]{}
	_ sql.Scanner              = (*BitFlag[uint8])(nil)
)

// MarshalJSON encodes the wrapped value as a plain JSON number
func (flag BitFlag[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(flag.val)
}

// UnmarshalJSON decodes a plain JSON number into the wrapped value
func (flag *BitFlag[T]) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &flag.val)
}

// MarshalText encodes the wrapped value in base 10
func (flag BitFlag[T]) MarshalText() ([]byte, error) {
	if isSigned[T]() {
		return strconv.AppendInt(nil, int64(flag.val), 10), nil
	}
	return strconv.AppendUint(nil, uint64(flag.val), 10), nil
}

// UnmarshalText decodes an integer literal into the wrapped value.
// Base prefixes (0b, 0o, 0x) and underscores are accepted the same way strconv.ParseInt with base 0 accepts them.
func (flag *BitFlag[T]) UnmarshalText(text []byte) error {
	raw := strings.TrimSpace(string(text))
	if isSigned[T]() {
		val, err := strconv.ParseInt(raw, 0, int(Size[T]()))
		if err != nil {
			return err
		}
		flag.val = T(val)
		return nil
	}
	val, err := strconv.ParseUint(raw, 0, int(Size[T]()))
	if err != nil {
		return err
	}
	flag.val = T(val)
	return nil
}

// Value implements driver.Valuer.
// The wrapped value is passed as an int64 holding the same bit pattern, so unsigned 64-bit values above
// math.MaxInt64 are stored as negative numbers and restored unchanged by Scan.
func (flag BitFlag[T]) Value() (driver.Value, error) {
	return int64(flag.val), nil
}

// Scan implements sql.Scanner
func (flag *BitFlag[T]) Scan(src any) error {
	switch val := src.(type) {
	case nil:
		flag.val = 0
	case int64:
		return flag.scanInt(val)
	case []byte:
		return flag.scanText(string(val))
	case string:
		return flag.scanText(val)
	default:
		return fmt.Errorf("bitflag: cannot scan value of type %T", src)
	}
	return nil
}

func (flag *BitFlag[T]) scanText(raw string) error {
	// Text sent by a database may be the signed form of an unsigned pattern (see Value)
	if val, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return flag.scanInt(val)
	}
	return flag.UnmarshalText([]byte(raw))
}

// scanInt stores val if it fits into T.
// 64-bit storage accepts every pattern, so unsigned values written by Value come back unchanged.
func (flag *BitFlag[T]) scanInt(val int64) error {
	conv := T(val)
	if Size[T]() < 64 && int64(conv) != val {
		return fmt.Errorf("bitflag: value %d overflows %d-bit storage", val, Size[T]())
	}
	flag.val = conv
	return nil
}
