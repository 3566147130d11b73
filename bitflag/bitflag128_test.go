package bitflag

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUint128Shifts(t *testing.T) {
	one := Uint128From64(1)
	assert.Equal(t, Uint128{Lo: 1 << 63}, one.Lsh(63))
	assert.Equal(t, Uint128{Hi: 1}, one.Lsh(64))
	assert.Equal(t, Uint128{Hi: 1 << 63}, one.Lsh(127))
	assert.Equal(t, Uint128{}, one.Lsh(128))
	assert.Equal(t, one, one.Lsh(0))

	top := Uint128{Hi: 1 << 63}
	assert.Equal(t, Uint128{Hi: 1}, top.Rsh(63))
	assert.Equal(t, Uint128{Lo: 1 << 63}, top.Rsh(64))
	assert.Equal(t, Uint128{Lo: 1}, top.Rsh(127))
	assert.Equal(t, Uint128{}, top.Rsh(128))
	assert.Equal(t, Uint128{Hi: 0x1, Lo: 0x8000000000000000}, Uint128{Hi: 0x3}.Rsh(1))
}

func TestUint128Add(t *testing.T) {
	assert.Equal(t, Uint128{Hi: 1}, Uint128{Lo: ^uint64(0)}.Add(Uint128From64(1)))
	assert.Equal(t, Uint128{}, MaxUint128().Add(Uint128From64(1)))
	assert.Equal(t, Uint128From64(4), Uint128From64(3).Add(Uint128From64(1)))
}

func TestUint128Text(t *testing.T) {
	assert.Equal(t, "340282366920938463463374607431768211455", MaxUint128().String())
	assert.Equal(t, "18446744073709551616", Uint128{Hi: 1}.String())
	assert.Equal(t, "42", Uint128From64(42).String())
	assert.Equal(t, "1"+strings.Repeat("0", 64), Uint128{Hi: 1}.Binary())

	parsed, err := ParseUint128("0x1_0000000000000000")
	require.NoError(t, err)
	assert.Equal(t, Uint128{Hi: 1}, parsed)

	_, err = ParseUint128("340282366920938463463374607431768211456")
	assert.Error(t, err)
	_, err = ParseUint128("-1")
	assert.Error(t, err)
	_, err = ParseUint128("nope")
	assert.Error(t, err)
}

func TestBitFlag128SetGet(t *testing.T) {
	flag := New128()
	assert.True(t, flag.IsEmpty())
	assert.Equal(t, uint(128), flag.Size())
	for pos := uint(0); pos < Size128; pos++ {
		flag.Set(pos, true)
		assert.True(t, flag.Get(pos), "position %d", pos)
	}
	assert.Equal(t, MaxUint128(), flag.Raw())
	assert.Equal(t, 128, flag.Len())

	for pos := uint(0); pos < Size128; pos++ {
		flag.Set(pos, false)
		assert.False(t, flag.Get(pos), "position %d", pos)
	}
	assert.True(t, flag.IsEmpty())
}

func TestBitFlag128Overflow(t *testing.T) {
	flag := New128WithValue(MaxUint128())
	flag.Set(128, false)
	flag.Set(1000, false)
	assert.Equal(t, MaxUint128(), flag.Raw())
	assert.False(t, flag.Get(128))
}

func TestBitFlag128Range(t *testing.T) {
	flag := New128()
	flag.SetRange(Range{Start: 60, End: 67}, Uint128From64(0xFF))
	assert.Equal(t, Uint128{Hi: 0xF, Lo: 0xF000000000000000}, flag.Raw())

	got, ok := flag.GetRange(Range{Start: 60, End: 67})
	assert.True(t, ok)
	assert.Equal(t, Uint128From64(0xFF), got)

	_, ok = flag.GetRange(Range{Start: 67, End: 60})
	assert.False(t, ok)
	_, ok = flag.GetRange(Range{Start: 0, End: 128})
	assert.False(t, ok)

	before := flag.Raw()
	flag.SetRange(Range{Start: 100, End: 128}, MaxUint128())
	assert.Equal(t, before, flag.Raw())

	flag.Clear()
	flag.SetRangeUnchecked(Range{Start: 124, End: 127}, Uint128From64(0b1011))
	assert.Equal(t, Uint128{Hi: 0xB << 60}, flag.Raw())
	assert.Equal(t, Uint128From64(0b1011), flag.GetRangeUnchecked(Range{Start: 124, End: 127}))
}

func TestBitFlag128Add(t *testing.T) {
	sum := New128WithValue(Uint128From64(3)).Add(New128WithValue(Uint128From64(1)))
	assert.Equal(t, Uint128From64(4), sum.Raw())

	flag := New128WithValue(Uint128{Lo: ^uint64(0)})
	flag.AddAssignValue(Uint128From64(1))
	assert.Equal(t, Uint128{Hi: 1}, flag.Raw())
	flag.AddAssign(New128WithValue(Uint128{Hi: 1}))
	assert.Equal(t, Uint128{Hi: 2}, flag.Raw())
	assert.Equal(t, Uint128{Hi: 2, Lo: 5}, flag.AddValue(Uint128From64(5)).Raw())

	assert.Equal(t, 1, flag.Compare(New128()))
	assert.Equal(t, -1, New128().Compare(flag))
	assert.True(t, flag.Equal(New128WithValue(Uint128{Hi: 2})))
}

func TestBitFlag128Iter(t *testing.T) {
	flag := New128WithValue(Uint128{Hi: 1 << 63, Lo: 1})
	n, set := 0, 0
	var last bool
	for bit := range flag.Iter() {
		if bit {
			set++
		}
		last = bit
		n++
	}
	assert.Equal(t, 128, n)
	assert.Equal(t, flag.Len(), set)
	assert.True(t, last)
}

func TestBitFlag128Format(t *testing.T) {
	flag := New128WithValue(Uint128From64(5))
	assert.Len(t, flag.String(), 128)
	assert.True(t, strings.HasSuffix(flag.String(), "101"))
	assert.Equal(t, flag.String(), fmt.Sprint(flag))
	assert.Equal(t, "101", fmt.Sprintf("%b", flag))
	assert.Equal(t, "5", fmt.Sprintf("%d", flag))
	assert.Equal(t, "1"+strings.Repeat("0", 16), fmt.Sprintf("%x", New128WithValue(Uint128{Hi: 1, Lo: 0})))
	assert.Equal(t, "  101", fmt.Sprintf("%5b", flag))
	assert.Equal(t, flag.String()+"  |", fmt.Sprintf("%-130v|", flag))
}

func TestBitFlag128Encoding(t *testing.T) {
	flag := New128WithValue(MaxUint128())
	data, err := json.Marshal(map[string]BitFlag128{"mask": flag})
	require.NoError(t, err)
	assert.Equal(t, `{"mask":340282366920938463463374607431768211455}`, string(data))

	var decoded map[string]BitFlag128
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, flag, decoded["mask"])

	val, err := flag.Value()
	require.NoError(t, err)
	var scanned BitFlag128
	require.NoError(t, scanned.Scan(val))
	assert.Equal(t, flag, scanned)
	require.NoError(t, scanned.Scan(int64(7)))
	assert.Equal(t, Uint128From64(7), scanned.Raw())
	assert.Error(t, scanned.Scan(int64(-7)))
}
