package bitflag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddIsArithmetic(t *testing.T) {
	assert.Equal(t, uint8(3), NewWithValue[uint8](1).Add(NewWithValue[uint8](2)).Raw())
	// A union of bits would yield 3 here
	assert.Equal(t, uint8(4), NewWithValue[uint8](3).Add(NewWithValue[uint8](1)).Raw())
}

func TestAddWraps(t *testing.T) {
	assert.Equal(t, uint8(0), NewWithValue[uint8](255).AddValue(1).Raw())
	assert.Equal(t, int8(-128), NewWithValue[int8](127).AddValue(1).Raw())
}

func TestAddValueIsCommutative(t *testing.T) {
	a := NewWithValue[uint16](0x0F0F)
	b := NewWithValue[uint16](0x1111)
	assert.Equal(t, a.AddValue(b.Raw()), b.AddValue(a.Raw()))
	assert.Equal(t, a.Add(b), b.Add(a))
}

func TestAddAssign(t *testing.T) {
	flag := NewWithValue[uint32](3)
	flag.AddAssign(NewWithValue[uint32](1))
	assert.Equal(t, uint32(4), flag.Raw())
	flag.AddAssignValue(6)
	assert.Equal(t, uint32(10), flag.Raw())
}

func TestCompare(t *testing.T) {
	small := NewWithValue[int16](-5)
	big := NewWithValue[int16](5)
	assert.Equal(t, -1, small.Compare(big))
	assert.Equal(t, 1, big.Compare(small))
	assert.Equal(t, 0, big.Compare(NewWithValue[int16](5)))
	assert.True(t, big.Equal(From[int16](5)))
	assert.False(t, big.Equal(small))
	assert.True(t, big == From[int16](5))
}
