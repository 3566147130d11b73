package bitflag

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	assert.Equal(t, "00000101", NewWithValue[uint8](5).String())
	assert.Equal(t, "11111111", NewWithValue[int8](-1).String())
	assert.Equal(t, "1000000000000000", NewWithValue[int16](-32768).String())
	assert.Equal(t, strings.Repeat("0", 32), New[uint32]().String())
	assert.Len(t, New[uint64]().String(), 64)
}

func TestFormat(t *testing.T) {
	flag := NewWithValue[uint8](0b1011)
	assert.Equal(t, "00001011", fmt.Sprint(flag))
	assert.Equal(t, "00001011", fmt.Sprintf("%v", flag))
	assert.Equal(t, "00001011", fmt.Sprintf("%+v", flag))
	assert.Equal(t, "00001011", fmt.Sprintf("%s", flag))
	assert.Equal(t, "11", fmt.Sprintf("%d", flag))
	assert.Equal(t, "1011", fmt.Sprintf("%b", flag))
	assert.Equal(t, "0x000b", fmt.Sprintf("%#04x", flag))
	assert.Equal(t, "0xb", fmt.Sprintf("%#x", flag))
	assert.Equal(t, "[00001011]", fmt.Sprintf("%v", []BitFlag[uint8]{flag}))
}

func TestFormatWidth(t *testing.T) {
	flag := NewWithValue[uint8](3)
	assert.Equal(t, "  00000011", fmt.Sprintf("%10v", flag))
	assert.Equal(t, "00000011  |", fmt.Sprintf("%-10s|", flag))
	assert.Equal(t, "00000011", fmt.Sprintf("%4v", flag))
}
