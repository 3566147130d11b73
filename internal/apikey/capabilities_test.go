package apikey

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapabilitiesHas(t *testing.T) {
	caps := EmptyCapabilities.With(CapabilityReadRegisters, CapabilityManageKeys)
	assert.True(t, caps.Has(CapabilityReadRegisters))
	assert.True(t, caps.Has(CapabilityReadRegisters, CapabilityManageKeys))
	assert.False(t, caps.Has(CapabilityReadRegisters, CapabilityWriteRegisters))
	assert.True(t, caps.Has())
	assert.EqualValues(t, 0b101, caps.Raw())
}

func TestCapabilitiesValueSemantics(t *testing.T) {
	base := EmptyCapabilities.With(CapabilityWriteRegisters)
	_ = base.With(CapabilityManageKeys)
	assert.EqualValues(t, 0b010, base.Raw())
	assert.True(t, EmptyCapabilities.IsEmpty())

	assert.EqualValues(t, 0b011, AllCapabilities().Without(CapabilityManageKeys).Raw())
}

func TestCapabilitiesMissing(t *testing.T) {
	provided := EmptyCapabilities.With(CapabilityReadRegisters)
	required := EmptyCapabilities.With(CapabilityReadRegisters, CapabilityWriteRegisters)
	assert.Equal(t, []string{"write_registers"}, provided.Missing(required).Names())
	assert.True(t, required.Missing(provided).IsEmpty())
}

func TestCapabilitiesNames(t *testing.T) {
	assert.Equal(t, []string{}, EmptyCapabilities.Names())
	assert.Equal(t, []string{"read_registers", "write_registers", "manage_keys"}, AllCapabilities().Names())

	var caps Capabilities
	caps.Set(5, true)
	assert.Equal(t, []string{"unknown"}, caps.Names())
}

func TestCapabilitiesEncoding(t *testing.T) {
	raw, err := json.Marshal(AllCapabilities())
	require.NoError(t, err)
	assert.Equal(t, "7", string(raw))

	var caps Capabilities
	require.NoError(t, json.Unmarshal([]byte("3"), &caps))
	assert.True(t, caps.Has(CapabilityReadRegisters, CapabilityWriteRegisters))

	require.NoError(t, caps.UnmarshalText([]byte("0b100")))
	assert.Equal(t, []string{"manage_keys"}, caps.Names())
}

func TestSanitizeDescription(t *testing.T) {
	assert.Equal(t, "key", SanitizeDescription("  key \n"))
	long := strings.Repeat("ä", MaxDescriptionLength+10)
	assert.Equal(t, MaxDescriptionLength, len([]rune(SanitizeDescription(long))))
}
