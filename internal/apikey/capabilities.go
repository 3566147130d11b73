package apikey

import "github.com/skybi/bitflags/bitflag"

// Capability represents a single API key capability.
// Its value is the bit position the capability occupies inside Capabilities.
type Capability uint

const (
	CapabilityReadRegisters Capability = iota
	CapabilityWriteRegisters
	CapabilityManageKeys
)

var capabilityNames = map[Capability]string{
	CapabilityReadRegisters:  "read_registers",
	CapabilityWriteRegisters: "write_registers",
	CapabilityManageKeys:     "manage_keys",
}

// String returns the name of the capability
func (capability Capability) String() string {
	if name, ok := capabilityNames[capability]; ok {
		return name
	}
	return "unknown"
}

// Capabilities represents the container of API key capabilities.
// It is stored as a plain 32-bit integer; bit n is set if the capability with the value n is granted.
type Capabilities struct {
	bitflag.BitFlag[uint32]
}

// EmptyCapabilities provides a capability container with no capabilities set
var EmptyCapabilities = Capabilities{}

// AllCapabilities returns a capability container with every known capability set
func AllCapabilities() Capabilities {
	return EmptyCapabilities.With(CapabilityReadRegisters, CapabilityWriteRegisters, CapabilityManageKeys)
}

// Has checks if the capability container has all the given capabilities set
func (cur Capabilities) Has(caps ...Capability) bool {
	for _, capability := range caps {
		if !cur.Get(uint(capability)) {
			return false
		}
	}
	return true
}

// With returns a new capability container with all given and current capabilities set
func (cur Capabilities) With(caps ...Capability) Capabilities {
	for _, capability := range caps {
		cur.Set(uint(capability), true)
	}
	return cur
}

// Without returns a new capability container with the current and without the given capabilities set
func (cur Capabilities) Without(caps ...Capability) Capabilities {
	for _, capability := range caps {
		cur.Set(uint(capability), false)
	}
	return cur
}

// Missing returns the capabilities set in required but not in the current container
func (cur Capabilities) Missing(required Capabilities) Capabilities {
	var missing Capabilities
	pos := uint(0)
	for set := range required.Iter() {
		if set && !cur.Get(pos) {
			missing.Set(pos, true)
		}
		pos++
	}
	return missing
}

// Names returns the names of all set capabilities
func (cur Capabilities) Names() []string {
	names := []string{}
	pos := uint(0)
	for set := range cur.Iter() {
		if set {
			names = append(names, Capability(pos).String())
		}
		pos++
	}
	return names
}
