package storage

import (
	"context"

	"github.com/skybi/bitflags/internal/apikey"
	"github.com/skybi/bitflags/internal/register"
)

// Driver represents a storage driver
type Driver interface {
	// Initialize initializes the storage driver (i.e. opens a database connection)
	Initialize(ctx context.Context) error

	// Registers provides a register repository implementation
	Registers() register.Repository

	// APIKeys provides an API key repository implementation
	APIKeys() apikey.Repository

	// Close closes the storage driver (i.e. closes a database connection)
	Close()
}
