package register

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNameTaken is returned by Create and Update if the register name is already in use
var ErrNameTaken = errors.New("register name is already in use")

// Repository defines the register repository API
type Repository interface {
	// Get retrieves multiple registers ordered by their name and returns the total amount of registers
	Get(ctx context.Context, offset, limit uint64) ([]*Register, uint64, error)

	// GetByID retrieves a register by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Register, error)

	// GetByName retrieves a register by its name
	GetByName(ctx context.Context, name string) (*Register, error)

	// Create creates a new register
	Create(ctx context.Context, create *Create) (*Register, error)

	// Update updates a register
	Update(ctx context.Context, id uuid.UUID, update *Update) (*Register, error)

	// Delete deletes a register by its ID
	Delete(ctx context.Context, id uuid.UUID) error
}

// Create is used to create a new register
type Create struct {
	Name  string
	Flags Flags
}

// Update is used to update an existing register
type Update struct {
	Name  *string
	Flags *Flags
}
