package cache

import (
	"context"

	"github.com/google/uuid"
	"github.com/skybi/bitflags/internal/hashmap"
	"github.com/skybi/bitflags/internal/register"
)

// RegisterRepository implements the register.Repository interface in order to implement caching
type RegisterRepository struct {
	repo  register.Repository
	cache *hashmap.ExpiringMap[uuid.UUID, *register.Register]
}

var _ register.Repository = (*RegisterRepository)(nil)

// Get retrieves multiple registers
func (repo *RegisterRepository) Get(ctx context.Context, offset, limit uint64) ([]*register.Register, uint64, error) {
	registers, n, err := repo.repo.Get(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	for _, reg := range registers {
		repo.store(reg)
	}
	return registers, n, nil
}

// GetByID retrieves a register by its ID
func (repo *RegisterRepository) GetByID(ctx context.Context, id uuid.UUID) (*register.Register, error) {
	if cached, ok := repo.cache.Lookup(id); ok {
		cpy := *cached
		return &cpy, nil
	}
	reg, err := repo.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	repo.store(reg)
	return reg, nil
}

// GetByName retrieves a register by its name
func (repo *RegisterRepository) GetByName(ctx context.Context, name string) (*register.Register, error) {
	reg, err := repo.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	repo.store(reg)
	return reg, nil
}

// Create creates a new register
func (repo *RegisterRepository) Create(ctx context.Context, create *register.Create) (*register.Register, error) {
	reg, err := repo.repo.Create(ctx, create)
	if err != nil {
		return nil, err
	}
	repo.store(reg)
	return reg, nil
}

// Update updates a register
func (repo *RegisterRepository) Update(ctx context.Context, id uuid.UUID, update *register.Update) (*register.Register, error) {
	reg, err := repo.repo.Update(ctx, id, update)
	if err != nil {
		repo.cache.Unset(id)
		return nil, err
	}
	if reg == nil {
		repo.cache.Unset(id)
		return nil, nil
	}
	repo.store(reg)
	return reg, nil
}

// Delete deletes a register by its ID
func (repo *RegisterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := repo.repo.Delete(ctx, id); err != nil {
		return err
	}
	repo.cache.Unset(id)
	return nil
}

// store caches a copy of reg so that callers mutating their result do not alter the cache
func (repo *RegisterRepository) store(reg *register.Register) {
	if reg == nil {
		return
	}
	cpy := *reg
	repo.cache.Set(reg.ID, &cpy)
}
