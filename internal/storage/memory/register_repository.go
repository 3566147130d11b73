package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-memdb"
	"github.com/skybi/bitflags/internal/register"
)

type registerRow struct {
	ID       string
	Name     string
	Register register.Register
}

func newRegisterRow(reg *register.Register) *registerRow {
	return &registerRow{
		ID:       reg.ID.String(),
		Name:     reg.Name,
		Register: *reg,
	}
}

func (row *registerRow) copy() *register.Register {
	cpy := row.Register
	return &cpy
}

// RegisterRepository implements the register.Repository interface using go-memdb
type RegisterRepository struct {
	db *memdb.MemDB
}

var _ register.Repository = (*RegisterRepository)(nil)

// Get retrieves multiple registers ordered by their name
func (repo *RegisterRepository) Get(_ context.Context, offset, limit uint64) ([]*register.Register, uint64, error) {
	if limit == 0 {
		limit = 10
	}

	txn := repo.db.Txn(false)
	iterator, err := txn.Get(tableRegisters, "name")
	if err != nil {
		return nil, 0, err
	}

	registers := []*register.Register{}
	var n uint64
	for obj := iterator.Next(); obj != nil; obj = iterator.Next() {
		if n >= offset && n < offset+limit {
			registers = append(registers, obj.(*registerRow).copy())
		}
		n++
	}
	return registers, n, nil
}

// GetByID retrieves a register by its ID
func (repo *RegisterRepository) GetByID(_ context.Context, id uuid.UUID) (*register.Register, error) {
	return repo.first("id", id.String())
}

// GetByName retrieves a register by its name
func (repo *RegisterRepository) GetByName(_ context.Context, name string) (*register.Register, error) {
	return repo.first("name", name)
}

// Create creates a new register
func (repo *RegisterRepository) Create(_ context.Context, create *register.Create) (*register.Register, error) {
	reg := &register.Register{
		ID:      uuid.New(),
		Name:    create.Name,
		Flags:   create.Flags,
		Created: time.Now().Unix(),
	}

	txn := repo.db.Txn(true)
	defer txn.Abort()
	taken, err := txn.First(tableRegisters, "name", reg.Name)
	if err != nil {
		return nil, err
	}
	if taken != nil {
		return nil, register.ErrNameTaken
	}
	if err := txn.Insert(tableRegisters, newRegisterRow(reg)); err != nil {
		return nil, err
	}
	txn.Commit()

	cpy := *reg
	return &cpy, nil
}

// Update updates a register
func (repo *RegisterRepository) Update(_ context.Context, id uuid.UUID, update *register.Update) (*register.Register, error) {
	txn := repo.db.Txn(true)
	defer txn.Abort()

	obj, err := txn.First(tableRegisters, "id", id.String())
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, nil
	}
	reg := obj.(*registerRow).copy()

	if update.Name != nil && *update.Name != reg.Name {
		taken, err := txn.First(tableRegisters, "name", *update.Name)
		if err != nil {
			return nil, err
		}
		if taken != nil {
			return nil, register.ErrNameTaken
		}
		reg.Name = *update.Name
	}
	if update.Flags != nil {
		reg.Flags = *update.Flags
	}

	if err := txn.Insert(tableRegisters, newRegisterRow(reg)); err != nil {
		return nil, err
	}
	txn.Commit()
	return reg, nil
}

// Delete deletes a register by its ID
func (repo *RegisterRepository) Delete(_ context.Context, id uuid.UUID) error {
	txn := repo.db.Txn(true)
	defer txn.Abort()
	if _, err := txn.DeleteAll(tableRegisters, "id", id.String()); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

func (repo *RegisterRepository) first(index string, arg any) (*register.Register, error) {
	txn := repo.db.Txn(false)
	obj, err := txn.First(tableRegisters, index, arg)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, nil
	}
	return obj.(*registerRow).copy(), nil
}
