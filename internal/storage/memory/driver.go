package memory

import (
	"context"

	"github.com/hashicorp/go-memdb"
	"github.com/skybi/bitflags/internal/apikey"
	"github.com/skybi/bitflags/internal/register"
	"github.com/skybi/bitflags/internal/storage"
)

const (
	tableRegisters = "registers"
	tableAPIKeys   = "api_keys"
)

var dbSchema = &memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		tableRegisters: {
			Name: tableRegisters,
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:         "id",
					Unique:       true,
					AllowMissing: false,
					Indexer:      &memdb.UUIDFieldIndex{Field: "ID"},
				},
				"name": {
					Name:         "name",
					Unique:       true,
					AllowMissing: false,
					Indexer:      &memdb.StringFieldIndex{Field: "Name"},
				},
			},
		},
		tableAPIKeys: {
			Name: tableAPIKeys,
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:         "id",
					Unique:       true,
					AllowMissing: false,
					Indexer:      &memdb.UUIDFieldIndex{Field: "ID"},
				},
				"hash": {
					Name:         "hash",
					Unique:       true,
					AllowMissing: false,
					Indexer:      &memdb.StringFieldIndex{Field: "Hash"},
				},
			},
		},
	},
}

// Driver represents the in-memory storage driver built using hashicorp/go-memdb.
// Its data is lost as soon as the process exits.
type Driver struct {
	db        *memdb.MemDB
	registers *RegisterRepository
	apiKeys   *APIKeyRepository
}

var _ storage.Driver = (*Driver)(nil)

// New creates a new empty in-memory storage driver
func New() *Driver {
	return &Driver{}
}

// Initialize creates the in-memory database and initializes the repository implementations
func (driver *Driver) Initialize(_ context.Context) error {
	db, err := memdb.NewMemDB(dbSchema)
	if err != nil {
		return err
	}
	driver.db = db
	driver.registers = &RegisterRepository{db: db}
	driver.apiKeys = &APIKeyRepository{db: db}
	return nil
}

// Registers provides the in-memory register repository implementation
func (driver *Driver) Registers() register.Repository {
	return driver.registers
}

// APIKeys provides the in-memory API key repository implementation
func (driver *Driver) APIKeys() apikey.Repository {
	return driver.apiKeys
}

// Close discards the in-memory database
func (driver *Driver) Close() {
	driver.registers = nil
	driver.apiKeys = nil
	driver.db = nil
}
