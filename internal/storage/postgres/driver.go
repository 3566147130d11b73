package postgres

import (
	"context"
	"embed"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/pkg/errors"
	"github.com/skybi/bitflags/internal/apikey"
	"github.com/skybi/bitflags/internal/register"
	"github.com/skybi/bitflags/internal/storage"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Driver represents the PostgreSQL storage driver implementation
type Driver struct {
	dsn       string
	db        *pgxpool.Pool
	registers *RegisterRepository
	apiKeys   *APIKeyRepository
}

var _ storage.Driver = (*Driver)(nil)

// New creates a new empty PostgreSQL storage driver.
// Use Initialize to open the database connection and initialize the repository implementations.
func New(dsn string) *Driver {
	return &Driver{
		dsn: dsn,
	}
}

// Initialize opens the database connection, migrates the database and initializes the repository implementations
func (driver *Driver) Initialize(ctx context.Context) error {
	// Perform SQL migrations
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return errors.Wrap(err, "open migration source")
	}
	migrator, err := migrate.NewWithSourceInstance("iofs", source, driver.dsn)
	if err != nil {
		return errors.Wrap(err, "create migrator")
	}
	defer migrator.Close()
	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "migrate database")
	}

	// Initialize the database connection pool
	pool, err := pgxpool.Connect(ctx, driver.dsn)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	driver.db = pool

	// Initialize the repository implementations
	driver.registers = &RegisterRepository{db: pool}
	driver.apiKeys = &APIKeyRepository{db: pool}

	return nil
}

// Registers provides the PostgreSQL register repository implementation
func (driver *Driver) Registers() register.Repository {
	return driver.registers
}

// APIKeys provides the PostgreSQL API key repository implementation
func (driver *Driver) APIKeys() apikey.Repository {
	return driver.apiKeys
}

// Close discards the repository implementations and closes the database connection
func (driver *Driver) Close() {
	driver.registers = nil
	driver.apiKeys = nil

	if driver.db != nil {
		driver.db.Close()
		driver.db = nil
	}
}
