package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/skybi/bitflags/internal/apikey"
	"github.com/skybi/bitflags/internal/hashmap"
	"github.com/skybi/bitflags/internal/register"
	"github.com/skybi/bitflags/internal/storage"
)

// cleanupInterval is the interval in which expired cache entries get removed
var cleanupInterval = 10 * time.Second

// Driver represents a storage driver implementation that wraps another one in order to implement in-memory caching
type Driver struct {
	underlying storage.Driver
	lifetime   time.Duration
	registers  *RegisterRepository
	apiKeys    *APIKeyRepository
}

var _ storage.Driver = (*Driver)(nil)

// New returns a new caching storage driver keeping cached values for the given lifetime.
// The underlying driver has to be initialized before.
func New(underlying storage.Driver, lifetime time.Duration) *Driver {
	return &Driver{
		underlying: underlying,
		lifetime:   lifetime,
	}
}

// Initialize initializes the caching repositories
func (driver *Driver) Initialize(_ context.Context) error {
	registerCache := hashmap.NewExpiring[uuid.UUID, *register.Register](driver.lifetime)
	registerCache.ScheduleCleanupTask(cleanupInterval)
	driver.registers = &RegisterRepository{
		repo:  driver.underlying.Registers(),
		cache: registerCache,
	}

	apiKeyCache := hashmap.NewExpiring[uuid.UUID, *apikey.Key](driver.lifetime)
	apiKeyCache.ScheduleCleanupTask(cleanupInterval)
	hashCache := hashmap.NewExpiring[[64]byte, uuid.UUID](driver.lifetime)
	hashCache.ScheduleCleanupTask(cleanupInterval)
	driver.apiKeys = &APIKeyRepository{
		repo:      driver.underlying.APIKeys(),
		cache:     apiKeyCache,
		hashCache: hashCache,
	}

	return nil
}

// Registers provides the caching register repository implementation
func (driver *Driver) Registers() register.Repository {
	return driver.registers
}

// APIKeys provides the caching API key repository implementation
func (driver *Driver) APIKeys() apikey.Repository {
	return driver.apiKeys
}

// Close closes the caching repositories and the underlying driver
func (driver *Driver) Close() {
	if driver.registers != nil {
		driver.registers.cache.StopCleanupTask()
		driver.registers = nil
	}
	if driver.apiKeys != nil {
		driver.apiKeys.cache.StopCleanupTask()
		driver.apiKeys.hashCache.StopCleanupTask()
		driver.apiKeys = nil
	}
	driver.underlying.Close()
}
