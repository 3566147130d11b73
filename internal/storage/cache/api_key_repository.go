package cache

import (
	"context"

	"github.com/google/uuid"
	"github.com/skybi/bitflags/internal/apikey"
	"github.com/skybi/bitflags/internal/hashmap"
	"github.com/skybi/bitflags/internal/secret"
)

// APIKeyRepository implements the apikey.Repository interface in order to implement caching
type APIKeyRepository struct {
	repo      apikey.Repository
	cache     *hashmap.ExpiringMap[uuid.UUID, *apikey.Key]
	hashCache *hashmap.ExpiringMap[[64]byte, uuid.UUID]
}

var _ apikey.Repository = (*APIKeyRepository)(nil)

// Count returns the total amount of API keys
func (repo *APIKeyRepository) Count(ctx context.Context) (uint64, error) {
	return repo.repo.Count(ctx)
}

// GetByID retrieves an API key by its ID
func (repo *APIKeyRepository) GetByID(ctx context.Context, id uuid.UUID) (*apikey.Key, error) {
	if cached, ok := repo.cache.Lookup(id); ok {
		cpy := *cached
		return &cpy, nil
	}
	key, err := repo.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	repo.store(key)
	return key, nil
}

// GetByRawKey retrieves an API key by the raw bearer token
func (repo *APIKeyRepository) GetByRawKey(ctx context.Context, key string) (*apikey.Key, error) {
	hash, err := secret.Hash(key)
	if err != nil {
		return nil, nil
	}
	if id, ok := repo.hashCache.Lookup(hash); ok {
		return repo.GetByID(ctx, id)
	}

	obj, err := repo.repo.GetByRawKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if obj != nil {
		repo.hashCache.Set(hash, obj.ID)
		repo.store(obj)
	}
	return obj, nil
}

// Create creates a new API key
func (repo *APIKeyRepository) Create(ctx context.Context, create *apikey.Create) (*apikey.Key, string, error) {
	key, raw, err := repo.repo.Create(ctx, create)
	if err != nil {
		return nil, "", err
	}
	repo.store(key)
	return key, raw, nil
}

// Update updates an API key
func (repo *APIKeyRepository) Update(ctx context.Context, id uuid.UUID, update *apikey.Update) (*apikey.Key, error) {
	key, err := repo.repo.Update(ctx, id, update)
	if err != nil || key == nil {
		repo.cache.Unset(id)
		return key, err
	}
	repo.store(key)
	return key, nil
}

// UpdateManyQuotas updates many used API quotas at once and drops the affected keys from the cache
func (repo *APIKeyRepository) UpdateManyQuotas(ctx context.Context, updates map[uuid.UUID]int64) error {
	err := repo.repo.UpdateManyQuotas(ctx, updates)
	for id := range updates {
		repo.cache.Unset(id)
	}
	return err
}

// Delete deletes an API key by its ID
func (repo *APIKeyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := repo.repo.Delete(ctx, id); err != nil {
		return err
	}
	repo.cache.Unset(id)
	repo.hashCache.UnsetWhere(func(_ [64]byte, cached uuid.UUID) bool {
		return cached == id
	})
	return nil
}

func (repo *APIKeyRepository) store(key *apikey.Key) {
	if key == nil {
		return
	}
	cpy := *key
	repo.cache.Set(key.ID, &cpy)
}
