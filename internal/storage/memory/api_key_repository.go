package memory

import (
	"context"
	"encoding/hex"

	"github.com/google/uuid"
	"github.com/hashicorp/go-memdb"
	"github.com/skybi/bitflags/internal/apikey"
	"github.com/skybi/bitflags/internal/secret"
)

var keyLength = 48

type apiKeyRow struct {
	ID   string
	Hash string
	Key  apikey.Key
}

func newAPIKeyRow(key *apikey.Key) *apiKeyRow {
	return &apiKeyRow{
		ID:   key.ID.String(),
		Hash: hex.EncodeToString(key.Key),
		Key:  *key,
	}
}

func (row *apiKeyRow) copy() *apikey.Key {
	cpy := row.Key
	return &cpy
}

// APIKeyRepository implements the apikey.Repository interface using go-memdb
type APIKeyRepository struct {
	db *memdb.MemDB
}

var _ apikey.Repository = (*APIKeyRepository)(nil)

// Count returns the total amount of API keys
func (repo *APIKeyRepository) Count(_ context.Context) (uint64, error) {
	txn := repo.db.Txn(false)
	iterator, err := txn.Get(tableAPIKeys, "id")
	if err != nil {
		return 0, err
	}
	var n uint64
	for obj := iterator.Next(); obj != nil; obj = iterator.Next() {
		n++
	}
	return n, nil
}

// GetByID retrieves an API key by its ID
func (repo *APIKeyRepository) GetByID(_ context.Context, id uuid.UUID) (*apikey.Key, error) {
	return repo.first("id", id.String())
}

// GetByRawKey retrieves an API key by the raw bearer token
func (repo *APIKeyRepository) GetByRawKey(_ context.Context, key string) (*apikey.Key, error) {
	hash, err := secret.Hash(key)
	if err != nil {
		return nil, nil
	}
	return repo.first("hash", hex.EncodeToString(hash[:]))
}

// Create creates a new API key
func (repo *APIKeyRepository) Create(_ context.Context, create *apikey.Create) (*apikey.Key, string, error) {
	raw, hash, err := secret.New(keyLength)
	if err != nil {
		return nil, "", err
	}

	key := &apikey.Key{
		ID:           uuid.New(),
		Key:          hash[:],
		Description:  create.Description,
		Quota:        create.Quota,
		UsedQuota:    0,
		Capabilities: create.Capabilities,
	}

	txn := repo.db.Txn(true)
	defer txn.Abort()
	if err := txn.Insert(tableAPIKeys, newAPIKeyRow(key)); err != nil {
		return nil, "", err
	}
	txn.Commit()

	cpy := *key
	return &cpy, raw, nil
}

// Update updates an API key
func (repo *APIKeyRepository) Update(_ context.Context, id uuid.UUID, update *apikey.Update) (*apikey.Key, error) {
	txn := repo.db.Txn(true)
	defer txn.Abort()

	obj, err := txn.First(tableAPIKeys, "id", id.String())
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, nil
	}
	key := obj.(*apiKeyRow).copy()

	if update.Description != nil {
		key.Description = *update.Description
	}
	if update.Quota != nil {
		key.Quota = *update.Quota
	}
	if update.UsedQuota != nil {
		key.UsedQuota = *update.UsedQuota
	}
	if update.Capabilities != nil {
		key.Capabilities = *update.Capabilities
	}

	if err := txn.Insert(tableAPIKeys, newAPIKeyRow(key)); err != nil {
		return nil, err
	}
	txn.Commit()
	return key, nil
}

// UpdateManyQuotas updates many used API quotas at once
func (repo *APIKeyRepository) UpdateManyQuotas(_ context.Context, updates map[uuid.UUID]int64) error {
	txn := repo.db.Txn(true)
	defer txn.Abort()
	for id, used := range updates {
		obj, err := txn.First(tableAPIKeys, "id", id.String())
		if err != nil {
			return err
		}
		if obj == nil {
			continue
		}
		key := obj.(*apiKeyRow).copy()
		key.UsedQuota = used
		if err := txn.Insert(tableAPIKeys, newAPIKeyRow(key)); err != nil {
			return err
		}
	}
	txn.Commit()
	return nil
}

// Delete deletes an API key by its ID
func (repo *APIKeyRepository) Delete(_ context.Context, id uuid.UUID) error {
	txn := repo.db.Txn(true)
	defer txn.Abort()
	if _, err := txn.DeleteAll(tableAPIKeys, "id", id.String()); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

func (repo *APIKeyRepository) first(index string, arg any) (*apikey.Key, error) {
	txn := repo.db.Txn(false)
	obj, err := txn.First(tableAPIKeys, index, arg)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, nil
	}
	return obj.(*apiKeyRow).copy(), nil
}
