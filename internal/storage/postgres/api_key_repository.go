package postgres

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/pkg/errors"
	"github.com/skybi/bitflags/internal/apikey"
	"github.com/skybi/bitflags/internal/secret"
)

const apiKeyColumns = "key_id, api_key, description, quota, used_quota, capabilities"

var keyLength = 48

// APIKeyRepository implements the apikey.Repository interface using PostgreSQL
type APIKeyRepository struct {
	db *pgxpool.Pool
}

var _ apikey.Repository = (*APIKeyRepository)(nil)

// Count returns the total amount of API keys
func (repo *APIKeyRepository) Count(ctx context.Context) (uint64, error) {
	var n uint64
	if err := repo.db.QueryRow(ctx, "select count(*) from api_keys").Scan(&n); err != nil {
		return 0, errors.Wrap(err, "count API keys")
	}
	return n, nil
}

// GetByID retrieves an API key by its ID
func (repo *APIKeyRepository) GetByID(ctx context.Context, id uuid.UUID) (*apikey.Key, error) {
	row := repo.db.QueryRow(ctx, "select "+apiKeyColumns+" from api_keys where key_id = $1", id)
	return repo.optionalAPIKey(row)
}

// GetByRawKey retrieves an API key by the raw bearer token
func (repo *APIKeyRepository) GetByRawKey(ctx context.Context, key string) (*apikey.Key, error) {
	hash, err := secret.Hash(key)
	if err != nil {
		// The raw key is no valid base64 string. This has the same effect as an invalid key.
		return nil, nil
	}

	row := repo.db.QueryRow(ctx, "select "+apiKeyColumns+" from api_keys where api_key = $1", hash[:])
	return repo.optionalAPIKey(row)
}

// Create creates a new API key
func (repo *APIKeyRepository) Create(ctx context.Context, create *apikey.Create) (*apikey.Key, string, error) {
	raw, hash, err := secret.New(keyLength)
	if err != nil {
		return nil, "", errors.Wrap(err, "generate API key")
	}

	key := &apikey.Key{
		ID:           uuid.New(),
		Key:          hash[:],
		Description:  create.Description,
		Quota:        create.Quota,
		UsedQuota:    0,
		Capabilities: create.Capabilities,
	}

	query := `
		insert into api_keys (key_id, api_key, description, quota, used_quota, capabilities)
		values ($1, $2, $3, $4, $5, $6)
	`
	_, err = repo.db.Exec(ctx, query, key.ID, key.Key, key.Description, key.Quota, key.UsedQuota, key.Capabilities)
	if err != nil {
		return nil, "", errors.Wrap(err, "insert API key")
	}
	return key, raw, nil
}

// Update updates an API key
func (repo *APIKeyRepository) Update(ctx context.Context, id uuid.UUID, update *apikey.Update) (*apikey.Key, error) {
	// Simply re-fetch the API key if nothing should be changed
	if update.Description == nil && update.Quota == nil && update.UsedQuota == nil && update.Capabilities == nil {
		return repo.GetByID(ctx, id)
	}

	// Build the SQL query
	query := squirrel.Update("api_keys").Where(squirrel.Eq{"key_id": id})
	if update.Description != nil {
		query = query.Set("description", *update.Description)
	}
	if update.Quota != nil {
		query = query.Set("quota", *update.Quota)
	}
	if update.UsedQuota != nil {
		query = query.Set("used_quota", *update.UsedQuota)
	}
	if update.Capabilities != nil {
		query = query.Set("capabilities", *update.Capabilities)
	}
	sql, values, err := query.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	// Perform the SQL query
	if _, err := repo.db.Exec(ctx, sql, values...); err != nil {
		return nil, errors.Wrap(err, "update API key")
	}

	// Re-fetch the API key
	return repo.GetByID(ctx, id)
}

// UpdateManyQuotas updates many used API quotas at once
func (repo *APIKeyRepository) UpdateManyQuotas(ctx context.Context, updates map[uuid.UUID]int64) error {
	if len(updates) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for id, used := range updates {
		batch.Queue("update api_keys set used_quota = $1 where key_id = $2", used, id)
	}
	results := repo.db.SendBatch(ctx, batch)
	defer results.Close()
	for range updates {
		if _, err := results.Exec(); err != nil {
			return errors.Wrap(err, "update API key quotas")
		}
	}
	return nil
}

// Delete deletes an API key by its ID
func (repo *APIKeyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repo.db.Exec(ctx, "delete from api_keys where key_id = $1", id)
	return errors.Wrap(err, "delete API key")
}

func (repo *APIKeyRepository) optionalAPIKey(row pgx.Row) (*apikey.Key, error) {
	key, err := repo.rowToAPIKey(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return key, nil
}

func (repo *APIKeyRepository) rowToAPIKey(row pgx.Row) (*apikey.Key, error) {
	obj := new(apikey.Key)
	if err := row.Scan(&obj.ID, &obj.Key, &obj.Description, &obj.Quota, &obj.UsedQuota, &obj.Capabilities); err != nil {
		return nil, err
	}
	return obj, nil
}
