package apikey

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the API key repository API
type Repository interface {
	// Count returns the total amount of API keys
	Count(ctx context.Context) (uint64, error)

	// GetByID retrieves an API key by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Key, error)

	// GetByRawKey retrieves an API key by the raw bearer token
	GetByRawKey(ctx context.Context, key string) (*Key, error)

	// Create creates a new API key and returns it together with its raw bearer token.
	// The raw token is not stored and cannot be retrieved later on.
	Create(ctx context.Context, create *Create) (*Key, string, error)

	// Update updates an API key
	Update(ctx context.Context, id uuid.UUID, update *Update) (*Key, error)

	// UpdateManyQuotas updates many used API quotas at once
	UpdateManyQuotas(ctx context.Context, updates map[uuid.UUID]int64) error

	// Delete deletes an API key by its ID
	Delete(ctx context.Context, id uuid.UUID) error
}

// Create is used to create a new API key
type Create struct {
	Description  string
	Quota        int64
	Capabilities Capabilities
}

// Update is used to update an existing API key
type Update struct {
	Description  *string
	Quota        *int64
	UsedQuota    *int64
	Capabilities *Capabilities
}
