package quota

import (
	"context"

	"github.com/google/uuid"
	"github.com/skybi/bitflags/internal/apikey"
	"github.com/skybi/bitflags/internal/hashmap"
)

// Tracker keeps track of the used quota of API keys and updates it in batches in order to reduce database traffic
type Tracker struct {
	repo apikey.Repository

	usedQuotas *hashmap.NormalMap[uuid.UUID, int64]
}

// NewTracker creates a new API key quota tracker
func NewTracker(repo apikey.Repository) *Tracker {
	return &Tracker{
		repo:       repo,
		usedQuotas: hashmap.NewNormal[uuid.UUID, int64](),
	}
}

// Get returns the current used API quota of a specific API key
func (tracker *Tracker) Get(key *apikey.Key) int64 {
	current, ok := tracker.usedQuotas.Lookup(key.ID)
	if !ok {
		current = key.UsedQuota
	}
	return current
}

// HasQuotaLeft checks if the given API key may perform another request.
// Keys with a negative quota are unlimited.
func (tracker *Tracker) HasQuotaLeft(key *apikey.Key) bool {
	return key.Quota < 0 || tracker.Get(key) < key.Quota
}

// Accumulate accumulates the used API quota of a specific API key by 1
func (tracker *Tracker) Accumulate(key *apikey.Key) {
	tracker.usedQuotas.Update(key.ID, func(current int64, ok bool) int64 {
		if !ok {
			current = key.UsedQuota
		}
		return current + 1
	})
}

// Forget drops the tracked quota of a specific API key, i.e. after it got deleted
func (tracker *Tracker) Forget(id uuid.UUID) {
	tracker.usedQuotas.Unset(id)
}

// Flush sends all changed API quota to the database and resets the counters
func (tracker *Tracker) Flush(ctx context.Context) (int, error) {
	snapshot := tracker.usedQuotas.Drain()
	if len(snapshot) == 0 {
		return 0, nil
	}

	if err := tracker.repo.UpdateManyQuotas(ctx, snapshot); err != nil {
		// Put the counters back so that the next flush retries them
		for id, used := range snapshot {
			tracker.usedQuotas.Update(id, func(current int64, ok bool) int64 {
				if ok && current > used {
					return current
				}
				return used
			})
		}
		return 0, err
	}
	return len(snapshot), nil
}
