package quota

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/skybi/bitflags/internal/apikey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingRepository records quota flushes; all other methods are unused by the tracker
type recordingRepository struct {
	apikey.Repository
	flushed map[uuid.UUID]int64
	err     error
}

func (repo *recordingRepository) UpdateManyQuotas(_ context.Context, updates map[uuid.UUID]int64) error {
	if repo.err != nil {
		return repo.err
	}
	repo.flushed = updates
	return nil
}

func TestTrackerAccumulate(t *testing.T) {
	tracker := NewTracker(&recordingRepository{})
	key := &apikey.Key{ID: uuid.New(), Quota: 3, UsedQuota: 1}

	assert.EqualValues(t, 1, tracker.Get(key))
	assert.True(t, tracker.HasQuotaLeft(key))
	tracker.Accumulate(key)
	tracker.Accumulate(key)
	assert.EqualValues(t, 3, tracker.Get(key))
	assert.False(t, tracker.HasQuotaLeft(key))

	tracker.Forget(key.ID)
	assert.EqualValues(t, 1, tracker.Get(key))
}

func TestTrackerUnlimitedQuota(t *testing.T) {
	tracker := NewTracker(&recordingRepository{})
	key := &apikey.Key{ID: uuid.New(), Quota: -1, UsedQuota: 1 << 40}
	assert.True(t, tracker.HasQuotaLeft(key))
}

func TestTrackerFlush(t *testing.T) {
	repo := &recordingRepository{}
	tracker := NewTracker(repo)
	key := &apikey.Key{ID: uuid.New(), Quota: 10}

	n, err := tracker.Flush(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	tracker.Accumulate(key)
	n, err = tracker.Flush(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, map[uuid.UUID]int64{key.ID: 1}, repo.flushed)
}

func TestTrackerFlushFailureKeepsCounters(t *testing.T) {
	repo := &recordingRepository{err: errors.New("database down")}
	tracker := NewTracker(repo)
	key := &apikey.Key{ID: uuid.New(), Quota: 10}

	tracker.Accumulate(key)
	tracker.Accumulate(key)
	_, err := tracker.Flush(context.Background())
	require.Error(t, err)
	assert.EqualValues(t, 2, tracker.Get(key))

	repo.err = nil
	n, err := tracker.Flush(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.EqualValues(t, 2, repo.flushed[key.ID])
}
