package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/skybi/bitflags/bitflag"
	"github.com/skybi/bitflags/internal/apikey"
	"github.com/skybi/bitflags/internal/register"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDriver(t *testing.T) *Driver {
	t.Helper()
	driver := New()
	require.NoError(t, driver.Initialize(context.Background()))
	t.Cleanup(driver.Close)
	return driver
}

func TestRegisterRepository(t *testing.T) {
	ctx := context.Background()
	repo := newDriver(t).Registers()

	created, err := repo.Create(ctx, &register.Create{Name: "b", Flags: bitflag.From[uint64](3)})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.NotZero(t, created.Created)

	_, err = repo.Create(ctx, &register.Create{Name: "b"})
	assert.ErrorIs(t, err, register.ErrNameTaken)

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)

	// Mutating a returned register must not alter the stored one
	fetched.Flags.Clear()
	again, err := repo.GetByName(ctx, "b")
	require.NoError(t, err)
	assert.EqualValues(t, 3, again.Flags.Raw())

	missing, err := repo.GetByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRegisterRepositoryUpdate(t *testing.T) {
	ctx := context.Background()
	repo := newDriver(t).Registers()
	first, err := repo.Create(ctx, &register.Create{Name: "first"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &register.Create{Name: "second"})
	require.NoError(t, err)

	flags := bitflag.From[uint64](1 << 40)
	name := "renamed"
	updated, err := repo.Update(ctx, first.ID, &register.Update{Name: &name, Flags: &flags})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)
	assert.Equal(t, flags, updated.Flags)

	old, err := repo.GetByName(ctx, "first")
	require.NoError(t, err)
	assert.Nil(t, old)

	taken := "second"
	_, err = repo.Update(ctx, first.ID, &register.Update{Name: &taken})
	assert.ErrorIs(t, err, register.ErrNameTaken)

	none, err := repo.Update(ctx, uuid.New(), &register.Update{Flags: &flags})
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestRegisterRepositoryPagination(t *testing.T) {
	ctx := context.Background()
	repo := newDriver(t).Registers()
	for _, name := range []string{"d", "a", "c", "b"} {
		_, err := repo.Create(ctx, &register.Create{Name: name})
		require.NoError(t, err)
	}

	page, total, err := repo.Get(ctx, 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	require.Len(t, page, 2)
	assert.Equal(t, "b", page[0].Name)
	assert.Equal(t, "c", page[1].Name)

	page, _, err = repo.Get(ctx, 10, 2)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestRegisterRepositoryDelete(t *testing.T) {
	ctx := context.Background()
	repo := newDriver(t).Registers()
	reg, err := repo.Create(ctx, &register.Create{Name: "gone"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, reg.ID))
	fetched, err := repo.GetByID(ctx, reg.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched)

	_, err = repo.Create(ctx, &register.Create{Name: "gone"})
	assert.NoError(t, err)
}

func TestAPIKeyRepository(t *testing.T) {
	ctx := context.Background()
	repo := newDriver(t).APIKeys()

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	key, raw, err := repo.Create(ctx, &apikey.Create{
		Description:  "test",
		Quota:        5,
		Capabilities: apikey.AllCapabilities(),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, raw)

	byRaw, err := repo.GetByRawKey(ctx, raw)
	require.NoError(t, err)
	require.NotNil(t, byRaw)
	assert.Equal(t, key.ID, byRaw.ID)
	assert.True(t, byRaw.Capabilities.Has(apikey.CapabilityManageKeys))

	unknown, err := repo.GetByRawKey(ctx, "%%%")
	require.NoError(t, err)
	assert.Nil(t, unknown)

	require.NoError(t, repo.UpdateManyQuotas(ctx, map[uuid.UUID]int64{key.ID: 4, uuid.New(): 1}))
	byID, err := repo.GetByID(ctx, key.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 4, byID.UsedQuota)

	caps := apikey.EmptyCapabilities.With(apikey.CapabilityReadRegisters)
	updated, err := repo.Update(ctx, key.ID, &apikey.Update{Capabilities: &caps})
	require.NoError(t, err)
	assert.Equal(t, []string{"read_registers"}, updated.Capabilities.Names())

	require.NoError(t, repo.Delete(ctx, key.ID))
	n, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	gone, err := repo.GetByRawKey(ctx, raw)
	require.NoError(t, err)
	assert.Nil(t, gone)
}
