package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	"github.com/m04kA/SMC-LaundryService/internal/infra/storage"
)

func newTestDB(t *testing.T) (*DeviceRepository, *ReservationRepository, *TxManager) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	sqlDB, _ := db.DB()
	t.Cleanup(func() { _ = sqlDB.Close() })

	devices := NewDeviceRepository(db)
	require.NoError(t, devices.UpsertAll(context.Background(), []*domain.Device{
		{ID: "W1", Category: domain.CategoryWasher, Name: "Washer 1"},
		{ID: "D1", Category: domain.CategoryDryer, Name: "Dryer 1"},
	}))

	return devices, NewReservationRepository(db), NewTxManager(db)
}

func reserve(ctx context.Context, t *testing.T, repo *ReservationRepository, deviceID, userID string, start time.Time, d time.Duration) *domain.Reservation {
	res, err := repo.Create(ctx, &domain.Reservation{
		DeviceID: deviceID,
		UserID:   userID,
		StartAt:  start,
		EndAt:    start.Add(d),
		Status:   domain.StatusReserved,
	})
	require.NoError(t, err)
	return res
}

func TestDeviceRepository_UpsertIsIdempotent(t *testing.T) {
	devices, _, _ := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, devices.UpsertAll(ctx, []*domain.Device{
		{ID: "W1", Category: domain.CategoryWasher, Name: "Washer One"},
	}))

	list, err := devices.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "D1", list[0].ID)
	assert.Equal(t, "Washer One", list[1].Name)

	_, err = devices.GetByID(ctx, "X9")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestReservationRepository_RangeIsHalfOpen(t *testing.T) {
	_, repo, _ := newTestDB(t)
	ctx := context.Background()
	start := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	reserve(context.Background(), t, repo, "W1", "u1", start, time.Hour)

	touching, err := repo.ListByDeviceInRange(ctx, "W1", start.Add(time.Hour), start.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, touching)

	overlapping, err := repo.ListByDeviceInRange(ctx, "W1", start.Add(30*time.Minute), start.Add(90*time.Minute))
	require.NoError(t, err)
	require.Len(t, overlapping, 1)
	assert.Equal(t, "Washer 1", overlapping[0].DeviceName)
	assert.True(t, overlapping[0].StartAt.Equal(start))

	other, err := repo.ListByDeviceInRange(ctx, "D1", start, start.Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestReservationRepository_DuplicateStartIsConflict(t *testing.T) {
	_, repo, _ := newTestDB(t)
	start := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	reserve(context.Background(), t, repo, "W1", "u1", start, time.Hour)

	_, err := repo.Create(context.Background(), &domain.Reservation{
		DeviceID: "W1", UserID: "u2", StartAt: start, EndAt: start.Add(time.Hour), Status: domain.StatusReserved,
	})
	assert.ErrorIs(t, err, storage.ErrConflict)
}

func TestReservationRepository_ListByUserAndDelete(t *testing.T) {
	_, repo, _ := newTestDB(t)
	ctx := context.Background()
	base := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)

	late := reserve(context.Background(), t, repo, "D1", "u1", base.Add(4*time.Hour), 2*time.Hour)
	early := reserve(context.Background(), t, repo, "W1", "u1", base, time.Hour)
	reserve(context.Background(), t, repo, "W1", "u2", base.Add(time.Hour), time.Hour)

	list, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, early.ID, list[0].ID)
	assert.Equal(t, late.ID, list[1].ID)
	assert.Equal(t, domain.CategoryDryer, list[1].DeviceCategory)

	assert.ErrorIs(t, repo.DeleteOwned(ctx, early.ID, "u2"), storage.ErrNotFound)
	assert.ErrorIs(t, repo.DeleteOwned(ctx, 9999, "u1"), storage.ErrNotFound)
	require.NoError(t, repo.DeleteOwned(ctx, early.ID, "u1"))

	_, err = repo.GetByID(ctx, early.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestTxManager_RollbackOnError(t *testing.T) {
	_, repo, tx := newTestDB(t)
	ctx := context.Background()
	start := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	boom := errors.New("boom")

	err := tx.DoSerializable(ctx, func(ctx context.Context) error {
		if err := repo.LockDevice(ctx, "W1"); err != nil {
			return err
		}
		reserve(ctx, t, repo, "W1", "u1", start, time.Hour)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	list, err := repo.ListByDeviceInRange(ctx, "W1", start, start.Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestReservationRepository_LockDevice_Unknown(t *testing.T) {
	_, repo, _ := newTestDB(t)
	assert.ErrorIs(t, repo.LockDevice(context.Background(), "X9"), storage.ErrNotFound)
}
