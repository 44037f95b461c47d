package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	"github.com/m04kA/SMC-LaundryService/internal/infra/storage"
	"github.com/m04kA/SMC-LaundryService/internal/service/reservations/models"
	"github.com/m04kA/SMC-LaundryService/pkg/logger"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type memoryRepo struct {
	reservations map[int64]*domain.Reservation
	devices      map[string]*domain.Device
	err          error
}

func (m *memoryRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	if m.err != nil {
		return nil, m.err
	}
	if r, ok := m.reservations[id]; ok {
		return r, nil
	}
	return nil, storage.ErrNotFound
}

func (m *memoryRepo) ListByUser(_ context.Context, userID string) ([]*domain.Reservation, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Reservation
	for _, r := range m.reservations {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memoryRepo) ListByDeviceInRange(_ context.Context, deviceID string, from, to time.Time) ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	for _, r := range m.reservations {
		if r.DeviceID == deviceID && domain.Overlaps(r.StartAt, r.EndAt, from, to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memoryRepo) DeleteOwned(_ context.Context, id int64, userID string) error {
	if m.err != nil {
		return m.err
	}
	r, ok := m.reservations[id]
	if !ok || r.UserID != userID {
		return storage.ErrNotFound
	}
	delete(m.reservations, id)
	return nil
}

type deviceRepo struct{ devices map[string]*domain.Device }

func (d deviceRepo) GetByID(_ context.Context, id string) (*domain.Device, error) {
	if dev, ok := d.devices[id]; ok {
		return dev, nil
	}
	return nil, storage.ErrNotFound
}

func at(day, hour int) time.Time {
	return time.Date(2024, 6, day, hour, 0, 0, 0, time.UTC)
}

func newTestService() (*Service, *memoryRepo) {
	repo := &memoryRepo{reservations: map[int64]*domain.Reservation{
		1: {ID: 1, DeviceID: "W1", UserID: "u1", StartAt: at(11, 8), EndAt: at(11, 9), Status: domain.StatusReserved,
			DeviceName: "Washer 1", DeviceCategory: domain.CategoryWasher},
		2: {ID: 2, DeviceID: "D1", UserID: "u1", StartAt: at(10, 14), EndAt: at(10, 16), Status: domain.StatusReserved,
			DeviceName: "Dryer 1", DeviceCategory: domain.CategoryDryer},
		3: {ID: 3, DeviceID: "W1", UserID: "u2", StartAt: at(10, 9), EndAt: at(10, 10), Status: domain.StatusReserved,
			DeviceName: "Washer 1", DeviceCategory: domain.CategoryWasher},
		4: {ID: 4, DeviceID: "W1", UserID: "u1", StartAt: at(9, 9), EndAt: at(9, 10), Status: domain.StatusReserved,
			DeviceName: "Washer 1", DeviceCategory: domain.CategoryWasher},
	}}
	devices := deviceRepo{devices: map[string]*domain.Device{
		"W1": {ID: "W1", Category: domain.CategoryWasher, Name: "Washer 1"},
	}}

	policy := domain.DefaultBookingPolicy()
	policy.Location = time.UTC

	svc := NewService(repo, devices, policy, logger.NewNop())
	svc.timeProvider = fixedTime{now: at(10, 7)}
	return svc, repo
}

func TestService_ListForUser_SortedAndEnriched(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.ListForUser(context.Background(), &models.ListUserReservationsRequest{UserID: "u1"})

	require.NoError(t, err)
	require.Len(t, resp.Reservations, 3)
	assert.Equal(t, int64(4), resp.Reservations[0].ID)
	assert.Equal(t, int64(2), resp.Reservations[1].ID)
	assert.Equal(t, int64(1), resp.Reservations[2].ID)
	assert.Equal(t, "Dryer 1", resp.Reservations[1].DeviceName)
	assert.Equal(t, "dryer", resp.Reservations[1].DeviceCategory)
	assert.Equal(t, "14:00", resp.Reservations[1].StartTime)
	assert.Equal(t, "16:00", resp.Reservations[1].EndTime)
	assert.Equal(t, 120, resp.Reservations[1].DurationMinutes)
}

func TestService_ListForUser_UpcomingOnly(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.ListForUser(context.Background(), &models.ListUserReservationsRequest{UserID: "u1", UpcomingOnly: true})

	require.NoError(t, err)
	require.Len(t, resp.Reservations, 2)
	assert.Equal(t, int64(2), resp.Reservations[0].ID)
}

func TestService_ListForUser_Empty(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.ListForUser(context.Background(), &models.ListUserReservationsRequest{UserID: "nobody"})

	require.NoError(t, err)
	assert.NotNil(t, resp.Reservations)
	assert.Empty(t, resp.Reservations)
}

func TestService_Cancel_NotOwnedLooksLikeNotFound(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	errForeign := svc.Cancel(ctx, 3, "u1")
	errMissing := svc.Cancel(ctx, 999, "u1")

	assert.ErrorIs(t, errForeign, ErrReservationNotFound)
	assert.ErrorIs(t, errMissing, ErrReservationNotFound)
	assert.Equal(t, errMissing.Error(), errForeign.Error())
	assert.Contains(t, repo.reservations, int64(3))

	require.NoError(t, svc.Cancel(ctx, 3, "u2"))
	assert.NotContains(t, repo.reservations, int64(3))
}

func TestService_GetByID_Ownership(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	resp, err := svc.GetByID(ctx, 1, "u1")
	require.NoError(t, err)
	assert.Equal(t, "W1", resp.DeviceID)
	assert.Equal(t, "2024-06-11", resp.Date)

	_, err = svc.GetByID(ctx, 1, "u2")
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestService_DeviceSchedule(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	resp, err := svc.DeviceSchedule(ctx, "W1")
	require.NoError(t, err)
	// бронирование id=4 (вчера) вне окна
	assert.Len(t, resp.Intervals, 2)

	_, err = svc.DeviceSchedule(ctx, "X9")
	assert.ErrorIs(t, err, ErrDeviceNotFound)
}

func TestService_StoreUnavailable(t *testing.T) {
	svc, repo := newTestService()
	repo.err = storage.ErrUnavailable

	err := svc.Cancel(context.Background(), 1, "u1")
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	_, err = svc.ListForUser(context.Background(), &models.ListUserReservationsRequest{UserID: "u1"})
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
