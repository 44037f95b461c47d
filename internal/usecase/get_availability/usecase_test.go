package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	"github.com/m04kA/SMC-LaundryService/internal/infra/storage"
	"github.com/m04kA/SMC-LaundryService/pkg/logger"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type stubStore struct {
	devices      map[string]*domain.Device
	reservations []*domain.Reservation
	listErr      error
	lastFrom     time.Time
	lastTo       time.Time
}

func (s *stubStore) GetByID(_ context.Context, id string) (*domain.Device, error) {
	if d, ok := s.devices[id]; ok {
		return d, nil
	}
	return nil, storage.ErrNotFound
}

func (s *stubStore) ListByDeviceInRange(_ context.Context, deviceID string, from, to time.Time) ([]*domain.Reservation, error) {
	s.lastFrom, s.lastTo = from, to
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []*domain.Reservation
	for _, r := range s.reservations {
		if r.DeviceID == deviceID && domain.Overlaps(r.StartAt, r.EndAt, from, to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func at(day, hour, minute int) time.Time {
	return time.Date(2024, 6, day, hour, minute, 0, 0, time.UTC)
}

func newTestUseCase(now time.Time, reservations ...*domain.Reservation) (*UseCase, *stubStore) {
	store := &stubStore{
		devices: map[string]*domain.Device{
			"W1": {ID: "W1", Category: domain.CategoryWasher, Name: "Washer 1"},
			"D1": {ID: "D1", Category: domain.CategoryDryer, Name: "Dryer 1"},
		},
		reservations: reservations,
	}
	policy := domain.DefaultBookingPolicy()
	policy.Location = time.UTC

	uc := NewUseCase(store, store, policy, logger.NewNop())
	uc.timeProvider = fixedTime{now: now}
	return uc, store
}

func reservation(deviceID string, start time.Time, d time.Duration) *domain.Reservation {
	return &domain.Reservation{DeviceID: deviceID, StartAt: start, EndAt: start.Add(d), Status: domain.StatusReserved}
}

func labels(day Day) []string {
	out := make([]string, 0, len(day.Slots))
	for _, s := range day.Slots {
		out = append(out, s.Label)
	}
	return out
}

func TestExecute_WasherScenarioDate(t *testing.T) {
	uc, _ := newTestUseCase(at(10, 0, 0),
		reservation("W1", at(10, 8, 0), time.Hour),
		reservation("W1", at(10, 9, 0), time.Hour),
	)
	date := at(10, 0, 0)

	resp, err := uc.Execute(context.Background(), &Request{DeviceID: "W1", Date: &date})

	require.NoError(t, err)
	require.Len(t, resp.Days, 1)
	got := labels(resp.Days[0])
	assert.NotContains(t, got, "08:00")
	assert.NotContains(t, got, "09:00")
	assert.Contains(t, got, "10:00")
	assert.Equal(t, "06:00", got[0])
	assert.Equal(t, "23:00", got[len(got)-1])
	assert.Len(t, got, 16)
	assert.Equal(t, 60, resp.DurationMinutes)
}

func TestExecute_FullHorizon(t *testing.T) {
	uc, store := newTestUseCase(at(10, 13, 0))

	resp, err := uc.Execute(context.Background(), &Request{DeviceID: "W1"})

	require.NoError(t, err)
	require.Len(t, resp.Days, 7)
	assert.True(t, resp.Days[0].Date.Equal(at(10, 0, 0)))
	assert.True(t, resp.Days[6].Date.Equal(at(16, 0, 0)))
	assert.Len(t, resp.Days[0].Slots, 11)
	assert.Len(t, resp.Days[1].Slots, 18)

	assert.True(t, store.lastFrom.Equal(at(10, 0, 0)))
	assert.True(t, store.lastTo.Equal(at(17, 1, 0)))
}

func TestExecute_PastSlots(t *testing.T) {
	tests := []struct {
		name  string
		now   time.Time
		first string
	}{
		{name: "now on grid boundary is eligible", now: at(10, 10, 0), first: "10:00"},
		{name: "partial hour rounds up", now: at(10, 10, 20), first: "11:00"},
		{name: "before blackout end", now: at(10, 2, 0), first: "06:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newTestUseCase(tt.now)
			date := at(10, 0, 0)

			resp, err := uc.Execute(context.Background(), &Request{DeviceID: "W1", Date: &date})

			require.NoError(t, err)
			require.NotEmpty(t, resp.Days[0].Slots)
			assert.Equal(t, tt.first, resp.Days[0].Slots[0].Label)
		})
	}
}

func TestExecute_DryerUsesTwoHourDuration(t *testing.T) {
	uc, _ := newTestUseCase(at(10, 0, 0), reservation("D1", at(11, 10, 0), 2*time.Hour))
	date := at(11, 0, 0)

	resp, err := uc.Execute(context.Background(), &Request{DeviceID: "D1", Date: &date})

	require.NoError(t, err)
	got := labels(resp.Days[0])
	assert.Contains(t, got, "08:00")
	assert.NotContains(t, got, "09:00")
	assert.NotContains(t, got, "10:00")
	assert.NotContains(t, got, "11:00")
	assert.Contains(t, got, "12:00")
	assert.Equal(t, 120, resp.DurationMinutes)
}

func TestExecute_FixedModeHalfHourGrid(t *testing.T) {
	uc, _ := newTestUseCase(at(10, 0, 0), reservation("W1", at(10, 8, 0), 90*time.Minute))
	uc.policy.Mode = domain.DurationFixed
	date := at(10, 0, 0)

	resp, err := uc.Execute(context.Background(), &Request{DeviceID: "W1", Date: &date})

	require.NoError(t, err)
	got := labels(resp.Days[0])
	assert.Contains(t, got, "06:30")
	assert.Contains(t, got, "06:00")
	assert.NotContains(t, got, "07:00") // 07:00-08:30 пересекается с 08:00
	assert.NotContains(t, got, "09:00")
	assert.Contains(t, got, "09:30")
	assert.Equal(t, 90, resp.DurationMinutes)
}

func TestExecute_CancelledReservationsDoNotBlock(t *testing.T) {
	cancelled := reservation("W1", at(10, 8, 0), time.Hour)
	cancelled.Status = domain.StatusCancelled
	uc, _ := newTestUseCase(at(10, 0, 0), cancelled)
	date := at(10, 0, 0)

	resp, err := uc.Execute(context.Background(), &Request{DeviceID: "W1", Date: &date})

	require.NoError(t, err)
	assert.Contains(t, labels(resp.Days[0]), "08:00")
}

func TestExecute_Errors(t *testing.T) {
	uc, store := newTestUseCase(at(10, 0, 0))
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{DeviceID: "X9"})
	assert.ErrorIs(t, err, ErrDeviceNotFound)

	_, err = uc.Execute(ctx, &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	outside := at(17, 0, 0)
	_, err = uc.Execute(ctx, &Request{DeviceID: "W1", Date: &outside})
	assert.ErrorIs(t, err, ErrDateOutOfHorizon)

	yesterday := at(9, 0, 0)
	_, err = uc.Execute(ctx, &Request{DeviceID: "W1", Date: &yesterday})
	assert.ErrorIs(t, err, ErrDateOutOfHorizon)

	store.listErr = storage.ErrUnavailable
	_, err = uc.Execute(ctx, &Request{DeviceID: "W1"})
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestExecute_LocalTimezone(t *testing.T) {
	seoul, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)

	// 2024-06-10 00:00 UTC = 09:00 в Сеуле
	uc, _ := newTestUseCase(at(10, 0, 0))
	uc.policy.Location = seoul

	resp, err := uc.Execute(context.Background(), &Request{DeviceID: "W1"})

	require.NoError(t, err)
	first := resp.Days[0]
	assert.Equal(t, seoul, first.Date.Location())
	assert.Equal(t, "09:00", first.Slots[0].Label)
	assert.Len(t, first.Slots, 15)
}
