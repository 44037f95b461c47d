package get_availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getAvailability "github.com/m04kA/SMC-LaundryService/internal/usecase/get_availability"
	"github.com/m04kA/SMC-LaundryService/pkg/logger"
)

type stubUseCase struct {
	got  *getAvailability.Request
	resp *getAvailability.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *getAvailability.Request) (*getAvailability.Response, error) {
	s.got = req
	return s.resp, s.err
}

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/devices/{deviceId}/availability", h.Handle).Methods(http.MethodGet)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_WithDate(t *testing.T) {
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	slot := day.Add(10 * time.Hour)
	uc := &stubUseCase{resp: &getAvailability.Response{
		DeviceID:        "W1",
		DeviceName:      "Washer 1",
		DeviceCategory:  "washer",
		DurationMinutes: 60,
		Days: []getAvailability.Day{{
			Date:  day,
			Slots: []getAvailability.Slot{{Label: "10:00", StartAt: slot, EndAt: slot.Add(time.Hour)}},
		}},
	}}

	rec := serve(NewHandler(uc, logger.NewNop()), "/api/v1/devices/W1/availability?date=2024-06-10")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "W1", uc.got.DeviceID)
	require.NotNil(t, uc.got.Date)
	assert.Equal(t, "2024-06-10", uc.got.Date.Format("2006-01-02"))

	var body AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Days, 1)
	assert.Equal(t, "2024-06-10", body.Days[0].Date)
	require.Len(t, body.Days[0].Slots, 1)
	assert.Equal(t, "10:00", body.Days[0].Slots[0].StartTime)
}

func TestHandle_WholeHorizon(t *testing.T) {
	uc := &stubUseCase{resp: &getAvailability.Response{DeviceID: "D1"}}

	rec := serve(NewHandler(uc, logger.NewNop()), "/api/v1/devices/D1/availability")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, uc.got.Date)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		err        error
		wantStatus int
	}{
		{"bad date", "/api/v1/devices/W1/availability?date=10-06-2024", nil, http.StatusBadRequest},
		{"unknown device", "/api/v1/devices/X1/availability", getAvailability.ErrDeviceNotFound, http.StatusNotFound},
		{"out of horizon", "/api/v1/devices/W1/availability?date=2030-01-01", getAvailability.ErrDateOutOfHorizon, http.StatusBadRequest},
		{"store down", "/api/v1/devices/W1/availability", getAvailability.ErrStoreUnavailable, http.StatusServiceUnavailable},
		{"internal", "/api/v1/devices/W1/availability", getAvailability.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(NewHandler(&stubUseCase{err: tt.err}, logger.NewNop()), tt.target)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
