package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondPolicyViolation(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondPolicyViolation(rec, "blackout", "нельзя начинать между 00:00 и 06:00")

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, CodePolicyViolation, body.Code)
	assert.Equal(t, "blackout", body.Rule)
}

func TestRespondError_Codes(t *testing.T) {
	tests := []struct {
		status int
		code   string
	}{
		{http.StatusBadRequest, CodeInvalidRequest},
		{http.StatusNotFound, CodeNotFound},
		{http.StatusConflict, CodeConflict},
		{http.StatusServiceUnavailable, CodeStoreUnavailable},
		{http.StatusTooManyRequests, CodeTooManyRequests},
		{http.StatusTeapot, CodeInternal},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		RespondError(rec, tt.status, "x")

		var body ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, tt.code, body.Code, "status %d", tt.status)
		assert.Empty(t, body.Rule)
	}
}

func TestRespondUnavailable_RetryAfter(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondUnavailable(rec, "хранилище недоступно")
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		DeviceID string `json:"deviceId"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"deviceId":"W1"}`))
	require.NoError(t, DecodeJSON(r, &v))
	assert.Equal(t, "W1", v.DeviceID)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"deviceId":"W1","extra":1}`))
	assert.Error(t, DecodeJSON(r, &v))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"deviceId":"W1"}{}`))
	assert.Error(t, DecodeJSON(r, &v))
}
