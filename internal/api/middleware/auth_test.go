package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LaundryService/pkg/jwtauth"
)

func echoUser(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserID(r.Context())
		require.True(t, ok)
		_, _ = w.Write([]byte(userID))
	})
}

func TestAuth(t *testing.T) {
	tokens, err := jwtauth.NewManager("secret", time.Hour, "laundry")
	require.NoError(t, err)
	valid, _, err := tokens.Issue("u1", time.Now())
	require.NoError(t, err)

	tests := []struct {
		name        string
		trustHeader bool
		headers     map[string]string
		wantStatus  int
		wantUser    string
	}{
		{
			name:       "valid bearer token",
			headers:    map[string]string{"Authorization": "Bearer " + valid},
			wantStatus: http.StatusOK,
			wantUser:   "u1",
		},
		{
			name:       "invalid bearer token",
			headers:    map[string]string{"Authorization": "Bearer garbage"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:        "trusted header",
			trustHeader: true,
			headers:     map[string]string{UserIDHeader: "u2"},
			wantStatus:  http.StatusOK,
			wantUser:    "u2",
		},
		{
			name:       "header ignored when not trusted",
			headers:    map[string]string{UserIDHeader: "u2"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:        "token wins over header",
			trustHeader: true,
			headers:     map[string]string{"Authorization": "Bearer " + valid, UserIDHeader: "u2"},
			wantStatus:  http.StatusOK,
			wantUser:    "u1",
		},
		{
			name:       "no credentials",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/me/reservations", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()

			Auth(tokens, tt.trustHeader)(echoUser(t)).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantUser != "" {
				assert.Equal(t, tt.wantUser, rec.Body.String())
			}
		})
	}
}

func TestGetUserID_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := GetUserID(req.Context())
	assert.False(t, ok)

	_, ok = GetUserID(WithUserID(req.Context(), ""))
	assert.False(t, ok)
}
