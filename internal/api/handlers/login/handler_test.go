package login

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LaundryService/internal/service/auth"
	"github.com/m04kA/SMC-LaundryService/internal/service/auth/models"
	"github.com/m04kA/SMC-LaundryService/pkg/logger"
)

type stubAuth struct {
	err error
}

func (s stubAuth) Login(_ context.Context, req *models.CredentialsRequest) (*models.TokenResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.TokenResponse{
		AccessToken: "token-for-" + req.Email,
		TokenType:   "Bearer",
		ExpiresAt:   time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC),
		UserID:      "u1",
	}, nil
}

func post(h *Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body)))
	return rec
}

func TestHandle_OK(t *testing.T) {
	rec := post(NewHandler(stubAuth{}, logger.NewNop()), `{"email":"a@b.c","password":"secret123"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "token-for-a@b.c", body.AccessToken)
	assert.Equal(t, "u1", body.UserID)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, post(NewHandler(stubAuth{}, logger.NewNop()), `not json`).Code)
	assert.Equal(t, http.StatusUnauthorized,
		post(NewHandler(stubAuth{err: auth.ErrInvalidCredentials}, logger.NewNop()), `{"email":"a@b.c","password":"x"}`).Code)
	assert.Equal(t, http.StatusServiceUnavailable,
		post(NewHandler(stubAuth{err: auth.ErrStoreUnavailable}, logger.NewNop()), `{"email":"a@b.c","password":"x"}`).Code)
}
