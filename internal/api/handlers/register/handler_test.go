package register

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-LaundryService/internal/service/auth"
	"github.com/m04kA/SMC-LaundryService/internal/service/auth/models"
	"github.com/m04kA/SMC-LaundryService/pkg/logger"
)

type stubAuth struct{ err error }

func (s stubAuth) Register(_ context.Context, req *models.CredentialsRequest) (*models.UserResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.UserResponse{ID: "u-1", Email: req.Email}, nil
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{"created", `{"email":"a@b.c","password":"longenough"}`, nil, http.StatusCreated},
		{"malformed", `{"email":`, nil, http.StatusBadRequest},
		{"invalid input", `{"email":"nope","password":"x"}`, auth.ErrInvalidInput, http.StatusBadRequest},
		{"email taken", `{"email":"a@b.c","password":"longenough"}`, auth.ErrEmailTaken, http.StatusConflict},
		{"internal", `{"email":"a@b.c","password":"longenough"}`, auth.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(tt.body))

			NewHandler(stubAuth{err: tt.err}, logger.NewNop()).Handle(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
