package pgerr

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-LaundryService/internal/infra/storage"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected error
	}{
		{"exclusion violation", &pq.Error{Code: "23P01"}, storage.ErrConflict},
		{"serialization failure", &pq.Error{Code: "40001"}, storage.ErrSerialization},
		{"deadlock", &pq.Error{Code: "40P01"}, storage.ErrSerialization},
		{"unique violation", &pq.Error{Code: "23505"}, storage.ErrAlreadyExists},
		{"foreign key", &pq.Error{Code: "23503"}, storage.ErrNotFound},
		{"connection failure", &pq.Error{Code: "08006"}, storage.ErrUnavailable},
		{"admin shutdown", &pq.Error{Code: "57P01"}, storage.ErrUnavailable},
		{"wrapped pq error", fmt.Errorf("exec: %w", &pq.Error{Code: "23P01"}), storage.ErrConflict},
		{"bad conn", driver.ErrBadConn, storage.ErrUnavailable},
		{"net error", &net.OpError{Op: "dial", Err: errors.New("connection refused")}, storage.ErrUnavailable},
		{"syntax error", &pq.Error{Code: "42601"}, nil},
		{"plain error", errors.New("boom"), nil},
		{"nil", nil, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Classify(tc.err))
		})
	}
}

func TestWrap(t *testing.T) {
	fallback := errors.New("repo: exec")

	err := Wrap(&pq.Error{Code: "23P01"}, fallback, "Create")
	assert.ErrorIs(t, err, storage.ErrConflict)
	assert.NotErrorIs(t, err, fallback)

	err = Wrap(&pq.Error{Code: "40001"}, fallback, "ListByDeviceInRange")
	assert.ErrorIs(t, err, storage.ErrSerialization)
	assert.NotErrorIs(t, err, storage.ErrConflict)

	err = Wrap(errors.New("boom"), fallback, "Create")
	assert.ErrorIs(t, err, fallback)
}
