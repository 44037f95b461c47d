package pgerr

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-LaundryService/internal/infra/storage"
)

// SQLSTATE коды, которые различает сервис
const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeExclusionViolation   = "23P01"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

// Classify сопоставляет ошибку драйвера с общей ошибкой хранилища
// Возвращает nil, если ошибка не относится ни к одному классу
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		code := string(pqErr.Code)
		switch {
		case code == codeExclusionViolation:
			return storage.ErrConflict
		case code == codeSerializationFailure, code == codeDeadlockDetected:
			return storage.ErrSerialization
		case code == codeUniqueViolation:
			return storage.ErrAlreadyExists
		case code == codeForeignKeyViolation:
			return storage.ErrNotFound
		// 08xxx connection exception, 57P0x admin/crash shutdown
		case strings.HasPrefix(code, "08"), strings.HasPrefix(code, "57P"):
			return storage.ErrUnavailable
		}
		return nil
	}

	if errors.Is(err, driver.ErrBadConn) {
		return storage.ErrUnavailable
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return storage.ErrUnavailable
	}

	return nil
}

// Wrap оборачивает ошибку общей ошибкой хранилища, если удалось её классифицировать,
// иначе fallback-ошибкой репозитория
func Wrap(err error, fallback error, op string) error {
	if class := Classify(err); class != nil {
		return fmt.Errorf("%w: %s: %v", class, op, err)
	}
	return fmt.Errorf("%w: %s: %v", fallback, op, err)
}
