package storage

import "errors"

// Общие ошибки хранилища, одинаковые для PostgreSQL и sqlite реализаций
var (
	// ErrNotFound запись не найдена
	ErrNotFound = errors.New("storage: not found")

	// ErrConflict запись конфликтует с существующей (пересечение интервалов)
	ErrConflict = errors.New("storage: conflict")

	// ErrAlreadyExists нарушено условие уникальности
	ErrAlreadyExists = errors.New("storage: already exists")

	// ErrSerialization транзакция прервана конкурентной (serialization failure, deadlock), её можно повторить целиком
	ErrSerialization = errors.New("storage: serialization failure")

	// ErrUnavailable хранилище недоступно, операцию можно повторить
	ErrUnavailable = errors.New("storage: unavailable")
)
