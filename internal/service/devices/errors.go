package devices

import "errors"

var (
	// ErrDeviceNotFound возвращается, когда устройство не найдено
	ErrDeviceNotFound = errors.New("device not found")

	// ErrInvalidCategory возвращается при фильтре по неизвестной категории
	ErrInvalidCategory = errors.New("invalid device category")

	// ErrStoreUnavailable возвращается, когда хранилище недоступно
	ErrStoreUnavailable = errors.New("devices: store unavailable")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("devices: internal error")
)
