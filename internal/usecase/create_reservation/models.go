package create_reservation

import "time"

// Request модель запроса на бронирование устройства
type Request struct {
	UserID   string    // Непрозрачный ID пользователя из аутентификации
	DeviceID string    // ID устройства (например, "W1")
	StartAt  time.Time // Желаемое время начала
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID             int64
	DeviceID       string
	DeviceName     string
	DeviceCategory string
	UserID         string
	StartAt        time.Time // Время в часовом поясе политики
	EndAt          time.Time // StartAt + длительность категории
	Status         string
	CreatedAt      time.Time
}
