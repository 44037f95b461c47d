package get_availability

import "time"

// Request модель запроса на получение свободных слотов
type Request struct {
	DeviceID string     // ID устройства
	Date     *time.Time // Конкретная дата (опционально); без неё возвращается весь горизонт
}

// Response модель ответа: свободные слоты по дням горизонта
type Response struct {
	DeviceID        string
	DeviceName      string
	DeviceCategory  string
	DurationMinutes int
	Days            []Day // По возрастанию даты; дни без свободных слотов тоже присутствуют
}

// Day свободные слоты одной календарной даты
type Day struct {
	Date  time.Time // Полночь даты в часовом поясе политики
	Slots []Slot    // По возрастанию времени начала
}

// Slot свободное время начала
type Slot struct {
	Label   string // "HH:MM"
	StartAt time.Time
	EndAt   time.Time
}
