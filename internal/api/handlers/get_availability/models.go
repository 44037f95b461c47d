package get_availability

import (
	"time"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	getAvailability "github.com/m04kA/SMC-LaundryService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	DeviceID        string        `json:"deviceId"`
	DeviceName      string        `json:"deviceName"`
	DeviceCategory  string        `json:"deviceCategory"`
	DurationMinutes int           `json:"durationMinutes"`
	Days            []DayResponse `json:"days"`
}

// DayResponse свободные слоты одной даты
type DayResponse struct {
	Date  string         `json:"date"` // "2024-06-10"
	Slots []SlotResponse `json:"slots"`
}

// SlotResponse свободное время начала
type SlotResponse struct {
	StartTime string `json:"startTime"` // "08:00"
	StartAt   string `json:"startAt"`   // RFC 3339
	EndAt     string `json:"endAt"`
}

// ToUseCaseRequest формирует запрос use case; date пустая строка означает весь горизонт
func ToUseCaseRequest(deviceID, date string) (*getAvailability.Request, error) {
	req := &getAvailability.Request{DeviceID: deviceID}
	if date == "" {
		return req, nil
	}

	parsed, err := time.Parse(domain.DateFormat, date)
	if err != nil {
		return nil, err
	}
	req.Date = &parsed

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		DeviceID:        resp.DeviceID,
		DeviceName:      resp.DeviceName,
		DeviceCategory:  resp.DeviceCategory,
		DurationMinutes: resp.DurationMinutes,
		Days:            make([]DayResponse, 0, len(resp.Days)),
	}

	for _, day := range resp.Days {
		d := DayResponse{
			Date:  day.Date.Format(domain.DateFormat),
			Slots: make([]SlotResponse, 0, len(day.Slots)),
		}
		for _, slot := range day.Slots {
			d.Slots = append(d.Slots, SlotResponse{
				StartTime: slot.Label,
				StartAt:   slot.StartAt.Format(time.RFC3339),
				EndAt:     slot.EndAt.Format(time.RFC3339),
			})
		}
		out.Days = append(out.Days, d)
	}

	return out
}

func slotCount(resp *getAvailability.Response) int {
	n := 0
	for _, day := range resp.Days {
		n += len(day.Slots)
	}
	return n
}
