package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	createReservation "github.com/m04kA/SMC-LaundryService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	DeviceID  string `json:"deviceId"`
	StartTime string `json:"startTime"` // RFC 3339, "2024-06-10T08:00:00+03:00"
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID              int64  `json:"id"`
	DeviceID        string `json:"deviceId"`
	DeviceName      string `json:"deviceName"`
	DeviceCategory  string `json:"deviceCategory"`
	UserID          string `json:"userId"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	StartAt         string `json:"startAt"`
	EndAt           string `json:"endAt"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
	CreatedAt       string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(userID string) (*createReservation.Request, error) {
	startAt, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		UserID:   userID,
		DeviceID: r.DeviceID,
		StartAt:  startAt,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:              resp.ID,
		DeviceID:        resp.DeviceID,
		DeviceName:      resp.DeviceName,
		DeviceCategory:  resp.DeviceCategory,
		UserID:          resp.UserID,
		Date:            resp.StartAt.Format(domain.DateFormat),
		StartTime:       resp.StartAt.Format(domain.TimeFormat),
		EndTime:         resp.EndAt.Format(domain.TimeFormat),
		StartAt:         resp.StartAt.Format(time.RFC3339),
		EndAt:           resp.EndAt.Format(time.RFC3339),
		DurationMinutes: int(resp.EndAt.Sub(resp.StartAt).Minutes()),
		Status:          resp.Status,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
