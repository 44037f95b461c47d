package models

import (
	"time"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

// Request модели

// ListUserReservationsRequest запрос на получение бронирований пользователя
type ListUserReservationsRequest struct {
	UserID string `json:"userId"`
	// UpcomingOnly оставляет только бронирования, которые ещё не закончились
	UpcomingOnly bool `json:"upcomingOnly,omitempty"`
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID              int64  `json:"id"`
	DeviceID        string `json:"deviceId"`
	DeviceName      string `json:"deviceName"`
	DeviceCategory  string `json:"deviceCategory"`
	Date            string `json:"date"`      // "2024-06-10"
	StartTime       string `json:"startTime"` // "08:00"
	EndTime         string `json:"endTime"`   // "09:00"
	StartAt         string `json:"startAt"`   // RFC 3339
	EndAt           string `json:"endAt"`     // RFC 3339
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// ScheduleResponse занятые интервалы устройства без данных о пользователях
type ScheduleResponse struct {
	DeviceID  string             `json:"deviceId"`
	Intervals []IntervalResponse `json:"intervals"`
}

// IntervalResponse занятый полуинтервал [startAt, endAt)
type IntervalResponse struct {
	StartAt string `json:"startAt"`
	EndAt   string `json:"endAt"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO; времена выводятся в часовом поясе loc
func FromDomainReservation(r *domain.Reservation, loc *time.Location) *ReservationResponse {
	if r == nil {
		return nil
	}

	start := r.StartAt.In(loc)
	end := r.EndAt.In(loc)

	return &ReservationResponse{
		ID:              r.ID,
		DeviceID:        r.DeviceID,
		DeviceName:      r.DeviceName,
		DeviceCategory:  string(r.DeviceCategory),
		Date:            start.Format(domain.DateFormat),
		StartTime:       start.Format(domain.TimeFormat),
		EndTime:         end.Format(domain.TimeFormat),
		StartAt:         start.Format(time.RFC3339),
		EndAt:           end.Format(time.RFC3339),
		DurationMinutes: int(r.Duration().Minutes()),
		Status:          string(r.Status),
		CreatedAt:       r.CreatedAt,
	}
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation, loc *time.Location) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}

	for _, r := range reservations {
		if item := FromDomainReservation(r, loc); item != nil {
			resp.Reservations = append(resp.Reservations, *item)
		}
	}

	return resp
}

// FromDomainSchedule оставляет от бронирований только интервалы
func FromDomainSchedule(deviceID string, reservations []*domain.Reservation, loc *time.Location) *ScheduleResponse {
	resp := &ScheduleResponse{
		DeviceID:  deviceID,
		Intervals: make([]IntervalResponse, 0, len(reservations)),
	}

	for _, r := range reservations {
		if r == nil || !r.IsActive() {
			continue
		}
		resp.Intervals = append(resp.Intervals, IntervalResponse{
			StartAt: r.StartAt.In(loc).Format(time.RFC3339),
			EndAt:   r.EndAt.In(loc).Format(time.RFC3339),
		})
	}

	return resp
}
