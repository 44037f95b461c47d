package models

import "github.com/m04kA/SMC-LaundryService/internal/domain"

// DeviceResponse ответ с данными устройства
type DeviceResponse struct {
	ID              string `json:"id"`
	Category        string `json:"category"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"durationMinutes"` // Длительность бронирования по текущей политике
}

// DeviceListResponse ответ со списком устройств
type DeviceListResponse struct {
	Devices []DeviceResponse `json:"devices"`
}

// FromDomainDevice конвертирует domain модель в DTO
func FromDomainDevice(d *domain.Device, policy domain.BookingPolicy) DeviceResponse {
	return DeviceResponse{
		ID:              d.ID,
		Category:        string(d.Category),
		Name:            d.Name,
		DurationMinutes: int(policy.Duration(d.Category).Minutes()),
	}
}
