package domain

import "time"

// DeviceCategory тип устройства, от которого зависит длительность бронирования
type DeviceCategory string

const (
	CategoryWasher DeviceCategory = "washer"
	CategoryDryer  DeviceCategory = "dryer"
)

// IsValid returns true for known categories
func (c DeviceCategory) IsValid() bool {
	return c == CategoryWasher || c == CategoryDryer
}

// Device represents a bookable laundry machine
// Immutable after creation, owned by the device registry
type Device struct {
	ID        string
	Category  DeviceCategory
	Name      string
	CreatedAt time.Time
}
