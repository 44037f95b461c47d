package domain

import "time"

// ReservationStatus represents the status of a reservation
type ReservationStatus string

// Отмена моделируется удалением строки, поэтому в хранилище живут только reserved
const (
	StatusReserved  ReservationStatus = "reserved"
	StatusCancelled ReservationStatus = "cancelled"
)

// Reservation represents a booked [StartAt, EndAt) interval on a device
type Reservation struct {
	ID        int64
	DeviceID  string
	UserID    string
	StartAt   time.Time
	EndAt     time.Time
	Status    ReservationStatus
	CreatedAt time.Time

	// Denormalized at read time, not stored
	DeviceName     string
	DeviceCategory DeviceCategory
}

// IsActive returns true if the reservation still occupies its interval
func (r *Reservation) IsActive() bool {
	return r.Status != StatusCancelled
}

// IsOwnedBy returns true if the reservation belongs to the user
func (r *Reservation) IsOwnedBy(userID string) bool {
	return r.UserID == userID
}

// Duration returns the length of the reserved interval
func (r *Reservation) Duration() time.Duration {
	return r.EndAt.Sub(r.StartAt)
}
