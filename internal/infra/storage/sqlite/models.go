package sqlite

import (
	"time"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

// Device строка таблицы devices
type Device struct {
	ID        string `gorm:"primaryKey;size:32"`
	Category  string `gorm:"size:16;not null"`
	Name      string `gorm:"size:128;not null"`
	CreatedAt time.Time
}

// Reservation строка таблицы reservations.
// Времена хранятся в UTC: sqlite сравнивает их как строки
type Reservation struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	DeviceID  string    `gorm:"size:32;not null;uniqueIndex:idx_reservations_device_start,priority:1"`
	UserID    string    `gorm:"size:64;not null;index"`
	StartAt   time.Time `gorm:"not null;uniqueIndex:idx_reservations_device_start,priority:2"`
	EndAt     time.Time `gorm:"not null"`
	Status    string    `gorm:"size:16;not null;default:reserved"`
	CreatedAt time.Time

	Device Device `gorm:"foreignKey:DeviceID;constraint:OnDelete:CASCADE"`
}

// User строка таблицы users
type User struct {
	ID             string  `gorm:"primaryKey;size:64"`
	Email          string  `gorm:"size:255;not null;uniqueIndex"`
	PasswordHash   string  `gorm:"size:255"`
	LegacyPassword *string `gorm:"size:255"`
	CreatedAt      time.Time
}

func (d *Device) toDomain() *domain.Device {
	return &domain.Device{
		ID:        d.ID,
		Category:  domain.DeviceCategory(d.Category),
		Name:      d.Name,
		CreatedAt: d.CreatedAt,
	}
}

func (r *Reservation) toDomain() *domain.Reservation {
	return &domain.Reservation{
		ID:             r.ID,
		DeviceID:       r.DeviceID,
		UserID:         r.UserID,
		StartAt:        r.StartAt.UTC(),
		EndAt:          r.EndAt.UTC(),
		Status:         domain.ReservationStatus(r.Status),
		CreatedAt:      r.CreatedAt,
		DeviceName:     r.Device.Name,
		DeviceCategory: domain.DeviceCategory(r.Device.Category),
	}
}

func (u *User) toDomain() *domain.User {
	return &domain.User{
		ID:             u.ID,
		Email:          u.Email,
		PasswordHash:   u.PasswordHash,
		LegacyPassword: u.LegacyPassword,
		CreatedAt:      u.CreatedAt,
	}
}
