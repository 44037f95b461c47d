package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	"github.com/m04kA/SMC-LaundryService/internal/infra/storage"
)

// ReservationRepository бронирования в sqlite
type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// LockDevice проверяет, что устройство существует.
// Взаимное исключение обеспечивает TxManager, построчных блокировок в sqlite нет
func (r *ReservationRepository) LockDevice(ctx context.Context, deviceID string) error {
	var count int64
	if err := conn(ctx, r.db).Model(&Device{}).Where("id = ?", deviceID).Count(&count).Error; err != nil {
		return wrap(err, "LockDevice")
	}
	if count == 0 {
		return fmt.Errorf("%w: device %s", storage.ErrNotFound, deviceID)
	}
	return nil
}

func (r *ReservationRepository) ListByDeviceInRange(ctx context.Context, deviceID string, from, to time.Time) ([]*domain.Reservation, error) {
	var rows []Reservation
	err := conn(ctx, r.db).
		Preload("Device").
		Where("device_id = ? AND status = ?", deviceID, string(domain.StatusReserved)).
		Where("start_at < ? AND end_at > ?", to.UTC(), from.UTC()).
		Order("start_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, wrap(err, "ListByDeviceInRange")
	}
	return toDomainList(rows), nil
}

// Create сохраняет бронирование; повтор (device_id, start_at) возвращает storage.ErrConflict
func (r *ReservationRepository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	row := Reservation{
		DeviceID: reservation.DeviceID,
		UserID:   reservation.UserID,
		StartAt:  reservation.StartAt.UTC(),
		EndAt:    reservation.EndAt.UTC(),
		Status:   string(reservation.Status),
	}

	if err := conn(ctx, r.db).Omit(clause.Associations).Create(&row).Error; err != nil {
		if errors.Is(classify(err), storage.ErrAlreadyExists) {
			return nil, fmt.Errorf("%w: Create: %v", storage.ErrConflict, err)
		}
		return nil, wrap(err, "Create")
	}

	reservation.ID = row.ID
	reservation.CreatedAt = row.CreatedAt
	return reservation, nil
}

func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	var row Reservation
	if err := conn(ctx, r.db).Preload("Device").First(&row, "id = ?", id).Error; err != nil {
		return nil, wrap(err, "GetByID")
	}
	return row.toDomain(), nil
}

func (r *ReservationRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Reservation, error) {
	var rows []Reservation
	err := conn(ctx, r.db).
		Preload("Device").
		Where("user_id = ?", userID).
		Order("start_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, wrap(err, "ListByUser")
	}
	return toDomainList(rows), nil
}

func (r *ReservationRepository) DeleteOwned(ctx context.Context, id int64, userID string) error {
	result := conn(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).Delete(&Reservation{})
	if result.Error != nil {
		return wrap(result.Error, "DeleteOwned")
	}
	if result.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func toDomainList(rows []Reservation) []*domain.Reservation {
	reservations := make([]*domain.Reservation, 0, len(rows))
	for i := range rows {
		reservations = append(reservations, rows[i].toDomain())
	}
	return reservations
}
