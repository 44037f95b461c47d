package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	"github.com/m04kA/SMC-LaundryService/internal/infra/storage"
	"github.com/m04kA/SMC-LaundryService/internal/infra/storage/pgerr"
	"github.com/m04kA/SMC-LaundryService/pkg/dbmetrics"
	"github.com/m04kA/SMC-LaundryService/pkg/psqlbuilder"
)

// Колонки бронирования вместе с денормализованными полями устройства
var reservationColumns = []string{
	"r.id",
	"r.device_id",
	"r.user_id",
	"r.start_at",
	"r.end_at",
	"r.status",
	"r.created_at",
	"d.name",
	"d.category",
}

// Repository репозиторий для работы с бронированиями в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// LockDevice блокирует строку устройства до конца транзакции (SELECT ... FOR UPDATE).
// Все бронирования одного устройства проходят через эту блокировку, поэтому проверка
// пересечений и вставка выполняются атомарно относительно других запросов на то же устройство.
// Вне транзакции блокировка бессмысленна и возвращается ошибка.
func (r *Repository) LockDevice(ctx context.Context, deviceID string) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return fmt.Errorf("%w: LockDevice - must be called inside a transaction", ErrExecQuery)
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From("devices").
		Where(squirrel.Eq{"id": deviceID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: LockDevice - build select query: %v", ErrBuildQuery, err)
	}

	var id string
	err = executor.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: device %s", storage.ErrNotFound, deviceID)
	}
	if err != nil {
		return pgerr.Wrap(err, ErrExecQuery, "LockDevice - lock device row")
	}

	return nil
}

// ListByDeviceInRange возвращает активные бронирования устройства, пересекающиеся с [from, to),
// отсортированные по времени начала
func (r *Repository) ListByDeviceInRange(ctx context.Context, deviceID string, from, to time.Time) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations r").
		Join("devices d ON d.id = r.device_id").
		Where(squirrel.Eq{"r.device_id": deviceID}).
		Where(squirrel.Eq{"r.status": domain.StatusReserved}).
		// Тот же предикат, что и domain.Overlaps: start < to AND from < end
		Where(squirrel.Lt{"r.start_at": to}).
		Where(squirrel.Gt{"r.end_at": from}).
		OrderBy("r.start_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDeviceInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, pgerr.Wrap(err, ErrExecQuery, "ListByDeviceInRange - execute query")
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// Create сохраняет новое бронирование
// При нарушении exclusion constraint (пересечение интервалов) возвращает storage.ErrConflict
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"device_id",
			"user_id",
			"start_at",
			"end_at",
			"status",
		).
		Values(
			reservation.DeviceID,
			reservation.UserID,
			reservation.StartAt.UTC(),
			reservation.EndAt.UTC(),
			reservation.Status,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&createdAt,
	)
	if err != nil {
		return nil, pgerr.Wrap(err, ErrExecQuery, "Create - execute insert")
	}

	reservation.CreatedAt = createdAt.Time

	return reservation, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations r").
		Join("devices d ON d.id = r.device_id").
		Where(squirrel.Eq{"r.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	reservation, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: reservation %d", storage.ErrNotFound, id)
	}
	if err != nil {
		return nil, pgerr.Wrap(err, ErrScanRow, "GetByID - scan reservation")
	}

	return reservation, nil
}

// ListByUser получает бронирования пользователя по возрастанию времени начала
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations r").
		Join("devices d ON d.id = r.device_id").
		Where(squirrel.Eq{"r.user_id": userID}).
		OrderBy("r.start_at ASC", "r.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, pgerr.Wrap(err, ErrExecQuery, "ListByUser - execute query")
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// DeleteOwned удаляет бронирование, только если оно принадлежит пользователю.
// Отсутствующее и чужое бронирование неразличимы: в обоих случаях storage.ErrNotFound
func (r *Repository) DeleteOwned(ctx context.Context, id int64, userID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservations").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteOwned - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return pgerr.Wrap(err, ErrExecQuery, "DeleteOwned - execute delete")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteOwned - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return storage.ErrNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var reservation domain.Reservation
	var createdAt sql.NullTime

	err := row.Scan(
		&reservation.ID,
		&reservation.DeviceID,
		&reservation.UserID,
		&reservation.StartAt,
		&reservation.EndAt,
		&reservation.Status,
		&createdAt,
		&reservation.DeviceName,
		&reservation.DeviceCategory,
	)
	if err != nil {
		return nil, err
	}

	reservation.CreatedAt = createdAt.Time
	return &reservation, nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func (r *Repository) scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, pgerr.Wrap(err, ErrScanRow, "scanReservations - rows error")
	}

	return reservations, nil
}
