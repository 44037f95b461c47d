package device

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	"github.com/m04kA/SMC-LaundryService/internal/infra/storage"
	"github.com/m04kA/SMC-LaundryService/internal/infra/storage/pgerr"
	"github.com/m04kA/SMC-LaundryService/pkg/dbmetrics"
	"github.com/m04kA/SMC-LaundryService/pkg/psqlbuilder"
)

// Repository реестр устройств в PostgreSQL
type Repository struct {
	db dbmetrics.DBExecutor
}

func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает устройство по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Device, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "category", "name", "created_at").
		From("devices").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var device domain.Device
	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&device.ID,
		&device.Category,
		&device.Name,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: device %s", storage.ErrNotFound, id)
	}
	if err != nil {
		return nil, pgerr.Wrap(err, ErrScanRow, "GetByID - scan device")
	}
	device.CreatedAt = createdAt.Time

	return &device, nil
}

// List возвращает все устройства, упорядоченные по ID
func (r *Repository) List(ctx context.Context) ([]*domain.Device, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "category", "name", "created_at").
		From("devices").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, pgerr.Wrap(err, ErrExecQuery, "List - execute query")
	}
	defer rows.Close()

	devices := make([]*domain.Device, 0)
	for rows.Next() {
		var device domain.Device
		var createdAt sql.NullTime
		if err := rows.Scan(&device.ID, &device.Category, &device.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		device.CreatedAt = createdAt.Time
		devices = append(devices, &device)
	}
	if err := rows.Err(); err != nil {
		return nil, pgerr.Wrap(err, ErrScanRow, "List - rows error")
	}

	return devices, nil
}

// UpsertAll заводит устройства из каталога одним запросом.
// Существующим устройствам обновляются имя и категория, бронирования не затрагиваются
func (r *Repository) UpsertAll(ctx context.Context, devices []*domain.Device) error {
	if len(devices) == 0 {
		return nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert("devices").Columns("id", "category", "name")
	for _, d := range devices {
		builder = builder.Values(d.ID, string(d.Category), d.Name)
	}

	query, args, err := builder.
		Suffix("ON CONFLICT (id) DO UPDATE SET category = EXCLUDED.category, name = EXCLUDED.name").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpsertAll - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return pgerr.Wrap(err, ErrExecQuery, "UpsertAll - execute insert")
	}

	return nil
}
