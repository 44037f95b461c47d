package sqlite

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

// DeviceRepository реестр устройств в sqlite
type DeviceRepository struct {
	db *gorm.DB
}

func NewDeviceRepository(db *gorm.DB) *DeviceRepository {
	return &DeviceRepository{db: db}
}

func (r *DeviceRepository) GetByID(ctx context.Context, id string) (*domain.Device, error) {
	var row Device
	if err := conn(ctx, r.db).First(&row, "id = ?", id).Error; err != nil {
		return nil, wrap(err, "GetByID")
	}
	return row.toDomain(), nil
}

func (r *DeviceRepository) List(ctx context.Context) ([]*domain.Device, error) {
	var rows []Device
	if err := conn(ctx, r.db).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, wrap(err, "List")
	}

	devices := make([]*domain.Device, 0, len(rows))
	for i := range rows {
		devices = append(devices, rows[i].toDomain())
	}
	return devices, nil
}

func (r *DeviceRepository) UpsertAll(ctx context.Context, devices []*domain.Device) error {
	if len(devices) == 0 {
		return nil
	}

	rows := make([]Device, 0, len(devices))
	for _, d := range devices {
		rows = append(rows, Device{ID: d.ID, Category: string(d.Category), Name: d.Name})
	}

	err := conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"category", "name"}),
	}).Create(&rows).Error
	if err != nil {
		return wrap(err, "UpsertAll")
	}
	return nil
}
