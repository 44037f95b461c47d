package devices

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	"github.com/m04kA/SMC-LaundryService/internal/infra/storage"
	"github.com/m04kA/SMC-LaundryService/internal/service/devices/models"
)

// Service реестр устройств: только чтение, устройства заводятся из каталога при старте
type Service struct {
	deviceRepo DeviceRepository
	policy     domain.BookingPolicy
	logger     Logger
}

func NewService(deviceRepo DeviceRepository, policy domain.BookingPolicy, logger Logger) *Service {
	return &Service{
		deviceRepo: deviceRepo,
		policy:     policy,
		logger:     logger,
	}
}

// List возвращает устройства; category фильтрует по категории, пустая строка - все
func (s *Service) List(ctx context.Context, category string) (*models.DeviceListResponse, error) {
	if category != "" && !domain.DeviceCategory(category).IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}

	devices, err := s.deviceRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, storeError("List", err)
	}

	resp := &models.DeviceListResponse{Devices: make([]models.DeviceResponse, 0, len(devices))}
	for _, d := range devices {
		if category != "" && string(d.Category) != category {
			continue
		}
		resp.Devices = append(resp.Devices, models.FromDomainDevice(d, s.policy))
	}

	return resp, nil
}

// GetByID возвращает устройство по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.DeviceResponse, error) {
	device, err := s.deviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("GetByID: device id=%s not found", id)
			return nil, ErrDeviceNotFound
		}
		s.logger.Error("GetByID: repository error for device id=%s: %v", id, err)
		return nil, storeError("GetByID", err)
	}

	resp := models.FromDomainDevice(device, s.policy)
	return &resp, nil
}

// Policy возвращает действующую политику бронирования
func (s *Service) Policy() domain.BookingPolicy {
	return s.policy
}

func storeError(op string, err error) error {
	if errors.Is(err, storage.ErrUnavailable) {
		return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
	}
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
