package reservations

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	"github.com/m04kA/SMC-LaundryService/internal/infra/storage"
	"github.com/m04kA/SMC-LaundryService/internal/service/reservations/models"
)

// Service сервис жизненного цикла бронирований: просмотр, отмена, расписание устройства
type Service struct {
	reservationRepo ReservationRepository
	deviceRepo      DeviceRepository
	policy          domain.BookingPolicy
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	deviceRepo DeviceRepository,
	policy domain.BookingPolicy,
	logger Logger,
) *Service {
	loc := policy.Location
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		reservationRepo: reservationRepo,
		deviceRepo:      deviceRepo,
		policy:          policy,
		location:        loc,
		timeProvider:    realTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
// Чужое бронирование неотличимо от несуществующего
func (s *Service) GetByID(ctx context.Context, id int64, userID string) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%s", id, userID)

	if id <= 0 || strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: reservation id and user are required", ErrInvalidInput)
	}

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, s.storeError("GetByID", err)
	}

	if !reservation.IsOwnedBy(userID) {
		s.logger.Warn("GetByID: reservation id=%d is not owned by user=%s", id, userID)
		return nil, ErrReservationNotFound
	}

	return models.FromDomainReservation(reservation, s.location), nil
}

// ListForUser возвращает бронирования пользователя по возрастанию времени начала
// вместе с названием и категорией устройства
func (s *Service) ListForUser(ctx context.Context, req *models.ListUserReservationsRequest) (*models.ReservationListResponse, error) {
	if req == nil || strings.TrimSpace(req.UserID) == "" {
		return nil, fmt.Errorf("%w: user is required", ErrInvalidInput)
	}

	s.logger.Info("ListForUser: fetching reservations for user=%s, upcomingOnly=%t", req.UserID, req.UpcomingOnly)

	reservations, err := s.reservationRepo.ListByUser(ctx, req.UserID)
	if err != nil {
		s.logger.Error("ListForUser: repository error for user=%s: %v", req.UserID, err)
		return nil, s.storeError("ListForUser", err)
	}

	if req.UpcomingOnly {
		now := s.timeProvider.Now()
		upcoming := reservations[:0]
		for _, r := range reservations {
			if r.EndAt.After(now) {
				upcoming = append(upcoming, r)
			}
		}
		reservations = upcoming
	}

	sort.SliceStable(reservations, func(i, j int) bool {
		return reservations[i].StartAt.Before(reservations[j].StartAt)
	})

	s.logger.Info("ListForUser: successfully fetched %d reservations for user=%s", len(reservations), req.UserID)
	return models.FromDomainReservationList(reservations, s.location), nil
}

// Cancel удаляет бронирование, если оно принадлежит пользователю
// Отсутствующее и чужое бронирование дают одну и ту же ошибку ErrReservationNotFound
func (s *Service) Cancel(ctx context.Context, id int64, userID string) error {
	s.logger.Info("Cancel: cancelling reservation id=%d by user=%s", id, userID)

	if id <= 0 || strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: reservation id and user are required", ErrInvalidInput)
	}

	if err := s.reservationRepo.DeleteOwned(ctx, id, userID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found for user=%s", id, userID)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", id, err)
		return s.storeError("Cancel", err)
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d", id)
	return nil
}

// DeviceSchedule возвращает занятые интервалы устройства в пределах горизонта бронирования
func (s *Service) DeviceSchedule(ctx context.Context, deviceID string) (*models.ScheduleResponse, error) {
	s.logger.Info("DeviceSchedule: fetching schedule for device=%s", deviceID)

	device, err := s.deviceRepo.GetByID(ctx, deviceID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("DeviceSchedule: device id=%s not found", deviceID)
			return nil, ErrDeviceNotFound
		}
		s.logger.Error("DeviceSchedule: failed to get device id=%s: %v", deviceID, err)
		return nil, s.storeError("DeviceSchedule", err)
	}

	now := s.timeProvider.Now()
	from := s.policy.StartOfDay(now)
	to := s.policy.HorizonEnd(now)

	reservations, err := s.reservationRepo.ListByDeviceInRange(ctx, device.ID, from, to)
	if err != nil {
		s.logger.Error("DeviceSchedule: repository error for device=%s: %v", device.ID, err)
		return nil, s.storeError("DeviceSchedule", err)
	}

	return models.FromDomainSchedule(device.ID, reservations, s.location), nil
}

func (s *Service) storeError(op string, err error) error {
	if errors.Is(err, storage.ErrUnavailable) {
		return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
	}
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
