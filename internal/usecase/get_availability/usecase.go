package get_availability

import (
	"context"
	"errors"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

// UseCase use case для получения свободных слотов устройства.
// Результат носит справочный характер: окончательная проверка выполняется при бронировании
type UseCase struct {
	deviceRepo      DeviceRepository
	reservationRepo ReservationRepository
	policy          domain.BookingPolicy
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	deviceRepo DeviceRepository,
	reservationRepo ReservationRepository,
	policy domain.BookingPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		deviceRepo:      deviceRepo,
		reservationRepo: reservationRepo,
		policy:          policy,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем устройство
	device, err := uc.deviceRepo.GetByID(ctx, req.DeviceID)
	if err != nil {
		mapped := mapStoreError(err, "get device")
		if errors.Is(mapped, ErrDeviceNotFound) {
			uc.logger.Warn("GetAvailability: device id=%s not found", req.DeviceID)
		} else {
			uc.logger.Error("GetAvailability: failed to get device id=%s: %v", req.DeviceID, err)
		}
		return nil, mapped
	}

	// 4. Определяем даты горизонта
	days, err := selectDays(uc.policy, now, req.Date)
	if err != nil {
		uc.logger.Warn("GetAvailability: %v", err)
		return nil, err
	}

	duration := uc.policy.Duration(device.Category)

	// 5. Получаем бронирования, которые могут пересечься с любым кандидатом
	from := days[0]
	to := nextDay(days[len(days)-1]).Add(duration)

	reservations, err := uc.reservationRepo.ListByDeviceInRange(ctx, device.ID, from, to)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get reservations for device=%s: %v", device.ID, err)
		return nil, mapStoreError(err, "list reservations")
	}

	// 6. Перебираем сетку каждой даты
	result := make([]Day, 0, len(days))
	total := 0
	for _, day := range days {
		slots := enumerateDay(uc.policy, day, duration, now, reservations)
		total += len(slots)
		result = append(result, Day{Date: day, Slots: slots})
	}

	uc.logger.Info("GetAvailability: device=%s, %d free slots over %d days", device.ID, total, len(days))

	return &Response{
		DeviceID:        device.ID,
		DeviceName:      device.Name,
		DeviceCategory:  string(device.Category),
		DurationMinutes: int(duration.Minutes()),
		Days:            result,
	}, nil
}
