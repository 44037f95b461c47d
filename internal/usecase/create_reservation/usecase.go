package create_reservation

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

// maxTxAttempts сколько раз выполняем транзакцию бронирования, прежде чем вернуть ErrStoreUnavailable
const maxTxAttempts = 3

// UseCase use case для бронирования устройства
type UseCase struct {
	deviceRepo      DeviceRepository
	reservationRepo ReservationRepository
	txManager       TransactionManager
	policy          domain.BookingPolicy
	metrics         MetricsRecorder
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	deviceRepo DeviceRepository,
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	policy domain.BookingPolicy,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		deviceRepo:      deviceRepo,
		reservationRepo: reservationRepo,
		txManager:       txManager,
		policy:          policy,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute бронирует устройство на [StartAt, StartAt + длительность категории)
// Проверка пересечений повторяется внутри сериализуемой транзакции под блокировкой устройства,
// поэтому из двух конкурирующих запросов на пересекающиеся интервалы успешен ровно один
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	defer func() {
		if uc.metrics != nil {
			uc.metrics.ObserveReservation(outcomeOf(err))
		}
	}()

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateReservation: user=%s, device=%s, start=%s",
		req.UserID, req.DeviceID, req.StartAt.Format(time.RFC3339))

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем устройство
	device, err := uc.deviceRepo.GetByID(ctx, req.DeviceID)
	if err != nil {
		mapped := mapStoreError(err, "get device")
		uc.logger.Warn("CreateReservation: device id=%s: %v", req.DeviceID, mapped)
		return nil, mapped
	}

	// 4. Проверяем правила политики (blackout, прошлое, горизонт)
	if err := validatePolicy(uc.policy, req.StartAt, now); err != nil {
		uc.logger.Warn("CreateReservation: %v", err)
		return nil, err
	}

	// 5. Вычисляем конец интервала по категории устройства
	start := req.StartAt
	end := start.Add(uc.policy.Duration(device.Category))

	// 6. Проверка пересечений и вставка в одной сериализуемой транзакции.
	// Транзакцию, прерванную конкурентной (40001, 40P01), повторяем целиком
	var result *domain.Reservation
	for attempt := 1; ; attempt++ {
		result, err = uc.reserve(ctx, device, req.UserID, start, end)
		if err == nil || !isSerializationFailure(err) {
			break
		}
		if attempt == maxTxAttempts || ctx.Err() != nil {
			err = fmt.Errorf("%w: gave up after %d attempts: %v", ErrStoreUnavailable, attempt, err)
			break
		}
		uc.logger.Warn("CreateReservation: device=%s start=%s: attempt %d/%d aborted by a concurrent transaction, retrying",
			device.ID, start.Format(time.RFC3339), attempt, maxTxAttempts)
	}

	if err != nil {
		if !isUsecaseError(err) {
			err = mapStoreError(err, "transaction")
		}
		if isExpectedFailure(err) {
			uc.logger.Warn("CreateReservation: device=%s start=%s: %v", device.ID, start.Format(time.RFC3339), err)
		} else {
			uc.logger.Error("CreateReservation: device=%s start=%s: %v", device.ID, start.Format(time.RFC3339), err)
		}
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d", result.ID)

	// Конвертируем в response
	return &Response{
		ID:             result.ID,
		DeviceID:       device.ID,
		DeviceName:     device.Name,
		DeviceCategory: string(device.Category),
		UserID:         result.UserID,
		StartAt:        uc.policy.Local(result.StartAt),
		EndAt:          uc.policy.Local(result.EndAt),
		Status:         string(result.Status),
		CreatedAt:      result.CreatedAt,
	}, nil
}

// reserve одна попытка: блокировка устройства, перечитывание пересечений и вставка
func (uc *UseCase) reserve(ctx context.Context, device *domain.Device, userID string, start, end time.Time) (*domain.Reservation, error) {
	var result *domain.Reservation

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Блокируем устройство (FOR UPDATE), конкурирующие бронирования ждут здесь
		if err := uc.reservationRepo.LockDevice(txCtx, device.ID); err != nil {
			return mapStoreError(err, "lock device")
		}

		// Перечитываем бронирования, пересекающиеся с [start, end)
		existing, err := uc.reservationRepo.ListByDeviceInRange(txCtx, device.ID, start, end)
		if err != nil {
			return mapStoreError(err, "list reservations")
		}

		// Проверяем пересечение тем же предикатом, что и при расчёте доступности
		if conflict := domain.FindConflict(start, end, existing); conflict != nil {
			return fmt.Errorf("%w: overlaps reservation id=%d [%s, %s)", ErrSlotConflict,
				conflict.ID, uc.policy.Local(conflict.StartAt).Format(domain.TimeFormat),
				uc.policy.Local(conflict.EndAt).Format(domain.TimeFormat))
		}

		created, err := uc.reservationRepo.Create(txCtx, &domain.Reservation{
			DeviceID: device.ID,
			UserID:   userID,
			StartAt:  start,
			EndAt:    end,
			Status:   domain.StatusReserved,
		})
		if err != nil {
			return mapStoreError(err, "create reservation")
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
