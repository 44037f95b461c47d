package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-LaundryService/internal/config"
	"github.com/m04kA/SMC-LaundryService/internal/domain"
	deviceRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/device"
	reservationRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-LaundryService/internal/infra/storage/sqlite"
	userRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/user"
	"github.com/m04kA/SMC-LaundryService/pkg/dbmetrics"
	"github.com/m04kA/SMC-LaundryService/pkg/logger"
	"github.com/m04kA/SMC-LaundryService/pkg/metrics"
	"github.com/m04kA/SMC-LaundryService/pkg/txmanager"
)

type deviceStore interface {
	GetByID(ctx context.Context, id string) (*domain.Device, error)
	List(ctx context.Context) ([]*domain.Device, error)
	UpsertAll(ctx context.Context, devices []*domain.Device) error
}

type reservationStore interface {
	LockDevice(ctx context.Context, deviceID string) error
	ListByDeviceInRange(ctx context.Context, deviceID string, from, to time.Time) ([]*domain.Reservation, error)
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Reservation, error)
	DeleteOwned(ctx context.Context, id int64, userID string) error
}

type userStore interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	SetPasswordHash(ctx context.Context, userID, hash string) error
}

type txManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// storageBackend репозитории и менеджер транзакций выбранного драйвера
type storageBackend struct {
	devices      deviceStore
	reservations reservationStore
	users        userStore
	txMgr        txManager
	close        func() error
}

// openPostgres подключается к PostgreSQL; при m != nil запросы и пул попадают в метрики
func openPostgres(cfg config.DatabaseConfig, m *metrics.Metrics, serviceName string, stopCh <-chan struct{}, log *logger.Logger) (*storageBackend, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)", cfg.Host, cfg.Port, cfg.DBName)

	var wrapped *dbmetrics.DB
	if m != nil {
		wrapped = dbmetrics.WrapWithDefault(db, m, serviceName, stopCh)
		log.Info("Database metrics collection started")
	} else {
		wrapped = dbmetrics.Wrap(db)
	}

	return &storageBackend{
		devices:      deviceRepo.NewRepository(wrapped),
		reservations: reservationRepo.NewRepository(wrapped),
		users:        userRepo.NewRepository(wrapped),
		txMgr:        txmanager.NewTransactionManager(wrapped),
		close:        db.Close,
	}, nil
}

// openSQLite открывает однопользовательское хранилище; транзакции бронирования сериализуются в процессе
func openSQLite(cfg config.DatabaseConfig, log *logger.Logger) (*storageBackend, error) {
	gdb, err := sqlite.Open(cfg.SQLitePath)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite: underlying db: %w", err)
	}
	log.Info("Opened sqlite database at %s", cfg.SQLitePath)

	return &storageBackend{
		devices:      sqlite.NewDeviceRepository(gdb),
		reservations: sqlite.NewReservationRepository(gdb),
		users:        sqlite.NewUserRepository(gdb),
		txMgr:        sqlite.NewTxManager(gdb),
		close:        sqlDB.Close,
	}, nil
}
