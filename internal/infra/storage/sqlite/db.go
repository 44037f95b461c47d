package sqlite

import (
	"context"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/m04kA/SMC-LaundryService/internal/infra/storage"
)

// Open открывает базу sqlite и применяет миграции.
// dsn ":memory:" даёт изолированную базу в памяти (используется в тестах)
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite: %v", storage.ErrUnavailable, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: get sql.DB: %v", storage.ErrUnavailable, err)
	}
	// Один писатель: транзакции и так сериализуются TxManager
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&Device{}, &User{}, &Reservation{}); err != nil {
		return nil, fmt.Errorf("automigrate failed: %w", err)
	}

	return db, nil
}

type txKey struct{}

// conn возвращает транзакцию из контекста, если она есть
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return db.WithContext(ctx)
}

func inTransaction(ctx context.Context) bool {
	tx, ok := ctx.Value(txKey{}).(*gorm.DB)
	return ok && tx != nil
}

// classify сопоставляет ошибку sqlite с общей ошибкой хранилища
func classify(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return storage.ErrNotFound
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch {
		case sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique,
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey:
			return storage.ErrAlreadyExists
		case sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey:
			return storage.ErrNotFound
		case sqliteErr.Code == sqlite3.ErrBusy, sqliteErr.Code == sqlite3.ErrLocked:
			return storage.ErrUnavailable
		}
	}

	return nil
}

func wrap(err error, op string) error {
	if class := classify(err); class != nil {
		return fmt.Errorf("%w: %s: %v", class, op, err)
	}
	return fmt.Errorf("sqlite: %s: %w", op, err)
}
