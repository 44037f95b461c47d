package sqlite

import (
	"context"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/m04kA/SMC-LaundryService/pkg/txmanager"
)

// TxManager транзакции поверх gorm.
// sqlite не умеет блокировать строки, поэтому транзакции выполняются строго по одной:
// мьютекс держится от BEGIN до COMMIT, и проверка пересечений с вставкой атомарны
type TxManager struct {
	db *gorm.DB
	mu sync.Mutex
}

func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if inTransaction(ctx) {
		return fn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	tx := m.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("%w: %v", txmanager.ErrBeginTx, tx.Error)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("%w: %v", txmanager.ErrCommit, err)
	}

	return nil
}
