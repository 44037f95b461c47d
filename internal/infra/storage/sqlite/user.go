package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	"github.com/m04kA/SMC-LaundryService/internal/infra/storage"
)

// UserRepository учётные записи в sqlite
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	row := User{
		ID:             user.ID,
		Email:          user.Email,
		PasswordHash:   user.PasswordHash,
		LegacyPassword: user.LegacyPassword,
	}
	if err := conn(ctx, r.db).Create(&row).Error; err != nil {
		return nil, wrap(err, "Create")
	}
	user.CreatedAt = row.CreatedAt
	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var row User
	if err := conn(ctx, r.db).First(&row, "email = ?", email).Error; err != nil {
		return nil, wrap(err, "GetByEmail")
	}
	return row.toDomain(), nil
}

func (r *UserRepository) SetPasswordHash(ctx context.Context, userID, hash string) error {
	result := conn(ctx, r.db).Model(&User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{"password_hash": hash, "legacy_password": nil})
	if result.Error != nil {
		return wrap(result.Error, "SetPasswordHash")
	}
	if result.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}
