package user

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

// Repository учётные записи пользователей в PostgreSQL
type Repository struct {
	db dbmetrics.DBExecutor
}

func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет пользователя; занятый email возвращает storage.ErrAlreadyExists
func (r *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("users").
		Columns("id", "email", "password_hash").
		Values(user.ID, user.Email, user.PasswordHash).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&user.CreatedAt); err != nil {
		return nil, pgerr.Wrap(err, ErrExecQuery, "Create - execute insert")
	}

	return user, nil
}

// GetByEmail получает пользователя по email
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "email", "password_hash", "legacy_password", "created_at").
		From("users").
		Where(squirrel.Eq{"email": email}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmail - build select query: %v", ErrBuildQuery, err)
	}

	var user domain.User
	var passwordHash, legacyPassword sql.NullString
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Email,
		&passwordHash,
		&legacyPassword,
		&user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, pgerr.Wrap(err, ErrScanRow, "GetByEmail - scan user")
	}

	user.PasswordHash = passwordHash.String
	if legacyPassword.Valid {
		user.LegacyPassword = &legacyPassword.String
	}

	return &user, nil
}

// SetPasswordHash сохраняет хеш пароля и стирает пароль в открытом виде
func (r *Repository) SetPasswordHash(ctx context.Context, userID, hash string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("users").
		Set("password_hash", hash).
		Set("legacy_password", nil).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetPasswordHash - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return pgerr.Wrap(err, ErrExecQuery, "SetPasswordHash - execute update")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetPasswordHash - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return storage.ErrNotFound
	}

	return nil
}
