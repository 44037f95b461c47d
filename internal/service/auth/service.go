package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	"github.com/m04kA/SMC-LaundryService/internal/infra/storage"
	"github.com/m04kA/SMC-LaundryService/internal/service/auth/models"
)

// MinPasswordLength минимальная длина пароля при регистрации
const MinPasswordLength = 8

// Service регистрация и вход; ядро бронирования получает только непрозрачный ID пользователя
type Service struct {
	userRepo UserRepository
	tokens   TokenIssuer
	cost     int
	now      func() time.Time
	logger   Logger
}

func NewService(userRepo UserRepository, tokens TokenIssuer, logger Logger) *Service {
	return &Service{
		userRepo: userRepo,
		tokens:   tokens,
		cost:     bcrypt.DefaultCost,
		now:      time.Now,
		logger:   logger,
	}
}

// Register создает учётную запись с bcrypt-хешем пароля
func (s *Service) Register(ctx context.Context, req *models.CredentialsRequest) (*models.UserResponse, error) {
	email, err := validateCredentials(req)
	if err != nil {
		return nil, err
	}
	if len(req.Password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, MinPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("%w: Register - hash password: %v", ErrInvalidInput, err)
	}

	user, err := s.userRepo.Create(ctx, &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			s.logger.Warn("Register: email %s already registered", email)
			return nil, ErrEmailTaken
		}
		s.logger.Error("Register: repository error: %v", err)
		return nil, storeError("Register", err)
	}

	s.logger.Info("Register: created user id=%s", user.ID)
	return &models.UserResponse{ID: user.ID, Email: user.Email}, nil
}

// Login проверяет пароль и выпускает токен.
// Пароль в открытом виде из старой базы принимается один раз и сразу заменяется хешем
func (s *Service) Login(ctx context.Context, req *models.CredentialsRequest) (*models.TokenResponse, error) {
	email, err := validateCredentials(req)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("Login: unknown email %s", email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error: %v", err)
		return nil, storeError("Login", err)
	}

	if user.NeedsPasswordMigration() {
		if subtle.ConstantTimeCompare([]byte(*user.LegacyPassword), []byte(req.Password)) != 1 {
			s.logger.Warn("Login: wrong password for user id=%s", user.ID)
			return nil, ErrInvalidCredentials
		}
		s.migratePassword(ctx, user, req.Password)
	} else if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Login: wrong password for user id=%s", user.ID)
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, s.now())
	if err != nil {
		s.logger.Error("Login: failed to issue token for user id=%s: %v", user.ID, err)
		return nil, fmt.Errorf("%w: Login - issue token: %v", ErrInternal, err)
	}

	s.logger.Info("Login: user id=%s logged in", user.ID)
	return &models.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		UserID:      user.ID,
	}, nil
}

// migratePassword заменяет пароль в открытом виде хешем.
// Ошибка не прерывает вход: миграция повторится при следующем входе
func (s *Service) migratePassword(ctx context.Context, user *domain.User, password string) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		s.logger.Error("Login: failed to hash legacy password for user id=%s: %v", user.ID, err)
		return
	}
	if err := s.userRepo.SetPasswordHash(ctx, user.ID, string(hash)); err != nil {
		s.logger.Error("Login: failed to migrate legacy password for user id=%s: %v", user.ID, err)
		return
	}
	s.logger.Info("Login: migrated legacy password for user id=%s", user.ID)
}

func validateCredentials(req *models.CredentialsRequest) (string, error) {
	if req == nil {
		return "", fmt.Errorf("%w: credentials are required", ErrInvalidInput)
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return "", fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	if req.Password == "" {
		return "", fmt.Errorf("%w: password is required", ErrInvalidInput)
	}
	return email, nil
}

func storeError(op string, err error) error {
	if errors.Is(err, storage.ErrUnavailable) {
		return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
	}
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
