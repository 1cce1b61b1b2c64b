// Package usermanager содержит бизнес-логику управления учётными записями:
// канонизацию полей для регистронезависимой уникальности, хеширование
// паролей, регистрацию и проверку учётных данных.
package usermanager

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/veloromanov/sport-backoffice/internal/lib/password"
	"github.com/veloromanov/sport-backoffice/internal/models"
)

// Repository определяет методы хранилища, используемые при работе
// с учётными записями.
type Repository interface {
	CreateUser(ctx context.Context, user models.User) (string, error)
	GetUserByUID(ctx context.Context, uid string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateUser(ctx context.Context, user models.User) (int, error)
}

// Service реализует операции над учётными записями.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// UpdateCanonicalFields пересчитывает канонические формы username и email.
// Канонизация — нижний регистр без краевых пробелов.
func (s *Service) UpdateCanonicalFields(user *models.User) {
	user.UsernameCanonical = canonicalize(user.Username)
	user.EmailCanonical = canonicalize(user.Email)
}

// UpdatePassword хеширует открытый пароль, если он задан, и очищает его.
// При пустом PlainPassword сохранённый хеш не меняется.
func (s *Service) UpdatePassword(user *models.User) error {
	const op = "usermanager.UpdatePassword"
	if user.PlainPassword == "" {
		return nil
	}
	hash, err := password.GetHash(user.PlainPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	user.PasswordHash = hash
	user.PlainPassword = ""
	return nil
}

// BuildUser собирает нового пользователя из данных запроса: генерирует UID,
// канонизирует поля и хеширует пароль.
func (s *Service) BuildUser(req models.DummyUser) (*models.User, error) {
	const op = "usermanager.BuildUser"

	user := &models.User{
		UID:           uuid.New().String(),
		Username:      req.Username,
		Email:         req.Email,
		PlainPassword: req.PlainPassword,
		Firstname:     req.Firstname,
		Lastname:      req.Lastname,
		Website:       req.Website,
		Biography:     req.Biography,
		Gender:        req.Gender,
		Locale:        req.Locale,
		Timezone:      req.Timezone,
		Phone:         req.Phone,
		Roles:         []string{models.RoleUser},
	}
	if req.DateOfBirth != "" {
		dateOfBirth, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid date of birth: %w", op, err)
		}
		user.DateOfBirth = &dateOfBirth
	}

	s.UpdateCanonicalFields(user)
	if err := s.UpdatePassword(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Register создает нового пользователя и возвращает его UID.
func (s *Service) Register(ctx context.Context, req models.DummyUser) (string, error) {
	user, err := s.BuildUser(req)
	if err != nil {
		return "", err
	}
	user.Enabled = true

	uid, err := s.repo.CreateUser(ctx, *user)
	if err != nil {
		return "", err
	}
	s.log.Info("registered new user", slog.String("uid", uid))
	return uid, nil
}

// Authenticate проверяет учётные данные и возвращает пользователя.
// Отключённые и заблокированные учётные записи не проходят проверку.
func (s *Service) Authenticate(ctx context.Context, username, plainPassword string) (*models.User, error) {
	const op = "usermanager.Authenticate"

	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !user.Enabled || user.Locked {
		return nil, fmt.Errorf("%s: account disabled or locked", op)
	}
	if err := password.CompareHash(user.PasswordHash, plainPassword); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// MainRole возвращает роль пользователя для JWT: первую из набора ролей
// или базовую роль, если набор пуст.
func MainRole(user *models.User) string {
	if len(user.Roles) == 0 {
		return models.RoleUser
	}
	return user.Roles[0]
}

func canonicalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
