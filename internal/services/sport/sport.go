// Package sport содержит бизнес-логику каталога видов спорта:
// выборку активных записей, проверку уникальности имени перед записью,
// частичное обновление и кеширование горячих чтений.
package sport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/veloromanov/sport-backoffice/internal/events"
	"github.com/veloromanov/sport-backoffice/internal/models"
	"github.com/veloromanov/sport-backoffice/internal/storage/repository"
)

const (
	cacheTTL         = time.Hour
	activeListKey    = "sports:active"
	sportKeyTemplate = "sport:%d"
)

// Repository определяет методы хранилища, используемые каталогом.
type Repository interface {
	CreateSport(ctx context.Context, sport models.Sport) (int, error)
	FindActiveSports(ctx context.Context) ([]*models.Sport, error)
	FindSportByID(ctx context.Context, id int) (*models.Sport, error)
	FindSportByName(ctx context.Context, name string) (*models.Sport, error)
	UpdateSport(ctx context.Context, sport models.Sport) (int, error)
	DeleteSport(ctx context.Context, id int) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// AuditPublisher публикует события аудита об изменениях каталога.
type AuditPublisher interface {
	Publish(event events.AuditEvent) error
}

// Service реализует бизнес-логику каталога видов спорта.
type Service struct {
	repo  Repository
	cache Cache
	audit AuditPublisher
	log   *slog.Logger
}

// New создает новый Service.
func New(repo Repository, cache Cache, audit AuditPublisher, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		audit: audit,
		log:   log,
	}
}

// List возвращает активные виды спорта, используя кеш или хранилище.
func (s *Service) List(ctx context.Context) ([]*models.Sport, error) {
	var result []*models.Sport
	found, err := s.cache.Get(activeListKey, &result)
	if err != nil {
		s.log.Warn("failed to read sports list from cache", slog.Any("err", err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.FindActiveSports(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(activeListKey, result, cacheTTL); err != nil {
		s.log.Warn("failed to cache sports list", slog.Any("err", err))
	}
	return result, nil
}

// Create создает новый вид спорта после проверки уникальности имени.
// Проверка выполняется до какой-либо записи; гонки добивает уникальный
// индекс в базе, который хранилище транслирует в ErrConflict.
func (s *Service) Create(ctx context.Context, actor string, req models.DummySport) (*models.Sport, error) {
	const op = "services.sport.Create"

	if err := s.failIfNameTaken(ctx, op, req.Name); err != nil {
		return nil, err
	}

	sport := models.Sport{
		Name:     req.Name,
		IsActive: req.IsActive == "true",
		Icon:     req.Icon,
	}

	id, err := s.repo.CreateSport(ctx, sport)
	if err != nil {
		return nil, err
	}
	sport.ID = id

	s.log.Info("created new sport", slog.Int("id", id), slog.String("name", sport.Name))
	s.afterWrite(ctx, events.SportCreated, actor, sport.ID)

	cacheKey := fmt.Sprintf(sportKeyTemplate, id)
	if err := s.cache.Set(cacheKey, sport, cacheTTL); err != nil {
		s.log.Warn("failed to cache sport", slog.String("key", cacheKey), slog.Any("err", err))
	}

	return &sport, nil
}

// Read возвращает вид спорта по ID, используя кеш или хранилище.
func (s *Service) Read(ctx context.Context, id int) (*models.Sport, error) {
	var result *models.Sport
	cacheKey := fmt.Sprintf(sportKeyTemplate, id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read sport from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.FindSportByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKey, result, cacheTTL); err != nil {
		s.log.Warn("failed to cache sport", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// Update выполняет частичное обновление вида спорта.
// Если имя передано и не изменилось, возвращает запись как есть,
// не обращаясь к хранилищу на запись.
func (s *Service) Update(ctx context.Context, actor string, id int, req models.DummySportUpdate) (*models.Sport, error) {
	const op = "services.sport.Update"

	entity, err := s.repo.FindSportByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == entity.Name {
			return entity, nil
		}
		if err := s.failIfNameTaken(ctx, op, *req.Name); err != nil {
			return nil, err
		}
		entity.Name = *req.Name
	}
	if req.IsActive != nil {
		entity.IsActive = *req.IsActive == "true"
	}
	if req.Icon != nil {
		entity.Icon = *req.Icon
	}

	count, err := s.repo.UpdateSport(ctx, *entity)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	s.log.Info("updated sport", slog.Int("id", id))
	s.afterWrite(ctx, events.SportUpdated, actor, id)

	cacheKey := fmt.Sprintf(sportKeyTemplate, id)
	if err := s.cache.Set(cacheKey, entity, cacheTTL); err != nil {
		s.log.Warn("failed to cache sport", slog.String("key", cacheKey), slog.Any("err", err))
	}

	return entity, nil
}

// Remove удаляет вид спорта по ID и инвалидирует кеш.
func (s *Service) Remove(ctx context.Context, actor string, id int) error {
	const op = "services.sport.Remove"

	count, err := s.repo.DeleteSport(ctx, id)
	if err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	s.log.Info("removed sport", slog.Int("id", id))
	s.afterWrite(ctx, events.SportDeleted, actor, id)

	cacheKey := fmt.Sprintf(sportKeyTemplate, id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove sport from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return nil
}

// Icon возвращает имя файла иконки вида спорта.
// Возвращает ErrNotFound, если иконка не задана.
func (s *Service) Icon(ctx context.Context, id int) (string, error) {
	const op = "services.sport.Icon"

	sport, err := s.Read(ctx, id)
	if err != nil {
		return "", err
	}
	if sport.Icon == "" {
		return "", fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}
	return sport.Icon, nil
}

// failIfNameTaken возвращает ErrConflict, если имя уже занято.
func (s *Service) failIfNameTaken(ctx context.Context, op, name string) error {
	_, err := s.repo.FindSportByName(ctx, name)
	if err == nil {
		return fmt.Errorf("%s: %w", op, repository.ErrConflict)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return nil
}

// afterWrite публикует событие аудита и сбрасывает кеш списка.
func (s *Service) afterWrite(_ context.Context, action, actor string, id int) {
	if err := s.cache.Invalidate(activeListKey); err != nil {
		s.log.Warn("failed to invalidate sports list cache", slog.Any("err", err))
	}
	if s.audit == nil {
		return
	}
	event := events.AuditEvent{
		Action:     action,
		Subject:    fmt.Sprintf("sport:%d", id),
		Actor:      actor,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.audit.Publish(event); err != nil {
		s.log.Warn("failed to publish audit event", slog.String("action", action), slog.Any("err", err))
	}
}
