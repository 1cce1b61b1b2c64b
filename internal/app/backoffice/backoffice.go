// Package backoffice собирает приложение бэк-офиса: хранилище, миграции,
// кеш, публикатор аудита, сервисы, конфигуратор админки и HTTP-сервер.
package backoffice

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/veloromanov/sport-backoffice/internal/admin/useradmin"
	"github.com/veloromanov/sport-backoffice/internal/cache"
	"github.com/veloromanov/sport-backoffice/internal/config"
	"github.com/veloromanov/sport-backoffice/internal/events"
	jwtlib "github.com/veloromanov/sport-backoffice/internal/lib/jwt"
	"github.com/veloromanov/sport-backoffice/internal/lib/sl"
	"github.com/veloromanov/sport-backoffice/internal/migrations"
	sportservice "github.com/veloromanov/sport-backoffice/internal/services/sport"
	"github.com/veloromanov/sport-backoffice/internal/services/usermanager"
	"github.com/veloromanov/sport-backoffice/internal/storage/repository"
)

const (
	rabbitRetries = 5
	rabbitDelay   = 2 * time.Second
)

// App хранит собранные зависимости и HTTP-сервер приложения.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	audit  *events.Publisher
}

// New собирает приложение из конфигурации: подключает базу и прогоняет
// миграции, инициализирует кеш и публикатор аудита, строит сервисы и
// маршруты. Недоступный брокер аудита не фатален: события в этом случае
// не публикуются.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	var audit *events.Publisher
	conn, err := events.Connect(cfg.AddressRabbit, rabbitRetries, rabbitDelay)
	if err != nil {
		logger.Warn("audit broker unavailable, events will not be published", sl.Err(err))
	} else {
		audit, err = events.NewPublisher(conn, cfg.Exchange)
		if err != nil {
			return nil, err
		}
	}

	jwtMaker := jwtlib.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	userService := usermanager.New(db, logger)
	sportService := newSportService(db, cacheRedis, audit, logger)
	adminService := newAdminService(db, userService, audit, cfg, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, &RouteDeps{
		DB:            db,
		Sports:        sportService,
		Users:         userService,
		Admin:         adminService,
		JWTMaker:      jwtMaker,
		IconsDir:      cfg.IconsDir,
		AdminSections: cfg.AdminSections,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		audit:  audit,
	}, nil
}

func newSportService(db *repository.Storage, cacheRedis *cache.Cache, audit *events.Publisher, logger *slog.Logger) *sportservice.Service {
	// Интерфейс аудита нельзя инициализировать типизированным nil.
	if audit == nil {
		return sportservice.New(db, cacheRedis, nil, logger)
	}
	return sportservice.New(db, cacheRedis, audit, logger)
}

func newAdminService(db *repository.Storage, users *usermanager.Service, audit *events.Publisher, cfg *config.Config, logger *slog.Logger) *useradmin.Admin {
	if audit == nil {
		return useradmin.New(db, users, nil, cfg.RoleHierarchy, logger)
	}
	return useradmin.New(db, users, audit, cfg.RoleHierarchy, logger)
}

// Run запускает HTTP-сервер и блокируется до его остановки или отмены
// контекста, после чего выполняет graceful shutdown.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if a.audit != nil {
			if closeErr := a.audit.Close(); closeErr != nil {
				a.logger.Warn("failed to close audit publisher", sl.Err(closeErr))
			}
		}
		a.db.DB.Close()
		return err
	}
}
