// Package backoffice предоставляет маршруты для основного приложения.
package backoffice

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/veloromanov/sport-backoffice/internal/admin/useradmin"
	"github.com/veloromanov/sport-backoffice/internal/http/handlers/adminuser/adminschema"
	"github.com/veloromanov/sport-backoffice/internal/http/handlers/adminuser/usercreate"
	"github.com/veloromanov/sport-backoffice/internal/http/handlers/adminuser/userlist"
	"github.com/veloromanov/sport-backoffice/internal/http/handlers/adminuser/userupdate"
	"github.com/veloromanov/sport-backoffice/internal/http/handlers/auth/login"
	"github.com/veloromanov/sport-backoffice/internal/http/handlers/auth/register"
	"github.com/veloromanov/sport-backoffice/internal/http/handlers/health"
	"github.com/veloromanov/sport-backoffice/internal/http/handlers/sport/create"
	"github.com/veloromanov/sport-backoffice/internal/http/handlers/sport/icon"
	"github.com/veloromanov/sport-backoffice/internal/http/handlers/sport/list"
	"github.com/veloromanov/sport-backoffice/internal/http/handlers/sport/read"
	"github.com/veloromanov/sport-backoffice/internal/http/handlers/sport/remove"
	"github.com/veloromanov/sport-backoffice/internal/http/handlers/sport/update"
	"github.com/veloromanov/sport-backoffice/internal/http/middlewarectx"
	jwtlib "github.com/veloromanov/sport-backoffice/internal/lib/jwt"
	"github.com/veloromanov/sport-backoffice/internal/models"
	sportservice "github.com/veloromanov/sport-backoffice/internal/services/sport"
	"github.com/veloromanov/sport-backoffice/internal/services/usermanager"
	"github.com/veloromanov/sport-backoffice/internal/storage/repository"
)

// RouteDeps собирает зависимости маршрутов приложения.
type RouteDeps struct {
	DB            *repository.Storage
	Sports        *sportservice.Service
	Users         *usermanager.Service
	Admin         *useradmin.Admin
	JWTMaker      jwtlib.Maker
	IconsDir      string
	AdminSections []string
}

// RegisterRoutes регистрирует все маршруты приложения.
//
// Чтение каталога видов спорта открыто. Обновление и удаление требуют
// JWT; роль администратора нужна только на создание записи каталога и
// на весь раздел админки.
func RegisterRoutes(r chi.Router, logger *slog.Logger, deps *RouteDeps) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)
	r.Use(middlewarectx.MetricsMiddleware())

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, deps.Users).ServeHTTP)
		r.Post("/login", login.New(logger, deps.Users, deps.JWTMaker).ServeHTTP)

		r.Get("/sports", list.New(logger, deps.Sports).ServeHTTP)
		r.Get("/sports/{id}", read.New(logger, deps.Sports).ServeHTTP)
		r.Get("/sports/{id}/icon", icon.New(logger, deps.Sports, deps.IconsDir).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(deps.JWTMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			// Единственная проверка роли в каталоге — на создании записи
			r.Patch("/sports/{id}", update.New(logger, deps.Sports).ServeHTTP)
			r.Delete("/sports/{id}", remove.New(logger, deps.Sports).ServeHTTP)

			// Вложенная группа с правами администратора
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRoleMiddleware(logger, deps.Admin, models.RoleAdmin))

				r.Post("/sports", create.New(logger, deps.Sports).ServeHTTP)

				r.Route("/admin", func(r chi.Router) {
					schemas := adminschema.New(logger, deps.Admin)

					r.Get("/users/schema/list", schemas.List)
					r.Get("/users/schema/filter", schemas.Filter)
					r.Get("/users/schema/show", schemas.Show)
					r.Get("/users/export/fields", schemas.ExportFields)
					r.Put("/users/{uid}", userupdate.New(logger, deps.Admin).ServeHTTP)

					r.Route("/{section}", func(r chi.Router) {
						r.Use(middlewarectx.KnownSectionMiddleware(logger, deps.AdminSections))

						r.Get("/users", userlist.New(logger, deps.Admin).ServeHTTP)
						r.Post("/users", usercreate.New(logger, deps.Admin).ServeHTTP)
						r.Get("/users/schema/form", schemas.Form)
					})
				})
			})
		})
	})

	r.Get("/health", health.New(logger, deps.DB).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
