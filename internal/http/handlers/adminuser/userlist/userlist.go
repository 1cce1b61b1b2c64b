// Package userlist реализует HTTP-обработчик получения списка пользователей
// раздела админки.
//
// Handler извлекает метку раздела из URL, собирает явные фильтры из
// query-параметров и вызывает бизнес-логику, которая добавляет неявный
// фильтр по группе раздела.
package userlist

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/veloromanov/sport-backoffice/internal/http/response"
	"github.com/veloromanov/sport-backoffice/internal/lib/sl"
	"github.com/veloromanov/sport-backoffice/internal/models"
	"github.com/veloromanov/sport-backoffice/internal/storage/repository"
)

const (
	defaultLimit = 25
	maxLimit     = 100
)

// Handler обрабатывает запросы на получение списка пользователей раздела.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Конфигуратор раздела пользователей
}

// Service описывает интерфейс бизнес-логики чтения списка пользователей.
type Service interface {
	ListUsers(ctx context.Context, sectionLabel string, explicit models.UserFilter, limit, offset int) ([]*models.User, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список пользователей раздела
// @Description Возвращает пользователей раздела админки. Раздел неявно ограничивает список своей группой.
// @Tags AdminUsers
// @Produce json
// @Security BearerAuth
// @Param section path string true "Метка раздела админки"
// @Param username query string false "Фильтр по имени пользователя"
// @Param email query string false "Фильтр по email"
// @Param locked query bool false "Фильтр по блокировке"
// @Param group query string false "Явный фильтр по группе, имеет приоритет над разделом"
// @Param limit query int false "Размер страницы (по умолчанию 25, максимум 100)"
// @Param offset query int false "Смещение"
// @Success 200 {object} map[string]any "Список пользователей"
// @Failure 404 {object} response.ErrorResponse "Раздел не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/{section}/users [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.adminuser.userlist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	section := chi.URLParam(r, "section")
	query := r.URL.Query()

	filter := models.UserFilter{
		UID:      query.Get("id"),
		Username: query.Get("username"),
		Email:    query.Get("email"),
		Group:    query.Get("group"),
	}
	if raw := query.Get("locked"); raw != "" {
		locked, err := strconv.ParseBool(raw)
		if err != nil {
			log.Error("failed to parse locked filter", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid locked filter"))
			return
		}
		filter.Locked = &locked
	}

	limit := defaultLimit
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			log.Error("failed to parse limit", slog.String("limit", raw))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid limit"))
			return
		}
		limit = min(parsed, maxLimit)
	}
	offset := 0
	if raw := query.Get("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			log.Error("failed to parse offset", slog.String("offset", raw))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid offset"))
			return
		}
		offset = parsed
	}

	users, err := h.service.ListUsers(r.Context(), section, filter, limit, offset)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Error("section group not found", slog.String("section", section))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("section not found"))
			return
		}
		log.Error("failed to list users", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list users"))
		return
	}

	log.Info("success to list users",
		slog.String("section", section), slog.Int("count", len(users)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"users": users,
	}))
}
