// Package usercreate реализует HTTP-обработчик создания пользователя
// из раздела админки.
//
// Handler принимает JSON-запрос с данными пользователя, валидирует их
// и вызывает бизнес-логику, которая применяет дефолты раздела: новая
// учётная запись включается и привязывается к группе раздела.
package usercreate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/veloromanov/sport-backoffice/internal/http/middlewarectx"
	"github.com/veloromanov/sport-backoffice/internal/http/response"
	"github.com/veloromanov/sport-backoffice/internal/lib/sl"
	"github.com/veloromanov/sport-backoffice/internal/models"
	"github.com/veloromanov/sport-backoffice/internal/storage/repository"
)

// Handler управляет HTTP-запросами на создание пользователей из админки.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Конфигуратор раздела пользователей
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания пользователя.
type Service interface {
	CreateUser(ctx context.Context, sectionLabel, actor string, req models.DummyUser) (*models.User, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать пользователя из раздела
// @Description Создает пользователя в разделе админки: учётная запись включается и привязывается к группе раздела.
// @Tags AdminUsers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param section path string true "Метка раздела админки"
// @Param request body models.DummyUser true "Данные нового пользователя"
// @Success 201 {object} map[string]any "Созданный пользователь"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Раздел не найден"
// @Failure 409 {object} response.ErrorResponse "Имя пользователя или email уже заняты"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/{section}/users [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.adminuser.usercreate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyUser
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("username", req.Username))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	actor, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || actor == "" {
		log.Error("username not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	section := chi.URLParam(r, "section")
	user, err := h.service.CreateUser(r.Context(), section, actor, req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			log.Error("section group not found", slog.String("section", section))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("section not found"))
		case errors.Is(err, repository.ErrConflict):
			log.Error("username or email already taken", sl.Err(err))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("username or email already taken"))
		default:
			log.Error("failed to create user", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not create user"))
		}
		return
	}

	log.Info("success to create user",
		slog.String("uid", user.UID), slog.String("section", section))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user": user,
	}))
}
