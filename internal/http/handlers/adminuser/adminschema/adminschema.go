// Package adminschema реализует HTTP-обработчики выдачи схем раздела
// пользователей: форма редактирования, колонки списка, фильтры, карточка
// просмотра и список полей выгрузки.
//
// Схема формы зависит от субъекта: для нового пользователя пароль
// обязателен, для существующего добавляется секция Management.
// Схема списка зависит от прав зрителя.
package adminschema

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/veloromanov/sport-backoffice/internal/admin/schema"
	"github.com/veloromanov/sport-backoffice/internal/admin/useradmin"
	"github.com/veloromanov/sport-backoffice/internal/http/middlewarectx"
	"github.com/veloromanov/sport-backoffice/internal/http/response"
	"github.com/veloromanov/sport-backoffice/internal/lib/sl"
	"github.com/veloromanov/sport-backoffice/internal/models"
	"github.com/veloromanov/sport-backoffice/internal/storage/repository"
)

// Handler обрабатывает запросы на получение схем раздела пользователей.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Конфигуратор раздела пользователей
}

// Service описывает интерфейс конфигуратора раздела пользователей.
type Service interface {
	BuildFormSchema(ctx context.Context, subject *models.User) schema.Form
	BuildListSchema(viewer useradmin.Viewer) schema.List
	BuildFilterSchema(ctx context.Context) schema.Filter
	BuildShowSchema() schema.Show
	ExportFields() []string
	GetUser(ctx context.Context, uid string) (*models.User, error)
}

// New создает новый Handler с переданными логгером и конфигуратором.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func viewerFromContext(ctx context.Context) useradmin.Viewer {
	username, _ := ctx.Value(middlewarectx.User).(string)
	role, _ := ctx.Value(middlewarectx.Role).(string)
	return useradmin.Viewer{Username: username, Role: role}
}

// Form godoc
// @Summary Схема формы пользователя
// @Description Возвращает схему формы редактирования пользователя. С параметром id строит схему для существующего субъекта.
// @Tags AdminUsers
// @Produce json
// @Security BearerAuth
// @Param section path string true "Метка раздела админки"
// @Param id query string false "UID существующего пользователя"
// @Success 200 {object} map[string]any "Схема формы"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/{section}/users/schema/form [get]
func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.adminuser.adminschema.form"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var subject *models.User
	if uid := r.URL.Query().Get("id"); uid != "" {
		user, err := h.service.GetUser(r.Context(), uid)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				log.Error("user not found", slog.String("uid", uid))
				w.WriteHeader(http.StatusNotFound)
				render.JSON(w, r, response.Error("user not found"))
				return
			}
			log.Error("failed to get user", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not get user"))
			return
		}
		subject = user
	}

	form := h.service.BuildFormSchema(r.Context(), subject)
	log.Info("success to build form schema", slog.Int("groups", len(form.Groups)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"form": form,
	}))
}

// List godoc
// @Summary Схема списка пользователей
// @Description Возвращает схему колонок списка. Колонка имперсонации видна только зрителю с правом переключения.
// @Tags AdminUsers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Схема списка"
// @Router /admin/users/schema/list [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.adminuser.adminschema.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	list := h.service.BuildListSchema(viewerFromContext(r.Context()))
	log.Info("success to build list schema", slog.Int("columns", len(list.Columns)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"list": list,
	}))
}

// Filter godoc
// @Summary Схема фильтров списка пользователей
// @Tags AdminUsers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Схема фильтров"
// @Router /admin/users/schema/filter [get]
func (h *Handler) Filter(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"filter": h.service.BuildFilterSchema(r.Context()),
	}))
}

// Show godoc
// @Summary Схема карточки просмотра пользователя
// @Tags AdminUsers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Схема карточки"
// @Router /admin/users/schema/show [get]
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"show": h.service.BuildShowSchema(),
	}))
}

// ExportFields godoc
// @Summary Поля выгрузки пользователей
// @Description Возвращает список полей выгрузки. Поля password и salt никогда не попадают в список.
// @Tags AdminUsers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Список полей"
// @Router /admin/users/export/fields [get]
func (h *Handler) ExportFields(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"fields": h.service.ExportFields(),
	}))
}
