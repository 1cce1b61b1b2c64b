// Package list реализует HTTP-обработчик получения списка активных видов спорта.
//
// Handler вызывает бизнес-логику чтения списка и возвращает его в JSON-формате.
// Список содержит только активные виды спорта в порядке возрастания ID.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/veloromanov/sport-backoffice/internal/http/response"
	"github.com/veloromanov/sport-backoffice/internal/lib/sl"
	"github.com/veloromanov/sport-backoffice/internal/models"
)

// Handler обрабатывает запросы на получение списка активных видов спорта.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики для чтения списка
}

// Service описывает интерфейс бизнес-логики чтения списка видов спорта.
type Service interface {
	List(ctx context.Context) ([]*models.Sport, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список активных видов спорта
// @Description Возвращает все активные виды спорта в порядке возрастания ID.
// @Tags Sports
// @Produce json
// @Success 200 {object} map[string]any "Список видов спорта"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при чтении списка"
// @Router /sports [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.sport.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	sports, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list sports", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list sports"))
		return
	}

	log.Info("success to list sports", slog.Int("count", len(sports)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"sports": sports,
	}))
}
