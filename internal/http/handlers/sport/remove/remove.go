// Package remove реализует HTTP-обработчик удаления вида спорта.
//
// Handler извлекает ID из URL-параметров, вызывает бизнес-логику удаления
// и возвращает подтверждение успеха в JSON-формате.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/veloromanov/sport-backoffice/internal/http/middlewarectx"
	"github.com/veloromanov/sport-backoffice/internal/http/response"
	"github.com/veloromanov/sport-backoffice/internal/lib/sl"
	"github.com/veloromanov/sport-backoffice/internal/storage/repository"
)

// Handler обрабатывает запросы на удаление вида спорта.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики для удаления вида спорта
}

// Service описывает интерфейс бизнес-логики удаления вида спорта.
type Service interface {
	Remove(ctx context.Context, actor string, id int) error
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить вид спорта
// @Description Удаляет вид спорта по идентификатору. Требуется аутентификация.
// @Tags Sports
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID вида спорта"
// @Success 200 {object} map[string]any "Подтверждение удаления"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Вид спорта не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при удалении"
// @Router /sports/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.sport.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	username, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || username == "" {
		log.Error("username not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	if err := h.service.Remove(r.Context(), username, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Error("sport not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("sport not found"))
			return
		}
		log.Error("failed to remove sport", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not remove sport"))
		return
	}

	log.Info("success to remove sport", slog.Int("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"success": true,
	}))
}
