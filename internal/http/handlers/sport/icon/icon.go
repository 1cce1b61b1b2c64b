// Package icon реализует HTTP-обработчик отдачи файла иконки вида спорта.
//
// Handler извлекает ID из URL-параметров, получает имя файла иконки через
// бизнес-логику и отдает сам файл из каталога иконок. Вид спорта без
// иконки считается ненайденным.
package icon

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/veloromanov/sport-backoffice/internal/http/response"
	"github.com/veloromanov/sport-backoffice/internal/lib/sl"
	"github.com/veloromanov/sport-backoffice/internal/storage/repository"
)

// Handler обрабатывает запросы на получение иконки вида спорта.
type Handler struct {
	log      *slog.Logger // Логгер для записи информации и ошибок
	service  Service      // Сервис бизнес-логики для получения имени файла иконки
	iconsDir string       // Каталог с файлами иконок
}

// Service описывает интерфейс бизнес-логики получения иконки.
type Service interface {
	Icon(ctx context.Context, id int) (string, error)
}

// New создает новый Handler с переданными логгером, сервисом и каталогом иконок.
func New(log *slog.Logger, service Service, iconsDir string) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		iconsDir: iconsDir,
	}
}

// ServeHTTP godoc
// @Summary Иконка вида спорта
// @Description Отдает файл иконки вида спорта. Вид спорта без иконки считается ненайденным.
// @Tags Sports
// @Produce octet-stream
// @Param id path int true "ID вида спорта"
// @Success 200 {file} binary "Файл иконки"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Вид спорта или иконка не найдены"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /sports/{id}/icon [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.sport.icon"

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

	filename, err := h.service.Icon(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Error("icon not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("icon not found"))
			return
		}
		log.Error("failed to get icon", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not get icon"))
		return
	}

	// filepath.Base отсекает попытки выйти из каталога иконок.
	log.Info("success to get icon", slog.Int("id", id), slog.String("filename", filename))
	http.ServeFile(w, r, filepath.Join(h.iconsDir, filepath.Base(filename)))
}
