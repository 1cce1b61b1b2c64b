package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"

	"github.com/veloromanov/sport-backoffice/internal/http/response"
)

// KnownSectionMiddleware проверяет метку раздела админки из URL по списку
// сконфигурированных разделов и отвечает 404 на незнакомую метку, не
// обращаясь к хранилищу.
func KnownSectionMiddleware(log *slog.Logger, sections []string) func(http.Handler) http.Handler {
	known := make(map[string]struct{}, len(sections))
	for _, section := range sections {
		known[section] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			section := chi.URLParam(r, "section")
			if _, ok := known[section]; !ok {
				log.Error("unknown admin section", slog.String("section", section))
				w.WriteHeader(http.StatusNotFound)
				render.JSON(w, r, response.Error("section not found"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
