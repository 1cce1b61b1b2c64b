package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/veloromanov/sport-backoffice/internal/admin/useradmin"
	"github.com/veloromanov/sport-backoffice/internal/http/response"
)

// RoleChecker описывает интерфейс проверки роли по иерархии.
type RoleChecker interface {
	IsGranted(viewer useradmin.Viewer, role string) bool
}

// RequireRoleMiddleware создает middleware, пропускающий только
// запросы от пользователей, которым выдана требуемая роль — напрямую
// или через иерархию ролей.
func RequireRoleMiddleware(log *slog.Logger, checker RoleChecker, required string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, ok := r.Context().Value(User).(string)
			if !ok || username == "" {
				log.Error("user identification missing")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user identification missing"))
				return
			}
			role, _ := r.Context().Value(Role).(string)

			viewer := useradmin.Viewer{Username: username, Role: role}
			if !checker.IsGranted(viewer, required) {
				log.Error("access denied",
					slog.String("username", username),
					slog.String("role", role),
					slog.String("required", required))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("access denied"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
