package middlewarectx_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veloromanov/sport-backoffice/internal/admin/useradmin"
	"github.com/veloromanov/sport-backoffice/internal/http/middlewarectx"
	jwtlib "github.com/veloromanov/sport-backoffice/internal/lib/jwt"
	"github.com/veloromanov/sport-backoffice/internal/models"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestJWTMiddleware(t *testing.T) {
	maker := jwtlib.NewJWTMaker("test-secret", time.Hour)

	nextCalled := false
	var gotUser, gotRole string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		gotUser, _ = r.Context().Value(middlewarectx.User).(string)
		gotRole, _ = r.Context().Value(middlewarectx.Role).(string)
	})

	handler := middlewarectx.JWTMiddleware(maker, discardLogger())(next)

	t.Run("валидный токен попадает в контекст", func(t *testing.T) {
		token, err := maker.GenerateToken("alice", models.RoleAdmin)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/sports", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, nextCalled)
		assert.Equal(t, "alice", gotUser)
		assert.Equal(t, models.RoleAdmin, gotRole)
	})

	t.Run("отсутствующий заголовок", func(t *testing.T) {
		nextCalled = false
		req := httptest.NewRequest(http.MethodGet, "/api/v1/sports", nil)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.False(t, nextCalled)
	})

	t.Run("повреждённый токен", func(t *testing.T) {
		nextCalled = false
		req := httptest.NewRequest(http.MethodGet, "/api/v1/sports", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.False(t, nextCalled)
	})

	t.Run("просроченный токен", func(t *testing.T) {
		nextCalled = false
		expired := jwtlib.NewJWTMaker("test-secret", -time.Minute)
		token, err := expired.GenerateToken("alice", models.RoleAdmin)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/sports", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.False(t, nextCalled)
	})
}

func TestRequireRoleMiddleware(t *testing.T) {
	hierarchy := []models.RoleGroup{
		{Role: models.RoleAdmin, Includes: []string{models.RoleUser}},
		{Role: models.RoleSuperAdmin, Includes: []string{models.RoleAdmin}},
	}
	checker := useradmin.New(nil, nil, nil, hierarchy, discardLogger())

	maker := jwtlib.NewJWTMaker("test-secret", time.Hour)

	newHandler := func(nextCalled *bool) http.Handler {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { *nextCalled = true })
		chain := middlewarectx.JWTMiddleware(maker, discardLogger())(
			middlewarectx.RequireRoleMiddleware(discardLogger(), checker, models.RoleAdmin)(next))
		return chain
	}

	tests := []struct {
		name       string
		role       string
		wantStatus int
		wantNext   bool
	}{
		{"администратор проходит", models.RoleAdmin, http.StatusOK, true},
		{"супер-администратор проходит по иерархии", models.RoleSuperAdmin, http.StatusOK, true},
		{"обычный пользователь получает 403", models.RoleUser, http.StatusForbidden, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var nextCalled bool
			token, err := maker.GenerateToken("bob", tt.role)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/sports", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rr := httptest.NewRecorder()

			newHandler(&nextCalled).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantNext, nextCalled)
		})
	}

	t.Run("без аутентификации получает 401", func(t *testing.T) {
		var nextCalled bool
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { nextCalled = true })
		handler := middlewarectx.RequireRoleMiddleware(discardLogger(), checker, models.RoleAdmin)(next)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/sports", nil)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.False(t, nextCalled)
	})
}
