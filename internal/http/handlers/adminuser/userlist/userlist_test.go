package userlist

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/veloromanov/sport-backoffice/internal/models"
	"github.com/veloromanov/sport-backoffice/internal/storage/repository"
)

// MockService реализует интерфейс userlist.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) ListUsers(ctx context.Context, sectionLabel string, explicit models.UserFilter, limit, offset int) ([]*models.User, error) {
	args := m.Called(ctx, sectionLabel, explicit, limit, offset)
	if res := args.Get(0); res != nil {
		return res.([]*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestUserListHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	locked := true

	tests := []struct {
		name           string
		section        string
		query          string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "список с фильтрами и пагинацией",
			section: "coaches",
			query:   "?username=john&locked=true&limit=10&offset=20",
			setupMock: func(m *MockService) {
				m.On("ListUsers", mock.Anything, "coaches",
					models.UserFilter{Username: "john", Locked: &locked}, 10, 20).
					Return([]*models.User{{Username: "john"}}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"username":"john"`,
		},
		{
			name:    "дефолтная пагинация",
			section: "coaches",
			query:   "",
			setupMock: func(m *MockService) {
				m.On("ListUsers", mock.Anything, "coaches", models.UserFilter{}, 25, 0).
					Return([]*models.User{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"OK"`,
		},
		{
			name:    "limit обрезается до максимума",
			section: "coaches",
			query:   "?limit=1000",
			setupMock: func(m *MockService) {
				m.On("ListUsers", mock.Anything, "coaches", models.UserFilter{}, 100, 0).
					Return([]*models.User{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"OK"`,
		},
		{
			name:           "некорректный locked",
			section:        "coaches",
			query:          "?locked=maybe",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid locked filter"`,
		},
		{
			name:           "некорректный limit",
			section:        "coaches",
			query:          "?limit=-5",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid limit"`,
		},
		{
			name:    "раздел без группы",
			section: "ghosts",
			query:   "",
			setupMock: func(m *MockService) {
				m.On("ListUsers", mock.Anything, "ghosts", models.UserFilter{}, 25, 0).
					Return(nil, repository.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"section not found"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/admin/"+tt.section+"/users"+tt.query, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("section", tt.section)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
