package userupdate

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

	"github.com/veloromanov/sport-backoffice/internal/http/middlewarectx"
	"github.com/veloromanov/sport-backoffice/internal/models"
	"github.com/veloromanov/sport-backoffice/internal/storage/repository"
)

// MockService реализует интерфейс userupdate.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) UpdateUser(ctx context.Context, uid, actor string, req models.DummyUserUpdate) (*models.User, error) {
	args := m.Called(ctx, uid, actor, req)
	if res := args.Get(0); res != nil {
		return res.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestUserUpdateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		uid            string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное обновление",
			uid:  "uid-1",
			body: `{"email":"new@example.com","locked":true}`,
			setupMock: func(m *MockService) {
				m.On("UpdateUser", mock.Anything, "uid-1", "admin",
					mock.MatchedBy(func(req models.DummyUserUpdate) bool {
						return req.Email != nil && *req.Email == "new@example.com" &&
							req.Locked != nil && *req.Locked
					})).
					Return(&models.User{UID: "uid-1", Email: "new@example.com", Locked: true}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"email":"new@example.com"`,
		},
		{
			name:           "некорректный JSON",
			uid:            "uid-1",
			body:           `{"email":`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name:           "некорректный email",
			uid:            "uid-1",
			body:           `{"email":"not-an-email"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Email must be a valid email address`,
		},
		{
			name: "пользователь не найден",
			uid:  "ghost",
			body: `{"locked":true}`,
			setupMock: func(m *MockService) {
				m.On("UpdateUser", mock.Anything, "ghost", "admin", mock.Anything).
					Return(nil, repository.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"user not found"`,
		},
		{
			name: "конфликт имени или email",
			uid:  "uid-1",
			body: `{"email":"taken@example.com"}`,
			setupMock: func(m *MockService) {
				m.On("UpdateUser", mock.Anything, "uid-1", "admin", mock.Anything).
					Return(nil, repository.ErrConflict)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `"error":"username or email already taken"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPut, "/admin/users/"+tt.uid, strings.NewReader(tt.body))
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("uid", tt.uid)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = context.WithValue(ctx, middlewarectx.User, "admin")
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
