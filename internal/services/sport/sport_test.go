package sport

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/veloromanov/sport-backoffice/internal/events"
	"github.com/veloromanov/sport-backoffice/internal/models"
	"github.com/veloromanov/sport-backoffice/internal/storage/repository"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateSport(ctx context.Context, sport models.Sport) (int, error) {
	args := m.Called(ctx, sport)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) FindActiveSports(ctx context.Context) ([]*models.Sport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Sport), args.Error(1)
}
func (m *RepoMock) FindSportByID(ctx context.Context, id int) (*models.Sport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Sport), args.Error(1)
}
func (m *RepoMock) FindSportByName(ctx context.Context, name string) (*models.Sport, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Sport), args.Error(1)
}
func (m *RepoMock) UpdateSport(ctx context.Context, sport models.Sport) (int, error) {
	args := m.Called(ctx, sport)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) DeleteSport(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

type AuditMock struct{ mock.Mock }

func (m *AuditMock) Publish(event events.AuditEvent) error {
	return m.Called(event).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newTestService(r *RepoMock, c *CacheMock, a *AuditMock) *Service {
	return New(r, c, a, newNoopLogger())
}

func TestService_Create(t *testing.T) {
	tests := []struct {
		name       string
		req        models.DummySport
		setupMocks func(r *RepoMock, c *CacheMock, a *AuditMock)
		wantErr    error
		wantActive bool
	}{
		{
			name: "успешное создание, isActive не передан",
			req:  models.DummySport{Name: "Tennis"},
			setupMocks: func(r *RepoMock, c *CacheMock, a *AuditMock) {
				r.On("FindSportByName", mock.Anything, "Tennis").
					Return(nil, repository.ErrNotFound).Once()
				r.On("CreateSport", mock.Anything, mock.MatchedBy(func(s models.Sport) bool {
					return s.Name == "Tennis" && !s.IsActive
				})).Return(7, nil).Once()
				c.On("Invalidate", "sports:active").Return(nil).Once()
				c.On("Set", "sport:7", mock.Anything, time.Hour).Return(nil).Once()
				a.On("Publish", mock.MatchedBy(func(e events.AuditEvent) bool {
					return e.Action == events.SportCreated && e.Subject == "sport:7"
				})).Return(nil).Once()
			},
			wantActive: false,
		},
		{
			name: "успешное создание с isActive=true",
			req:  models.DummySport{Name: "Tennis", IsActive: "true"},
			setupMocks: func(r *RepoMock, c *CacheMock, a *AuditMock) {
				r.On("FindSportByName", mock.Anything, "Tennis").
					Return(nil, repository.ErrNotFound).Once()
				r.On("CreateSport", mock.Anything, mock.MatchedBy(func(s models.Sport) bool {
					return s.IsActive
				})).Return(8, nil).Once()
				c.On("Invalidate", "sports:active").Return(nil).Once()
				c.On("Set", "sport:8", mock.Anything, time.Hour).Return(nil).Once()
				a.On("Publish", mock.Anything).Return(nil).Once()
			},
			wantActive: true,
		},
		{
			name: "имя уже занято, запись не выполняется",
			req:  models.DummySport{Name: "Tennis"},
			setupMocks: func(r *RepoMock, _ *CacheMock, _ *AuditMock) {
				r.On("FindSportByName", mock.Anything, "Tennis").
					Return(&models.Sport{ID: 1, Name: "Tennis"}, nil).Once()
			},
			wantErr: repository.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, c, a := new(RepoMock), new(CacheMock), new(AuditMock)
			tt.setupMocks(r, c, a)
			service := newTestService(r, c, a)

			got, err := service.Create(context.Background(), "admin", tt.req)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				r.AssertNotCalled(t, "CreateSport", mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantActive, got.IsActive)
			}

			r.AssertExpectations(t)
			c.AssertExpectations(t)
			a.AssertExpectations(t)
		})
	}
}

func TestService_List_CacheHit(t *testing.T) {
	r, c, a := new(RepoMock), new(CacheMock), new(AuditMock)
	cached := []*models.Sport{{ID: 1, Name: "Tennis", IsActive: true}}
	c.On("Get", "sports:active", mock.Anything).Run(func(args mock.Arguments) {
		ptr := args.Get(1).(*[]*models.Sport)
		*ptr = cached
	}).Return(true, nil).Once()

	service := newTestService(r, c, a)
	got, err := service.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, cached, got)
	r.AssertNotCalled(t, "FindActiveSports", mock.Anything)
}

func TestService_List_CacheMiss(t *testing.T) {
	r, c, a := new(RepoMock), new(CacheMock), new(AuditMock)
	stored := []*models.Sport{{ID: 1, Name: "Tennis", IsActive: true}}
	c.On("Get", "sports:active", mock.Anything).Return(false, nil).Once()
	r.On("FindActiveSports", mock.Anything).Return(stored, nil).Once()
	c.On("Set", "sports:active", mock.Anything, time.Hour).Return(nil).Once()

	service := newTestService(r, c, a)
	got, err := service.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, stored, got)
	r.AssertExpectations(t)
}

func TestService_Update(t *testing.T) {
	name := func(s string) *string { return &s }

	tests := []struct {
		name       string
		id         int
		req        models.DummySportUpdate
		setupMocks func(r *RepoMock, c *CacheMock, a *AuditMock)
		wantErr    error
		check      func(t *testing.T, got *models.Sport, r *RepoMock)
	}{
		{
			name: "имя не изменилось, запись не выполняется",
			id:   1,
			req:  models.DummySportUpdate{Name: name("Tennis")},
			setupMocks: func(r *RepoMock, _ *CacheMock, _ *AuditMock) {
				r.On("FindSportByID", mock.Anything, 1).
					Return(&models.Sport{ID: 1, Name: "Tennis", IsActive: true}, nil).Once()
			},
			check: func(t *testing.T, got *models.Sport, r *RepoMock) {
				assert.Equal(t, "Tennis", got.Name)
				r.AssertNotCalled(t, "UpdateSport", mock.Anything, mock.Anything)
			},
		},
		{
			name: "смена имени на занятое",
			id:   1,
			req:  models.DummySportUpdate{Name: name("Football")},
			setupMocks: func(r *RepoMock, _ *CacheMock, _ *AuditMock) {
				r.On("FindSportByID", mock.Anything, 1).
					Return(&models.Sport{ID: 1, Name: "Tennis"}, nil).Once()
				r.On("FindSportByName", mock.Anything, "Football").
					Return(&models.Sport{ID: 2, Name: "Football"}, nil).Once()
			},
			wantErr: repository.ErrConflict,
		},
		{
			name: "переключение isActive без смены имени",
			id:   1,
			req: models.DummySportUpdate{
				IsActive: name("false"),
			},
			setupMocks: func(r *RepoMock, c *CacheMock, a *AuditMock) {
				r.On("FindSportByID", mock.Anything, 1).
					Return(&models.Sport{ID: 1, Name: "Tennis", IsActive: true}, nil).Once()
				r.On("UpdateSport", mock.Anything, mock.MatchedBy(func(s models.Sport) bool {
					return !s.IsActive && s.Name == "Tennis"
				})).Return(1, nil).Once()
				c.On("Invalidate", "sports:active").Return(nil).Once()
				c.On("Set", "sport:1", mock.Anything, time.Hour).Return(nil).Once()
				a.On("Publish", mock.Anything).Return(nil).Once()
			},
			check: func(t *testing.T, got *models.Sport, _ *RepoMock) {
				assert.False(t, got.IsActive)
			},
		},
		{
			name: "запись отсутствует",
			id:   404,
			req:  models.DummySportUpdate{Name: name("Tennis")},
			setupMocks: func(r *RepoMock, _ *CacheMock, _ *AuditMock) {
				r.On("FindSportByID", mock.Anything, 404).
					Return(nil, repository.ErrNotFound).Once()
			},
			wantErr: repository.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, c, a := new(RepoMock), new(CacheMock), new(AuditMock)
			tt.setupMocks(r, c, a)
			service := newTestService(r, c, a)

			got, err := service.Update(context.Background(), "admin", tt.id, tt.req)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
			} else {
				require.NoError(t, err)
				tt.check(t, got, r)
			}

			r.AssertExpectations(t)
			c.AssertExpectations(t)
			a.AssertExpectations(t)
		})
	}
}

func TestService_Remove(t *testing.T) {
	t.Run("успешное удаление", func(t *testing.T) {
		r, c, a := new(RepoMock), new(CacheMock), new(AuditMock)
		r.On("DeleteSport", mock.Anything, 1).Return(1, nil).Once()
		c.On("Invalidate", "sports:active").Return(nil).Once()
		c.On("Invalidate", "sport:1").Return(nil).Once()
		a.On("Publish", mock.MatchedBy(func(e events.AuditEvent) bool {
			return e.Action == events.SportDeleted
		})).Return(nil).Once()

		service := newTestService(r, c, a)
		err := service.Remove(context.Background(), "admin", 1)

		require.NoError(t, err)
		r.AssertExpectations(t)
	})

	t.Run("запись отсутствует", func(t *testing.T) {
		r, c, a := new(RepoMock), new(CacheMock), new(AuditMock)
		r.On("DeleteSport", mock.Anything, 404).Return(0, nil).Once()

		service := newTestService(r, c, a)
		err := service.Remove(context.Background(), "admin", 404)

		require.Error(t, err)
		assert.True(t, errors.Is(err, repository.ErrNotFound))
	})
}

func TestService_Icon(t *testing.T) {
	t.Run("иконка задана", func(t *testing.T) {
		r, c, a := new(RepoMock), new(CacheMock), new(AuditMock)
		c.On("Get", "sport:1", mock.Anything).Return(false, nil).Once()
		r.On("FindSportByID", mock.Anything, 1).
			Return(&models.Sport{ID: 1, Name: "Tennis", Icon: "tennis.png"}, nil).Once()
		c.On("Set", "sport:1", mock.Anything, time.Hour).Return(nil).Once()

		service := newTestService(r, c, a)
		icon, err := service.Icon(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, "tennis.png", icon)
	})

	t.Run("иконка не задана", func(t *testing.T) {
		r, c, a := new(RepoMock), new(CacheMock), new(AuditMock)
		c.On("Get", "sport:2", mock.Anything).Return(false, nil).Once()
		r.On("FindSportByID", mock.Anything, 2).
			Return(&models.Sport{ID: 2, Name: "Chess"}, nil).Once()
		c.On("Set", "sport:2", mock.Anything, time.Hour).Return(nil).Once()

		service := newTestService(r, c, a)
		_, err := service.Icon(context.Background(), 2)

		require.Error(t, err)
		assert.True(t, errors.Is(err, repository.ErrNotFound))
	})
}
