package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/veloromanov/sport-backoffice/internal/migrations"
)

// setupTestDatabase поднимает контейнер PostgreSQL, применяет миграции
// и возвращает готовое хранилище.
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForListeningPort(nat.Port("5432/tcp")),
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	storage, err := New(dsn)
	require.NoError(t, err)

	migrationsPath, err := filepath.Abs("../../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, migrationsPath))

	cleanup := func() {
		_ = storage.DB.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return storage, cleanup
}

// TestDataFactory содержит методы для создания тестовых данных.
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных.
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateSport создает тестовый вид спорта.
func (f *TestDataFactory) CreateSport(t *testing.T, name string, isActive bool, icon string) int {
	t.Helper()
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO sports (name, is_active, icon)
		VALUES ($1, $2, $3) RETURNING id`,
		name, isActive, icon).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateGroup создает тестовую группу.
func (f *TestDataFactory) CreateGroup(t *testing.T, name string) int {
	t.Helper()
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO groups (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`, name).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateUser создает тестового пользователя с опциональным членством в группах.
func (f *TestDataFactory) CreateUser(t *testing.T, username, email, roles string, groupIDs ...int) string {
	t.Helper()
	uid := uuid.New().String()
	_, err := f.storage.DB.Exec(`INSERT INTO users
		(uid, username, username_canonical, email, email_canonical, password_hash, gender, roles, enabled)
		VALUES ($1, $2, LOWER($2), $3, LOWER($3), 'hashedpassword', 'other', $4, TRUE)`,
		uid, username, email, roles)
	require.NoError(t, err)

	for _, groupID := range groupIDs {
		_, err = f.storage.DB.Exec(`INSERT INTO user_groups (user_uid, group_id) VALUES ($1, $2)`,
			uid, groupID)
		require.NoError(t, err)
	}
	return uid
}
