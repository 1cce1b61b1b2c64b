package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veloromanov/sport-backoffice/internal/models"
)

func TestStorage_CreateAndGetUser(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	groupID := factory.CreateGroup(t, "Coaches")

	user := models.User{
		UID:               uuid.New().String(),
		Username:          "JohnDoe",
		UsernameCanonical: "johndoe",
		Email:             "John@Example.com",
		EmailCanonical:    "john@example.com",
		PasswordHash:      "hashedpassword",
		Gender:            "male",
		Roles:             []string{"ROLE_COACH"},
		Groups:            []models.Group{{ID: groupID, Name: "Coaches"}},
		Enabled:           true,
	}

	uid, err := storage.CreateUser(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, user.UID, uid)

	got, err := storage.GetUserByUID(context.Background(), uid)
	require.NoError(t, err)
	assert.Equal(t, "JohnDoe", got.Username)
	assert.Equal(t, []string{"ROLE_COACH"}, got.Roles)
	require.Len(t, got.Groups, 1)
	assert.Equal(t, "Coaches", got.Groups[0].Name)
}

func TestStorage_CreateUserDuplicateCanonicalUsername(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	factory.CreateUser(t, "JohnDoe", "john@example.com", "")

	_, err := storage.CreateUser(context.Background(), models.User{
		UID:               uuid.New().String(),
		Username:          "johndoe",
		UsernameCanonical: "johndoe",
		Email:             "other@example.com",
		EmailCanonical:    "other@example.com",
		PasswordHash:      "hashedpassword",
		Gender:            "other",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConflict))
}

func TestStorage_GetUserByUsernameCaseInsensitive(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	factory.CreateUser(t, "JohnDoe", "john@example.com", "ROLE_ADMIN")

	got, err := storage.GetUserByUsername(context.Background(), "JOHNDOE")
	require.NoError(t, err)
	assert.Equal(t, "JohnDoe", got.Username)
}

func TestStorage_UpdateUser(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	uid := factory.CreateUser(t, "JohnDoe", "john@example.com", "")

	user, err := storage.GetUserByUID(context.Background(), uid)
	require.NoError(t, err)

	user.Locked = true
	user.Roles = []string{"ROLE_COACH", "ROLE_MODERATOR"}
	count, err := storage.UpdateUser(context.Background(), *user)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	got, err := storage.GetUserByUID(context.Background(), uid)
	require.NoError(t, err)
	assert.True(t, got.Locked)
	assert.Equal(t, []string{"ROLE_COACH", "ROLE_MODERATOR"}, got.Roles)
}

func TestStorage_ListUsersByGroup(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	coaches := factory.CreateGroup(t, "Coaches")
	providers := factory.CreateGroup(t, "Providers")
	factory.CreateUser(t, "coach1", "coach1@example.com", "", coaches)
	factory.CreateUser(t, "coach2", "coach2@example.com", "", coaches)
	factory.CreateUser(t, "provider1", "provider1@example.com", "", providers)

	got, err := storage.ListUsers(context.Background(),
		models.UserFilter{Group: "Coaches"}, 10, 0)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = storage.ListUsers(context.Background(),
		models.UserFilter{Group: "Providers"}, 10, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "provider1", got[0].Username)
}

func TestStorage_ListUsersExplicitFilterOverridesSection(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	coaches := factory.CreateGroup(t, "Coaches")
	factory.CreateUser(t, "coach1", "coach1@example.com", "", coaches)
	locked := factory.CreateUser(t, "coach2", "coach2@example.com", "", coaches)
	_, err := storage.DB.Exec(`UPDATE users SET locked = TRUE WHERE uid = $1`, locked)
	require.NoError(t, err)

	lockedOnly := true
	got, err := storage.ListUsers(context.Background(),
		models.UserFilter{Group: "Coaches", Locked: &lockedOnly}, 10, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "coach2", got[0].Username)
}

func TestStorage_FindGroupByName(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	factory.CreateGroup(t, "Coaches")

	got, err := storage.FindGroupByName(context.Background(), "Coaches")
	require.NoError(t, err)
	assert.Equal(t, "Coaches", got.Name)

	_, err = storage.FindGroupByName(context.Background(), "Nonexistent")
	assert.True(t, errors.Is(err, ErrNotFound))
}
