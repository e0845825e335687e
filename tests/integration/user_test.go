package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskforge/taskforge-api/internal/models"
	"github.com/taskforge/taskforge-api/internal/services"
	"github.com/taskforge/taskforge-api/tests/testutil"
)

func TestUserService_Integration_RegisterAndAuthenticate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	svc := services.NewUserService(tdb.DB)
	ctx := context.Background()

	user, err := svc.Register(ctx, "John", "Doe", "john@example.com", "password123", models.RoleAdmin)
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "John Doe", user.FullName())
	assert.Equal(t, models.RoleAdmin, user.Role)

	authed, err := svc.Authenticate(ctx, "john@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)

	_, err = svc.Authenticate(ctx, "john@example.com", "wrong-password")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestUserService_Integration_Register_DuplicateEmail(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	svc := services.NewUserService(tdb.DB)
	ctx := context.Background()

	_, err := svc.Register(ctx, "John", "Doe", "john@example.com", "password123", "")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Jane", "Smith", "john@example.com", "password456", "")
	assert.ErrorIs(t, err, services.ErrEmailTaken)
}

func TestUserService_Integration_Register_DefaultsToMember(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	svc := services.NewUserService(tdb.DB)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Jane", "Smith", "jane@example.com", "password123", "")
	require.NoError(t, err)
	assert.Equal(t, models.RoleMember, user.Role)
}

func TestUserService_Integration_GetByEmail(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewUserService(tdb.DB)
	ctx := context.Background()

	created := fixtures.CreateUser(t, testutil.WithEmail("lookup@example.com"))

	user, err := svc.GetByEmail(ctx, "lookup@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = svc.GetByEmail(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, services.ErrUserNotFound)
}
