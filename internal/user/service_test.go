package user

import (
	"context"
	"lexdraft/internal/db/dbtest"
	"lexdraft/internal/domain"
	apiError "lexdraft/internal/errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statusOf(t *testing.T, err error) int {
	t.Helper()
	apiErr, ok := err.(*apiError.APIError)
	require.True(t, ok, "expected APIError, got %T", err)
	return apiErr.Status
}

func registered(t *testing.T) (Service, *domain.User) {
	t.Helper()
	svc := NewService(NewRepository(dbtest.Open(t)))
	user := &domain.User{Email: " John@Example.com ", Password: "password123", FullName: "John Doe"}
	require.NoError(t, svc.Register(context.Background(), user))
	return svc, user
}

func TestService_Register(t *testing.T) {
	svc, user := registered(t)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "john@example.com", user.Email)
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.Empty(t, user.Password)

	dup := &domain.User{Email: "JOHN@example.com", Password: "other-pass", FullName: "Copy"}
	err := svc.Register(context.Background(), dup)
	assert.Equal(t, http.StatusUnprocessableEntity, statusOf(t, err))
}

func TestService_Login(t *testing.T) {
	svc, user := registered(t)
	ctx := context.Background()

	got, err := svc.Login(ctx, "john@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.Login(ctx, "john@example.com", "wrong")
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	_, err = svc.Login(ctx, "nobody@example.com", "password123")
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
}

func TestService_UpdateProfile(t *testing.T) {
	svc, user := registered(t)
	ctx := context.Background()

	bio := "Contract lawyer"
	avatar := "https://example.com/a.png"
	updated, err := svc.UpdateProfile(ctx, user.ID, ProfileUpdate{Bio: &bio, AvatarURL: &avatar})
	require.NoError(t, err)
	assert.Equal(t, "Contract lawyer", updated.Bio)
	assert.Equal(t, "https://example.com/a.png", updated.AvatarURL)
	assert.Equal(t, "John Doe", updated.FullName)

	blank := "  "
	_, err = svc.UpdateProfile(ctx, user.ID, ProfileUpdate{FullName: &blank})
	assert.Equal(t, http.StatusUnprocessableEntity, statusOf(t, err))

	_, err = svc.UpdateProfile(ctx, "missing", ProfileUpdate{Bio: &bio})
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestService_IncreaseTokenVersion(t *testing.T) {
	svc, user := registered(t)
	ctx := context.Background()

	require.NoError(t, svc.IncreaseTokenVersion(ctx, user.ID))
	require.NoError(t, svc.IncreaseTokenVersion(ctx, user.ID))

	got, err := svc.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), got.TokenVersion)

	_, err = svc.GetUserByID(ctx, "missing")
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}
