package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizforge/quizforge-go/internal/config"
	"github.com/quizforge/quizforge-go/internal/repository"
	"github.com/quizforge/quizforge-go/internal/utils"
)

func newTestAuth() (*AuthService, *repository.MemoryUserStore) {
	users := repository.NewMemoryUserStore(4) // minimum bcrypt cost, tests only
	cfg := config.Config{
		AccessSecret:   "access-secret",
		RefreshSecret:  "refresh-secret",
		AccessTTLMin:   15,
		RefreshTTLDays: 7,
	}
	return NewAuthService(users, cfg), users
}

func TestRegisterReturnsSanitizedUserAndTokenPair(t *testing.T) {
	auth, _ := newTestAuth()
	res, err := auth.Register(context.Background(), "a@x.com", "Password123", "alice")
	require.NoError(t, err)

	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)
	assert.NotEqual(t, res.AccessToken, res.RefreshToken)
	assert.Equal(t, "alice", res.User.Username)
	assert.True(t, res.User.IsActive)

	// The serialized response must not carry any password material.
	raw, err := json.Marshal(res)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
	assert.NotContains(t, string(raw), "Password123")
}

func TestRegisterDuplicateConflicts(t *testing.T) {
	auth, _ := newTestAuth()
	ctx := context.Background()
	_, err := auth.Register(ctx, "a@x.com", "Password123", "alice")
	require.NoError(t, err)

	_, err = auth.Register(ctx, "a@x.com", "Password123", "alice2")
	assert.ErrorIs(t, err, repository.ErrEmailExists)
	_, err = auth.Register(ctx, "a2@x.com", "Password123", "alice")
	assert.ErrorIs(t, err, repository.ErrUsernameExists)
}

func TestLogin(t *testing.T) {
	auth, _ := newTestAuth()
	ctx := context.Background()
	_, err := auth.Register(ctx, "a@x.com", "Password123", "alice")
	require.NoError(t, err)

	res, err := auth.Login(ctx, "a@x.com", "Password123")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", res.User.Email)

	_, err = auth.Login(ctx, "a@x.com", "WrongPass1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = auth.Login(ctx, "nobody@x.com", "Password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginDisabledAccountIsForbiddenNotUnauthorized(t *testing.T) {
	auth, users := newTestAuth()
	ctx := context.Background()
	_, err := auth.Register(ctx, "a@x.com", "Password123", "alice")
	require.NoError(t, err)

	u, err := users.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	u.IsActive = false

	// Correct password on a disabled account: the distinct error, so the
	// handler can answer 403 instead of 401.
	_, err = auth.Login(ctx, "a@x.com", "Password123")
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestLoginTouchesUpdatedAt(t *testing.T) {
	auth, users := newTestAuth()
	ctx := context.Background()
	reg, err := auth.Register(ctx, "a@x.com", "Password123", "alice")
	require.NoError(t, err)

	_, err = auth.Login(ctx, "a@x.com", "Password123")
	require.NoError(t, err)

	u, err := users.FindByIDOrFail(ctx, reg.User.ID)
	require.NoError(t, err)
	assert.False(t, u.UpdatedAt.Before(reg.User.UpdatedAt))
}

func TestRefreshIssuesAccessWithoutRotation(t *testing.T) {
	auth, _ := newTestAuth()
	ctx := context.Background()
	reg, err := auth.Register(ctx, "a@x.com", "Password123", "alice")
	require.NoError(t, err)

	access, err := auth.Refresh(ctx, reg.RefreshToken)
	require.NoError(t, err)

	// The new token verifies against the access secret and names the user.
	claims, err := utils.VerifyToken(access, "access-secret")
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, id)

	// No rotation: the same refresh token keeps working.
	_, err = auth.Refresh(ctx, reg.RefreshToken)
	assert.NoError(t, err)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	auth, _ := newTestAuth()
	ctx := context.Background()
	reg, err := auth.Register(ctx, "a@x.com", "Password123", "alice")
	require.NoError(t, err)

	// An access token is signed with the other secret and must fail closed.
	_, err = auth.Refresh(ctx, reg.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidRefresh)

	_, err = auth.Refresh(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidRefresh)
}

func TestRefreshRejectsDisabledSubject(t *testing.T) {
	auth, users := newTestAuth()
	ctx := context.Background()
	reg, err := auth.Register(ctx, "a@x.com", "Password123", "alice")
	require.NoError(t, err)

	u, err := users.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	u.IsActive = false

	_, err = auth.Refresh(ctx, reg.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefresh)
}

func TestCurrentUser(t *testing.T) {
	auth, _ := newTestAuth()
	ctx := context.Background()
	reg, err := auth.Register(ctx, "a@x.com", "Password123", "alice")
	require.NoError(t, err)

	view, err := auth.CurrentUser(ctx, reg.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", view.Username)

	_, err = auth.CurrentUser(ctx, 999)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}
