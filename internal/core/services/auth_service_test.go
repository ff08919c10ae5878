package services

import (
	"context"
	"testing"

	"esavers-backend/internal/core/domain"
	"esavers-backend/internal/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	cfg := newTestConfig()
	svc := NewAuthService(st, cfg)
	seedMember(t, st, "u1", "Alice", "alice@example.com")

	t.Run("Known email issues a token and sets the session", func(t *testing.T) {
		result, err := svc.Login(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, "u1", result.User.ID)
		require.NotEmpty(t, result.AccessToken)

		claims, err := jwt.ValidateAccessToken(result.AccessToken, cfg.JWT.Secret)
		require.NoError(t, err)
		assert.Equal(t, "u1", claims.UserID)
		assert.Equal(t, "alice@example.com", claims.Email)
		assert.Equal(t, string(domain.RoleMember), claims.Role)

		current := st.State().CurrentUser
		require.NotNil(t, current)
		assert.Equal(t, "u1", current.ID)
	})

	t.Run("Surrounding whitespace is tolerated", func(t *testing.T) {
		result, err := svc.Login(ctx, "  alice@example.com  ")
		require.NoError(t, err)
		assert.Equal(t, "u1", result.User.ID)
	})

	t.Run("Unknown email leaves the session untouched", func(t *testing.T) {
		svc.Logout(ctx)

		_, err := svc.Login(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, domain.ErrAccountNotFound)
		assert.Nil(t, st.State().CurrentUser)
	})

	t.Run("Empty email is invalid input", func(t *testing.T) {
		_, err := svc.Login(ctx, "   ")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := NewAuthService(st, newTestConfig())
	seedMember(t, st, "u1", "Alice", "alice@example.com")

	_, err := svc.Login(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, st.State().CurrentUser)

	svc.Logout(ctx)
	assert.Nil(t, st.State().CurrentUser)
}

func TestAuthService_GetUserByID(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := NewAuthService(st, newTestConfig())
	seedMember(t, st, "u1", "Alice", "alice@example.com")

	user, err := svc.GetUserByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)

	_, err = svc.GetUserByID(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
