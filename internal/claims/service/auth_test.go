package service

import (
	"context"
	"testing"

	"github.com/pavemint/claimdesk/internal/claims/domain"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seedUser(t, s, "mgr", "rightpass", domain.RoleManager)
	seedUser(t, s, "emp", "emppass", "Employee")

	auth := &AuthService{Store: s}

	t.Run("valid manager credentials", func(t *testing.T) {
		user, err := auth.Login(ctx, "mgr", "rightpass")
		require.NoError(t, err)
		require.Equal(t, "mgr", user.Username)
		require.True(t, user.IsManager())
	})

	t.Run("wrong password is a negative result not an error", func(t *testing.T) {
		_, err := auth.Login(ctx, "mgr", "wrongpass")
		require.ErrorIs(t, err, ErrBadCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := auth.Login(ctx, "ghost", "whatever")
		require.ErrorIs(t, err, ErrBadCredentials)
	})

	t.Run("right password but not a manager", func(t *testing.T) {
		_, err := auth.Login(ctx, "emp", "emppass")
		require.ErrorIs(t, err, ErrBadCredentials)
	})
}

func TestBootstrapEnsureManager(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	boot := &BootstrapService{Store: s}

	created, err := boot.EnsureManager(ctx, "mgr", "initialpass")
	require.NoError(t, err)
	require.True(t, created)

	t.Run("password is hashed not plaintext", func(t *testing.T) {
		user, err := s.Users().GetUserByUsername(ctx, "mgr")
		require.NoError(t, err)
		require.NotEqual(t, "initialpass", user.PasswordHash)
		require.Contains(t, user.PasswordHash, "$argon2id$")
	})

	t.Run("no-op once users exist", func(t *testing.T) {
		created, err := boot.EnsureManager(ctx, "other", "otherpass")
		require.NoError(t, err)
		require.False(t, created)
	})

	t.Run("bootstrapped manager can log in", func(t *testing.T) {
		auth := &AuthService{Store: s}
		user, err := auth.Login(ctx, "mgr", "initialpass")
		require.NoError(t, err)
		require.True(t, user.IsManager())
	})
}
