package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techdesk/helpdesk-service/internal/config"
)

func newTestAuthService(users *fakeUserRepo) *AuthService {
	return NewAuthService(config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 15,
		BcryptCost:            4,
	}, users)
}

func TestRegisterAndLogin(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users)

	user, token, exp, err := svc.Register(context.Background(), "Alice", "  Alice@Example.COM ", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEmpty(t, token)
	assert.False(t, exp.IsZero())
	assert.False(t, user.IsAdmin)
	assert.NotEqual(t, "hunter22", user.PasswordHash)

	t.Run("duplicate email conflicts", func(t *testing.T) {
		_, _, _, err := svc.Register(context.Background(), "Imposter", "alice@example.com", "other")
		assert.Equal(t, "CONFLICT", errCode(t, err))
	})

	t.Run("login with normalized email", func(t *testing.T) {
		logged, token, _, err := svc.Login(context.Background(), "ALICE@example.com", "hunter22")
		require.NoError(t, err)
		assert.Equal(t, user.ID, logged.ID)
		assert.NotEmpty(t, token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, _, err := svc.Login(context.Background(), "alice@example.com", "wrong")
		assert.Equal(t, "UNAUTHORIZED", errCode(t, err))
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, _, err := svc.Login(context.Background(), "nobody@example.com", "hunter22")
		assert.Equal(t, "UNAUTHORIZED", errCode(t, err))
	})
}

func TestChangePassword(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users)
	user, _, _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "oldpass")
	require.NoError(t, err)

	t.Run("wrong current password", func(t *testing.T) {
		err := svc.ChangePassword(context.Background(), user.ID, "nope", "newpass")
		assert.Equal(t, "UNAUTHORIZED", errCode(t, err))
	})

	t.Run("rotates the hash", func(t *testing.T) {
		require.NoError(t, svc.ChangePassword(context.Background(), user.ID, "oldpass", "newpass"))

		_, _, _, err := svc.Login(context.Background(), "alice@example.com", "oldpass")
		assert.Equal(t, "UNAUTHORIZED", errCode(t, err))

		_, _, _, err = svc.Login(context.Background(), "alice@example.com", "newpass")
		assert.NoError(t, err)
	})

	t.Run("unknown user", func(t *testing.T) {
		err := svc.ChangePassword(context.Background(), "user-404", "x", "y")
		assert.Equal(t, "NOT_FOUND", errCode(t, err))
	})
}
