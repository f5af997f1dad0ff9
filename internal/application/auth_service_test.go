package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navmark/navmark/pkg/helpers"
)

func newTestAuthService() (*AuthService, *fakeUserRepo) {
	users := newFakeUserRepo()
	jwt := helpers.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	return NewAuthService(users, jwt, nil, nil, false, nil), users
}

func TestRegister(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	u, pair, err := svc.Register(ctx, "alice", "alice@example.com", "hunter22")
	require.NoError(t, err)
	require.NotNil(t, u)

	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "user", u.Role)
	assert.Equal(t, 99, u.BookmarkLimit)
	assert.Equal(t, "My Navigation", u.SiteName)
	assert.Equal(t, "gradient", u.BgMode)
	assert.Equal(t, 85, u.CardOpacity)
	assert.NotEmpty(t, pair.Token)
	assert.NotEmpty(t, pair.RefreshToken)

	// Stored password is a hash, never the plaintext.
	assert.NotEqual(t, "hunter22", u.Password)
	assert.True(t, helpers.CheckPassword(u.Password, "hunter22"))
}

func TestRegisterPasswordPolicy(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	cases := []struct {
		name     string
		password string
		reason   string
	}{
		{"too short", "a1", "Password must be at least 6 characters long"},
		{"no digit", "abcdef", "Password must contain at least one letter and one number"},
		{"no letter", "123456", "Password must contain at least one letter and one number"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Register(ctx, "bob", "bob@example.com", tc.password)
			var pe *PolicyError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tc.reason, pe.Reason)
		})
	}
}

func TestRegisterDuplicates(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, "alice", "other@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, _, err = svc.Register(ctx, "other", "alice@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc, users := newTestAuthService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		u, pair, err := svc.Login(ctx, "alice", "hunter22")
		require.NoError(t, err)
		assert.Equal(t, "alice", u.Username)
		assert.NotEmpty(t, pair.Token)
	})

	t.Run("unknown username", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "nobody", "hunter22")
		assert.ErrorIs(t, err, ErrUsernameNotFound)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "alice", "wrong999")
		assert.ErrorIs(t, err, ErrIncorrectPassword)
	})

	t.Run("disabled account", func(t *testing.T) {
		u, err := users.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		u.Disabled = true
		require.NoError(t, users.Update(ctx, u))

		_, _, err = svc.Login(ctx, "alice", "hunter22")
		assert.ErrorIs(t, err, ErrAccountDisabled)
	})
}

func TestRefresh(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	u, pair, err := svc.Register(ctx, "alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	t.Run("valid refresh token", func(t *testing.T) {
		fresh, err := svc.Refresh(ctx, u, pair.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, fresh.Token)
		assert.NotEmpty(t, fresh.RefreshToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.Refresh(ctx, u, "not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token of another account", func(t *testing.T) {
		other, otherPair, err := svc.Register(ctx, "bob", "bob@example.com", "hunter22")
		require.NoError(t, err)
		_ = other

		_, err = svc.Refresh(ctx, u, otherPair.RefreshToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestChangePassword(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	u, _, err := svc.Register(ctx, "alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	t.Run("wrong current password", func(t *testing.T) {
		err := svc.ChangePassword(ctx, u.ID, "wrong999", "newpass1")
		assert.ErrorIs(t, err, ErrIncorrectPassword)
	})

	t.Run("weak new password", func(t *testing.T) {
		err := svc.ChangePassword(ctx, u.ID, "hunter22", "short")
		var pe *PolicyError
		assert.ErrorAs(t, err, &pe)
	})

	t.Run("success", func(t *testing.T) {
		require.NoError(t, svc.ChangePassword(ctx, u.ID, "hunter22", "newpass1"))

		_, _, err := svc.Login(ctx, "alice", "hunter22")
		assert.ErrorIs(t, err, ErrIncorrectPassword)
		_, _, err = svc.Login(ctx, "alice", "newpass1")
		assert.NoError(t, err)
	})
}
