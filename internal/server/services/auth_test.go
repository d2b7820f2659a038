package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/akulikov/boardd/internal/common"
	"github.com/akulikov/boardd/internal/server/auth"
)

func TestRegisterActivateLogin(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	user, err := env.auth.Register(ctx, "alice", "alice@example.org", "secret123")
	require.NoError(t, err)
	require.False(t, user.Activated)
	require.NotEmpty(t, env.mailer.codes["alice@example.org"])

	// inactive accounts cannot log in
	_, _, err = env.auth.Login(ctx, "alice", "secret123")
	require.ErrorIs(t, err, common.ErrorUnauthorized)

	require.NoError(t, env.auth.Activate(ctx, "alice@example.org", env.mailer.codes["alice@example.org"]))

	loggedIn, pair, err := env.auth.Login(ctx, "alice", "secret123")
	require.NoError(t, err)
	require.Equal(t, user.ID, loggedIn.ID)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	ident, err := env.tokens.Verify(pair.AccessToken, auth.TokenTypeAccess)
	require.NoError(t, err)
	require.Equal(t, "alice", ident.Username)
}

func TestActivate_WrongCode(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	_, err := env.auth.Register(ctx, "alice", "alice@example.org", "secret123")
	require.NoError(t, err)

	err = env.auth.Activate(ctx, "alice@example.org", "000000x")
	require.ErrorIs(t, err, common.ErrorUnauthorized)

	// unknown accounts answer the same way
	err = env.auth.Activate(ctx, "ghost@example.org", "123456")
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestSendActivationEmail_RegeneratesCode(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	_, err := env.auth.Register(ctx, "alice", "alice@example.org", "secret123")
	require.NoError(t, err)
	first := env.mailer.codes["alice@example.org"]

	require.NoError(t, env.auth.SendActivationEmail(ctx, "alice@example.org"))
	second := env.mailer.codes["alice@example.org"]
	require.NotEmpty(t, second)

	// the first code no longer activates once a new one was issued
	if first != second {
		err = env.auth.Activate(ctx, "alice@example.org", first)
		require.ErrorIs(t, err, common.ErrorUnauthorized)
	}
	require.NoError(t, env.auth.Activate(ctx, "alice@example.org", second))

	// already-active accounts cannot request another code
	err = env.auth.SendActivationEmail(ctx, "alice@example.org")
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestLogin_WrongPassword(t *testing.T) {
	env := setupEnv(t)
	registerActive(t, env, "alice")

	_, _, err := env.auth.Login(context.Background(), "alice", "wrong")
	require.ErrorIs(t, err, common.ErrorUnauthorized)

	_, _, err = env.auth.Login(context.Background(), "nobody", "secret123")
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestRefresh_ReflectsCurrentState(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	user, pair := registerActive(t, env, "alice")

	ident, err := env.tokens.Verify(pair.RefreshToken, auth.TokenTypeRefresh)
	require.NoError(t, err)

	// rename through the profile service, then refresh with the old token
	_, _, err = env.users.Update(ctx, user.ID, "alicia", "", "secret123")
	require.NoError(t, err)

	access, _, err := env.auth.Refresh(ctx, ident)
	require.NoError(t, err)

	fresh, err := env.tokens.Verify(access, auth.TokenTypeAccess)
	require.NoError(t, err)
	require.Equal(t, "alicia", fresh.Username)
}

func TestRefresh_DeletedAccount(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	user, pair := registerActive(t, env, "alice")

	ident, err := env.tokens.Verify(pair.RefreshToken, auth.TokenTypeRefresh)
	require.NoError(t, err)

	require.NoError(t, env.users.Delete(ctx, user.ID, "secret123"))

	_, _, err = env.auth.Refresh(ctx, ident)
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestVerify_RejectsAccessTokenAtRefreshSite(t *testing.T) {
	env := setupEnv(t)
	_, pair := registerActive(t, env, "alice")

	_, err := env.tokens.Verify(pair.AccessToken, auth.TokenTypeRefresh)
	if !errors.Is(err, common.ErrInvalidToken) && !errors.Is(err, common.ErrTokenTypeMismatch) {
		t.Fatalf("expected token rejection, got %v", err)
	}
}
