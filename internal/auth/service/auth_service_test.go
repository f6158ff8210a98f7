package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/carteapp/carte-backend/internal/auth/domain"
	"github.com/carteapp/carte-backend/internal/auth/repository"
)

func newTestService(t *testing.T) *AuthService {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	authn, err := NewStaticAuthenticator("demo", "password")
	require.NoError(t, err)

	identities := repository.NewIdentityRepository(client, time.Hour)
	return NewAuthService(authn, identities, "test-secret", time.Hour, zap.NewNop())
}

func TestLogin_Success(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	id, token, err := svc.Login(ctx, "demo", "password")
	require.NoError(t, err)
	require.NotNil(t, id)

	assert.Equal(t, "demo", id.Username)
	assert.Equal(t, "demo@example.com", id.Email)
	assert.NotEmpty(t, token)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestService(t)

	_, _, err := svc.Login(context.Background(), "demo", "hunter2")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_UnknownUsername(t *testing.T) {
	svc := newTestService(t)

	_, _, err := svc.Login(context.Background(), "admin", "password")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestCurrent_RestoresSession(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, token, err := svc.Login(ctx, "demo", "password")
	require.NoError(t, err)

	id, err := svc.Current(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "demo", id.Username)
}

func TestCurrent_GarbageToken(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Current(context.Background(), "not-a-jwt")
	require.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestRegister_AlwaysSucceeds(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	id, token, err := svc.Register(ctx, "newuser", "new@example.com", "whatever")
	require.NoError(t, err)
	require.NotNil(t, id)

	assert.Equal(t, "newuser", id.Username)
	assert.Equal(t, "new@example.com", id.Email)
	assert.Contains(t, id.ID, "usr_")
	assert.NotEmpty(t, token)

	// The registered session is immediately usable.
	got, err := svc.Current(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, id.ID, got.ID)
}

func TestLogout_InvalidatesSession(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	id, token, err := svc.Login(ctx, "demo", "password")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, id.ID))

	// The token still parses but the identity is gone.
	_, err = svc.Current(ctx, token)
	require.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestLogout_Idempotent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Logout(ctx, "nobody"))
	require.NoError(t, svc.Logout(ctx, "nobody"))
}
