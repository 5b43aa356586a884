package service

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/microblog/pkg/apperr"
)

func TestNameResolver(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "Alice")
	resolver := NewNameResolver(env.userRepo)

	u, err := resolver.Resolve(ctx, "Alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, u.ID)

	// case-sensitive: the token is a credential, not a display string
	_, err = resolver.Resolve(ctx, "alice")
	assert.ErrorIs(t, err, apperr.ErrUserNotFound)

	_, err = resolver.Resolve(ctx, "")
	assert.ErrorIs(t, err, apperr.ErrUserNotFound)
}

func TestJWTResolver(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "Alice")
	secret := []byte("test-secret")
	resolver := NewJWTResolver(env.userRepo, secret)

	sign := func(t *testing.T, key []byte, claims jwt.MapClaims) string {
		t.Helper()
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}

	u, err := resolver.Resolve(ctx, sign(t, secret, jwt.MapClaims{"name": "Alice"}))
	require.NoError(t, err)
	assert.Equal(t, alice.ID, u.ID)

	_, err = resolver.Resolve(ctx, sign(t, []byte("wrong-secret"), jwt.MapClaims{"name": "Alice"}))
	assert.ErrorIs(t, err, apperr.ErrUserNotFound)

	_, err = resolver.Resolve(ctx, sign(t, secret, jwt.MapClaims{"sub": "1"}))
	assert.ErrorIs(t, err, apperr.ErrUserNotFound)

	_, err = resolver.Resolve(ctx, sign(t, secret, jwt.MapClaims{"name": "nobody"}))
	assert.ErrorIs(t, err, apperr.ErrUserNotFound)

	_, err = resolver.Resolve(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, apperr.ErrUserNotFound)
}
