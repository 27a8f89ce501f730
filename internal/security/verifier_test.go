package security_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/vidshare/internal/security"
)

func sign(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func TestHS256Verifier(t *testing.T) {
	secret := []byte("supersecret")
	v := security.NewHS256Verifier(string(secret), "")
	actor := uuid.New()

	t.Run("valid uid claim", func(t *testing.T) {
		tok := sign(t, jwt.SigningMethodHS256, secret, jwt.MapClaims{
			"uid": actor.String(), "role": "user", "exp": time.Now().Add(time.Hour).Unix(),
		})
		c, err := v.VerifyAccessToken(tok)
		require.NoError(t, err)
		assert.Equal(t, actor, c.ActorID)
		assert.Equal(t, "user", c.Role)
	})

	t.Run("falls back to sub", func(t *testing.T) {
		tok := sign(t, jwt.SigningMethodHS256, secret, jwt.MapClaims{
			"sub": actor.String(), "exp": time.Now().Add(time.Hour).Unix(),
		})
		c, err := v.VerifyAccessToken(tok)
		require.NoError(t, err)
		assert.Equal(t, actor, c.ActorID)
	})

	t.Run("expired", func(t *testing.T) {
		tok := sign(t, jwt.SigningMethodHS256, secret, jwt.MapClaims{
			"uid": actor.String(), "exp": time.Now().Add(-time.Minute).Unix(),
		})
		_, err := v.VerifyAccessToken(tok)
		assert.ErrorIs(t, err, security.ErrTokenExpired)
	})

	t.Run("wrong signature", func(t *testing.T) {
		tok := sign(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"uid": actor.String()})
		_, err := v.VerifyAccessToken(tok)
		assert.ErrorIs(t, err, security.ErrTokenInvalid)
	})

	t.Run("non uuid subject", func(t *testing.T) {
		tok := sign(t, jwt.SigningMethodHS256, secret, jwt.MapClaims{"uid": "user-1"})
		_, err := v.VerifyAccessToken(tok)
		assert.ErrorIs(t, err, security.ErrTokenInvalid)
	})

	t.Run("wrong algorithm", func(t *testing.T) {
		tok := sign(t, jwt.SigningMethodHS512, secret, jwt.MapClaims{"uid": actor.String()})
		_, err := v.VerifyAccessToken(tok)
		assert.ErrorIs(t, err, security.ErrTokenInvalid)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := v.VerifyAccessToken("not.a.jwt")
		assert.ErrorIs(t, err, security.ErrTokenInvalid)
	})
}

func TestHS256Verifier_Issuer(t *testing.T) {
	secret := []byte("supersecret")
	v := security.NewHS256Verifier(string(secret), "auth-service")
	actor := uuid.New()

	ok := sign(t, jwt.SigningMethodHS256, secret, jwt.MapClaims{"uid": actor.String(), "iss": "auth-service"})
	_, err := v.VerifyAccessToken(ok)
	assert.NoError(t, err)

	bad := sign(t, jwt.SigningMethodHS256, secret, jwt.MapClaims{"uid": actor.String(), "iss": "someone-else"})
	_, err = v.VerifyAccessToken(bad)
	assert.ErrorIs(t, err, security.ErrTokenInvalid)
}
