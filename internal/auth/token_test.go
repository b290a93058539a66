package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenValidator(t *testing.T) {
	tv := NewTokenValidator("test-secret-key", time.Hour)

	assert.NotNil(t, tv)
	assert.Equal(t, "test-secret-key", tv.secret)
	assert.Equal(t, time.Hour, tv.accessTokenExpiry)
}

func TestTokenValidator_GenerateAndValidate(t *testing.T) {
	secret := "b8a3c2267dc85f855dea9b46b452bf20"
	tv := NewTokenValidator(secret, time.Hour)

	t.Run("round trip", func(t *testing.T) {
		userID := "a9b8c7d6-0000-0000-0000-000000000001"
		token, err := tv.GenerateAccessToken(userID)
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		sub, err := tv.ValidateAccessToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID, sub)
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		token, err := tv.GenerateAccessToken("user-1")
		require.NoError(t, err)

		other := NewTokenValidator("different-secret", time.Hour)
		_, err = other.ValidateAccessToken(token)
		assert.Error(t, err)
	})

	t.Run("expired token rejected", func(t *testing.T) {
		expired := NewTokenValidator(secret, -time.Hour)
		token, err := expired.GenerateAccessToken("user-1")
		require.NoError(t, err)

		_, err = tv.ValidateAccessToken(token)
		assert.Error(t, err)
	})

	t.Run("malformed token rejected", func(t *testing.T) {
		_, err := tv.ValidateAccessToken("not.a.token")
		assert.Error(t, err)
	})

	t.Run("wrong token type rejected", func(t *testing.T) {
		claims := jwt.MapClaims{
			"sub":  "user-1",
			"exp":  time.Now().Add(time.Hour).Unix(),
			"iat":  time.Now().Unix(),
			"type": "refresh",
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		tokenString, err := token.SignedString([]byte(secret))
		require.NoError(t, err)

		_, err = tv.ValidateAccessToken(tokenString)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not an access token")
	})

	t.Run("missing subject rejected", func(t *testing.T) {
		claims := jwt.MapClaims{
			"exp":  time.Now().Add(time.Hour).Unix(),
			"iat":  time.Now().Unix(),
			"type": "access",
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		tokenString, err := token.SignedString([]byte(secret))
		require.NoError(t, err)

		_, err = tv.ValidateAccessToken(tokenString)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "subject not found")
	})

	t.Run("unexpected signing method rejected", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
			"sub":  "user-1",
			"type": "access",
		})
		tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = tv.ValidateAccessToken(tokenString)
		assert.Error(t, err)
	})
}
