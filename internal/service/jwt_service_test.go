package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meli-backend-challenge/product-catalog/internal/service"
)

const testSecret = "test-secret-key-with-enough-length-for-hmac"

func TestJWTService_GenerateAndExtract(t *testing.T) {
	t.Parallel()

	t.Run("roundtrip returns the subject", func(t *testing.T) {
		jwtService := service.NewJWTService(testSecret, 3600)

		token, err := jwtService.GenerateToken("admin")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		username, err := jwtService.ExtractUsername(token)
		require.NoError(t, err)
		assert.Equal(t, "admin", username)
	})

	t.Run("token signed with another secret fails verification", func(t *testing.T) {
		issuer := service.NewJWTService(testSecret, 3600)
		verifier := service.NewJWTService("a-completely-different-secret-of-same-size", 3600)

		token, err := issuer.GenerateToken("admin")
		require.NoError(t, err)

		_, err = verifier.ExtractUsername(token)
		require.Error(t, err)
		assert.ErrorIs(t, err, service.ErrInvalidToken)
	})

	t.Run("malformed token fails verification", func(t *testing.T) {
		jwtService := service.NewJWTService(testSecret, 3600)

		_, err := jwtService.ExtractUsername("not-a-jwt-at-all")
		require.Error(t, err)
		assert.ErrorIs(t, err, service.ErrInvalidToken)
	})

	t.Run("expired token fails verification", func(t *testing.T) {
		jwtService := service.NewJWTService(testSecret, -60)

		token, err := jwtService.GenerateToken("admin")
		require.NoError(t, err)

		_, err = jwtService.ExtractUsername(token)
		require.Error(t, err)
		assert.ErrorIs(t, err, service.ErrInvalidToken)
	})

	t.Run("expiresIn is reported in milliseconds", func(t *testing.T) {
		jwtService := service.NewJWTService(testSecret, 3600)
		assert.Equal(t, int64(3600000), jwtService.ExpiresInMillis())
	})
}
