package authenticating

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/engagement-automation-api/internal/domain"
	"github.com/vfg2006/engagement-automation-api/pkg/apiErrors"
)

func TestService_ValidateToken(t *testing.T) {
	service := NewService("segredo-de-teste")

	t.Run("token válido", func(t *testing.T) {
		token, err := service.IssueToken("user-1", domain.UserRoleAdmin, time.Hour)
		require.NoError(t, err)

		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
		assert.True(t, claims.IsAdmin())
	})

	t.Run("papel padrão é operador", func(t *testing.T) {
		token, err := service.IssueToken("user-2", "", time.Hour)
		require.NoError(t, err)

		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, domain.UserRoleOperator, claims.UserRole)
	})

	t.Run("token expirado", func(t *testing.T) {
		token, err := service.IssueToken("user-1", domain.UserRoleOperator, -time.Minute)
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrExpiredToken)

		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, apiErrors.ErrExpiredToken, authErr.Code)
	})

	t.Run("assinatura de outro segredo", func(t *testing.T) {
		token, err := NewService("outro-segredo").IssueToken("user-1", domain.UserRoleOperator, time.Hour)
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.True(t, IsAuthorizationError(err))
	})

	t.Run("token sem usuário", func(t *testing.T) {
		raw := jwt.NewWithClaims(jwt.SigningMethodHS256, domain.Claims{
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		})
		token, err := raw.SignedString([]byte("segredo-de-teste"))
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("lixo", func(t *testing.T) {
		_, err := service.ValidateToken("nao-e-um-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestService_IssueTokenWithoutSecret(t *testing.T) {
	_, err := NewService("").IssueToken("user-1", domain.UserRoleAdmin, time.Hour)
	assert.ErrorIs(t, err, ErrMissingSecret)
}
