package authenticating

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/engagement-automation-api/internal/domain"
	"github.com/vfg2006/engagement-automation-api/pkg/apiErrors"
)

//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=mocks

// Authenticator valida os tokens emitidos pelo serviço de identidade.
// IssueToken existe para ferramentas internas e testes.
type Authenticator interface {
	ValidateToken(tokenString string) (*domain.Claims, error)
	IssueToken(userID string, role domain.UserRole, ttl time.Duration) (string, error)
}

type Service struct {
	secret []byte
}

func NewService(secret string) Authenticator {
	return &Service{
		secret: []byte(secret),
	}
}

func (s *Service) IssueToken(userID string, role domain.UserRole, ttl time.Duration) (string, error) {
	if len(s.secret) == 0 {
		return "", NewAuthError(ErrMissingSecret, apiErrors.ErrInternalServer, "")
	}

	claims := domain.Claims{
		UserID:   userID,
		UserRole: role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "")
		}
		logrus.WithError(err).Debug("Token rejeitado")
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "")
	}

	if claims.UserRole == "" {
		claims.UserRole = domain.UserRoleOperator
	}
	return claims, nil
}
