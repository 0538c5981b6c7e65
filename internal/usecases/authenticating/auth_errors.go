package authenticating

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidToken  = errors.New("token inválido")
	ErrExpiredToken  = errors.New("token expirado")
	ErrMissingSecret = errors.New("segredo de assinatura não configurado")
)

// AuthError carrega o código da API junto do erro de token, para o middleware responder sem traduzir
type AuthError struct {
	Err     error
	Code    string
	Details string
}

func (e *AuthError) Error() string {
	if e.Details == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Err, e.Details)
}

func (e *AuthError) Unwrap() error        { return e.Err }
func (e *AuthError) ErrorCode() string    { return e.Code }
func (e *AuthError) ErrorDetails() string { return e.Details }

// IsAuthorizationError indica se o token foi recusado, seja por assinatura ou por expiração
func IsAuthorizationError(err error) bool {
	return errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrExpiredToken)
}

func NewAuthError(baseErr error, code string, details string) *AuthError {
	return &AuthError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}
