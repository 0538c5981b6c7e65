package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

type UserRole string

const (
	UserRoleAdmin    UserRole = "admin"
	UserRoleOperator UserRole = "operator"
	UserRoleViewer   UserRole = "viewer"
)

// Claims é emitido pelo serviço de identidade; a API só valida e lê o token
type Claims struct {
	UserID    string   `json:"user_id"`
	UserName  string   `json:"user_name,omitempty"`
	UserEmail string   `json:"user_email,omitempty"`
	UserRole  UserRole `json:"user_role,omitempty"`
	jwt.RegisteredClaims
}

func (c *Claims) IsAdmin() bool {
	return c != nil && c.UserRole == UserRoleAdmin
}
