// Package auth valida os tokens JWT emitidos pelo portal
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// Perfis de acesso do portal
const (
	RoleAdmin      = 1
	RoleSupervisor = 2
	RoleClient     = 3
)

var (
	ErrInvalidToken = errors.New("auth: token inválido")
	ErrExpiredToken = errors.New("auth: token expirado")
)

// Claims carregadas no token do portal
type Claims struct {
	UserID        int      `json:"user_id"`
	UserName      string   `json:"user_name"`
	UserEmail     string   `json:"user_email"`
	UserRoleID    int      `json:"user_role_id"`
	UserCompanies []string `json:"user_companies,omitempty"`
	jwt.RegisteredClaims
}

// Validator verifica tokens HS256 assinados com o segredo compartilhado
type Validator struct {
	secret []byte
}

func NewValidator(secret string) *Validator {
	return &Validator{secret: []byte(secret)}
}

func (v *Validator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, errors.Wrap(ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// GenerateToken assina as claims com validade ttl
func (v *Validator) GenerateToken(claims Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(v.secret)
	if err != nil {
		return "", errors.Wrap(err, "auth: erro ao assinar token")
	}
	return signed, nil
}

// HasRole informa se as claims pertencem a um dos perfis
func (c *Claims) HasRole(roles ...int) bool {
	for _, role := range roles {
		if c.UserRoleID == role {
			return true
		}
	}
	return false
}
