package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_RoundTrip(t *testing.T) {
	validator := NewValidator("segredo")

	token, err := validator.GenerateToken(Claims{UserID: 7, UserName: "Ana", UserRoleID: RoleSupervisor}, time.Hour)
	require.NoError(t, err)

	claims, err := validator.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.True(t, claims.HasRole(RoleAdmin, RoleSupervisor))
	assert.False(t, claims.HasRole(RoleAdmin))
}

func TestValidator_Rejects(t *testing.T) {
	validator := NewValidator("segredo")

	expired, err := validator.GenerateToken(Claims{UserID: 1}, -time.Minute)
	require.NoError(t, err)

	otherSecret, err := NewValidator("outro").GenerateToken(Claims{UserID: 1}, time.Hour)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 1}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "Token expirado", token: expired, wantErr: ErrExpiredToken},
		{name: "Assinatura de outro segredo", token: otherSecret, wantErr: ErrInvalidToken},
		{name: "Algoritmo none", token: none, wantErr: ErrInvalidToken},
		{name: "Lixo", token: "abc.def", wantErr: ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := validator.ValidateToken(tt.token)
			assert.True(t, errors.Is(err, tt.wantErr), "erro: %v", err)
		})
	}
}
