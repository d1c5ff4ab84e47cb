package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims carried by the auth provider's JWTs.
type Claims struct {
	UserID uuid.UUID
	Role   string // importer or agent
	jwt.RegisteredClaims
}

// TokenService validates the JWTs issued by the external auth provider.
// Token issuance lives with the provider; this core only verifies.
type TokenService interface {
	// ValidateToken checks the validity of a token string and extracts the claims.
	ValidateToken(tokenString string) (*Claims, error)
}
