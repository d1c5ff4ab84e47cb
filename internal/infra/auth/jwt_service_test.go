package auth

import (
	"testing"
	"time"

	"logbid/config"
	"logbid/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func createTestTokenService(t *testing.T) *jwtService {
	cfg := &config.Config{}
	cfg.SecretKey.Access = testSecret

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	return svc.(*jwtService)
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)

	return signed
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	_, err := NewJWTService(&config.Config{})
	assert.Error(t, err)
}

func TestValidateToken(t *testing.T) {
	svc := createTestTokenService(t)
	userID := uuid.New()

	tokenString := signToken(t, testSecret, jwt.MapClaims{
		"sub":  userID.String(),
		"role": entity.RoleAgent.String(),
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	claims, err := svc.ValidateToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, entity.RoleAgent.String(), claims.Role)
}

func TestValidateToken_RejectsWrongSecret(t *testing.T) {
	svc := createTestTokenService(t)

	tokenString := signToken(t, "another-secret", jwt.MapClaims{
		"sub": uuid.New().String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := svc.ValidateToken(tokenString)
	assert.Error(t, err)
}

func TestValidateToken_RejectsExpiredToken(t *testing.T) {
	svc := createTestTokenService(t)

	tokenString := signToken(t, testSecret, jwt.MapClaims{
		"sub": uuid.New().String(),
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	_, err := svc.ValidateToken(tokenString)
	assert.Error(t, err)
}

func TestValidateToken_RejectsNonUUIDSubject(t *testing.T) {
	svc := createTestTokenService(t)

	tokenString := signToken(t, testSecret, jwt.MapClaims{
		"sub": "importer-42",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := svc.ValidateToken(tokenString)
	assert.Error(t, err)
}
