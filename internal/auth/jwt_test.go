package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preciousgifts/sugar-backend/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:        42,
		Username:  "glowfan",
		Email:     "jane@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
		Role:      domain.RoleUser,
	}
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	m := NewJWTManager("test-secret", 15*time.Minute)

	token, err := m.GenerateAccessToken(testUser())
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "glowfan", claims.Username)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "Jane", claims.FirstName)
	assert.Equal(t, "Doe", claims.LastName)
	assert.Equal(t, domain.RoleUser, claims.Role)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "sugar-backend", claims.Issuer)
}

func TestValidateAccessToken_Garbage(t *testing.T) {
	m := NewJWTManager("test-secret", 15*time.Minute)

	claims, err := m.ValidateAccessToken("not-a-token")
	assert.Nil(t, claims)
	assert.Error(t, err)
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	m1 := NewJWTManager("secret-one", 15*time.Minute)
	m2 := NewJWTManager("secret-two", 15*time.Minute)

	token, err := m1.GenerateAccessToken(testUser())
	require.NoError(t, err)

	claims, err := m2.ValidateAccessToken(token)
	assert.Nil(t, claims)
	assert.Error(t, err)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute)

	token, err := m.GenerateAccessToken(testUser())
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	assert.Nil(t, claims)
	assert.Error(t, err)
}

func TestValidateAccessToken_WrongSigningMethod(t *testing.T) {
	m := NewJWTManager("test-secret", 15*time.Minute)

	// A token signed with "none" must be rejected.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: 42})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	assert.Nil(t, claims)
	assert.Error(t, err)
}
