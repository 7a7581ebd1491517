package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"school-ledger/app/config"
)

func init() {
	config.AppConfig = &config.Config{JWTSecret: []byte("test-secret")}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	assert.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong-pass", hash))
}

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("user-1", "admin@school.example")
	assert.NoError(t, err)

	claims, err := ValidateJWT(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin@school.example", claims.Email)
}

func TestJWTRejectsTamperedToken(t *testing.T) {
	token, err := GenerateJWT("user-1", "admin@school.example")
	assert.NoError(t, err)

	_, err = ValidateJWT(token + "x")
	assert.Error(t, err)

	_, err = ValidateJWT("not-a-token")
	assert.Error(t, err)
}
