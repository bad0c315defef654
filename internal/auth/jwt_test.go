package auth

import (
	"testing"
	"time"

	"promolink/config"
	"promolink/internal/domain"

	"github.com/stretchr/testify/assert"
)

func testConfig() *config.JWTConfig {
	return &config.JWTConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessExpiry:  time.Minute,
		RefreshExpiry: time.Hour,
		Issuer:        "promolink-test",
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	cfg := testConfig()
	token, err := GenerateAccessToken(cfg, 42, "user@example.com", domain.RolePromoter)
	assert.NoError(t, err)

	claims, err := ParseAccessToken(cfg, token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.True(t, claims.IsPromoter())
	assert.False(t, claims.IsBusiness())
}

func TestParseAccessToken_WrongIssuer(t *testing.T) {
	issued := testConfig()
	issued.Issuer = "someone-else"
	token, err := GenerateAccessToken(issued, 42, "user@example.com", domain.RoleBusiness)
	assert.NoError(t, err)

	_, err = ParseAccessToken(testConfig(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	cfg := testConfig()
	token, err := GenerateRefreshToken(cfg, 7)
	assert.NoError(t, err)

	userID, err := ParseRefreshToken(cfg, token)
	assert.NoError(t, err)
	assert.Equal(t, uint(7), userID)
}

func TestParseRefreshToken_RejectsAccessSecret(t *testing.T) {
	cfg := testConfig()
	token, err := GenerateAccessToken(cfg, 7, "user@example.com", domain.RolePromoter)
	assert.NoError(t, err)

	// Access tokens must not pass as refresh tokens.
	_, err = ParseRefreshToken(cfg, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
