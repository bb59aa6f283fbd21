package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("secret", "meetpoll", "user_1", "Ana Ruiz", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateAndParseToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "user_1", claims.UserID)
	assert.Equal(t, "Ana Ruiz", claims.DisplayName())
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret", "meetpoll", "user_1", "", time.Hour)
	require.NoError(t, err)

	_, err = ValidateAndParseToken("other", token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenExpired(t *testing.T) {
	token, err := GenerateToken("secret", "meetpoll", "user_1", "", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateAndParseToken("secret", token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestDisplayNameFallsBackToUserID(t *testing.T) {
	claims := &TokenClaims{UserID: "user_9", Name: "  "}
	assert.Equal(t, "user_9", claims.DisplayName())
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	assert.Len(t, a, 7)
	assert.NotEqual(t, a, b)
}
