package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrielAlencar33564/weather/internal/model"
)

const testSecret = "unit-test-secret"

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken(testSecret, 42, "jane@example.com", "Jane", model.RoleUser, 15)
	require.NoError(t, err)
	require.NotEmpty(t, tok.Token)
	assert.WithinDuration(t, time.Now().UTC().Add(15*time.Minute), tok.Exp, 5*time.Second)

	claim, err := ParseAccessToken(testSecret, tok.Token)
	require.NoError(t, err)
	assert.Equal(t, "42", claim.Subject)
	assert.Equal(t, "jane@example.com", claim.Email)
	assert.Equal(t, "Jane", claim.Name)
	assert.Equal(t, model.RoleUser, claim.Role)
}

func TestParseAccessTokenWrongSecret(t *testing.T) {
	tok, err := NewAccessToken(testSecret, 1, "a@b.c", "A", model.RoleAdmin, 15)
	require.NoError(t, err)

	_, err = ParseAccessToken("some-other-secret", tok.Token)
	assert.Error(t, err)
}

func TestParseAccessTokenExpired(t *testing.T) {
	tok, err := NewAccessToken(testSecret, 1, "a@b.c", "A", model.RoleAdmin, -5)
	require.NoError(t, err)

	_, err = ParseAccessToken(testSecret, tok.Token)
	assert.Error(t, err)
}

func TestParseAccessTokenGarbage(t *testing.T) {
	_, err := ParseAccessToken(testSecret, "not-a-jwt")
	assert.Error(t, err)
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret!", 4)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, "s3cret!"))
	assert.False(t, VerifyPassword(hash, "wrong"))
}
