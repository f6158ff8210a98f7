package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParseRoundTrip(t *testing.T) {
	token, err := GenerateToken("usr_abc", "secret", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := ParseToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "usr_abc", userID)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("usr_abc", "secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, "other-secret")
	require.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	token, err := GenerateToken("usr_abc", "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, "secret")
	require.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken("definitely.not.ajwt", "secret")
	require.Error(t, err)
}
