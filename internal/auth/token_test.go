package auth

import (
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueParseRoundtrip(t *testing.T) {
	token, err := Issue("secret", 42, "a@example.com")
	require.NoError(t, err)

	userID, email, err := Parse("secret", token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), userID)
	assert.Equal(t, "a@example.com", email)
}

func TestParseWrongSecret(t *testing.T) {
	token, err := Issue("secret", 1, "a@example.com")
	require.NoError(t, err)

	_, _, err = Parse("other", token)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrTokenExpired)
}

func TestParseExpired(t *testing.T) {
	now := time.Now()
	claims := Claims{
		Email: "a@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(1, 10),
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, _, err = Parse("secret", token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseRejectsNonHMAC(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "1"})
	raw, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, _, err = Parse("secret", raw)
	assert.Error(t, err)
}
