package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("unit-test-secret")

func TestSignAndParseToken(t *testing.T) {
	userID := uuid.New()

	raw, err := signToken(userID, testSecret)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	parsed, err := parseToken(raw, testSecret)
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestParseTokenWrongSecret(t *testing.T) {
	raw, err := signToken(uuid.New(), testSecret)
	require.NoError(t, err)

	_, err = parseToken(raw, []byte("a different secret"))
	assert.ErrorIs(t, err, errBadToken)
}

func TestParseTokenGarbage(t *testing.T) {
	for _, raw := range []string{"", "not.a.token", "aaaa.bbbb.cccc"} {
		_, err := parseToken(raw, testSecret)
		assert.ErrorIs(t, err, errBadToken, "input %q", raw)
	}
}

func TestParseTokenRejectsUnexpectedAlgorithm(t *testing.T) {
	// A token signed with "none" must not pass even with a matching payload.
	claims := jwt.MapClaims{
		"sub": uuid.New().String(),
		"iat": time.Now().Unix(),
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = parseToken(unsigned, testSecret)
	assert.ErrorIs(t, err, errBadToken)
}

func TestParseTokenRejectsNonUUIDSubject(t *testing.T) {
	claims := jwt.MapClaims{"sub": "42", "iat": time.Now().Unix()}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)

	_, err = parseToken(raw, testSecret)
	assert.ErrorIs(t, err, errBadToken)
}

func TestHashToken(t *testing.T) {
	h1 := hashToken("token-a")
	h2 := hashToken("token-a")
	h3 := hashToken("token-b")

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 64)
}

func TestTokensCarryNoExpiry(t *testing.T) {
	raw, err := signToken(uuid.New(), testSecret)
	require.NoError(t, err)

	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return testSecret, nil
	})
	require.NoError(t, err)

	claims := tok.Claims.(jwt.MapClaims)
	_, hasExp := claims["exp"]
	assert.False(t, hasExp, "session tokens are revoked server-side, never expired")
}
