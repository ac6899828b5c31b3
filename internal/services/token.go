package services

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var errBadToken = errors.New("invalid session token")

// signToken creates an HS256 token embedding the user id. There is no exp
// claim: a session ends when its row is deleted from session_tokens, not by
// the clock.
func signToken(userID uuid.UUID, secret []byte) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"iat": time.Now().Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// parseToken verifies the signature and returns the embedded user id. Passing
// signature verification is necessary but not sufficient; callers must still
// check session_tokens membership.
func parseToken(raw string, secret []byte) (uuid.UUID, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !tok.Valid {
		return uuid.Nil, errBadToken
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errBadToken
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errBadToken
	}

	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, errBadToken
	}
	return id, nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
