package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session binds a signed token to one club for a fixed window. The token
// carries only the opaque session id, never the club's credentials.
type Session struct {
	ID        string
	ClubID    string
	ExpiresAt time.Time
}

type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// signToken wraps a session id in an HS256 JWT with an absolute expiry.
func signToken(secret []byte, sessionID string, expiresAt time.Time) (string, error) {
	claims := sessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// parseToken verifies the signature and expiry and returns the session id.
func parseToken(secret []byte, tokenString string) (string, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid || claims.SessionID == "" {
		return "", errors.New("invalid session token")
	}
	return claims.SessionID, nil
}
