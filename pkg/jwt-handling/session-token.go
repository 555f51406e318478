package jwthandling

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Information a session token encodes
type SessionClaims struct {
	Email     string `json:"email,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	jwt.RegisteredClaims
}

// GenerateNewSessionToken signs a session token for the given user id. Used by
// the emulated identity provider in development and by tests; in production
// the token arrives from the external identity provider.
func GenerateNewSessionToken(
	expiresIn time.Duration,
	userID string,
	email string,
	secretKey string,
) (tokenString string, err error) {
	claims := SessionClaims{
		email,
		uuid.NewString(),
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   userID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err = token.SignedString([]byte(secretKey))
	return
}

func ValidateSessionToken(tokenString string, secretKey string) (claims *SessionClaims, valid bool, err error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})
	if token == nil {
		return
	}
	claims, valid = token.Claims.(*SessionClaims)
	valid = valid && token.Valid
	return
}
