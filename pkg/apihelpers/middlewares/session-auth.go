package middlewares

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	jwthandling "github.com/Kleo07/MindSpaceX/pkg/jwt-handling"
)

const HeaderAuthorization = "Authorization"

// Context key under which the validated session claims are stored.
const VALIDATED_SESSION_KEY = "validatedSession"

// GetAndValidateSessionToken extracts the bearer token of the identity
// provider session from the request and validates it.
func GetAndValidateSessionToken(tokenSignKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := extractToken(c)
		if err != nil {
			slog.Warn("no Authorization token found")
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": err.Error()})
			c.Abort()
			return
		}

		claims, valid, err := jwthandling.ValidateSessionToken(token, tokenSignKey)
		if err != nil || !valid {
			errMsg := "invalid token"
			if err != nil {
				errMsg = err.Error()
			}
			slog.Warn("session token validation failed", slog.String("error", errMsg))
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "error during token validation"})
			c.Abort()
			return
		}
		c.Set(VALIDATED_SESSION_KEY, claims)
	}
}

// GetValidatedSession returns the claims stored by GetAndValidateSessionToken.
func GetValidatedSession(c *gin.Context) (*jwthandling.SessionClaims, bool) {
	value, exists := c.Get(VALIDATED_SESSION_KEY)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*jwthandling.SessionClaims)
	return claims, ok
}

func extractToken(c *gin.Context) (string, error) {
	req := c.Request

	var token string
	tokens, ok := req.Header[HeaderAuthorization]
	if ok && len(tokens) > 0 {
		token = tokens[0]
		token = strings.TrimPrefix(token, "Bearer ")
		if len(token) == 0 {
			return token, errors.New("no token found in Authorization header")
		}
	} else {
		return token, errors.New("no Authorization header found")
	}
	return token, nil
}
