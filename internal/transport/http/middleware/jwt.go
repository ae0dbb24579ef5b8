package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"knowledgehub/internal/pkg/jwtutil"
	"knowledgehub/internal/transport/http/response"
)

const (
	ContextUserIDKey   = "user_id"
	ContextUsernameKey = "username"
	ContextEmailKey    = "email"
)

// AuthJWT guards protected endpoints: a missing or invalid token rejects
// the request before it reaches the service layer.
func AuthJWT(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, present := bearerToken(c)
		if !present {
			response.Error(c, 401, response.CodeUnauthorized, "missing authorization header")
			c.Abort()
			return
		}
		authenticate(c, secret, token)
	}
}

// OptionalAuthJWT serves public endpoints: an absent token proceeds as
// anonymous, but a token that is present must still validate.
func OptionalAuthJWT(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, present := bearerToken(c)
		if !present {
			c.Next()
			return
		}
		authenticate(c, secret, token)
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if authHeader == "" {
		return "", false
	}
	return authHeader, true
}

func authenticate(c *gin.Context, secret, authHeader string) {
	const prefix = "Bearer "
	if !strings.HasPrefix(authHeader, prefix) {
		response.Error(c, 401, response.CodeUnauthorized, "invalid authorization scheme")
		c.Abort()
		return
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))
	claims, err := jwtutil.ParseToken(secret, token)
	if err != nil {
		response.Error(c, 401, response.CodeUnauthorized, "invalid or expired token")
		c.Abort()
		return
	}

	c.Set(ContextUserIDKey, claims.UserID)
	c.Set(ContextUsernameKey, claims.Username)
	c.Set(ContextEmailKey, claims.Email)
	c.Next()
}

// CurrentUserID resolves the authenticated caller set by AuthJWT.
func CurrentUserID(c *gin.Context) (uint, bool) {
	idAny, exists := c.Get(ContextUserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := idAny.(uint)
	if !ok || id == 0 {
		return 0, false
	}
	return id, true
}
