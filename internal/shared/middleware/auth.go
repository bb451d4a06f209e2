package middleware

import (
	"strings"

	"catalog-backend/internal/shared/apperror"
	"catalog-backend/internal/shared/response"
	"catalog-backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Context keys set by Authenticate.
const (
	ContextUserID   = "userID"
	ContextUsername = "username"
)

// Authenticate resolves the caller from "Authorization: Bearer <jwt>" or
// "Authorization: Token <jwt>". It never rejects: a missing or invalid token
// leaves the request anonymous and RequireAuthenticated decides.
func Authenticate(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromHeader(c.GetHeader("Authorization"))
		if token == "" {
			c.Next()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(token)
		if err != nil {
			log.Debug().
				Err(err).
				Str("request_id", c.GetString(ContextRequestID)).
				Msg("ignoring invalid token")
			c.Next()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Next()
	}
}

// RequireAuthenticated answers 403 to anonymous callers.
func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAuthenticated(c) {
			response.FromError(c, apperror.Forbidden("Authentication credentials were not provided."))
			c.Abort()
			return
		}
		c.Next()
	}
}

// IsAuthenticated reports whether Authenticate accepted a token.
func IsAuthenticated(c *gin.Context) bool {
	return c.GetString(ContextUserID) != ""
}

func tokenFromHeader(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 {
		return ""
	}
	switch strings.ToLower(parts[0]) {
	case "bearer", "token":
		return parts[1]
	default:
		return ""
	}
}
