package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vartaverse/varta/backend/internal/auth"
	"github.com/vartaverse/varta/backend/internal/logger"
	"github.com/vartaverse/varta/backend/internal/util"
	"go.uber.org/zap"
)

// OptionalAuth sets user_id, user_name and user_email from a valid bearer token.
// Requests without a token, or with an invalid one, continue anonymously.
func OptionalAuth(authService auth.AuthServiceInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := authService.ValidateToken(token)
		if err != nil {
			logger.Log.Debug("Ignoring invalid token",
				logger.WithRequestID(RequestID(c)),
				zap.Error(err),
			)
			c.Next()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_name", claims.Name)
		c.Set("user_email", claims.Email)
		c.Next()
	}
}

// RequireAuth rejects requests that OptionalAuth did not authenticate
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("user_id") == "" {
			util.RespondUnauthorized(c, "authentication required")
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
