package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"shortly/internal/auth"
	"shortly/internal/logger"
)

const adminSubjectKey = "admin_subject"

// RequireAdmin rejects requests without a valid admin bearer token.
func RequireAdmin(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokens == nil || !tokens.Enabled() {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error":      "Admin API is disabled",
				"error_code": "ADMIN_DISABLED",
			})
			return
		}

		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "Authorization header must be in format: Bearer {token}",
				"error_code": "UNAUTHORIZED",
			})
			return
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			logger.Warn().Err(err).Str("ip", GetIP(c)).Msg("rejected admin token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "Invalid or expired token",
				"error_code": "UNAUTHORIZED",
			})
			return
		}

		c.Set(adminSubjectKey, claims.Subject)
		c.Next()
	}
}

// GetAdminSubject returns the subject of the verified admin token.
func GetAdminSubject(c *gin.Context) string {
	return c.GetString(adminSubjectKey)
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}
