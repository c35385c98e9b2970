package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dkoroteev/brawlmate/internal/pkg/response"
)

// Auth guards the admin API with the static token from config.
func Auth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.AuthError(c, "missing Authorization header")
			c.Abort()
			return
		}

		provided := strings.TrimPrefix(header, "Bearer ")
		if token == "" || provided != token {
			response.AuthError(c, "invalid token")
			c.Abort()
			return
		}

		c.Next()
	}
}
