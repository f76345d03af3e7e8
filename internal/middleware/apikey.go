package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"github.com/seasurvey/transect-backend-go/pkg/response"
)

// APIKeyHeader is the header holding the shared secret
const APIKeyHeader = "api-key"

// APIKey rejects requests whose api-key header does not match key.
// When enabled is false every request passes.
func APIKey(enabled bool, key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			c.Next()
			return
		}

		got := c.GetHeader(APIKeyHeader)
		if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			response.Forbidden(c, "Not allowed")
			return
		}
		c.Next()
	}
}
