package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wms/backend/internal/interfaces/http/dto"
)

// CronSecretHeader carries the shared secret on scheduled trigger calls
const CronSecretHeader = "X-Cron-Secret"

// CronSecret guards scheduler-triggered endpoints with a shared secret.
// The comparison is constant time. An empty configured secret rejects
// every request so the endpoint cannot be left open by accident.
func CronSecret(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader(CronSecretHeader)
		if secret == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			requestID := c.GetString("request_id")
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeUnauthorized, "Invalid cron secret", requestID))
			return
		}
		c.Next()
	}
}
