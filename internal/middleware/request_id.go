package middleware

import (
	"context"

	"github.com/khmer25/shop-api/internal/constants"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID assigns each request an identifier, honoring one supplied
// by an upstream proxy, and echoes it in the response header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(constants.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := context.WithValue(c.Request.Context(), constants.CtxKeyRequestID, requestID)
		c.Request = c.Request.WithContext(ctx)

		c.Writer.Header().Set(constants.HeaderXRequestID, requestID)
		c.Next()
	}
}
