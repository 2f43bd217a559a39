package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
)

// RequestIDHeader carries the request id in and out
const RequestIDHeader = "X-Request-ID"

const maxRequestIDLength = 128

// RequestID propagates the caller's request id, or assigns a new one, through the request context
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}

		c.Request = c.Request.WithContext(coreport.ContextWithRequestID(c.Request.Context(), id))
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
