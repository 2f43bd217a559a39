package middleware

import (
	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
)

// Logger middleware logs incoming requests and their responses
func Logger(logger coreport.Logger, timeProvider coreport.TimeProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := timeProvider.Now()
		path := c.Request.URL.Path
		method := c.Request.Method
		ip := c.ClientIP()

		c.Next()

		latency := timeProvider.Since(start)
		statusCode := c.Writer.Status()

		fields := map[string]any{
			"method":      method,
			"path":        path,
			"route":       c.FullPath(),
			"status":      statusCode,
			"latency_ms":  latency.Milliseconds(),
			"ip":          ip,
			"request_id":  coreport.RequestIDFromContext(c.Request.Context()),
			"user_agent":  c.Request.UserAgent(),
			"status_text": statusText(statusCode),
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.Errors()
		}

		switch {
		case statusCode >= 500:
			logger.Error("Request processed", fields)
		case statusCode >= 400:
			logger.Warn("Request processed", fields)
		default:
			logger.Info("Request processed", fields)
		}
	}
}

// statusText returns the text for the HTTP status code
func statusText(code int) string {
	switch {
	case code >= 100 && code < 200:
		return "Informational"
	case code >= 200 && code < 300:
		return "Success"
	case code >= 300 && code < 400:
		return "Redirect"
	case code >= 400 && code < 500:
		return "Client Error"
	default:
		return "Server Error"
	}
}
