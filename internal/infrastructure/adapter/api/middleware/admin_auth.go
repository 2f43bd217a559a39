package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/identity"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/api/dto"
)

const adminContextKey = "admin_identity"

// AdminAuth resolves the Authorization header to an administrator and refuses anyone else
func AdminAuth(resolver identity.AdminResolver, logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, err := resolver.CurrentAdmin(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			logger.Error("Administrator lookup failed", map[string]any{
				"error":      err.Error(),
				"request_id": coreport.RequestIDFromContext(c.Request.Context()),
			})
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrInternalServer),
				Message: "Internal server error",
			})
			return
		}
		if admin == nil {
			logger.Warn("Administrator credential rejected", map[string]any{
				"security_event": true,
				"path":           c.Request.URL.Path,
				"client_ip":      c.ClientIP(),
				"request_id":     coreport.RequestIDFromContext(c.Request.Context()),
			})
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(domainerr.ErrUnauthorized))
			return
		}

		c.Set(adminContextKey, admin)
		c.Next()
	}
}

// AdminFromContext returns the administrator stored by AdminAuth, or nil
func AdminFromContext(c *gin.Context) *identity.AdminIdentity {
	v, ok := c.Get(adminContextKey)
	if !ok {
		return nil
	}
	admin, _ := v.(*identity.AdminIdentity)
	return admin
}
