package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainerr "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/api/dto"
)

// respondError writes the mapped error response. Server-side failures are logged at error level.
func respondError(c *gin.Context, logger coreport.Logger, message string, err error) {
	status := dto.HTTPStatus(err)

	fields := domainerr.Fields(err)
	fields["path"] = c.Request.URL.Path
	fields["request_id"] = coreport.RequestIDFromContext(c.Request.Context())
	if status >= http.StatusInternalServerError {
		logger.Error(message, fields)
	} else {
		logger.Debug(message, fields)
	}

	_ = c.Error(err)
	c.JSON(status, dto.NewErrorResponse(err))
}

// queryLimit parses the optional limit query parameter. Absent means zero, which selects the default.
func queryLimit(c *gin.Context) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, domainerr.ErrInvalidRequest
	}
	return limit, nil
}
