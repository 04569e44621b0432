package handlers

import (
	"github.com/mediantar/mediantar/internal/http/response"
	"github.com/mediantar/mediantar/internal/logger"
	"github.com/mediantar/mediantar/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextPrincipalKey is where the auth middleware stores the caller identity.
const ContextPrincipalKey = "principal"

// CurrentPrincipal reads the caller identity from the request context and
// responds 401 when it is missing.
func CurrentPrincipal(c *gin.Context) (service.Principal, bool) {
	value, exists := c.Get(ContextPrincipalKey)
	if !exists {
		respondError(c, response.CodeUnauthorized, "unauthorized", nil)
		return service.Principal{}, false
	}
	principal, ok := value.(service.Principal)
	if !ok {
		respondError(c, response.CodeInternal, "invalid auth context", nil)
		return service.Principal{}, false
	}
	return principal, true
}

// RequestLog returns a logger carrying the request_id field.
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

func respondError(c *gin.Context, code int, msg string, err error) {
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}
