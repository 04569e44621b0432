package handlers

import (
	"strconv"

	"github.com/mediantar/mediantar/internal/http/response"
	"github.com/mediantar/mediantar/internal/provider"

	"github.com/gin-gonic/gin"
)

// Handler API handler entry point. All routes share one container.
type Handler struct {
	*provider.Container
}

// New creates the handler
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

// parseIDParam reads a positive numeric :id path parameter.
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid id", nil)
		return 0, false
	}
	return uint(id), true
}
