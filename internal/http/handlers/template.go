package handlers

import (
	"strings"

	"github.com/mediantar/mediantar/internal/http/response"
	"github.com/mediantar/mediantar/internal/service"

	"github.com/gin-gonic/gin"
)

// UpsertTemplateRequest template creation/replacement payload
type UpsertTemplateRequest struct {
	TemplateType string `json:"template_type" binding:"required"`
	Body         string `json:"body" binding:"required"`
}

// ListTemplates lists the caller's message templates.
func (h *Handler) ListTemplates(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		return
	}
	templates, err := h.TemplateService.List(principal)
	if err != nil {
		respondError(c, response.CodeInternal, "template list failed", err)
		return
	}
	response.Success(c, gin.H{
		"allowed_types": service.AllowedTemplateTypes(principal),
		"templates":     templates,
	})
}

// GetTemplate returns the caller's template of one type.
func (h *Handler) GetTemplate(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		return
	}
	templateType := strings.TrimSpace(c.Param("type"))
	tmpl, err := h.TemplateService.Get(principal, templateType)
	if err != nil {
		respondWithMappedError(c, err, templateErrorRules, "template fetch failed")
		return
	}
	response.Success(c, tmpl)
}

// UpsertTemplate creates or replaces the caller's template of one type.
func (h *Handler) UpsertTemplate(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		return
	}
	var req UpsertTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	tmpl, err := h.TemplateService.Upsert(principal, req.TemplateType, req.Body)
	if err != nil {
		respondWithMappedError(c, err, templateErrorRules, "template save failed")
		return
	}
	RequestLog(c).Infow("template_saved", "user_id", principal.UserID, "template_type", req.TemplateType)
	response.Success(c, tmpl)
}

// DeleteTemplate removes the caller's template of one type.
func (h *Handler) DeleteTemplate(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		return
	}
	templateType := strings.TrimSpace(c.Param("type"))
	if err := h.TemplateService.Delete(principal, templateType); err != nil {
		respondWithMappedError(c, err, templateErrorRules, "template delete failed")
		return
	}
	response.Success(c, nil)
}
