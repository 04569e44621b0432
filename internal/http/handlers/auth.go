package handlers

import (
	"github.com/mediantar/mediantar/internal/http/response"

	"github.com/gin-gonic/gin"
)

// LoginRequest login payload
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordRequest password change payload
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// Login authenticates a user and issues a JWT.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	user, token, expiresAt, err := h.AuthService.Login(req.Username, req.Password)
	if err != nil {
		respondWithMappedError(c, err, authErrorRules, "login failed")
		return
	}

	RequestLog(c).Infow("user_login", "user_id", user.ID, "username", user.Username, "role", user.Role)
	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt,
		"user": gin.H{
			"id":         user.ID,
			"username":   user.Username,
			"role":       user.Role,
			"courier_id": user.CourierID,
		},
	})
}

// Me returns the authenticated caller's identity.
func (h *Handler) Me(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		return
	}
	response.Success(c, gin.H{
		"user_id":    principal.UserID,
		"username":   principal.Username,
		"role":       principal.Role,
		"courier_id": principal.CourierID,
	})
}

// ChangePassword rotates the caller's password and revokes issued tokens.
func (h *Handler) ChangePassword(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	if err := h.AuthService.ChangePassword(principal.UserID, req.OldPassword, req.NewPassword); err != nil {
		respondWithMappedError(c, err, authErrorRules, "password change failed")
		return
	}

	RequestLog(c).Infow("password_changed", "user_id", principal.UserID)
	response.SuccessWithMsg(c, "password updated, please login again", nil)
}
