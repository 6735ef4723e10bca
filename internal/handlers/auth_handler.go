package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lambda-handler-factory/internal/middleware"
)

// AuthHandler issues development tokens for handlers guarded by Authenticate
type AuthHandler struct {
	authService *middleware.AuthService
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authService *middleware.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// TokenRequest represents the token request body
type TokenRequest struct {
	UserID string   `json:"user_id" binding:"required"`
	Roles  []string `json:"roles"`
}

// IssueToken signs a token for the requested user
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	token, err := h.authService.GenerateToken(req.UserID, req.Roles)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "token_failed",
			Message: "Failed to generate token",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
