package handler

import (
	"context"
	"net/http"

	"rollingpaper/internal/middleware"
	"rollingpaper/internal/model"
	"rollingpaper/internal/service"

	"github.com/gin-gonic/gin"
)

type LoginService interface {
	SignIn(ctx context.Context, idToken string) (*service.Session, error)
	IsAdmin(caller *model.Identity) bool
}

type AuthHandler struct {
	logins LoginService
}

func NewAuthHandler(logins LoginService) *AuthHandler {
	return &AuthHandler{logins: logins}
}

type GoogleSignInRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

type AuthResponse struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	ExpiresIn   int64          `json:"expires_in"`
	User        model.Identity `json:"user"`
	IsAdmin     bool           `json:"is_admin"`
}

type MeResponse struct {
	User    model.Identity `json:"user"`
	IsAdmin bool           `json:"is_admin"`
}

// GoogleSignIn godoc
// @Summary  Sign in with a Google ID token
// @Tags     Auth
// @Accept   json
// @Produce  json
// @Param    request body GoogleSignInRequest true "Google ID token"
// @Success  200 {object} AuthResponse
// @Failure  400,401 {object} ErrorResponse
// @Router   /auth/google [post]
func (h *AuthHandler) GoogleSignIn(c *gin.Context) {
	var req GoogleSignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	session, err := h.logins.SignIn(c.Request.Context(), req.IDToken)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		AccessToken: session.Token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(session.ExpiresIn.Seconds()),
		User:        session.Identity,
		IsAdmin:     session.IsAdmin,
	})
}

// Me godoc
// @Summary  Current identity
// @Tags     Auth
// @Produce  json
// @Success  200 {object} MeResponse
// @Failure  401 {object} ErrorResponse
// @Security BearerAuth
// @Router   /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	caller := middleware.CurrentIdentity(c)
	if caller == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	c.JSON(http.StatusOK, MeResponse{User: *caller, IsAdmin: h.logins.IsAdmin(caller)})
}
