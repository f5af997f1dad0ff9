package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/navmark/navmark/internal/application"
	"github.com/navmark/navmark/internal/interface/middleware"
	"github.com/navmark/navmark/pkg/response"
	"github.com/navmark/navmark/pkg/validation"
)

// AuthHandler exposes registration, login, refresh, and the password
// lifecycle.
type AuthHandler struct {
	Auth *application.AuthService
	// RevealResetCode echoes the reset code in the forgot-password response.
	// Enabled only when mail delivery is off, for development setups.
	RevealResetCode bool
}

func NewAuthHandler(auth *application.AuthService, revealResetCode bool) *AuthHandler {
	return &AuthHandler{Auth: auth, RevealResetCode: revealResetCode}
}

type registerRequest struct {
	Username string `json:"username" binding:"required,username"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation failed", validation.ToDetails(err))
		return
	}

	u, pair, err := h.Auth.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"user":         u,
		"token":        pair.Token,
		"refreshToken": pair.RefreshToken,
	}, "Registration successful")
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation failed", validation.ToDetails(err))
		return
	}

	u, pair, err := h.Auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"user":         u,
		"token":        pair.Token,
		"refreshToken": pair.RefreshToken,
	}, "Login successful")
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation failed", validation.ToDetails(err))
		return
	}

	u := middleware.CurrentUser(c)
	pair, err := h.Auth.Refresh(c.Request.Context(), u, req.RefreshToken)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, pair, "Token refreshed")
}

// Logout is a stateless acknowledgment: tokens are not tracked server side,
// so the client simply discards its pair.
func (h *AuthHandler) Logout(c *gin.Context) {
	response.Success(c, http.StatusOK, nil, "Logged out")
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation failed", validation.ToDetails(err))
		return
	}

	userID := middleware.CurrentUserID(c)
	if err := h.Auth.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, nil, "Password changed successfully")
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation failed", validation.ToDetails(err))
		return
	}

	code, err := h.Auth.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		fail(c, err)
		return
	}

	var data gin.H
	if h.RevealResetCode {
		data = gin.H{"code": code}
	}
	response.Success(c, http.StatusOK, data, "Verification code sent")
}

type resetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required,len=6"`
	NewPassword string `json:"newPassword" binding:"required"`
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation failed", validation.ToDetails(err))
		return
	}

	if err := h.Auth.ResetPassword(c.Request.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, nil, "Password reset successfully")
}
