package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/navmark/navmark/internal/application"
	"github.com/navmark/navmark/internal/interface/middleware"
	"github.com/navmark/navmark/pkg/response"
	"github.com/navmark/navmark/pkg/validation"
)

// maxBackgroundBytes caps background image uploads at 5 MiB.
const maxBackgroundBytes = 5 << 20

// UserHandler exposes the authenticated profile surface and the public
// profile endpoint.
type UserHandler struct {
	Users *application.UserService
}

func NewUserHandler(users *application.UserService) *UserHandler {
	return &UserHandler{Users: users}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	u, err := h.Users.GetProfile(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "")
}

type updateProfileRequest struct {
	Email             *string `json:"email" binding:"omitempty,email"`
	SiteName          *string `json:"siteName" binding:"omitempty,max=100"`
	SiteDesc          *string `json:"siteDesc" binding:"omitempty,max=500"`
	BgMode            *string `json:"bgMode" binding:"omitempty,oneof=gradient solid image"`
	BgColor           *string `json:"bgColor" binding:"omitempty,max=32"`
	BgImage           *string `json:"bgImage" binding:"omitempty,url"`
	EnableParticles   *bool   `json:"enableParticles"`
	ParticleStyle     *string `json:"particleStyle" binding:"omitempty,max=32"`
	ParticleColor     *string `json:"particleColor" binding:"omitempty,max=32"`
	CardColor         *string `json:"cardColor" binding:"omitempty,max=32"`
	CardOpacity       *int    `json:"cardOpacity" binding:"omitempty,gte=0,lte=100"`
	CardTextColor     *string `json:"cardTextColor" binding:"omitempty,max=32"`
	EnableMinimalMode *bool   `json:"enableMinimalMode"`
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation failed", validation.ToDetails(err))
		return
	}

	u, err := h.Users.UpdateProfile(c.Request.Context(), middleware.CurrentUserID(c), application.UpdateProfileInput{
		Email:             req.Email,
		SiteName:          req.SiteName,
		SiteDesc:          req.SiteDesc,
		BgMode:            req.BgMode,
		BgColor:           req.BgColor,
		BgImage:           req.BgImage,
		EnableParticles:   req.EnableParticles,
		ParticleStyle:     req.ParticleStyle,
		ParticleColor:     req.ParticleColor,
		CardColor:         req.CardColor,
		CardOpacity:       req.CardOpacity,
		CardTextColor:     req.CardTextColor,
		EnableMinimalMode: req.EnableMinimalMode,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "Profile updated successfully")
}

func (h *UserHandler) DeleteAccount(c *gin.Context) {
	if err := h.Users.DeleteAccount(c.Request.Context(), middleware.CurrentUserID(c)); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, nil, "Account deleted successfully")
}

// UploadBackground accepts a multipart image and stores it in object storage.
func (h *UserHandler) UploadBackground(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Image file is required", nil)
		return
	}
	if file.Size > maxBackgroundBytes {
		response.Error(c, http.StatusBadRequest, "Image must be smaller than 5MB", nil)
		return
	}

	f, err := file.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Cannot read uploaded file", nil)
		return
	}
	defer f.Close()

	url, err := h.Users.UploadBackground(c.Request.Context(), middleware.CurrentUserID(c), f, file.Filename, file.Header.Get("Content-Type"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"url": url}, "Background uploaded")
}

// GetPublicProfile serves the unauthenticated /users/:username page data.
func (h *UserHandler) GetPublicProfile(c *gin.Context) {
	p, err := h.Users.GetPublicProfile(c.Request.Context(), c.Param("username"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "")
}
