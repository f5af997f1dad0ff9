package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/navmark/navmark/internal/application"
	"github.com/navmark/navmark/pkg/response"
	"github.com/navmark/navmark/pkg/validation"
)

// AdminHandler exposes the administrative user-management surface.
type AdminHandler struct {
	Admin *application.AdminService
}

func NewAdminHandler(admin *application.AdminService) *AdminHandler {
	return &AdminHandler{Admin: admin}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	users, pagination, err := h.Admin.ListUsers(c.Request.Context(), page, limit)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"users":      users,
		"pagination": pagination,
	}, "")
}

type adminUpdateUserRequest struct {
	Disabled      *bool   `json:"disabled"`
	BookmarkLimit *int    `json:"bookmarkLimit" binding:"omitempty,gte=0,lte=10000"`
	Role          *string `json:"role" binding:"omitempty,oneof=user admin"`
}

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req adminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation failed", validation.ToDetails(err))
		return
	}

	u, err := h.Admin.UpdateUser(c.Request.Context(), id, application.UpdateUserInput{
		Disabled:      req.Disabled,
		BookmarkLimit: req.BookmarkLimit,
		Role:          req.Role,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "User updated")
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Admin.DeleteUser(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, nil, "User deleted")
}

func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.Admin.GetStats(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats, "")
}
