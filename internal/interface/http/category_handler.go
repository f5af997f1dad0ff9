package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/navmark/navmark/internal/application"
	"github.com/navmark/navmark/internal/interface/middleware"
	"github.com/navmark/navmark/pkg/response"
	"github.com/navmark/navmark/pkg/validation"
)

// CategoryHandler exposes category CRUD plus the public listing.
type CategoryHandler struct {
	Categories *application.CategoryService
}

func NewCategoryHandler(categories *application.CategoryService) *CategoryHandler {
	return &CategoryHandler{Categories: categories}
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.Categories.List(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, categories, "")
}

type createCategoryRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation failed", validation.ToDetails(err))
		return
	}

	cat, err := h.Categories.Create(c.Request.Context(), middleware.CurrentUserID(c), req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, cat, "Category created")
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Categories.Delete(c.Request.Context(), id, middleware.CurrentUserID(c)); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, nil, "Category deleted")
}

// ListPublic serves the category list used to group a user's public page.
func (h *CategoryHandler) ListPublic(c *gin.Context) {
	categories, err := h.Categories.ListPublic(c.Request.Context(), c.Param("username"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, categories, "")
}
