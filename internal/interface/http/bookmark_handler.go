package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/navmark/navmark/internal/application"
	"github.com/navmark/navmark/internal/interface/middleware"
	"github.com/navmark/navmark/pkg/response"
	"github.com/navmark/navmark/pkg/validation"
)

// BookmarkHandler exposes bookmark CRUD plus the public listing.
type BookmarkHandler struct {
	Bookmarks *application.BookmarkService
}

func NewBookmarkHandler(bookmarks *application.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{Bookmarks: bookmarks}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		response.Error(c, http.StatusBadRequest, "Invalid id", nil)
		return 0, false
	}
	return id, true
}

func (h *BookmarkHandler) List(c *gin.Context) {
	bookmarks, err := h.Bookmarks.List(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, bookmarks, "")
}

func (h *BookmarkHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	b, err := h.Bookmarks.Get(c.Request.Context(), id, middleware.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, b, "")
}

type createBookmarkRequest struct {
	Title       string  `json:"title" binding:"required,max=255"`
	URL         string  `json:"url" binding:"required"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Icon        string  `json:"icon" binding:"omitempty,max=100"`
	CategoryID  *int64  `json:"categoryId"`
	IsPublic    bool    `json:"isPublic"`
}

func (h *BookmarkHandler) Create(c *gin.Context) {
	var req createBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation failed", validation.ToDetails(err))
		return
	}

	b, err := h.Bookmarks.Create(c.Request.Context(), middleware.CurrentUserID(c), application.CreateBookmarkInput{
		Title:       req.Title,
		URL:         req.URL,
		Description: req.Description,
		Icon:        req.Icon,
		CategoryID:  req.CategoryID,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, b, "Bookmark created")
}

type updateBookmarkRequest struct {
	Title         *string `json:"title" binding:"omitempty,max=255"`
	URL           *string `json:"url"`
	Description   *string `json:"description" binding:"omitempty,max=1000"`
	Icon          *string `json:"icon" binding:"omitempty,max=100"`
	CategoryID    *int64  `json:"categoryId"`
	ClearCategory bool    `json:"clearCategory"`
	IsPublic      *bool   `json:"isPublic"`
}

func (h *BookmarkHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation failed", validation.ToDetails(err))
		return
	}

	b, err := h.Bookmarks.Update(c.Request.Context(), id, middleware.CurrentUserID(c), application.UpdateBookmarkInput{
		Title:         req.Title,
		URL:           req.URL,
		Description:   req.Description,
		Icon:          req.Icon,
		CategoryID:    req.CategoryID,
		ClearCategory: req.ClearCategory,
		IsPublic:      req.IsPublic,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, b, "Bookmark updated")
}

func (h *BookmarkHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Bookmarks.Delete(c.Request.Context(), id, middleware.CurrentUserID(c)); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, nil, "Bookmark deleted")
}

// ListPublic serves the unauthenticated bookmark list of a user's page.
func (h *BookmarkHandler) ListPublic(c *gin.Context) {
	bookmarks, err := h.Bookmarks.ListPublic(c.Request.Context(), c.Param("username"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, bookmarks, "")
}
