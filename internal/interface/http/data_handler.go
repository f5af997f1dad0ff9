package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/navmark/navmark/internal/application"
	repo "github.com/navmark/navmark/internal/domain/repository"
	"github.com/navmark/navmark/internal/interface/middleware"
	"github.com/navmark/navmark/pkg/response"
	"github.com/navmark/navmark/pkg/validation"
)

// DataHandler exposes whole-account export and import.
type DataHandler struct {
	Data *application.DataService
}

func NewDataHandler(data *application.DataService) *DataHandler {
	return &DataHandler{Data: data}
}

func (h *DataHandler) Export(c *gin.Context) {
	data, err := h.Data.Export(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, data, "")
}

type importBookmark struct {
	Title        string  `json:"title" binding:"required,max=255"`
	URL          string  `json:"url" binding:"required,url"`
	Description  *string `json:"description" binding:"omitempty,max=1000"`
	Icon         string  `json:"icon" binding:"omitempty,max=100"`
	CategoryName *string `json:"categoryName" binding:"omitempty,max=50"`
	IsPublic     bool    `json:"isPublic"`
}

type importRequest struct {
	Categories []string         `json:"categories" binding:"omitempty,dive,max=50"`
	Bookmarks  []importBookmark `json:"bookmarks" binding:"omitempty,dive"`
}

func (h *DataHandler) Import(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation failed", validation.ToDetails(err))
		return
	}

	in := application.ImportInput{Categories: req.Categories}
	for _, b := range req.Bookmarks {
		in.Bookmarks = append(in.Bookmarks, repo.ImportBookmark{
			Title:        b.Title,
			URL:          b.URL,
			Description:  b.Description,
			Icon:         b.Icon,
			CategoryName: b.CategoryName,
			IsPublic:     b.IsPublic,
		})
	}

	if err := h.Data.Import(c.Request.Context(), middleware.CurrentUserID(c), in); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"categories": len(req.Categories),
		"bookmarks":  len(req.Bookmarks),
	}, "Data imported successfully")
}
