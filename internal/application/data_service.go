package application

import (
	"context"

	"github.com/navmark/navmark/internal/domain/entity"
	repo "github.com/navmark/navmark/internal/domain/repository"
)

// DataService implements whole-account export and transactional import.
type DataService struct {
	Users      repo.UserRepository
	Bookmarks  repo.BookmarkRepository
	Categories repo.CategoryRepository
	Data       repo.DataRepository
}

func NewDataService(users repo.UserRepository, bookmarks repo.BookmarkRepository, categories repo.CategoryRepository, data repo.DataRepository) *DataService {
	return &DataService{Users: users, Bookmarks: bookmarks, Categories: categories, Data: data}
}

// ExportData is the payload returned by /data/export.
type ExportData struct {
	User       *entity.User       `json:"user"`
	Bookmarks  []*entity.Bookmark `json:"bookmarks"`
	Categories []*entity.Category `json:"categories"`
}

func (s *DataService) Export(ctx context.Context, userID int64) (*ExportData, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	bookmarks, err := s.Bookmarks.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	categories, err := s.Categories.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ExportData{User: u, Bookmarks: bookmarks, Categories: categories}, nil
}

// ImportInput mirrors the export shape; categories are matched by name.
type ImportInput struct {
	Categories []string
	Bookmarks  []repo.ImportBookmark
}

// Import loads categories and bookmarks for the user, enforcing the bookmark
// ceiling against existing plus imported rows.
func (s *DataService) Import(ctx context.Context, userID int64, in ImportInput) error {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return ErrUserNotFound
	}
	existing, err := s.Bookmarks.CountByUser(ctx, userID)
	if err != nil {
		return err
	}
	if existing+int64(len(in.Bookmarks)) > int64(u.BookmarkLimit) {
		return ErrImportOverLimit
	}

	for i := range in.Bookmarks {
		if in.Bookmarks[i].Icon == "" {
			in.Bookmarks[i].Icon = defaultIcon
		}
	}
	return s.Data.Import(ctx, userID, in.Categories, in.Bookmarks)
}
