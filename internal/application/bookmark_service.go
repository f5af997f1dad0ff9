package application

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/navmark/navmark/internal/domain/entity"
	repo "github.com/navmark/navmark/internal/domain/repository"
)

const defaultIcon = "🔗"

// BookmarkService enforces the bookmark business rules: URL validity, the
// per-account ceiling, and category ownership.
type BookmarkService struct {
	Bookmarks  repo.BookmarkRepository
	Categories repo.CategoryRepository
	Users      repo.UserRepository
}

func NewBookmarkService(bookmarks repo.BookmarkRepository, categories repo.CategoryRepository, users repo.UserRepository) *BookmarkService {
	return &BookmarkService{Bookmarks: bookmarks, Categories: categories, Users: users}
}

func validURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}

func (s *BookmarkService) List(ctx context.Context, userID int64) ([]*entity.Bookmark, error) {
	return s.Bookmarks.ListByUser(ctx, userID)
}

func (s *BookmarkService) Get(ctx context.Context, id, userID int64) (*entity.Bookmark, error) {
	b, err := s.Bookmarks.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrBookmarkNotFound
		}
		return nil, err
	}
	return b, nil
}

// CreateBookmarkInput is the write shape for new bookmarks.
type CreateBookmarkInput struct {
	Title       string
	URL         string
	Description *string
	Icon        string
	CategoryID  *int64
	IsPublic    bool
}

func (s *BookmarkService) Create(ctx context.Context, userID int64, in CreateBookmarkInput) (*entity.Bookmark, error) {
	title := strings.TrimSpace(in.Title)
	rawURL := strings.TrimSpace(in.URL)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if rawURL == "" {
		return nil, ErrURLRequired
	}
	if !validURL(rawURL) {
		return nil, ErrInvalidURL
	}

	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	count, err := s.Bookmarks.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count >= int64(u.BookmarkLimit) {
		return nil, ErrBookmarkLimit
	}

	if in.CategoryID != nil {
		if _, err := s.Categories.GetByID(ctx, *in.CategoryID, userID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
	}

	icon := in.Icon
	if icon == "" {
		icon = defaultIcon
	}
	b := &entity.Bookmark{
		UserID:      userID,
		Title:       title,
		URL:         rawURL,
		Description: in.Description,
		Icon:        icon,
		CategoryID:  in.CategoryID,
		IsPublic:    in.IsPublic,
	}
	if err := s.Bookmarks.Create(ctx, b); err != nil {
		return nil, err
	}
	// Re-read to resolve the category name for the response.
	return s.Get(ctx, b.ID, userID)
}

// UpdateBookmarkInput carries partial bookmark updates; nil fields are left
// untouched. ClearCategory detaches the bookmark from its category.
type UpdateBookmarkInput struct {
	Title         *string
	URL           *string
	Description   *string
	Icon          *string
	CategoryID    *int64
	ClearCategory bool
	IsPublic      *bool
}

func (s *BookmarkService) Update(ctx context.Context, id, userID int64, in UpdateBookmarkInput) (*entity.Bookmark, error) {
	b, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		b.Title = title
	}
	if in.URL != nil {
		rawURL := strings.TrimSpace(*in.URL)
		if rawURL == "" {
			return nil, ErrURLRequired
		}
		if !validURL(rawURL) {
			return nil, ErrInvalidURL
		}
		b.URL = rawURL
	}
	if in.Description != nil {
		b.Description = in.Description
	}
	if in.Icon != nil && *in.Icon != "" {
		b.Icon = *in.Icon
	}
	if in.ClearCategory {
		b.CategoryID = nil
	} else if in.CategoryID != nil {
		if _, err := s.Categories.GetByID(ctx, *in.CategoryID, userID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		b.CategoryID = in.CategoryID
	}
	if in.IsPublic != nil {
		b.IsPublic = *in.IsPublic
	}

	if err := s.Bookmarks.Update(ctx, b); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrBookmarkNotFound
		}
		return nil, err
	}
	return s.Get(ctx, id, userID)
}

func (s *BookmarkService) Delete(ctx context.Context, id, userID int64) error {
	if err := s.Bookmarks.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrBookmarkNotFound
		}
		return err
	}
	return nil
}

// ListPublic returns the public bookmarks of a visible user.
func (s *BookmarkService) ListPublic(ctx context.Context, username string) ([]*entity.Bookmark, error) {
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if u.Disabled {
		return nil, ErrAccountDisabled
	}
	return s.Bookmarks.ListPublicByUser(ctx, u.ID)
}
