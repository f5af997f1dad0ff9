package application

import (
	"context"
	"errors"
	"strings"

	"github.com/navmark/navmark/internal/domain/entity"
	repo "github.com/navmark/navmark/internal/domain/repository"
)

// CategoryService manages per-user bookmark categories.
type CategoryService struct {
	Categories repo.CategoryRepository
	Users      repo.UserRepository
}

func NewCategoryService(categories repo.CategoryRepository, users repo.UserRepository) *CategoryService {
	return &CategoryService{Categories: categories, Users: users}
}

func (s *CategoryService) List(ctx context.Context, userID int64) ([]*entity.Category, error) {
	return s.Categories.ListByUser(ctx, userID)
}

func (s *CategoryService) Create(ctx context.Context, userID int64, name string) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	c := &entity.Category{UserID: userID, Name: name}
	if err := s.Categories.Create(ctx, c); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrCategoryExists
		}
		return nil, err
	}
	return c, nil
}

// Delete removes a category; referencing bookmarks keep existing but lose
// their category link.
func (s *CategoryService) Delete(ctx context.Context, id, userID int64) error {
	if err := s.Categories.DeleteAndDetach(ctx, id, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}

// ListPublic returns the categories of a visible user for the public page.
func (s *CategoryService) ListPublic(ctx context.Context, username string) ([]*entity.Category, error) {
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
	return s.Categories.ListByUser(ctx, u.ID)
}
