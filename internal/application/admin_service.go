package application

import (
	"context"
	"errors"

	"github.com/navmark/navmark/internal/domain/entity"
	repo "github.com/navmark/navmark/internal/domain/repository"
)

// superAdminID is the bootstrap account that admin operations may never
// modify or delete.
const superAdminID int64 = 1

// AdminService implements the administrative user-management surface.
type AdminService struct {
	Users      repo.UserRepository
	Bookmarks  repo.BookmarkRepository
	Categories repo.CategoryRepository
}

func NewAdminService(users repo.UserRepository, bookmarks repo.BookmarkRepository, categories repo.CategoryRepository) *AdminService {
	return &AdminService{Users: users, Bookmarks: bookmarks, Categories: categories}
}

// Pagination describes a page of the user listing.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

func (s *AdminService) ListUsers(ctx context.Context, page, limit int) ([]*entity.User, *Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	users, err := s.Users.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, nil, err
	}
	total, err := s.Users.Count(ctx)
	if err != nil {
		return nil, nil, err
	}
	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}
	return users, &Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}, nil
}

// UpdateUserInput carries the admin-settable account fields.
type UpdateUserInput struct {
	Disabled      *bool
	BookmarkLimit *int
	Role          *string
}

func (s *AdminService) UpdateUser(ctx context.Context, id int64, in UpdateUserInput) (*entity.User, error) {
	if id == superAdminID {
		return nil, ErrSuperAdmin
	}
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if in.Disabled != nil {
		u.Disabled = *in.Disabled
	}
	if in.BookmarkLimit != nil {
		u.BookmarkLimit = *in.BookmarkLimit
	}
	if in.Role != nil {
		u.Role = *in.Role
	}
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AdminService) DeleteUser(ctx context.Context, id int64) error {
	if id == superAdminID {
		return ErrSuperAdmin
	}
	if err := s.Users.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// Stats is the system overview returned to administrators.
type Stats struct {
	TotalUsers      int64          `json:"totalUsers"`
	ActiveUsers     int64          `json:"activeUsers"`
	TotalBookmarks  int64          `json:"totalBookmarks"`
	TotalCategories int64          `json:"totalCategories"`
	RecentUsers     []*entity.User `json:"recentUsers"`
}

func (s *AdminService) GetStats(ctx context.Context) (*Stats, error) {
	totalUsers, err := s.Users.Count(ctx)
	if err != nil {
		return nil, err
	}
	activeUsers, err := s.Users.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	totalBookmarks, err := s.Bookmarks.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalCategories, err := s.Categories.Count(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.Users.Recent(ctx, 5)
	if err != nil {
		return nil, err
	}
	return &Stats{
		TotalUsers:      totalUsers,
		ActiveUsers:     activeUsers,
		TotalBookmarks:  totalBookmarks,
		TotalCategories: totalCategories,
		RecentUsers:     recent,
	}, nil
}
