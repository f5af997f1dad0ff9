package repository

import (
	"context"
	"errors"

	"github.com/navmark/navmark/internal/domain/entity"
)

// ErrNotFound is returned when a row does not exist or is not visible to the
// requesting user.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a uniqueness constraint rejects a write.
var ErrDuplicate = errors.New("already exists")

// UserRepository defines user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	UpdatePassword(ctx context.Context, id int64, hash string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, offset, limit int) ([]*entity.User, error)
	Count(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
	Recent(ctx context.Context, limit int) ([]*entity.User, error)
}

// BookmarkRepository defines bookmark operations. All reads and mutations are
// scoped to the owning user.
type BookmarkRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]*entity.Bookmark, error)
	ListPublicByUser(ctx context.Context, userID int64) ([]*entity.Bookmark, error)
	GetByID(ctx context.Context, id, userID int64) (*entity.Bookmark, error)
	Create(ctx context.Context, b *entity.Bookmark) error
	Update(ctx context.Context, b *entity.Bookmark) error
	Delete(ctx context.Context, id, userID int64) error
	CountByUser(ctx context.Context, userID int64) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// CategoryRepository defines category operations.
type CategoryRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]*entity.Category, error)
	GetByID(ctx context.Context, id, userID int64) (*entity.Category, error)
	GetByName(ctx context.Context, userID int64, name string) (*entity.Category, error)
	Create(ctx context.Context, c *entity.Category) error
	// DeleteAndDetach removes the category after clearing the category link of
	// every bookmark that references it. Bookmarks are never deleted.
	DeleteAndDetach(ctx context.Context, id, userID int64) error
	Count(ctx context.Context) (int64, error)
}

// ImportBookmark is a bookmark row to be created during a data import. The
// category is referenced by name; unknown names leave the bookmark
// uncategorized.
type ImportBookmark struct {
	Title        string
	URL          string
	Description  *string
	Icon         string
	CategoryName *string
	IsPublic     bool
}

// DataRepository bundles the transactional import used by /data/import.
type DataRepository interface {
	// Import creates the given categories (merging with existing ones by name)
	// and bookmarks in a single transaction.
	Import(ctx context.Context, userID int64, categories []string, bookmarks []ImportBookmark) error
}
