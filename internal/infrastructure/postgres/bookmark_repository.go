package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/navmark/navmark/internal/domain/entity"
	"github.com/navmark/navmark/internal/domain/repository"
)

const bookmarkColumns = `b.id, b.user_id, b.title, b.url, b.description, b.icon,
	b.category_id, c.name, b.is_public, b.created_at, b.updated_at`

type BookmarkRepository struct {
	db DB
}

func NewBookmarkRepository(db DB) *BookmarkRepository {
	return &BookmarkRepository{db: db}
}

func scanBookmark(row pgx.Row) (*entity.Bookmark, error) {
	b := &entity.Bookmark{}
	err := row.Scan(&b.ID, &b.UserID, &b.Title, &b.URL, &b.Description, &b.Icon,
		&b.CategoryID, &b.CategoryName, &b.IsPublic, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func collectBookmarks(rows pgx.Rows) ([]*entity.Bookmark, error) {
	bookmarks := make([]*entity.Bookmark, 0)
	for rows.Next() {
		b, err := scanBookmark(rows)
		if err != nil {
			return nil, err
		}
		bookmarks = append(bookmarks, b)
	}
	return bookmarks, rows.Err()
}

func (r *BookmarkRepository) ListByUser(ctx context.Context, userID int64) ([]*entity.Bookmark, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+bookmarkColumns+`
		FROM bookmarks b
		LEFT JOIN categories c ON c.id = b.category_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookmarks(rows)
}

func (r *BookmarkRepository) ListPublicByUser(ctx context.Context, userID int64) ([]*entity.Bookmark, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+bookmarkColumns+`
		FROM bookmarks b
		LEFT JOIN categories c ON c.id = b.category_id
		WHERE b.user_id = $1 AND b.is_public
		ORDER BY b.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookmarks(rows)
}

func (r *BookmarkRepository) GetByID(ctx context.Context, id, userID int64) (*entity.Bookmark, error) {
	return scanBookmark(r.db.QueryRow(ctx, `
		SELECT `+bookmarkColumns+`
		FROM bookmarks b
		LEFT JOIN categories c ON c.id = b.category_id
		WHERE b.id = $1 AND b.user_id = $2
	`, id, userID))
}

func (r *BookmarkRepository) Create(ctx context.Context, b *entity.Bookmark) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO bookmarks (user_id, title, url, description, icon, category_id, is_public)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, b.UserID, b.Title, b.URL, b.Description, b.Icon, b.CategoryID, b.IsPublic)
	return row.Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *BookmarkRepository) Update(ctx context.Context, b *entity.Bookmark) error {
	b.UpdatedAt = time.Now()
	res, err := r.db.Exec(ctx, `
		UPDATE bookmarks
		SET title = $1, url = $2, description = $3, icon = $4, category_id = $5,
			is_public = $6, updated_at = $7
		WHERE id = $8 AND user_id = $9
	`, b.Title, b.URL, b.Description, b.Icon, b.CategoryID, b.IsPublic, b.UpdatedAt, b.ID, b.UserID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *BookmarkRepository) Delete(ctx context.Context, id, userID int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM bookmarks WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *BookmarkRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM bookmarks WHERE user_id = $1`, userID).Scan(&n)
	return n, err
}

func (r *BookmarkRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM bookmarks`).Scan(&n)
	return n, err
}

var _ repository.BookmarkRepository = (*BookmarkRepository)(nil)
