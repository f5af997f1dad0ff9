package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/navmark/navmark/internal/domain/entity"
	"github.com/navmark/navmark/internal/domain/repository"
)

type CategoryRepository struct {
	db DB
}

func NewCategoryRepository(db DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func scanCategory(row pgx.Row) (*entity.Category, error) {
	c := &entity.Category{}
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *CategoryRepository) ListByUser(ctx context.Context, userID int64) ([]*entity.Category, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, name, created_at, updated_at
		FROM categories WHERE user_id = $1 ORDER BY created_at ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]*entity.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) GetByID(ctx context.Context, id, userID int64) (*entity.Category, error) {
	return scanCategory(r.db.QueryRow(ctx, `
		SELECT id, user_id, name, created_at, updated_at
		FROM categories WHERE id = $1 AND user_id = $2
	`, id, userID))
}

func (r *CategoryRepository) GetByName(ctx context.Context, userID int64, name string) (*entity.Category, error) {
	return scanCategory(r.db.QueryRow(ctx, `
		SELECT id, user_id, name, created_at, updated_at
		FROM categories WHERE user_id = $1 AND name = $2
	`, userID, name))
}

func (r *CategoryRepository) Create(ctx context.Context, c *entity.Category) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO categories (user_id, name)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`, c.UserID, c.Name)
	if err := row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

// DeleteAndDetach clears the category link of referencing bookmarks and then
// deletes the category, both inside one transaction.
func (r *CategoryRepository) DeleteAndDetach(ctx context.Context, id, userID int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
		UPDATE bookmarks SET category_id = NULL, updated_at = now()
		WHERE category_id = $1 AND user_id = $2
	`, id, userID); err != nil {
		return err
	}

	res, err := tx.Exec(ctx, `DELETE FROM categories WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return tx.Commit(ctx)
}

func (r *CategoryRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM categories`).Scan(&n)
	return n, err
}

var _ repository.CategoryRepository = (*CategoryRepository)(nil)
