package postgres

import (
	"context"

	"github.com/navmark/navmark/internal/domain/repository"
)

type DataRepository struct {
	db DB
}

func NewDataRepository(db DB) *DataRepository {
	return &DataRepository{db: db}
}

// Import merges categories by name and inserts bookmarks in one transaction.
// Existing categories keep their id; bookmarks referencing unknown category
// names stay uncategorized.
func (r *DataRepository) Import(ctx context.Context, userID int64, categories []string, bookmarks []repository.ImportBookmark) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	categoryIDs := make(map[string]int64, len(categories))
	for _, name := range categories {
		var id int64
		err := tx.QueryRow(ctx, `
			INSERT INTO categories (user_id, name)
			VALUES ($1, $2)
			ON CONFLICT (user_id, name) DO UPDATE SET updated_at = now()
			RETURNING id
		`, userID, name).Scan(&id)
		if err != nil {
			return err
		}
		categoryIDs[name] = id
	}

	for _, b := range bookmarks {
		var categoryID *int64
		if b.CategoryName != nil {
			if id, ok := categoryIDs[*b.CategoryName]; ok {
				categoryID = &id
			}
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO bookmarks (user_id, title, url, description, icon, category_id, is_public)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, userID, b.Title, b.URL, b.Description, b.Icon, categoryID, b.IsPublic); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

var _ repository.DataRepository = (*DataRepository)(nil)
