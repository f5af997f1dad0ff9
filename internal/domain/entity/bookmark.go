package entity

import "time"

// Bookmark is owned by exactly one user and optionally linked to one of the
// owner's categories. CategoryName is populated on reads that join the
// categories table; it is not a stored column.
type Bookmark struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	Title        string    `json:"title"`
	URL          string    `json:"url"`
	Description  *string   `json:"description"`
	Icon         string    `json:"icon"`
	CategoryID   *int64    `json:"categoryId"`
	CategoryName *string   `json:"categoryName,omitempty"`
	IsPublic     bool      `json:"isPublic"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
