package library

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound is returned when a book does not exist or belongs to
	// another owner.
	ErrNotFound = errors.New("book not found")
	// ErrInvalidRating is returned when a rating falls outside 1..5.
	// Out-of-range ratings are rejected, not clamped.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

// Category drives which shelf a book appears on.
type Category string

const (
	CategoryWishlist Category = "wishlist"
	CategoryReading  Category = "reading"
	CategoryFinished Category = "finished"
	CategoryOwned    Category = "owned"
)

func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryWishlist, CategoryReading, CategoryFinished, CategoryOwned:
		return Category(s), nil
	default:
		return "", fmt.Errorf("invalid category: %q", s)
	}
}

// Book is a record on one user's shelves. ID and AddedAt are assigned at
// creation and never change; FinishedAt is set the first time the category
// becomes finished and is never cleared automatically.
type Book struct {
	ID            string     `json:"id"`
	OwnerID       string     `json:"owner_id"`
	ISBN          string     `json:"isbn,omitempty"`
	Title         string     `json:"title"`
	Author        string     `json:"author"`
	Description   string     `json:"description,omitempty"`
	CoverURL      string     `json:"cover_url,omitempty"`
	PageCount     int        `json:"page_count,omitempty"`
	PublishedYear *int       `json:"published_year,omitempty"`
	Genres        []string   `json:"genres,omitempty"`
	Category      Category   `json:"category"`
	Rating        *int       `json:"rating,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	IsManual      bool       `json:"is_manual"`
	AddedAt       time.Time  `json:"added_at"`
	FinishedAt    *time.Time `json:"finished_at,omitempty"`
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Category *Category
	Rating   *int
	Notes    *string
}
