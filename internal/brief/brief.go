package brief

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a book has no brief yet.
var ErrNotFound = errors.New("cover brief not found")

// Brief is the cover design brief for one book: what the designer (or
// the image model) gets handed.
type Brief struct {
	ID        string    `json:"id"`
	BookSlug  string    `json:"book_slug"`
	Palette   string    `json:"palette"`
	ArtPrompt string    `json:"art_prompt"`
	Typeface  string    `json:"typeface,omitempty"`
	Finish    string    `json:"finish"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Repository defines the contract for brief storage. One brief per book.
type Repository interface {
	Upsert(ctx context.Context, b *Brief) error
	GetByBookSlug(ctx context.Context, slug string) (Brief, error)
}
