package book

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a book is not found.
	ErrNotFound = errors.New("book not found")
	// ErrSlugTaken is returned when a slug already exists.
	ErrSlugTaken = errors.New("slug already exists")
	// ErrBadTransition is returned for a disallowed status change.
	ErrBadTransition = errors.New("invalid status transition")
)

// Book statuses.
const (
	StatusDraft    = "draft"
	StatusInReview = "in_review"
	StatusLive     = "live"
	StatusRetired  = "retired"
)

// Book is one title in the catalog with the metadata KDP asks for
// at upload time.
type Book struct {
	ID             string    `json:"id"`
	Slug           string    `json:"slug"`
	Title          string    `json:"title"`
	Subtitle       string    `json:"subtitle,omitempty"`
	PuzzleType     string    `json:"puzzle_type"`
	Difficulty     string    `json:"difficulty"`
	TrimSize       string    `json:"trim_size"`
	PageCount      int       `json:"page_count"`
	PaperType      string    `json:"paper_type"`
	ListPriceCents int       `json:"list_price_cents"`
	ASIN           *string   `json:"asin,omitempty"`
	Status         string    `json:"status"`
	Description    string    `json:"description,omitempty"`
	Keywords       []string  `json:"keywords,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Query defines filters and pagination for listing books.
type Query struct {
	PuzzleType string
	Difficulty string
	Status     string
	Q          string
	Sort       string
	Desc       bool
	Limit      int
	Offset     int
}

// statusTransitions holds the allowed next statuses for each status.
// Retired is terminal; a live book can be pulled back for review.
var statusTransitions = map[string][]string{
	StatusDraft:    {StatusInReview},
	StatusInReview: {StatusDraft, StatusLive},
	StatusLive:     {StatusInReview, StatusRetired},
	StatusRetired:  {},
}

// CanTransition reports whether a book may move from one status to another.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
