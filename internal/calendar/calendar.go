package calendar

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when an entry is not found.
	ErrNotFound = errors.New("calendar entry not found")
	// ErrBadTransition is returned for a disallowed status change.
	ErrBadTransition = errors.New("invalid status transition")
)

// Entry statuses.
const (
	StatusPlanned = "planned"
	StatusDrafted = "drafted"
	StatusPosted  = "posted"
	StatusSkipped = "skipped"
)

// Entry is one scheduled social post.
type Entry struct {
	ID           string    `json:"id"`
	BookSlug     string    `json:"book_slug,omitempty"`
	Platform     string    `json:"platform"`
	Copy         string    `json:"copy"`
	AssetURL     string    `json:"asset_url,omitempty"`
	ScheduledFor time.Time `json:"scheduled_for"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Query defines filters for listing entries.
type Query struct {
	Platform string
	Status   string
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
}

// Repository defines the contract for calendar storage.
type Repository interface {
	Create(ctx context.Context, e *Entry) error
	GetByID(ctx context.Context, id string) (Entry, error)
	List(ctx context.Context, q Query) ([]Entry, int, error)
	UpdateStatus(ctx context.Context, id, status string) (Entry, error)
	Due(ctx context.Context, now time.Time) ([]Entry, error)
}

// statusTransitions holds the allowed next statuses. Posted and skipped
// are terminal.
var statusTransitions = map[string][]string{
	StatusPlanned: {StatusDrafted, StatusPosted, StatusSkipped},
	StatusDrafted: {StatusPosted, StatusSkipped},
	StatusPosted:  {},
	StatusSkipped: {},
}

// CanTransition reports whether an entry may move between two statuses.
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
