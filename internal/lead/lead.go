package lead

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a lead is not found.
	ErrNotFound = errors.New("lead not found")
)

// Lead statuses.
const (
	StatusPending      = "pending"
	StatusSubscribed   = "subscribed"
	StatusUnsubscribed = "unsubscribed"
)

// Lead is one captured email address from the landing page.
type Lead struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	FirstName        string    `json:"first_name,omitempty"`
	Source           string    `json:"source,omitempty"`
	BookSlug         string    `json:"book_slug,omitempty"`
	Status           string    `json:"status"`
	UnsubscribeToken string    `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Query defines filters and pagination for listing leads.
type Query struct {
	Status string
	Limit  int
	Offset int
}

// NewUnsubscribeToken returns a 32-byte random token in hex.
func NewUnsubscribeToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
