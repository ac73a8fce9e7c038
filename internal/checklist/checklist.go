package checklist

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when an instance or item is not found.
	ErrNotFound = errors.New("checklist not found")
	// ErrUnknownTemplate is returned for a template name not in the registry.
	ErrUnknownTemplate = errors.New("unknown checklist template")
	// ErrTemplateMismatch is returned when a template does not apply to
	// the book's puzzle type.
	ErrTemplateMismatch = errors.New("template does not apply to this book")
)

// Instance is a checklist attached to one book.
type Instance struct {
	ID           string    `json:"id"`
	BookSlug     string    `json:"book_slug"`
	TemplateName string    `json:"template_name"`
	Items        []Item    `json:"items,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Item is one step of an instance, in working order.
type Item struct {
	Key     string     `json:"key"`
	Title   string     `json:"title"`
	Details string     `json:"details,omitempty"`
	Done    bool       `json:"done"`
	DoneAt  *time.Time `json:"done_at,omitempty"`
}

// Progress summarizes instance completion.
type Progress struct {
	Done  int `json:"done"`
	Total int `json:"total"`
}

// ProgressOf counts completed items.
func ProgressOf(items []Item) Progress {
	p := Progress{Total: len(items)}
	for _, item := range items {
		if item.Done {
			p.Done++
		}
	}
	return p
}
