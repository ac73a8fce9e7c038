package book

import (
	"context"
	"strings"
)

// Service provides catalog business logic.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns books matching the query.
func (s *Service) List(ctx context.Context, q Query) ([]Book, int, error) {
	return s.repo.List(ctx, q)
}

// GetBySlug returns a book by its slug.
func (s *Service) GetBySlug(ctx context.Context, slug string) (Book, error) {
	return s.repo.GetBySlug(ctx, slug)
}

// Create stores a new book. The page count and paper type must produce a
// valid print spec before anything hits the database.
func (s *Service) Create(ctx context.Context, b *Book) error {
	if b.Slug == "" {
		b.Slug = Slugify(b.Title)
	}
	if _, err := PrintSpecFor(*b); err != nil {
		return err
	}
	b.Status = StatusDraft
	return s.repo.Create(ctx, b)
}

// Update applies changes to an existing book, enforcing the status
// transition rules.
func (s *Service) Update(ctx context.Context, slug string, apply func(*Book)) (Book, error) {
	current, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return Book{}, err
	}

	updated := current
	apply(&updated)
	updated.ID = current.ID
	updated.Slug = current.Slug
	updated.CreatedAt = current.CreatedAt

	if !CanTransition(current.Status, updated.Status) {
		return Book{}, ErrBadTransition
	}
	if _, err := PrintSpecFor(updated); err != nil {
		return Book{}, err
	}
	if err := s.repo.Update(ctx, &updated); err != nil {
		return Book{}, err
	}
	return updated, nil
}

// Slugify lowercases a title and collapses everything that is not a
// letter or digit into single hyphens.
func Slugify(title string) string {
	var sb strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				sb.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}
