package checklist

import (
	"context"
)

// Service provides checklist business logic.
type Service struct {
	repo     Repository
	registry *Registry
	books    BookChecker
}

// NewService creates a new checklist service.
func NewService(repo Repository, registry *Registry, books BookChecker) *Service {
	return &Service{repo: repo, registry: registry, books: books}
}

// Instantiate attaches a template to a book. Calling it again for the
// same book and template returns the existing instance unchanged, so a
// half-completed checklist is never reset.
func (s *Service) Instantiate(ctx context.Context, bookSlug, templateName string) (Instance, error) {
	tmpl, ok := s.registry.Get(templateName)
	if !ok {
		return Instance{}, ErrUnknownTemplate
	}

	puzzleType, err := s.books.PuzzleTypeOf(ctx, bookSlug)
	if err != nil {
		return Instance{}, err
	}
	if !tmpl.AppliesToType(puzzleType) {
		return Instance{}, ErrTemplateMismatch
	}

	inst := Instance{
		BookSlug:     bookSlug,
		TemplateName: tmpl.Name,
		Items:        make([]Item, len(tmpl.Items)),
	}
	for i, item := range tmpl.Items {
		inst.Items[i] = Item{
			Key:     item.Key,
			Title:   item.Title,
			Details: item.Details,
		}
	}

	if err := s.repo.CreateInstance(ctx, &inst); err != nil {
		return Instance{}, err
	}
	return inst, nil
}

// Get returns one instance with its items.
func (s *Service) Get(ctx context.Context, bookSlug, templateName string) (Instance, error) {
	return s.repo.GetInstance(ctx, bookSlug, templateName)
}

// ListForBook returns all instances attached to a book.
func (s *Service) ListForBook(ctx context.Context, bookSlug string) ([]Instance, error) {
	return s.repo.ListInstances(ctx, bookSlug)
}

// SetItemDone marks or unmarks one item.
func (s *Service) SetItemDone(ctx context.Context, bookSlug, templateName, itemKey string, done bool) (Item, error) {
	return s.repo.SetItemDone(ctx, bookSlug, templateName, itemKey, done)
}
