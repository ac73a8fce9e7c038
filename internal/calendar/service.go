package calendar

import (
	"context"
	"time"
)

// Service provides content-calendar business logic.
type Service struct {
	repo Repository
}

// NewService creates a new calendar service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a new planned entry.
func (s *Service) Create(ctx context.Context, e *Entry) error {
	e.Status = StatusPlanned
	return s.repo.Create(ctx, e)
}

// List returns entries matching the query.
func (s *Service) List(ctx context.Context, q Query) ([]Entry, int, error) {
	return s.repo.List(ctx, q)
}

// UpdateStatus moves an entry through the posting workflow.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (Entry, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Entry{}, err
	}
	if !CanTransition(current.Status, status) {
		return Entry{}, ErrBadTransition
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

// Due returns entries whose scheduled time has passed and that are still
// waiting to be posted.
func (s *Service) Due(ctx context.Context) ([]Entry, error) {
	return s.repo.Due(ctx, time.Now())
}
