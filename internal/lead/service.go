package lead

import (
	"context"
	"log"
	"strings"
)

// Service provides lead-capture business logic.
type Service struct {
	repo   Repository
	mailer WelcomeMailer
}

// NewService creates a new lead service. mailer may be nil.
func NewService(repo Repository, mailer WelcomeMailer) *Service {
	return &Service{repo: repo, mailer: mailer}
}

// Capture stores a lead and dispatches the welcome email. A repeat
// submission for the same email refreshes the name and source instead of
// erroring. A mail failure is logged but never fails the capture; the
// stored row is the source of truth for follow-up.
func (s *Service) Capture(ctx context.Context, l *Lead) error {
	l.Email = strings.ToLower(strings.TrimSpace(l.Email))
	l.Status = StatusPending

	token, err := NewUnsubscribeToken()
	if err != nil {
		return err
	}
	l.UnsubscribeToken = token

	if err := s.repo.Upsert(ctx, l); err != nil {
		return err
	}

	if s.mailer != nil {
		if err := s.mailer.SendWelcome(ctx, *l); err != nil {
			log.Printf("welcome mail failed lead_id=%s email=%s error=%v", l.ID, l.Email, err)
		}
	}
	return nil
}

// List returns leads matching the query.
func (s *Service) List(ctx context.Context, q Query) ([]Lead, int, error) {
	return s.repo.List(ctx, q)
}

// Unsubscribe flips the lead with the given token to unsubscribed.
// Repeating it is a no-op, not an error.
func (s *Service) Unsubscribe(ctx context.Context, token string) error {
	return s.repo.UnsubscribeByToken(ctx, token)
}
