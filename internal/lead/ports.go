package lead

import (
	"context"
)

// Repository defines the contract for lead storage.
type Repository interface {
	Upsert(ctx context.Context, l *Lead) error
	List(ctx context.Context, q Query) ([]Lead, int, error)
	UnsubscribeByToken(ctx context.Context, token string) error
}

// WelcomeMailer sends the welcome email after a capture. Implemented by
// the mailer package; nil-safe at the service level so capture works
// without an outbound relay configured.
type WelcomeMailer interface {
	SendWelcome(ctx context.Context, l Lead) error
}
