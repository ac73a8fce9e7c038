package mailer

import (
	"context"
	"log"
	"strings"

	"pressops/internal/lead"
)

// TitleResolver turns a book slug into its display title. Optional; when
// nil (or failing) the slug itself is humanized instead.
type TitleResolver func(ctx context.Context, slug string) (string, error)

// Mailer renders templates and hands them to a Sender.
type Mailer struct {
	sender Sender
	from   string
	// siteURL is the public base URL used to build unsubscribe links.
	siteURL string
	titles  TitleResolver
}

func New(sender Sender, from, siteURL string, titles TitleResolver) *Mailer {
	return &Mailer{sender: sender, from: from, siteURL: siteURL, titles: titles}
}

// SendTemplate renders a named template and sends it.
func (m *Mailer) SendTemplate(ctx context.Context, to, name string, params map[string]string) error {
	subject, body, err := Render(name, params)
	if err != nil {
		return err
	}
	return m.sender.Send(ctx, Message{
		From:    m.from,
		To:      to,
		Subject: subject,
		Text:    body,
	})
}

// SendWelcome implements lead.WelcomeMailer.
func (m *Mailer) SendWelcome(ctx context.Context, l lead.Lead) error {
	params := map[string]string{
		"FirstName":      l.FirstName,
		"UnsubscribeURL": m.siteURL + "/leads/unsubscribe?token=" + l.UnsubscribeToken,
	}
	if l.BookSlug != "" {
		params["BookTitle"] = m.resolveTitle(ctx, l.BookSlug)
	}
	return m.SendTemplate(ctx, l.Email, "welcome", params)
}

func (m *Mailer) resolveTitle(ctx context.Context, slug string) string {
	if m.titles != nil {
		if title, err := m.titles(ctx, slug); err == nil && title != "" {
			return title
		}
	}
	return strings.ReplaceAll(slug, "-", " ")
}

// LogSender logs messages instead of delivering them. Used when no relay
// API key is configured, so local capture still works end to end.
type LogSender struct{}

func (LogSender) Send(_ context.Context, msg Message) error {
	log.Printf("mail (dry run) to=%s subject=%q bytes=%d", msg.To, msg.Subject, len(msg.Text))
	return nil
}
