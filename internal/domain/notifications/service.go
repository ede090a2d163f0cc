package notifications

import (
	"context"
	"log/slog"
)

type Mailer interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

// EmailDirectory resolves a user id to an email address.
type EmailDirectory interface {
	UserEmail(ctx context.Context, userID string) (string, error)
}

type Service struct {
	store        *Store
	mailer       Mailer
	emails       EmailDirectory
	emailEnabled bool
	from         string
}

func New(store *Store, mailer Mailer, emails EmailDirectory, emailEnabled bool, from string) *Service {
	return &Service{store: store, mailer: mailer, emails: emails, emailEnabled: emailEnabled, from: from}
}

// Create persists the notification and, when email delivery is on,
// mails it as well. Email failures are logged, never returned: the
// caller's operation must not depend on delivery.
func (s *Service) Create(ctx context.Context, userID, ntype, title, body string) error {
	if err := s.store.Insert(ctx, userID, ntype, title, body); err != nil {
		return err
	}

	if !s.emailEnabled || s.mailer == nil || s.emails == nil {
		return nil
	}
	email, err := s.emails.UserEmail(ctx, userID)
	if err != nil {
		slog.Warn("notification email lookup failed", "err", err)
		return nil
	}
	if email == "" {
		return nil
	}
	if err := s.mailer.Send(ctx, s.from, email, title, body); err != nil {
		slog.Warn("notification email send failed", "err", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Notification, error) {
	return s.store.List(ctx, userID, limit, offset)
}

func (s *Service) MarkRead(ctx context.Context, userID, notificationID string) error {
	return s.store.MarkRead(ctx, userID, notificationID)
}

func (s *Service) CountUnread(ctx context.Context, userID string) (int, error) {
	return s.store.CountUnread(ctx, userID)
}
