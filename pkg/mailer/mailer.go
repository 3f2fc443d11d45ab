package mailer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Message is a plain-text outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Transport delivers a single message or fails.
type Transport interface {
	Send(m Message) error
}

// Service exposes the two delivery contracts the system needs:
//
//   - Send: user-triggered mail (interview invites, password recovery).
//     Retries the transport and propagates the final error so the caller can
//     report failure.
//   - SendBestEffort: background decision mail. One attempt, failure is
//     logged and swallowed.
type Service struct {
	transport Transport
	retries   int
	delay     time.Duration
	log       *zap.Logger
}

func NewService(transport Transport, log *zap.Logger) *Service {
	return &Service{
		transport: transport,
		retries:   3,
		delay:     2 * time.Second,
		log:       log,
	}
}

// Send delivers m, retrying up to the configured attempt count with a fixed
// delay between attempts. Context cancellation aborts the wait between
// attempts. The last transport error is returned after exhaustion; callers
// on this path must surface it.
func (s *Service) Send(ctx context.Context, m Message) error {
	var lastErr error
	for attempt := 1; attempt <= s.retries; attempt++ {
		lastErr = s.transport.Send(m)
		if lastErr == nil {
			return nil
		}
		s.log.Warn("email send attempt failed",
			zap.Int("attempt", attempt),
			zap.String("to", m.To),
			zap.Error(lastErr))
		if attempt < s.retries {
			select {
			case <-time.After(s.delay):
			case <-ctx.Done():
				return fmt.Errorf("send email to %s: %w", m.To, ctx.Err())
			}
		}
	}
	return fmt.Errorf("send email to %s: %w", m.To, lastErr)
}

// SendBestEffort makes a single delivery attempt and reports whether it
// succeeded. Failure is logged only.
func (s *Service) SendBestEffort(m Message) bool {
	if err := s.transport.Send(m); err != nil {
		s.log.Warn("best-effort email dropped",
			zap.String("to", m.To),
			zap.String("subject", m.Subject),
			zap.Error(err))
		return false
	}
	return true
}

// SendNewPassword implements auth.ResetMailer over the retrying path.
func (s *Service) SendNewPassword(ctx context.Context, email, password string) error {
	body := fmt.Sprintf("Dear User,\n\nYour password has been reset. Your new password is: %s\n\nPlease sign in and change it.", password)
	return s.Send(ctx, Message{
		To:      email,
		Subject: "Your Password Recovery - AI HR System",
		Body:    body,
	})
}
