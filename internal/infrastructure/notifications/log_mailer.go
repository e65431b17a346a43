package notifications

import (
	"context"
	"log"

	"printhub/internal/usecase/interfaces"
)

// LogMailer is the default IMailer: it logs instead of sending. Reset
// tokens are sensitive, so only their presence is logged, never the value.
type LogMailer struct{}

var _ interfaces.IMailer = (*LogMailer)(nil)

func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

func (m *LogMailer) SendWelcome(_ context.Context, email, name string) error {
	log.Printf("[mailer] welcome email=%s name=%q", email, name)
	return nil
}

func (m *LogMailer) SendPasswordReset(_ context.Context, email, _ string) error {
	log.Printf("[mailer] password-reset email=%s token=<redacted>", email)
	return nil
}
