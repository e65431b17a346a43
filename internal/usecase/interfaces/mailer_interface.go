package interfaces

import "context"

// IMailer delivers transactional mail. The default implementation only
// logs; a real provider can be dropped in without touching the use cases.
type IMailer interface {
	SendWelcome(ctx context.Context, email, name string) error
	SendPasswordReset(ctx context.Context, email, resetToken string) error
}
