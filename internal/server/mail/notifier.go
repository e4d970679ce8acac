// Package mail delivers transactional account emails: the welcome message,
// password-reset OTPs, reset confirmations, and profile-update notices.
package mail

import "context"

// Notifier sends a single HTML message to a recipient. Delivery is awaited;
// the caller decides what a failure means for the surrounding operation.
type Notifier interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}
