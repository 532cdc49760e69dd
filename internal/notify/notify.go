// Package notify delivers account lifecycle notifications to users and
// team administrators.
package notify

import "context"

// Notifier receives account lifecycle events. Implementations decide how
// the event is delivered.
type Notifier interface {
	// AccountPending is called after a new account is created that still
	// needs administrator approval. Recipients are the admins of the
	// given team.
	AccountPending(ctx context.Context, team int64, email string) error
	// AccountValidated is called after an administrator approves an
	// account. The recipient is the account owner.
	AccountValidated(ctx context.Context, email, fullname string) error
}

// NoopNotifier discards all events. Used when no SMTP relay is configured.
type NoopNotifier struct{}

func (NoopNotifier) AccountPending(ctx context.Context, team int64, email string) error {
	return nil
}

func (NoopNotifier) AccountValidated(ctx context.Context, email, fullname string) error {
	return nil
}
