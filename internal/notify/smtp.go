package notify

import (
	"context"
	"fmt"

	mail "github.com/go-mail/mail"

	"github.com/mverner/teambook/internal/logging"
)

// AdminEmailsFunc resolves the notification recipients for a team's
// pending-approval events.
type AdminEmailsFunc func(ctx context.Context, team int64) ([]string, error)

// SMTPNotifier delivers lifecycle events over an SMTP relay.
type SMTPNotifier struct {
	host        string
	port        int
	user        string
	pass        string
	from        string
	adminEmails AdminEmailsFunc
	log         logging.Logger
}

// NewSMTPNotifier constructs an SMTPNotifier. adminEmails is consulted on
// every AccountPending event so recipient changes take effect immediately.
func NewSMTPNotifier(host string, port int, user, pass, from string, adminEmails AdminEmailsFunc, log logging.Logger) *SMTPNotifier {
	return &SMTPNotifier{
		host:        host,
		port:        port,
		user:        user,
		pass:        pass,
		from:        from,
		adminEmails: adminEmails,
		log:         log,
	}
}

// dialAndSend is a seam for testing mail delivery.
var dialAndSend = func(d *mail.Dialer, m ...*mail.Message) error {
	return d.DialAndSend(m...)
}

func (n *SMTPNotifier) send(to []string, subject, body string) error {
	m := mail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := mail.NewDialer(n.host, n.port, n.user, n.pass)
	if err := dialAndSend(d, m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// AccountPending mails the team's administrators that a new account is
// waiting for approval.
func (n *SMTPNotifier) AccountPending(ctx context.Context, team int64, email string) error {
	to, err := n.adminEmails(ctx, team)
	if err != nil {
		return fmt.Errorf("resolving admin emails: %w", err)
	}
	if len(to) == 0 {
		n.log.Warn(ctx, "no admin recipients for pending account", "team", team)
		return nil
	}
	body := fmt.Sprintf("Hi. A new user registered an account: %s. Head to the admin panel to validate the account.", email)
	if err := n.send(to, "[teambook] New user registered", body); err != nil {
		return err
	}
	n.log.Info(ctx, "pending account notification sent", "team", team, "recipients", len(to))
	return nil
}

// AccountValidated mails the account owner that their account is active.
func (n *SMTPNotifier) AccountValidated(ctx context.Context, email, fullname string) error {
	body := fmt.Sprintf("Hello %s. Your account on teambook was validated by an admin. You can now log in with your email: %s.", fullname, email)
	if err := n.send([]string{email}, "[teambook] Account validated", body); err != nil {
		return err
	}
	n.log.Info(ctx, "validation notification sent", "email", email)
	return nil
}
