package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// sendMail is a test seam for smtp.SendMail.
var sendMail = smtp.SendMail

// SMTPNotifier delivers messages over a plain SMTP transport. PLAIN auth is
// used when a user is configured; otherwise the message is submitted
// unauthenticated (local relays, mailcatchers).
type SMTPNotifier struct {
	addr     string
	user     string
	password string
	from     string
}

// NewSMTPNotifier builds a notifier for the given transport settings.
// addr is "host:port".
func NewSMTPNotifier(addr, user, password, from string) *SMTPNotifier {
	return &SMTPNotifier{addr: addr, user: user, password: password, from: from}
}

// Send submits one message. The context is checked before dialing; net/smtp
// itself does not support cancellation mid-session.
func (n *SMTPNotifier) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if n.user != "" {
		host := n.addr
		if i := strings.LastIndex(n.addr, ":"); i >= 0 {
			host = n.addr[:i]
		}
		auth = smtp.PlainAuth("", n.user, n.password, host)
	}

	msg := buildMessage(n.from, to, subject, htmlBody)

	if err := sendMail(n.addr, auth, n.from, []string{to}, msg); err != nil {
		return fmt.Errorf("mail send error: %w", err)
	}
	return nil
}

// buildMessage assembles an RFC 5322 message with an HTML body.
func buildMessage(from, to, subject, htmlBody string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n\r\n")
	b.WriteString(htmlBody)
	b.WriteString("\r\n")
	return []byte(b.String())
}
