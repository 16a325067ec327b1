package mail

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/erp/addrconfirm/internal/domain/businesspartner"
	"github.com/erp/addrconfirm/internal/domain/shared"
	"github.com/erp/addrconfirm/internal/infrastructure/config"
	"go.uber.org/zap"
)

// sendFunc matches smtp.SendMail; swapped out in tests.
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPNotifier sends the confirmation email over plain SMTP with an
// HTML body rendered from the notification template.
type SMTPNotifier struct {
	addr    string
	auth    smtp.Auth
	from    string
	subject string
	send    sendFunc
	log     *zap.Logger
}

// NewSMTPNotifier creates a notifier from the mail config section.
func NewSMTPNotifier(cfg config.MailConfig, log *zap.Logger) *SMTPNotifier {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	return &SMTPNotifier{
		addr:    fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		auth:    auth,
		from:    cfg.From,
		subject: cfg.Subject,
		send:    smtp.SendMail,
		log:     log,
	}
}

// Send delivers the confirmation request. Every failure is a
// MailingError; callers decide whether that is fatal.
func (n *SMTPNotifier) Send(ctx context.Context, notification businesspartner.Notification) error {
	if err := ctx.Err(); err != nil {
		return shared.NewMailingError("sending cancelled", err)
	}

	body, err := renderBody(notification)
	if err != nil {
		return shared.NewMailingError("rendering confirmation email", err)
	}

	msg := n.buildMessage(notification.Recipient, body)
	if err := n.send(n.addr, n.auth, n.from, []string{notification.Recipient}, msg); err != nil {
		return shared.NewMailingError(
			fmt.Sprintf("sending confirmation email to %s", notification.Recipient), err)
	}

	n.log.Debug("confirmation email delivered",
		zap.String("recipient", notification.Recipient),
		zap.String("business_partner", notification.Partner.Key))
	return nil
}

// buildMessage assembles the full RFC 5322 message with an HTML body.
func (n *SMTPNotifier) buildMessage(recipient, body string) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", n.from)
	fmt.Fprintf(&b, "To: %s\r\n", recipient)
	fmt.Fprintf(&b, "Subject: %s\r\n", n.subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return b.Bytes()
}
