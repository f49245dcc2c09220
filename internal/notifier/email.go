package notifier

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/wneessen/go-mail"

	"github.com/amishk599/jobwatch/internal/config"
	"github.com/amishk599/jobwatch/internal/model"
)

// Ensure EmailNotifier implements model.Notifier.
var _ model.Notifier = (*EmailNotifier)(nil)

// EmailNotifier sends a single summary email per batch of new listings:
// an HTML body with one card per listing plus a CSV attachment of the same
// rows. From and To are the configured account; CC and BCC come from config.
type EmailNotifier struct {
	cfg    config.NotificationConfig
	logger *slog.Logger
}

// NewEmailNotifier returns a notifier that mails new listings over SMTP with
// STARTTLS.
func NewEmailNotifier(cfg config.NotificationConfig, logger *slog.Logger) *EmailNotifier {
	return &EmailNotifier{cfg: cfg, logger: logger}
}

// Notify composes and sends one message covering all listings. A nil or empty
// batch is a no-op. Transport failures are returned as *model.NotifyError.
func (n *EmailNotifier) Notify(listings []model.Listing) error {
	if len(listings) == 0 {
		return nil
	}

	msg, err := n.buildMessage(listings)
	if err != nil {
		return &model.NotifyError{Err: err}
	}

	client, err := mail.NewClient(n.cfg.SMTPHost,
		mail.WithPort(n.cfg.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(n.cfg.From),
		mail.WithPassword(n.cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return &model.NotifyError{Err: fmt.Errorf("smtp client: %w", err)}
	}

	if err := client.DialAndSend(msg); err != nil {
		return &model.NotifyError{Err: fmt.Errorf("sending mail: %w", err)}
	}

	n.logger.Info("notification email sent",
		"listings", len(listings),
		"cc", n.cfg.CC,
		"bcc", len(n.cfg.BCC),
	)
	return nil
}

// buildMessage assembles the MIME message: subject, recipients, HTML body,
// CSV attachment.
func (n *EmailNotifier) buildMessage(listings []model.Listing) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(n.cfg.From); err != nil {
		return nil, fmt.Errorf("from address: %w", err)
	}
	if err := msg.To(n.cfg.From); err != nil {
		return nil, fmt.Errorf("to address: %w", err)
	}
	if n.cfg.CC != "" {
		if err := msg.Cc(n.cfg.CC); err != nil {
			return nil, fmt.Errorf("cc address: %w", err)
		}
	}
	if len(n.cfg.BCC) > 0 {
		if err := msg.Bcc(n.cfg.BCC...); err != nil {
			return nil, fmt.Errorf("bcc addresses: %w", err)
		}
	}

	msg.Subject(subjectLine(len(listings)))

	body, err := renderHTML(listings)
	if err != nil {
		return nil, fmt.Errorf("rendering body: %w", err)
	}
	msg.SetBodyString(mail.TypeTextHTML, body)

	csvBody, err := renderCSV(listings)
	if err != nil {
		return nil, fmt.Errorf("rendering csv: %w", err)
	}
	if err := msg.AttachReader("new_listings.csv", bytes.NewReader(csvBody)); err != nil {
		return nil, fmt.Errorf("attaching csv: %w", err)
	}

	return msg, nil
}

func subjectLine(count int) string {
	if count == 1 {
		return "1 new Amazon job listing"
	}
	return fmt.Sprintf("%d new Amazon job listings", count)
}
