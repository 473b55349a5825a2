package mailer

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"time"

	"github.com/mailersend/mailersend-go"
)

type Attachment struct {
	Filename string
	Content  []byte
	// InlineID, when set, embeds the attachment so the HTML can reference it as cid:<InlineID>.
	InlineID string
}

type Message struct {
	To          string
	ToName      string
	Subject     string
	HTML        string
	Text        string
	Attachments []Attachment
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type MailerSend struct {
	client    *mailersend.Mailersend
	fromEmail string
	fromName  string
	timeout   time.Duration
}

func NewMailerSend(apiKey, fromEmail, fromName string) *MailerSend {
	return &MailerSend{
		client:    mailersend.NewMailersend(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
		timeout:   10 * time.Second,
	}
}

func (m *MailerSend) Send(ctx context.Context, msg Message) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	message := m.client.Email.NewMessage()
	message.SetFrom(mailersend.From{Name: m.fromName, Email: m.fromEmail})
	message.SetRecipients([]mailersend.Recipient{{Name: msg.ToName, Email: msg.To}})
	message.SetSubject(msg.Subject)
	message.SetHTML(msg.HTML)
	if msg.Text != "" {
		message.SetText(msg.Text)
	}
	for _, a := range msg.Attachments {
		att := mailersend.Attachment{
			Filename: a.Filename,
			Content:  base64.StdEncoding.EncodeToString(a.Content),
		}
		if a.InlineID != "" {
			att.ID = a.InlineID
			att.Disposition = "inline"
		}
		message.AddAttachment(att)
	}

	res, err := m.client.Email.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("send email to %s: %w", msg.To, err)
	}

	log.Printf("[Mailer] sent %q to %s (message id %s)", msg.Subject, msg.To, res.Header.Get("X-Message-Id"))
	return nil
}

// LogSender prints messages instead of sending them. Used when no API key is configured.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, msg Message) error {
	log.Printf("[Mailer] (dry-run) to=%s subject=%q attachments=%d", msg.To, msg.Subject, len(msg.Attachments))
	return nil
}
