package notify

import (
	"context"
	"fmt"
	"log"

	"github.com/FlorianPALVADEAU/Overbound-sub003/pkg/mailer"
	"github.com/FlorianPALVADEAU/Overbound-sub003/pkg/qr"
)

// EmailNotifier renders and sends confirmation emails.
type EmailNotifier struct {
	sender mailer.Sender
}

func NewEmailNotifier(sender mailer.Sender) *EmailNotifier {
	return &EmailNotifier{sender: sender}
}

// RegistrationConfirmed sends in the background; the request context may
// already be done by the time the mail provider answers.
func (n *EmailNotifier) RegistrationConfirmed(ctx context.Context, c Confirmation) {
	ctx = context.WithoutCancel(ctx)
	go func() {
		if err := n.Send(ctx, c); err != nil {
			log.Printf("[Mailer] confirmation for registration %d failed: %v", c.RegistrationID, err)
		}
	}()
}

// Send builds the confirmation with its inline QR image and sends it synchronously.
func (n *EmailNotifier) Send(ctx context.Context, c Confirmation) error {
	png, err := qr.PNG(c.QRCodeToken, qr.DefaultSize)
	if err != nil {
		return fmt.Errorf("qr code: %w", err)
	}
	html, err := renderConfirmation(c)
	if err != nil {
		return err
	}

	return n.sender.Send(ctx, mailer.Message{
		To:      c.Email,
		ToName:  c.FullName,
		Subject: fmt.Sprintf("Ton billet pour %s", c.EventTitle),
		HTML:    html,
		Text: fmt.Sprintf("Ton inscription à %s est confirmée. Référence : %s",
			c.EventTitle, c.QRCodeToken),
		Attachments: []mailer.Attachment{{
			Filename: "billet-qr.png",
			Content:  png,
			InlineID: qrInlineID,
		}},
	})
}

// SendDigest emails the pending-document summary to every recipient.
// It stops at the first failure.
func (n *EmailNotifier) SendDigest(ctx context.Context, recipients []string, items []DigestItem) error {
	html, err := renderDigest(items)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("[Overbound] %d justificatif(s) à valider", len(items))
	for _, to := range recipients {
		if err := n.sender.Send(ctx, mailer.Message{To: to, Subject: subject, HTML: html}); err != nil {
			return err
		}
	}
	return nil
}
