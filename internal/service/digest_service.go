package service

import (
	"context"
	"fmt"
	"log"

	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/notify"
	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/repository"
)

type DigestSender interface {
	SendDigest(ctx context.Context, recipients []string, items []notify.DigestItem) error
}

type DigestService interface {
	// SendApprovalDigest returns how many pending documents were reported.
	SendApprovalDigest(ctx context.Context, recipients []string) (int, error)
}

type digestService struct {
	regRepo repository.RegistrationRepository
	sender  DigestSender
}

func NewDigestService(regRepo repository.RegistrationRepository, sender DigestSender) DigestService {
	return &digestService{regRepo: regRepo, sender: sender}
}

func (s *digestService) SendApprovalDigest(ctx context.Context, recipients []string) (int, error) {
	if len(recipients) == 0 {
		return 0, fmt.Errorf("no digest recipients configured")
	}
	regs, err := s.regRepo.FindPendingDocuments(ctx)
	if err != nil {
		return 0, fmt.Errorf("find pending documents: %w", err)
	}
	if len(regs) == 0 {
		log.Println("[Digest] nothing pending, no email sent")
		return 0, nil
	}

	items := make([]notify.DigestItem, len(regs))
	for i, r := range regs {
		items[i] = notify.DigestItem{
			RegistrationID: r.ID,
			Email:          r.Email,
			DocumentURL:    r.DocumentURL,
			UpdatedAt:      r.UpdatedAt,
		}
		if r.Event != nil {
			items[i].EventTitle = r.Event.Title
		}
		if r.Ticket != nil {
			items[i].TicketName = r.Ticket.Name
		}
	}

	if err := s.sender.SendDigest(ctx, recipients, items); err != nil {
		return 0, fmt.Errorf("send digest: %w", err)
	}
	log.Printf("[Digest] reported %d pending document(s) to %d admin(s)", len(items), len(recipients))
	return len(items), nil
}
