package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/models"
	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/repository"
)

type RegistrationService interface {
	ListMine(ctx context.Context, account Account) ([]models.Registration, error)
	ListForEvent(ctx context.Context, eventID uint, approval *models.ApprovalStatus) ([]models.Registration, error)
	IssueTransfer(ctx context.Context, account Account, registrationID uint) (string, error)
	Claim(ctx context.Context, account Account, token string) (*models.Registration, error)
	CheckIn(ctx context.Context, qrToken string) (*models.Registration, error)
	SetApproval(ctx context.Context, registrationID uint, status models.ApprovalStatus) (*models.Registration, error)
	UploadDocument(ctx context.Context, account Account, registrationID uint, documentURL string) (*models.Registration, error)
}

type registrationService struct {
	repo       repository.RegistrationRepository
	ticketRepo repository.TicketRepository
	runTx      txRunner
	now        func() time.Time
}

func NewRegistrationService(repo repository.RegistrationRepository, ticketRepo repository.TicketRepository) RegistrationService {
	return &registrationService{
		repo:       repo,
		ticketRepo: ticketRepo,
		runTx:      gormTx(repo.GetDB()),
		now:        time.Now,
	}
}

func (s *registrationService) ListMine(ctx context.Context, account Account) ([]models.Registration, error) {
	return s.repo.FindByUserID(ctx, account.UserID)
}

func (s *registrationService) ListForEvent(ctx context.Context, eventID uint, approval *models.ApprovalStatus) ([]models.Registration, error) {
	if approval != nil && !approval.Valid() {
		return nil, ErrInvalidApprovalStatus
	}
	return s.repo.FindByEventID(ctx, eventID, approval)
}

// IssueTransfer replaces the registration's transfer token; any earlier link stops working.
func (s *registrationService) IssueTransfer(ctx context.Context, account Account, registrationID uint) (string, error) {
	reg, err := s.find(ctx, registrationID)
	if err != nil {
		return "", err
	}
	if !owns(reg, account) {
		return "", ErrNotOwner
	}
	if reg.CheckedIn {
		return "", ErrTransferAfterCheckIn
	}

	token := uuid.NewString()
	if err := s.repo.SetTransferToken(ctx, reg.ID, token); err != nil {
		return "", fmt.Errorf("set transfer token: %w", err)
	}
	return token, nil
}

// Claim moves a registration to the caller. The token is consumed by a single
// conditional update, so of two concurrent claims only one succeeds.
func (s *registrationService) Claim(ctx context.Context, account Account, token string) (*models.Registration, error) {
	reg, err := s.repo.FindByTransferToken(ctx, token)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("find by transfer token: %w", err)
		}
		consumed, err := s.repo.TransferTokenConsumed(ctx, token)
		if err != nil {
			return nil, fmt.Errorf("lookup consumed token: %w", err)
		}
		if consumed {
			return nil, ErrTransferAlreadyClaimed
		}
		return nil, ErrTransferNotFound
	}
	if owns(reg, account) {
		return nil, ErrAlreadyOwner
	}
	if reg.CheckedIn {
		return nil, ErrTransferAfterCheckIn
	}

	now := s.now()
	previous := reg.UserID
	err = s.runTx(ctx, func(tx *gorm.DB) error {
		ok, err := s.repo.Claim(ctx, tx, reg.ID, token, account.UserID, account.Email, previous)
		if err != nil {
			return fmt.Errorf("claim registration %d: %w", reg.ID, err)
		}
		if !ok {
			return ErrTransferAlreadyClaimed
		}
		return s.repo.CreateTransfer(ctx, tx, &models.RegistrationTransfer{
			RegistrationID: reg.ID,
			Token:          token,
			FromUserID:     previous,
			ToUserID:       account.UserID,
			ClaimedAt:      now,
		})
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTransferAlreadyClaimed
		}
		return nil, err
	}

	log.Printf("[Registration] %d claimed by %s", reg.ID, account.UserID)
	reg.UserID = &account.UserID
	reg.Email = account.Email
	reg.TransferToken = nil
	reg.ClaimStatus = models.ClaimClaimed
	reg.GuarantorID = previous
	return reg, nil
}

func (s *registrationService) CheckIn(ctx context.Context, qrToken string) (*models.Registration, error) {
	reg, err := s.repo.FindByQRToken(ctx, qrToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("find by qr token: %w", err)
	}
	if reg.CheckedIn {
		return nil, ErrAlreadyCheckedIn
	}
	if reg.ApprovalStatus == models.ApprovalRejected {
		return nil, ErrRegistrationRejected
	}

	now := s.now()
	ok, err := s.repo.MarkCheckedIn(ctx, reg.ID, now)
	if err != nil {
		return nil, fmt.Errorf("mark checked in: %w", err)
	}
	if !ok {
		return nil, ErrAlreadyCheckedIn
	}
	reg.CheckedIn = true
	reg.CheckedInAt = &now
	return reg, nil
}

func (s *registrationService) SetApproval(ctx context.Context, registrationID uint, status models.ApprovalStatus) (*models.Registration, error) {
	if !status.Valid() {
		return nil, ErrInvalidApprovalStatus
	}
	reg, err := s.find(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateApproval(ctx, reg.ID, status); err != nil {
		return nil, fmt.Errorf("update approval: %w", err)
	}
	reg.ApprovalStatus = status
	return reg, nil
}

// UploadDocument attaches an eligibility document and sends the registration
// back to review.
func (s *registrationService) UploadDocument(ctx context.Context, account Account, registrationID uint, documentURL string) (*models.Registration, error) {
	reg, err := s.find(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	if !owns(reg, account) {
		return nil, ErrNotOwner
	}
	ticket, err := s.ticketRepo.FindByID(ctx, reg.TicketID)
	if err != nil {
		return nil, fmt.Errorf("find ticket %d: %w", reg.TicketID, err)
	}
	if !ticket.RequiresDocument {
		return nil, ErrDocumentNotRequired
	}

	if err := s.repo.UpdateDocument(ctx, reg.ID, documentURL); err != nil {
		return nil, fmt.Errorf("update document: %w", err)
	}
	reg.DocumentURL = documentURL
	reg.ApprovalStatus = models.ApprovalPending
	return reg, nil
}

func (s *registrationService) find(ctx context.Context, id uint) (*models.Registration, error) {
	reg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("find registration %d: %w", id, err)
	}
	return reg, nil
}

// owns also accepts guest purchases, matched by email until first claimed.
func owns(reg *models.Registration, account Account) bool {
	if reg.UserID != nil {
		return reg.OwnedBy(account.UserID)
	}
	return account.Email != "" && strings.EqualFold(reg.Email, account.Email)
}
