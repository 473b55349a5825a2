package repository

import (
	"context"
	"time"

	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/models"
	"gorm.io/gorm"
)

type RegistrationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, registration *models.Registration) error
	FindByID(ctx context.Context, id uint) (*models.Registration, error)
	FindByQRToken(ctx context.Context, token string) (*models.Registration, error)
	FindByTransferToken(ctx context.Context, token string) (*models.Registration, error)
	FindByUserID(ctx context.Context, userID string) ([]models.Registration, error)
	FindByEventID(ctx context.Context, eventID uint, approval *models.ApprovalStatus) ([]models.Registration, error)
	FindPendingDocuments(ctx context.Context) ([]models.Registration, error)
	CountByEvent(ctx context.Context, tx *gorm.DB, eventID uint) (int64, error)
	CountByTicket(ctx context.Context, tx *gorm.DB, ticketID uint) (int64, error)
	MarkCheckedIn(ctx context.Context, id uint, at time.Time) (bool, error)
	UpdateApproval(ctx context.Context, id uint, status models.ApprovalStatus) error
	UpdateDocument(ctx context.Context, id uint, documentURL string) error
	SetTransferToken(ctx context.Context, id uint, token string) error
	Claim(ctx context.Context, tx *gorm.DB, id uint, token, userID, email string, guarantorID *string) (bool, error)
	CreateTransfer(ctx context.Context, tx *gorm.DB, transfer *models.RegistrationTransfer) error
	TransferTokenConsumed(ctx context.Context, token string) (bool, error)
	GetDB() *gorm.DB
}

type registrationRepository struct {
	db *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

func (r *registrationRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *registrationRepository) Create(ctx context.Context, tx *gorm.DB, registration *models.Registration) error {
	return tx.WithContext(ctx).Create(registration).Error
}

func (r *registrationRepository) FindByID(ctx context.Context, id uint) (*models.Registration, error) {
	var reg models.Registration
	if err := r.db.WithContext(ctx).First(&reg, id).Error; err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *registrationRepository) FindByQRToken(ctx context.Context, token string) (*models.Registration, error) {
	var reg models.Registration
	if err := r.db.WithContext(ctx).
		Preload("Ticket").
		Where("qr_code_token = ?", token).
		First(&reg).Error; err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *registrationRepository) FindByTransferToken(ctx context.Context, token string) (*models.Registration, error) {
	var reg models.Registration
	if err := r.db.WithContext(ctx).
		Where("transfer_token = ?", token).
		First(&reg).Error; err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *registrationRepository) FindByUserID(ctx context.Context, userID string) ([]models.Registration, error) {
	var regs []models.Registration
	if err := r.db.WithContext(ctx).
		Preload("Ticket").
		Preload("Event").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&regs).Error; err != nil {
		return nil, err
	}
	return regs, nil
}

func (r *registrationRepository) FindByEventID(ctx context.Context, eventID uint, approval *models.ApprovalStatus) ([]models.Registration, error) {
	var regs []models.Registration
	q := r.db.WithContext(ctx).Preload("Ticket").Where("event_id = ?", eventID)
	if approval != nil {
		q = q.Where("approval_status = ?", *approval)
	}
	if err := q.Order("id ASC").Find(&regs).Error; err != nil {
		return nil, err
	}
	return regs, nil
}

// FindPendingDocuments returns registrations waiting for an admin to review an uploaded document.
func (r *registrationRepository) FindPendingDocuments(ctx context.Context) ([]models.Registration, error) {
	var regs []models.Registration
	if err := r.db.WithContext(ctx).
		Preload("Event").
		Preload("Ticket").
		Where("approval_status = ? AND document_url <> ''", models.ApprovalPending).
		Order("created_at ASC").
		Find(&regs).Error; err != nil {
		return nil, err
	}
	return regs, nil
}

func (r *registrationRepository) CountByEvent(ctx context.Context, tx *gorm.DB, eventID uint) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.Registration{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}

func (r *registrationRepository) CountByTicket(ctx context.Context, tx *gorm.DB, ticketID uint) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.Registration{}).
		Where("ticket_id = ?", ticketID).
		Count(&count).Error
	return count, err
}

// MarkCheckedIn flips checked_in once; it reports false when the row was already checked in.
func (r *registrationRepository) MarkCheckedIn(ctx context.Context, id uint, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Registration{}).
		Where("id = ? AND checked_in = ?", id, false).
		Updates(map[string]any{"checked_in": true, "checked_in_at": at})
	return res.RowsAffected == 1, res.Error
}

func (r *registrationRepository) UpdateApproval(ctx context.Context, id uint, status models.ApprovalStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Registration{}).
		Where("id = ?", id).
		Update("approval_status", status).Error
}

func (r *registrationRepository) UpdateDocument(ctx context.Context, id uint, documentURL string) error {
	return r.db.WithContext(ctx).
		Model(&models.Registration{}).
		Where("id = ?", id).
		Updates(map[string]any{"document_url": documentURL, "approval_status": models.ApprovalPending}).Error
}

func (r *registrationRepository) SetTransferToken(ctx context.Context, id uint, token string) error {
	return r.db.WithContext(ctx).
		Model(&models.Registration{}).
		Where("id = ?", id).
		Update("transfer_token", token).Error
}

// Claim reassigns the registration only if it still carries token. It reports
// false when another claim consumed the token first.
func (r *registrationRepository) Claim(ctx context.Context, tx *gorm.DB, id uint, token, userID, email string, guarantorID *string) (bool, error) {
	res := tx.WithContext(ctx).
		Model(&models.Registration{}).
		Where("id = ? AND transfer_token = ?", id, token).
		Updates(map[string]any{
			"user_id":        userID,
			"email":          email,
			"transfer_token": gorm.Expr("NULL"),
			"claim_status":   models.ClaimClaimed,
			"guarantor_id":   guarantorID,
		})
	return res.RowsAffected == 1, res.Error
}

func (r *registrationRepository) CreateTransfer(ctx context.Context, tx *gorm.DB, transfer *models.RegistrationTransfer) error {
	return tx.WithContext(ctx).Create(transfer).Error
}

func (r *registrationRepository) TransferTokenConsumed(ctx context.Context, token string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.RegistrationTransfer{}).
		Where("token = ?", token).
		Count(&count).Error
	return count > 0, err
}
