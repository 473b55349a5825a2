package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/models"
	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/notify"
	"github.com/FlorianPALVADEAU/Overbound-sub003/pkg/payment"
)

// --- Mock EventRepository ---

type mockEventRepo struct {
	createFn            func(ctx context.Context, event *models.Event) error
	updateFn            func(ctx context.Context, event *models.Event) error
	deleteFn            func(ctx context.Context, id uint) error
	findByIDFn          func(ctx context.Context, id uint) (*models.Event, error)
	findByIDForUpdateFn func(ctx context.Context, tx *gorm.DB, id uint) (*models.Event, error)
	findAllFn           func(ctx context.Context, includeDrafts bool) ([]models.Event, error)
}

func (m *mockEventRepo) Create(ctx context.Context, event *models.Event) error {
	return m.createFn(ctx, event)
}
func (m *mockEventRepo) Update(ctx context.Context, event *models.Event) error {
	return m.updateFn(ctx, event)
}
func (m *mockEventRepo) Delete(ctx context.Context, id uint) error {
	return m.deleteFn(ctx, id)
}
func (m *mockEventRepo) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockEventRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Event, error) {
	if m.findByIDForUpdateFn != nil {
		return m.findByIDForUpdateFn(ctx, tx, id)
	}
	return m.findByIDFn(ctx, id)
}
func (m *mockEventRepo) FindAll(ctx context.Context, includeDrafts bool) ([]models.Event, error) {
	return m.findAllFn(ctx, includeDrafts)
}

// --- Mock TicketRepository ---

type mockTicketRepo struct {
	createFn        func(ctx context.Context, ticket *models.Ticket) error
	updateFn        func(ctx context.Context, ticket *models.Ticket) error
	deleteFn        func(ctx context.Context, id uint) error
	findByIDFn      func(ctx context.Context, id uint) (*models.Ticket, error)
	findByEventIDFn func(ctx context.Context, eventID uint) ([]models.Ticket, error)
}

func (m *mockTicketRepo) Create(ctx context.Context, ticket *models.Ticket) error {
	return m.createFn(ctx, ticket)
}
func (m *mockTicketRepo) Update(ctx context.Context, ticket *models.Ticket) error {
	return m.updateFn(ctx, ticket)
}
func (m *mockTicketRepo) Delete(ctx context.Context, id uint) error {
	return m.deleteFn(ctx, id)
}
func (m *mockTicketRepo) FindByID(ctx context.Context, id uint) (*models.Ticket, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockTicketRepo) FindByEventID(ctx context.Context, eventID uint) ([]models.Ticket, error) {
	return m.findByEventIDFn(ctx, eventID)
}

// --- Mock RegistrationRepository ---

type mockRegRepo struct {
	createFn               func(ctx context.Context, tx *gorm.DB, r *models.Registration) error
	findByIDFn             func(ctx context.Context, id uint) (*models.Registration, error)
	findByQRTokenFn        func(ctx context.Context, token string) (*models.Registration, error)
	findByTransferTokenFn  func(ctx context.Context, token string) (*models.Registration, error)
	findByUserIDFn         func(ctx context.Context, userID string) ([]models.Registration, error)
	findByEventIDFn        func(ctx context.Context, eventID uint, approval *models.ApprovalStatus) ([]models.Registration, error)
	findPendingDocumentsFn func(ctx context.Context) ([]models.Registration, error)
	countByEventFn         func(ctx context.Context, tx *gorm.DB, eventID uint) (int64, error)
	countByTicketFn        func(ctx context.Context, tx *gorm.DB, ticketID uint) (int64, error)
	markCheckedInFn        func(ctx context.Context, id uint, at time.Time) (bool, error)
	updateApprovalFn       func(ctx context.Context, id uint, status models.ApprovalStatus) error
	updateDocumentFn       func(ctx context.Context, id uint, documentURL string) error
	setTransferTokenFn     func(ctx context.Context, id uint, token string) error
	claimFn                func(ctx context.Context, tx *gorm.DB, id uint, token, userID, email string, guarantorID *string) (bool, error)
	createTransferFn       func(ctx context.Context, tx *gorm.DB, t *models.RegistrationTransfer) error
	transferConsumedFn     func(ctx context.Context, token string) (bool, error)
}

func (m *mockRegRepo) Create(ctx context.Context, tx *gorm.DB, r *models.Registration) error {
	return m.createFn(ctx, tx, r)
}
func (m *mockRegRepo) FindByID(ctx context.Context, id uint) (*models.Registration, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockRegRepo) FindByQRToken(ctx context.Context, token string) (*models.Registration, error) {
	return m.findByQRTokenFn(ctx, token)
}
func (m *mockRegRepo) FindByTransferToken(ctx context.Context, token string) (*models.Registration, error) {
	return m.findByTransferTokenFn(ctx, token)
}
func (m *mockRegRepo) FindByUserID(ctx context.Context, userID string) ([]models.Registration, error) {
	return m.findByUserIDFn(ctx, userID)
}
func (m *mockRegRepo) FindByEventID(ctx context.Context, eventID uint, approval *models.ApprovalStatus) ([]models.Registration, error) {
	return m.findByEventIDFn(ctx, eventID, approval)
}
func (m *mockRegRepo) FindPendingDocuments(ctx context.Context) ([]models.Registration, error) {
	return m.findPendingDocumentsFn(ctx)
}
func (m *mockRegRepo) CountByEvent(ctx context.Context, tx *gorm.DB, eventID uint) (int64, error) {
	if m.countByEventFn != nil {
		return m.countByEventFn(ctx, tx, eventID)
	}
	return 0, nil
}
func (m *mockRegRepo) CountByTicket(ctx context.Context, tx *gorm.DB, ticketID uint) (int64, error) {
	if m.countByTicketFn != nil {
		return m.countByTicketFn(ctx, tx, ticketID)
	}
	return 0, nil
}
func (m *mockRegRepo) MarkCheckedIn(ctx context.Context, id uint, at time.Time) (bool, error) {
	return m.markCheckedInFn(ctx, id, at)
}
func (m *mockRegRepo) UpdateApproval(ctx context.Context, id uint, status models.ApprovalStatus) error {
	return m.updateApprovalFn(ctx, id, status)
}
func (m *mockRegRepo) UpdateDocument(ctx context.Context, id uint, documentURL string) error {
	return m.updateDocumentFn(ctx, id, documentURL)
}
func (m *mockRegRepo) SetTransferToken(ctx context.Context, id uint, token string) error {
	return m.setTransferTokenFn(ctx, id, token)
}
func (m *mockRegRepo) Claim(ctx context.Context, tx *gorm.DB, id uint, token, userID, email string, guarantorID *string) (bool, error) {
	return m.claimFn(ctx, tx, id, token, userID, email, guarantorID)
}
func (m *mockRegRepo) CreateTransfer(ctx context.Context, tx *gorm.DB, t *models.RegistrationTransfer) error {
	if m.createTransferFn != nil {
		return m.createTransferFn(ctx, tx, t)
	}
	return nil
}
func (m *mockRegRepo) TransferTokenConsumed(ctx context.Context, token string) (bool, error) {
	return m.transferConsumedFn(ctx, token)
}
func (m *mockRegRepo) GetDB() *gorm.DB { return nil }

// --- Mock OrderRepository ---

type mockOrderRepo struct {
	createFn          func(ctx context.Context, tx *gorm.DB, o *models.Order) error
	findBySessionIDFn func(ctx context.Context, tx *gorm.DB, sessionID string) (*models.Order, error)
}

func (m *mockOrderRepo) Create(ctx context.Context, tx *gorm.DB, o *models.Order) error {
	return m.createFn(ctx, tx, o)
}
func (m *mockOrderRepo) FindBySessionID(ctx context.Context, tx *gorm.DB, sessionID string) (*models.Order, error) {
	if m.findBySessionIDFn != nil {
		return m.findBySessionIDFn(ctx, tx, sessionID)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockOrderRepo) List(ctx context.Context, page, size int, status *models.FulfillmentStatus) ([]models.Order, int64, error) {
	return nil, 0, nil
}
func (m *mockOrderRepo) GetDB() *gorm.DB { return nil }

// --- Mock PromoCodeRepository ---

type mockPromoRepo struct {
	createFn         func(ctx context.Context, code *models.PromotionalCode, eventIDs []uint) error
	updateFn         func(ctx context.Context, code *models.PromotionalCode, eventIDs []uint) error
	deleteFn         func(ctx context.Context, id uint) error
	findByIDFn       func(ctx context.Context, id uint) (*models.PromotionalCode, error)
	findByCodeFn     func(ctx context.Context, code string) (*models.PromotionalCode, error)
	findAllFn        func(ctx context.Context) ([]models.PromotionalCode, error)
	incrementUsageFn func(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
}

func (m *mockPromoRepo) Create(ctx context.Context, code *models.PromotionalCode, eventIDs []uint) error {
	return m.createFn(ctx, code, eventIDs)
}
func (m *mockPromoRepo) Update(ctx context.Context, code *models.PromotionalCode, eventIDs []uint) error {
	return m.updateFn(ctx, code, eventIDs)
}
func (m *mockPromoRepo) Delete(ctx context.Context, id uint) error {
	return m.deleteFn(ctx, id)
}
func (m *mockPromoRepo) FindByID(ctx context.Context, id uint) (*models.PromotionalCode, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockPromoRepo) FindByCode(ctx context.Context, code string) (*models.PromotionalCode, error) {
	return m.findByCodeFn(ctx, code)
}
func (m *mockPromoRepo) FindAll(ctx context.Context) ([]models.PromotionalCode, error) {
	return m.findAllFn(ctx)
}
func (m *mockPromoRepo) IncrementUsage(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	return m.incrementUsageFn(ctx, tx, id)
}

// --- Mock payment gateway ---

type mockGateway struct {
	createFn func(ctx context.Context, req payment.CheckoutRequest) (*payment.CheckoutSession, error)
	parseFn  func(payload []byte, sig string) (*payment.WebhookEvent, error)
}

func (m *mockGateway) CreateCheckoutSession(ctx context.Context, req payment.CheckoutRequest) (*payment.CheckoutSession, error) {
	return m.createFn(ctx, req)
}
func (m *mockGateway) ParseWebhook(payload []byte, sig string) (*payment.WebhookEvent, error) {
	return m.parseFn(payload, sig)
}

// --- Mock notifier ---

type mockNotifier struct {
	sent []notify.Confirmation
}

func (m *mockNotifier) RegistrationConfirmed(ctx context.Context, c notify.Confirmation) {
	m.sent = append(m.sent, c)
}

// inlineTx runs the callback without a database.
func inlineTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }
func uintPtr(v uint) *uint    { return &v }
func strPtr(v string) *string { return &v }
