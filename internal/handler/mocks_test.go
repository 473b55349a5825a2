package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/middleware"
	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/models"
	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/service"
)

// --- Mock EventService ---

type mockEventService struct {
	createFn       func(ctx context.Context, event *models.Event) error
	updateFn       func(ctx context.Context, event *models.Event) error
	deleteFn       func(ctx context.Context, id uint) error
	getFn          func(ctx context.Context, id uint) (*models.Event, error)
	listFn         func(ctx context.Context, includeDrafts bool) ([]models.Event, error)
	availabilityFn func(ctx context.Context, id uint) (*service.Availability, error)
}

func (m *mockEventService) CreateEvent(ctx context.Context, event *models.Event) error {
	return m.createFn(ctx, event)
}
func (m *mockEventService) UpdateEvent(ctx context.Context, event *models.Event) error {
	return m.updateFn(ctx, event)
}
func (m *mockEventService) DeleteEvent(ctx context.Context, id uint) error {
	return m.deleteFn(ctx, id)
}
func (m *mockEventService) GetEvent(ctx context.Context, id uint) (*models.Event, error) {
	return m.getFn(ctx, id)
}
func (m *mockEventService) ListEvents(ctx context.Context, includeDrafts bool) ([]models.Event, error) {
	return m.listFn(ctx, includeDrafts)
}
func (m *mockEventService) Availability(ctx context.Context, id uint) (*service.Availability, error) {
	return m.availabilityFn(ctx, id)
}

// --- Mock TicketService ---

type mockTicketService struct {
	createFn func(ctx context.Context, ticket *models.Ticket) error
	updateFn func(ctx context.Context, ticket *models.Ticket) error
	deleteFn func(ctx context.Context, id uint) error
	getFn    func(ctx context.Context, id uint) (*models.Ticket, error)
	listFn   func(ctx context.Context, eventID uint) ([]models.Ticket, error)
}

func (m *mockTicketService) CreateTicket(ctx context.Context, ticket *models.Ticket) error {
	return m.createFn(ctx, ticket)
}
func (m *mockTicketService) UpdateTicket(ctx context.Context, ticket *models.Ticket) error {
	return m.updateFn(ctx, ticket)
}
func (m *mockTicketService) DeleteTicket(ctx context.Context, id uint) error {
	return m.deleteFn(ctx, id)
}
func (m *mockTicketService) GetTicket(ctx context.Context, id uint) (*models.Ticket, error) {
	return m.getFn(ctx, id)
}
func (m *mockTicketService) ListTickets(ctx context.Context, eventID uint) ([]models.Ticket, error) {
	return m.listFn(ctx, eventID)
}

// --- Mock CheckoutService / FulfillmentService ---

type mockCheckoutService struct {
	createFn func(ctx context.Context, account service.Account, in service.CheckoutInput) (*service.CheckoutResult, error)
}

func (m *mockCheckoutService) CreateCheckout(ctx context.Context, account service.Account, in service.CheckoutInput) (*service.CheckoutResult, error) {
	return m.createFn(ctx, account, in)
}

type mockFulfillmentService struct {
	webhookFn func(ctx context.Context, payload []byte, signature string) (*service.FulfillmentResult, error)
	fulfillFn func(ctx context.Context, c service.CheckoutCompletion) (*service.FulfillmentResult, error)
}

func (m *mockFulfillmentService) HandleWebhook(ctx context.Context, payload []byte, signature string) (*service.FulfillmentResult, error) {
	return m.webhookFn(ctx, payload, signature)
}
func (m *mockFulfillmentService) Fulfill(ctx context.Context, c service.CheckoutCompletion) (*service.FulfillmentResult, error) {
	return m.fulfillFn(ctx, c)
}

// --- Mock RegistrationService ---

type mockRegistrationService struct {
	listMineFn     func(ctx context.Context, account service.Account) ([]models.Registration, error)
	listForEventFn func(ctx context.Context, eventID uint, approval *models.ApprovalStatus) ([]models.Registration, error)
	transferFn     func(ctx context.Context, account service.Account, registrationID uint) (string, error)
	claimFn        func(ctx context.Context, account service.Account, token string) (*models.Registration, error)
	checkInFn      func(ctx context.Context, qrToken string) (*models.Registration, error)
	approvalFn     func(ctx context.Context, registrationID uint, status models.ApprovalStatus) (*models.Registration, error)
	documentFn     func(ctx context.Context, account service.Account, registrationID uint, documentURL string) (*models.Registration, error)
}

func (m *mockRegistrationService) ListMine(ctx context.Context, account service.Account) ([]models.Registration, error) {
	return m.listMineFn(ctx, account)
}
func (m *mockRegistrationService) ListForEvent(ctx context.Context, eventID uint, approval *models.ApprovalStatus) ([]models.Registration, error) {
	return m.listForEventFn(ctx, eventID, approval)
}
func (m *mockRegistrationService) IssueTransfer(ctx context.Context, account service.Account, registrationID uint) (string, error) {
	return m.transferFn(ctx, account, registrationID)
}
func (m *mockRegistrationService) Claim(ctx context.Context, account service.Account, token string) (*models.Registration, error) {
	return m.claimFn(ctx, account, token)
}
func (m *mockRegistrationService) CheckIn(ctx context.Context, qrToken string) (*models.Registration, error) {
	return m.checkInFn(ctx, qrToken)
}
func (m *mockRegistrationService) SetApproval(ctx context.Context, registrationID uint, status models.ApprovalStatus) (*models.Registration, error) {
	return m.approvalFn(ctx, registrationID, status)
}
func (m *mockRegistrationService) UploadDocument(ctx context.Context, account service.Account, registrationID uint, documentURL string) (*models.Registration, error) {
	return m.documentFn(ctx, account, registrationID, documentURL)
}

// --- Mock PromoService ---

type mockPromoService struct {
	validateFn func(ctx context.Context, code string, eventID uint, ticketID *uint) (*service.PromoQuote, error)
	createFn   func(ctx context.Context, code *models.PromotionalCode, eventIDs []uint) error
	updateFn   func(ctx context.Context, code *models.PromotionalCode, eventIDs []uint) error
	deleteFn   func(ctx context.Context, id uint) error
	getFn      func(ctx context.Context, id uint) (*models.PromotionalCode, error)
	listFn     func(ctx context.Context) ([]models.PromotionalCode, error)
}

func (m *mockPromoService) Validate(ctx context.Context, code string, eventID uint, ticketID *uint) (*service.PromoQuote, error) {
	return m.validateFn(ctx, code, eventID, ticketID)
}
func (m *mockPromoService) CreateCode(ctx context.Context, code *models.PromotionalCode, eventIDs []uint) error {
	return m.createFn(ctx, code, eventIDs)
}
func (m *mockPromoService) UpdateCode(ctx context.Context, code *models.PromotionalCode, eventIDs []uint) error {
	return m.updateFn(ctx, code, eventIDs)
}
func (m *mockPromoService) DeleteCode(ctx context.Context, id uint) error {
	return m.deleteFn(ctx, id)
}
func (m *mockPromoService) GetCode(ctx context.Context, id uint) (*models.PromotionalCode, error) {
	return m.getFn(ctx, id)
}
func (m *mockPromoService) ListCodes(ctx context.Context) ([]models.PromotionalCode, error) {
	return m.listFn(ctx)
}

// --- Mock repositories ---

type mockOrderRepo struct {
	listFn func(ctx context.Context, page, size int, status *models.FulfillmentStatus) ([]models.Order, int64, error)
}

func (m *mockOrderRepo) Create(ctx context.Context, tx *gorm.DB, o *models.Order) error { return nil }
func (m *mockOrderRepo) FindBySessionID(ctx context.Context, tx *gorm.DB, sessionID string) (*models.Order, error) {
	return nil, gorm.ErrRecordNotFound
}
func (m *mockOrderRepo) List(ctx context.Context, page, size int, status *models.FulfillmentStatus) ([]models.Order, int64, error) {
	return m.listFn(ctx, page, size, status)
}
func (m *mockOrderRepo) GetDB() *gorm.DB { return nil }

type mockRequestLogRepo struct {
	listFn func(ctx context.Context, page, size int) ([]models.RequestLog, int64, error)
}

func (m *mockRequestLogRepo) Create(ctx context.Context, entry *models.RequestLog) error { return nil }
func (m *mockRequestLogRepo) List(ctx context.Context, page, size int) ([]models.RequestLog, int64, error) {
	return m.listFn(ctx, page, size)
}

// --- Helpers ---

func newContext(method, target string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = middleware.NewValidator()
	req := httptest.NewRequest(method, target, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withUser(c echo.Context, id, email string) {
	middleware.SetCurrentUser(c, &models.Profile{ID: id, Email: email, FullName: "Jeanne Martin", Role: models.RoleUser})
}

func withParam(c echo.Context, name, value string) {
	c.SetParamNames(name)
	c.SetParamValues(value)
}

func requireHTTPError(t *testing.T, err error, code int) *echo.HTTPError {
	t.Helper()
	var he *echo.HTTPError
	require.True(t, errors.As(err, &he), "expected *echo.HTTPError, got %v", err)
	require.Equal(t, code, he.Code)
	return he
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}
