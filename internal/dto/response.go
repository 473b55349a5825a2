package dto

import (
	"time"

	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/models"
	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/service"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
}

type EventResponse struct {
	ID          uint               `json:"id"`
	Title       string             `json:"title"`
	Slug        string             `json:"slug"`
	Description string             `json:"description"`
	Date        time.Time          `json:"date"`
	Location    string             `json:"location"`
	Capacity    int                `json:"capacity"`
	Status      models.EventStatus `json:"status"`
	ImageURL    string             `json:"image_url,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

func ToEventResponse(e *models.Event) EventResponse {
	return EventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Slug:        e.Slug,
		Description: e.Description,
		Date:        e.Date,
		Location:    e.Location,
		Capacity:    e.Capacity,
		Status:      e.Status,
		ImageURL:    e.ImageURL,
		CreatedAt:   e.CreatedAt,
	}
}

type TicketResponse struct {
	ID               uint   `json:"id"`
	EventID          uint   `json:"event_id"`
	RaceID           *uint  `json:"race_id,omitempty"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	Price            int64  `json:"price"`
	Currency         string `json:"currency"`
	MaxParticipants  *int   `json:"max_participants,omitempty"`
	RequiresDocument bool   `json:"requires_document"`
	DocumentType     string `json:"document_type,omitempty"`
}

func ToTicketResponse(t *models.Ticket) TicketResponse {
	return TicketResponse{
		ID:               t.ID,
		EventID:          t.EventID,
		RaceID:           t.RaceID,
		Name:             t.Name,
		Description:      t.Description,
		Price:            t.Price,
		Currency:         t.Currency,
		MaxParticipants:  t.MaxParticipants,
		RequiresDocument: t.RequiresDocument,
		DocumentType:     t.DocumentType,
	}
}

type RegistrationResponse struct {
	ID             uint                  `json:"id"`
	EventID        uint                  `json:"event_id"`
	EventTitle     string                `json:"event_title,omitempty"`
	TicketID       uint                  `json:"ticket_id"`
	TicketName     string                `json:"ticket_name,omitempty"`
	Email          string                `json:"email"`
	QRCodeToken    string                `json:"qr_code_token,omitempty"`
	ClaimStatus    models.ClaimStatus    `json:"claim_status"`
	CheckedIn      bool                  `json:"checked_in"`
	CheckedInAt    *time.Time            `json:"checked_in_at,omitempty"`
	ApprovalStatus models.ApprovalStatus `json:"approval_status"`
	DocumentURL    string                `json:"document_url,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
}

// ToRegistrationResponse exposes the QR token only to the registration's holder.
func ToRegistrationResponse(r *models.Registration, withQR bool) RegistrationResponse {
	resp := RegistrationResponse{
		ID:             r.ID,
		EventID:        r.EventID,
		TicketID:       r.TicketID,
		Email:          r.Email,
		ClaimStatus:    r.ClaimStatus,
		CheckedIn:      r.CheckedIn,
		CheckedInAt:    r.CheckedInAt,
		ApprovalStatus: r.ApprovalStatus,
		DocumentURL:    r.DocumentURL,
		CreatedAt:      r.CreatedAt,
	}
	if withQR {
		resp.QRCodeToken = r.QRCodeToken
	}
	if r.Event != nil {
		resp.EventTitle = r.Event.Title
	}
	if r.Ticket != nil {
		resp.TicketName = r.Ticket.Name
	}
	return resp
}

func ToRegistrationResponses(regs []models.Registration, withQR bool) []RegistrationResponse {
	resp := make([]RegistrationResponse, len(regs))
	for i := range regs {
		resp[i] = ToRegistrationResponse(&regs[i], withQR)
	}
	return resp
}

type TransferResponse struct {
	RegistrationID uint   `json:"registration_id"`
	TransferToken  string `json:"transfer_token"`
}

type PromoCodeResponse struct {
	ID              uint       `json:"id"`
	Code            string     `json:"code"`
	Description     string     `json:"description,omitempty"`
	DiscountPercent *int       `json:"discount_percent,omitempty"`
	DiscountAmount  *int64     `json:"discount_amount,omitempty"`
	ValidFrom       *time.Time `json:"valid_from,omitempty"`
	ValidUntil      *time.Time `json:"valid_until,omitempty"`
	UsageLimit      *int       `json:"usage_limit,omitempty"`
	UsedCount       int        `json:"used_count"`
	EventIDs        []uint     `json:"event_ids"`
}

func ToPromoCodeResponse(p *models.PromotionalCode) PromoCodeResponse {
	ids := make([]uint, len(p.Events))
	for i, e := range p.Events {
		ids[i] = e.ID
	}
	return PromoCodeResponse{
		ID:              p.ID,
		Code:            p.Code,
		Description:     p.Description,
		DiscountPercent: p.DiscountPercent,
		DiscountAmount:  p.DiscountAmount,
		ValidFrom:       p.ValidFrom,
		ValidUntil:      p.ValidUntil,
		UsageLimit:      p.UsageLimit,
		UsedCount:       p.UsedCount,
		EventIDs:        ids,
	}
}

type PromoValidationResponse struct {
	Valid           bool   `json:"valid"`
	Code            string `json:"code"`
	DiscountPercent *int   `json:"discount_percent,omitempty"`
	DiscountAmount  *int64 `json:"discount_amount,omitempty"`
	OriginalPrice   *int64 `json:"original_price,omitempty"`
	Discount        *int64 `json:"discount,omitempty"`
	FinalPrice      *int64 `json:"final_price,omitempty"`
}

func ToPromoValidationResponse(q *service.PromoQuote) PromoValidationResponse {
	return PromoValidationResponse{
		Valid:           true,
		Code:            q.Code.Code,
		DiscountPercent: q.Code.DiscountPercent,
		DiscountAmount:  q.Code.DiscountAmount,
		OriginalPrice:   q.OriginalAmount,
		Discount:        q.DiscountAmount,
		FinalPrice:      q.FinalAmount,
	}
}
