package dto

import "time"

type CheckoutRequest struct {
	EventID   uint   `json:"event_id" validate:"required"`
	TicketID  uint   `json:"ticket_id" validate:"required"`
	PromoCode string `json:"promo_code" validate:"omitempty,max=64"`
}

type ClaimRequest struct {
	TransferToken string `json:"transfer_token" validate:"required,max=64"`
}

type CheckInRequest struct {
	QRCodeToken string `json:"qr_code_token" validate:"required,max=64"`
}

type ValidatePromoRequest struct {
	Code     string `json:"code" validate:"required,max=64"`
	EventID  uint   `json:"event_id" validate:"required"`
	TicketID *uint  `json:"ticket_id" validate:"omitempty,gt=0"`
}

type PromoCodeRequest struct {
	Code            string     `json:"code" validate:"required,max=64"`
	Description     string     `json:"description" validate:"max=500"`
	DiscountPercent *int       `json:"discount_percent" validate:"omitempty,min=1,max=100"`
	DiscountAmount  *int64     `json:"discount_amount" validate:"omitempty,gt=0"`
	ValidFrom       *time.Time `json:"valid_from"`
	ValidUntil      *time.Time `json:"valid_until"`
	UsageLimit      *int       `json:"usage_limit" validate:"omitempty,gte=0"`
	EventIDs        []uint     `json:"event_ids" validate:"dive,gt=0"`
}

type EventRequest struct {
	Title       string    `json:"title" validate:"required,max=200"`
	Slug        string    `json:"slug" validate:"required,max=200"`
	Description string    `json:"description"`
	Date        time.Time `json:"date" validate:"required"`
	Location    string    `json:"location" validate:"required,max=200"`
	Capacity    int       `json:"capacity" validate:"gte=0"`
	Status      string    `json:"status" validate:"omitempty,oneof=draft on_sale sold_out closed cancelled"`
	ImageURL    string    `json:"image_url" validate:"omitempty,url"`
}

type TicketRequest struct {
	RaceID           *uint  `json:"race_id"`
	Name             string `json:"name" validate:"required,max=200"`
	Description      string `json:"description"`
	Price            int64  `json:"price" validate:"gte=0"`
	Currency         string `json:"currency" validate:"omitempty,len=3"`
	MaxParticipants  *int   `json:"max_participants" validate:"omitempty,gte=0"`
	RequiresDocument bool   `json:"requires_document"`
	DocumentType     string `json:"document_type" validate:"max=100"`
}

type ApprovalRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
}

type DocumentRequest struct {
	DocumentURL string `json:"document_url" validate:"required,url"`
}
