package models

import "time"

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

func (s ApprovalStatus) Valid() bool {
	return s == ApprovalPending || s == ApprovalApproved || s == ApprovalRejected
}

type ClaimStatus string

const (
	ClaimNone    ClaimStatus = ""
	ClaimClaimed ClaimStatus = "claimed"
)

type Registration struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	EventID        uint           `gorm:"not null;index" json:"event_id"`
	TicketID       uint           `gorm:"not null;index" json:"ticket_id"`
	UserID         *string        `gorm:"index" json:"user_id,omitempty"`
	Email          string         `gorm:"not null" json:"email"`
	OrderID        *uint          `gorm:"index" json:"order_id,omitempty"`
	QRCodeToken    string         `gorm:"column:qr_code_token;uniqueIndex;not null" json:"-"`
	TransferToken  *string        `gorm:"uniqueIndex" json:"-"`
	ClaimStatus    ClaimStatus    `gorm:"type:varchar(20);not null;default:''" json:"claim_status"`
	GuarantorID    *string        `json:"guarantor_id,omitempty"`
	CheckedIn      bool           `gorm:"not null;default:false" json:"checked_in"`
	CheckedInAt    *time.Time     `json:"checked_in_at,omitempty"`
	ApprovalStatus ApprovalStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"approval_status"`
	DocumentURL    string         `json:"document_url,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`

	Ticket *Ticket `gorm:"foreignKey:TicketID" json:"ticket,omitempty"`
	Event  *Event  `gorm:"foreignKey:EventID" json:"event,omitempty"`
}

// OwnedBy reports whether userID currently holds the registration.
func (r *Registration) OwnedBy(userID string) bool {
	return r.UserID != nil && *r.UserID == userID
}

// RegistrationTransfer records a consumed transfer token.
type RegistrationTransfer struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	RegistrationID uint      `gorm:"not null;index" json:"registration_id"`
	Token          string    `gorm:"uniqueIndex;not null" json:"-"`
	FromUserID     *string   `json:"from_user_id,omitempty"`
	ToUserID       string    `gorm:"not null" json:"to_user_id"`
	ClaimedAt      time.Time `gorm:"not null" json:"claimed_at"`
}
