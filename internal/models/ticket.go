package models

import "time"

type Ticket struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	EventID          uint      `gorm:"not null;index" json:"event_id"`
	RaceID           *uint     `json:"race_id,omitempty"`
	Name             string    `gorm:"not null" json:"name"`
	Description      string    `json:"description"`
	Price            int64     `gorm:"not null" json:"price"`
	Currency         string    `gorm:"type:varchar(3);not null;default:'eur'" json:"currency"`
	MaxParticipants  *int      `json:"max_participants,omitempty"`
	RequiresDocument bool      `gorm:"not null;default:false" json:"requires_document"`
	DocumentType     string    `json:"document_type,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
}
