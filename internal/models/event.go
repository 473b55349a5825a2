package models

import "time"

type EventStatus string

const (
	EventDraft     EventStatus = "draft"
	EventOnSale    EventStatus = "on_sale"
	EventSoldOut   EventStatus = "sold_out"
	EventClosed    EventStatus = "closed"
	EventCancelled EventStatus = "cancelled"
)

func (s EventStatus) Valid() bool {
	switch s {
	case EventDraft, EventOnSale, EventSoldOut, EventClosed, EventCancelled:
		return true
	}
	return false
}

// Purchasable reports whether tickets for an event in this status can be bought.
func (s EventStatus) Purchasable() bool {
	return s == EventOnSale
}

type Event struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Title       string      `gorm:"not null" json:"title"`
	Slug        string      `gorm:"uniqueIndex;not null" json:"slug"`
	Description string      `json:"description"`
	Date        time.Time   `gorm:"not null" json:"date"`
	Location    string      `gorm:"not null" json:"location"`
	Capacity    int         `gorm:"not null" json:"capacity"`
	Status      EventStatus `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`
	ImageURL    string      `json:"image_url"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	Tickets []Ticket `gorm:"foreignKey:EventID" json:"tickets,omitempty"`
}
