package models

import "time"

type PromotionalCode struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Code            string     `gorm:"uniqueIndex;not null" json:"code"`
	Description     string     `json:"description,omitempty"`
	DiscountPercent *int       `json:"discount_percent,omitempty"`
	DiscountAmount  *int64     `json:"discount_amount,omitempty"`
	ValidFrom       *time.Time `json:"valid_from,omitempty"`
	ValidUntil      *time.Time `json:"valid_until,omitempty"`
	UsageLimit      *int       `json:"usage_limit,omitempty"`
	UsedCount       int        `gorm:"not null;default:0" json:"used_count"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	Events []Event `gorm:"many2many:promotional_code_events" json:"events,omitempty"`
}

// AppliesTo reports whether the code may be used for eventID.
// An empty restriction set means every event.
func (p *PromotionalCode) AppliesTo(eventID uint) bool {
	if len(p.Events) == 0 {
		return true
	}
	for _, e := range p.Events {
		if e.ID == eventID {
			return true
		}
	}
	return false
}

func (p *PromotionalCode) Exhausted() bool {
	return p.UsageLimit != nil && p.UsedCount >= *p.UsageLimit
}
