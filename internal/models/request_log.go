package models

import "time"

type RequestLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Method    string    `gorm:"type:varchar(10);not null" json:"method"`
	Path      string    `gorm:"not null" json:"path"`
	Status    int       `gorm:"not null" json:"status"`
	LatencyMs int64     `json:"latency_ms"`
	UserID    *string   `json:"user_id,omitempty"`
	IP        string    `json:"ip"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
