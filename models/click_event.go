package models

import (
	"time"
)

// ClickEvent is one redirect of a registered link. Rows are insert-only and
// are bulk-deleted together with their link.
type ClickEvent struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	LinkID    uint      `json:"linkId" gorm:"index;not null"`
	Timestamp time.Time `json:"timestamp" gorm:"index"`
	IPAddress string    `json:"ipAddress"`
	UserAgent string    `json:"userAgent"`
	Referer   string    `json:"referer"`
}
