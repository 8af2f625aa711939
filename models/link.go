package models

import (
	"time"
)

// Link statuses. An Inactive link is never redirected, but its record and
// click history stay visible to the owner.
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

type Link struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	UserID      uint         `json:"userId" gorm:"index;not null"`
	OriginalURL string       `json:"originalUrl" gorm:"not null"`
	ShortCode   string       `json:"shortCode" gorm:"uniqueIndex;not null"`
	ShortURL    string       `json:"shortUrl" gorm:"-"`
	Title       string       `json:"title" gorm:"default:'Untitled Link'"`
	Description string       `json:"description"`
	Status      string       `json:"status" gorm:"default:'Active'"`
	Clicks      int64        `json:"clicks" gorm:"default:0"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	ClickEvents []ClickEvent `json:"clickEvents,omitempty" gorm:"foreignKey:LinkID"`
}

func (l *Link) IsActive() bool {
	return l.Status == StatusActive
}
