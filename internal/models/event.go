package models

import (
	"time"

	"github.com/google/uuid"
)

// EventTypes is the fixed set of accepted event categories
var EventTypes = []string{"Academic", "Cultural", "Sports", "Technical", "Workshop", "Other"}

// ValidEventType reports whether t is one of the accepted categories
func ValidEventType(t string) bool {
	for _, v := range EventTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Event represents a campus event listing
type Event struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Date        time.Time `json:"date" db:"date"`
	Time        string    `json:"time" db:"time"`
	Location    string    `json:"location" db:"location"`
	Type        string    `json:"type" db:"type"`
	Organizer   string    `json:"organizer" db:"organizer"`
	Image       string    `json:"image" db:"image"` // relative path under /uploads, empty when no image
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
