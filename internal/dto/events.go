package dto

// EventResponse represents an event object in responses
type EventResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"` // YYYY-MM-DD
	Time        string `json:"time"`
	Location    string `json:"location"`
	Type        string `json:"type"`
	Organizer   string `json:"organizer"`
	Image       string `json:"image"` // relative path under /uploads, empty when none
	UserID      string `json:"user_id"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// EventListResponse envelope for event collections
type EventListResponse struct {
	Events []EventResponse `json:"events"`
	Total  int             `json:"total"`
}

// MessageResponse is a minimal confirmation payload
type MessageResponse struct {
	Message string `json:"message"`
}
