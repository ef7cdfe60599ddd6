package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"CAMPUS_EVENTS_BACK-END/internal/models"
)

var (
	// ErrNotFound is returned when no record matches the lookup
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when registration collides with an existing email
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserStore persists user accounts
type UserStore interface {
	// Create inserts the user and assigns its id and timestamps.
	// Returns ErrDuplicateEmail when the email is already taken.
	Create(ctx context.Context, user *models.User) error

	// GetByEmail looks a user up by its (lower-cased) login email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID looks a user up by id.
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// EventStore persists event listings. Ownership checks happen in the
// handler layer; mutations here operate on already-authorized records.
type EventStore interface {
	// Create inserts the event and assigns its id and timestamps.
	Create(ctx context.Context, event *models.Event) error

	// GetByID looks an event up by id.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error)

	// List returns all events ordered by date ascending.
	List(ctx context.Context) ([]models.Event, error)

	// Search returns events whose title, description, type or location
	// contains the query, case-insensitively, ordered by date ascending.
	Search(ctx context.Context, query string) ([]models.Event, error)

	// Update overwrites the stored event with the given record.
	Update(ctx context.Context, event *models.Event) error

	// Delete removes the event by id.
	Delete(ctx context.Context, id uuid.UUID) error
}
