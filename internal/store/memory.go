package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"CAMPUS_EVENTS_BACK-END/internal/models"
)

// MemoryUserStore is an in-memory UserStore used in tests
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]models.User
}

// NewMemoryUserStore creates an empty MemoryUserStore
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[uuid.UUID]models.User)}
}

func (s *MemoryUserStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	for _, u := range s.users {
		if u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}
	user.ID = uuid.New()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryUserStore) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	found := u
	return &found, nil
}

// Delete removes a user; only exercised by tests simulating deleted accounts
func (s *MemoryUserStore) Delete(_ context.Context, id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

// MemoryEventStore is an in-memory EventStore used in tests
type MemoryEventStore struct {
	mu     sync.RWMutex
	events map[uuid.UUID]models.Event
}

// NewMemoryEventStore creates an empty MemoryEventStore
func NewMemoryEventStore() *MemoryEventStore {
	return &MemoryEventStore{events: make(map[uuid.UUID]models.Event)}
}

func (s *MemoryEventStore) Create(_ context.Context, event *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	event.ID = uuid.New()
	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now
	s.events[event.ID] = *event
	return nil
}

func (s *MemoryEventStore) GetByID(_ context.Context, id uuid.UUID) (*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	found := e
	return &found, nil
}

func (s *MemoryEventStore) List(_ context.Context) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sorted(func(models.Event) bool { return true }), nil
}

func (s *MemoryEventStore) Search(_ context.Context, query string) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(query)
	match := func(e models.Event) bool {
		return strings.Contains(strings.ToLower(e.Title), q) ||
			strings.Contains(strings.ToLower(e.Description), q) ||
			strings.Contains(strings.ToLower(e.Type), q) ||
			strings.Contains(strings.ToLower(e.Location), q)
	}
	return s.sorted(match), nil
}

func (s *MemoryEventStore) Update(_ context.Context, event *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[event.ID]; !ok {
		return ErrNotFound
	}
	event.UpdatedAt = time.Now()
	s.events[event.ID] = *event
	return nil
}

func (s *MemoryEventStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[id]; !ok {
		return ErrNotFound
	}
	delete(s.events, id)
	return nil
}

// sorted returns matching events ordered by date asc, creation time as tiebreak.
// Callers must hold the lock.
func (s *MemoryEventStore) sorted(match func(models.Event) bool) []models.Event {
	events := make([]models.Event, 0)
	for _, e := range s.events {
		if match(e) {
			events = append(events, e)
		}
	}
	sort.Slice(events, func(i, j int) bool {
		if !events[i].Date.Equal(events[j].Date) {
			return events[i].Date.Before(events[j].Date)
		}
		return events[i].CreatedAt.Before(events[j].CreatedAt)
	})
	return events
}
