package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CAMPUS_EVENTS_BACK-END/internal/models"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func newEvent(title, day, typ string, owner uuid.UUID) *models.Event {
	return &models.Event{
		Title:       title,
		Description: "desc",
		Date:        date(day),
		Time:        "10:00",
		Location:    "Main Hall",
		Type:        typ,
		Organizer:   "CS Club",
		UserID:      owner,
	}
}

func TestMemoryUserStore_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	users := NewMemoryUserStore()

	first := &models.User{Name: "A", Email: "Same@Campus.edu", PasswordHash: "h", CollegeID: "1"}
	require.NoError(t, users.Create(ctx, first))

	second := &models.User{Name: "B", Email: "same@campus.edu", PasswordHash: "h", CollegeID: "2"}
	err := users.Create(ctx, second)
	require.ErrorIs(t, err, ErrDuplicateEmail)

	// Lookup is case-normalized and only one record exists
	got, err := users.GetByEmail(ctx, "SAME@campus.EDU")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, "A", got.Name)
}

func TestMemoryUserStore_GetByID(t *testing.T) {
	ctx := context.Background()
	users := NewMemoryUserStore()

	u := &models.User{Name: "A", Email: "a@campus.edu", PasswordHash: "h", CollegeID: "1"}
	require.NoError(t, users.Create(ctx, u))

	got, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)

	_, err = users.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryEventStore_ListOrdersByDate(t *testing.T) {
	ctx := context.Background()
	events := NewMemoryEventStore()
	owner := uuid.New()

	e1 := newEvent("Later", "2024-01-10", "Academic", owner)
	e2 := newEvent("Earlier", "2024-01-05", "Cultural", owner)
	require.NoError(t, events.Create(ctx, e1))
	require.NoError(t, events.Create(ctx, e2))

	list, err := events.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Earlier", list[0].Title)
	assert.Equal(t, "Later", list[1].Title)
}

func TestMemoryEventStore_Search(t *testing.T) {
	ctx := context.Background()
	events := NewMemoryEventStore()
	owner := uuid.New()

	technical := newEvent("Robotics Demo", "2024-03-01", "Technical", owner)
	fest := newEvent("Tech Fest", "2024-02-01", "Cultural", owner)
	other := newEvent("Poetry Evening", "2024-01-01", "Cultural", owner)
	require.NoError(t, events.Create(ctx, technical))
	require.NoError(t, events.Create(ctx, fest))
	require.NoError(t, events.Create(ctx, other))

	// Case-insensitive, matches type for one and title for the other
	got, err := events.Search(ctx, "tech")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Tech Fest", got[0].Title)
	assert.Equal(t, "Robotics Demo", got[1].Title)

	got, err = events.Search(ctx, "main hall")
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = events.Search(ctx, "no such thing")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemoryEventStore_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	events := NewMemoryEventStore()
	owner := uuid.New()

	e := newEvent("Original", "2024-05-01", "Workshop", owner)
	require.NoError(t, events.Create(ctx, e))

	e.Title = "Renamed"
	require.NoError(t, events.Update(ctx, e))

	got, err := events.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, "Workshop", got.Type)

	require.NoError(t, events.Delete(ctx, e.ID))
	_, err = events.GetByID(ctx, e.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	missing := newEvent("Ghost", "2024-05-01", "Other", owner)
	missing.ID = uuid.New()
	assert.ErrorIs(t, events.Update(ctx, missing), ErrNotFound)
	assert.ErrorIs(t, events.Delete(ctx, uuid.New()), ErrNotFound)
}
