package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"CAMPUS_EVENTS_BACK-END/internal/models"
)

const uniqueViolation = "23505"

// PostgresUserStore is the pgx-backed UserStore
type PostgresUserStore struct {
	pool *pgxpool.Pool
}

// NewPostgresUserStore creates a PostgresUserStore on the given pool
func NewPostgresUserStore(pool *pgxpool.Pool) *PostgresUserStore {
	return &PostgresUserStore{pool: pool}
}

func (s *PostgresUserStore) Create(ctx context.Context, user *models.User) error {
	user.ID = uuid.New()
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, name, email, password_hash, college_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ID, user.Name, user.Email, user.PasswordHash, user.CollegeID, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, college_id, created_at, updated_at
		   FROM users WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email))).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CollegeID, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user := &models.User{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, college_id, created_at, updated_at
		   FROM users WHERE id = $1`, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CollegeID, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// PostgresEventStore is the pgx-backed EventStore
type PostgresEventStore struct {
	pool *pgxpool.Pool
}

// NewPostgresEventStore creates a PostgresEventStore on the given pool
func NewPostgresEventStore(pool *pgxpool.Pool) *PostgresEventStore {
	return &PostgresEventStore{pool: pool}
}

const eventColumns = `id, title, description, date, time, location, type, organizer, image, user_id, created_at, updated_at`

func scanEvent(row pgx.Row, e *models.Event) error {
	return row.Scan(&e.ID, &e.Title, &e.Description, &e.Date, &e.Time, &e.Location,
		&e.Type, &e.Organizer, &e.Image, &e.UserID, &e.CreatedAt, &e.UpdatedAt)
}

func (s *PostgresEventStore) Create(ctx context.Context, event *models.Event) error {
	event.ID = uuid.New()
	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now

	_, err := s.pool.Exec(ctx,
		`INSERT INTO events (id, title, description, date, time, location, type, organizer, image, user_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		event.ID, event.Title, event.Description, event.Date, event.Time, event.Location,
		event.Type, event.Organizer, event.Image, event.UserID, event.CreatedAt, event.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

func (s *PostgresEventStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	event := &models.Event{}
	row := s.pool.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	err := scanEvent(row, event)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find event: %w", err)
	}
	return event, nil
}

func (s *PostgresEventStore) List(ctx context.Context) ([]models.Event, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+eventColumns+` FROM events ORDER BY date ASC, created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()
	return collectEvents(rows)
}

// likeMetaReplacer neutralizes LIKE metacharacters so a search for "100%"
// matches the literal text instead of acting as a wildcard
var likeMetaReplacer = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(query string) string {
	return "%" + likeMetaReplacer.Replace(query) + "%"
}

func (s *PostgresEventStore) Search(ctx context.Context, query string) ([]models.Event, error) {
	pattern := likePattern(query)
	rows, err := s.pool.Query(ctx,
		`SELECT `+eventColumns+` FROM events
		  WHERE title ILIKE $1 OR description ILIKE $1 OR type ILIKE $1 OR location ILIKE $1
		  ORDER BY date ASC, created_at ASC`, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search events: %w", err)
	}
	defer rows.Close()
	return collectEvents(rows)
}

func (s *PostgresEventStore) Update(ctx context.Context, event *models.Event) error {
	event.UpdatedAt = time.Now()
	tag, err := s.pool.Exec(ctx,
		`UPDATE events
		    SET title = $1,
		        description = $2,
		        date = $3,
		        time = $4,
		        location = $5,
		        type = $6,
		        organizer = $7,
		        image = $8,
		        updated_at = $9
		  WHERE id = $10`,
		event.Title, event.Description, event.Date, event.Time, event.Location,
		event.Type, event.Organizer, event.Image, event.UpdatedAt, event.ID)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresEventStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func collectEvents(rows pgx.Rows) ([]models.Event, error) {
	events := make([]models.Event, 0)
	for rows.Next() {
		var e models.Event
		if err := scanEvent(rows, &e); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}
	return events, nil
}
