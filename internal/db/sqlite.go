// Package db provides the SQLite event repository.
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/rocinante/internal/dateutil"
	"github.com/javiermolinar/rocinante/internal/event"
)

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:"

const eventColumns = `id, title, date, time, duration, category, description, color, location, attendees`

// SQLite implements event.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

var _ event.Repository = (*SQLite)(nil)

// New creates a new SQLite repository and runs migrations.
// Use MemoryDSN for a collection that lives only as long as the process.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Every connection to :memory: is a separate database.
	if path == MemoryDSN {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// CreateEvent adds a new event. An empty ID is replaced with a fresh UUID.
// Returns ErrDuplicateID if the ID is already taken.
func (s *SQLite) CreateEvent(ctx context.Context, e *event.Event) error {
	return insertEvent(ctx, s.db, e)
}

// CreateEvents adds multiple events in a single transaction.
// Nothing is inserted if any event is invalid or its ID is taken.
func (s *SQLite) CreateEvents(ctx context.Context, events []*event.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	assigned := make([]bool, len(events))
	for i, e := range events {
		assigned[i] = e.ID == ""
		if err := insertEvent(ctx, tx, e); err != nil {
			// Undo IDs handed out for a batch that never landed.
			for j := 0; j < i; j++ {
				if assigned[j] {
					events[j].ID = ""
				}
			}
			return fmt.Errorf("event %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func insertEvent(ctx context.Context, db execer, e *event.Event) error {
	if err := event.Validate(e); err != nil {
		return err
	}

	id := e.ID
	if id == "" {
		id = uuid.NewString()
	}

	exists, err := eventExists(ctx, db, id)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", event.ErrDuplicateID, id)
	}

	attendees, err := encodeAttendees(e.Attendees)
	if err != nil {
		return err
	}

	query := `INSERT INTO events (` + eventColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = db.ExecContext(ctx, query,
		id,
		e.Title,
		e.Date,
		e.Time,
		e.Duration,
		e.Category,
		e.Description,
		e.Color,
		e.Location,
		attendees,
	)
	if err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}

	e.ID = id
	return nil
}

func eventExists(ctx context.Context, db execer, id string) (bool, error) {
	var n int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events WHERE id = ?`, id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking event id: %w", err)
	}
	return n > 0, nil
}

// GetEvent retrieves an event by ID.
// Returns ErrEventNotFound if no event has that ID.
func (s *SQLite) GetEvent(ctx context.Context, id string) (*event.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = ?`

	e, err := scanEvent(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", event.ErrEventNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying event: %w", err)
	}
	return e, nil
}

// UpdateEvent replaces every field of the event with the same ID. The
// event keeps its position in insertion order.
// Returns ErrEventNotFound if no event has that ID.
func (s *SQLite) UpdateEvent(ctx context.Context, e *event.Event) error {
	if e != nil && e.ID == "" {
		return fmt.Errorf("%w: empty id", event.ErrEventNotFound)
	}
	if err := event.Validate(e); err != nil {
		return err
	}

	attendees, err := encodeAttendees(e.Attendees)
	if err != nil {
		return err
	}

	query := `
		UPDATE events
		SET title = ?, date = ?, time = ?, duration = ?, category = ?,
		    description = ?, color = ?, location = ?, attendees = ?
		WHERE id = ?
	`
	result, err := s.db.ExecContext(ctx, query,
		e.Title,
		e.Date,
		e.Time,
		e.Duration,
		e.Category,
		e.Description,
		e.Color,
		e.Location,
		attendees,
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating event: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: %s", event.ErrEventNotFound, e.ID)
	}
	return nil
}

// DeleteEvent removes an event by ID.
// Returns ErrEventNotFound if no event has that ID.
func (s *SQLite) DeleteEvent(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: %s", event.ErrEventNotFound, id)
	}
	return nil
}

// ListEvents returns every event in insertion order.
func (s *SQLite) ListEvents(ctx context.Context) ([]*event.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY seq`
	return s.queryEvents(ctx, query)
}

// ListEventsByDateRange returns events dated within the range (inclusive),
// ordered by date, then insertion order.
func (s *SQLite) ListEventsByDateRange(ctx context.Context, start, end time.Time) ([]*event.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE date >= ? AND date <= ?
		ORDER BY date, seq
	`
	return s.queryEvents(ctx, query, dateutil.FormatKey(start), dateutil.FormatKey(end))
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) queryEvents(ctx context.Context, query string, args ...any) ([]*event.Event, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []*event.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}
	return events, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(row scanner) (*event.Event, error) {
	var (
		e         event.Event
		attendees string
	)
	err := row.Scan(
		&e.ID,
		&e.Title,
		&e.Date,
		&e.Time,
		&e.Duration,
		&e.Category,
		&e.Description,
		&e.Color,
		&e.Location,
		&attendees,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(attendees), &e.Attendees); err != nil {
		return nil, fmt.Errorf("decoding attendees: %w", err)
	}
	if len(e.Attendees) == 0 {
		e.Attendees = nil
	}
	return &e, nil
}

func encodeAttendees(attendees []string) (string, error) {
	if len(attendees) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(attendees)
	if err != nil {
		return "", fmt.Errorf("encoding attendees: %w", err)
	}
	return string(data), nil
}
