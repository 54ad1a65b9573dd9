package event

import (
	"context"
	"time"
)

// Repository defines the storage interface for events.
type Repository interface {
	// CreateEvent adds a new event. An empty ID is replaced with a fresh one.
	// Returns ErrDuplicateID if the ID is already taken.
	CreateEvent(ctx context.Context, e *Event) error

	// CreateEvents adds multiple events in a batch.
	CreateEvents(ctx context.Context, events []*Event) error

	// GetEvent retrieves an event by ID.
	// Returns ErrEventNotFound if no event has that ID.
	GetEvent(ctx context.Context, id string) (*Event, error)

	// UpdateEvent replaces the event with the same ID.
	// Returns ErrEventNotFound if no event has that ID.
	UpdateEvent(ctx context.Context, e *Event) error

	// DeleteEvent removes an event by ID.
	// Returns ErrEventNotFound if no event has that ID.
	DeleteEvent(ctx context.Context, id string) error

	// ListEvents returns every event in insertion order.
	ListEvents(ctx context.Context) ([]*Event, error)

	// ListEventsByDateRange returns events dated within the range (inclusive),
	// ordered by date, then insertion order.
	ListEventsByDateRange(ctx context.Context, start, end time.Time) ([]*Event, error)

	// Close releases any resources held by the repository.
	Close() error
}
