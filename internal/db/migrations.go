package db

import "fmt"

// migrate creates the events table. seq records insertion order; id is the
// opaque event ID exposed to callers.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS events (
			seq         INTEGER PRIMARY KEY AUTOINCREMENT,
			id          TEXT NOT NULL UNIQUE,
			title       TEXT NOT NULL,
			date        TEXT NOT NULL,
			time        TEXT NOT NULL,
			duration    INTEGER NOT NULL CHECK(duration > 0),
			category    TEXT NOT NULL CHECK(category IN ('work', 'personal', 'meeting', 'deadline', 'reminder')),
			description TEXT NOT NULL DEFAULT '',
			color       TEXT NOT NULL DEFAULT '',
			location    TEXT NOT NULL DEFAULT '',
			attendees   TEXT NOT NULL DEFAULT '[]'
		);

		CREATE INDEX IF NOT EXISTS idx_events_date ON events(date);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating events table: %w", err)
	}

	return nil
}
