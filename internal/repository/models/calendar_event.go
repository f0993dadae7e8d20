package models

import (
	"database/sql"
	"time"
)

// PersonalCalendarEvent represents a row of the personal_calendar_events
// table. The table carries a CHECK (ends_at >= starts_at) constraint.
type PersonalCalendarEvent struct {
	ID          string         `db:"id"` // ULID
	UserID      string         `db:"user_id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	StartsAt    time.Time      `db:"starts_at"`
	EndsAt      time.Time      `db:"ends_at"`
	IsAllDay    bool           `db:"is_all_day"`
	EventType   string         `db:"event_type"` // One of the fixed event type enum values
	Color       sql.NullString `db:"color"`      // Display color hex string
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
	DeletedAt   sql.NullTime   `db:"deleted_at"`
}
