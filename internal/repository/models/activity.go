package models

import (
	"database/sql"
	"time"
)

// Activity represents a row of the activities table. Content is the full
// versioned envelope stored as JSONB; activity_type is denormalized from it
// for filtering without touching the document.
type Activity struct {
	ID           string       `db:"id"` // ULID
	OwnerID      string       `db:"owner_id"`
	ActivityType string       `db:"activity_type"`
	Title        string       `db:"title"`
	Content      RawJSON      `db:"content"` // JSONB content envelope
	CreatedAt    time.Time    `db:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at"`
	DeletedAt    sql.NullTime `db:"deleted_at"`
}
