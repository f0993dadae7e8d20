package models

import (
	"time"
)

// AIUsageLog represents a row of the ai_usage_logs table. Rows are removed
// by the database when the referenced user is deleted (ON DELETE CASCADE).
type AIUsageLog struct {
	ID               string    `db:"id"`                 // ULID
	UserID           string    `db:"user_id"`            // Foreign key to users, cascades on delete
	Feature          string    `db:"feature"`            // AI feature identifier
	InputTokens      int       `db:"input_tokens"`       // Prompt tokens consumed
	OutputTokens     int       `db:"output_tokens"`      // Completion tokens produced
	Model            string    `db:"model"`              // Model name used for the invocation
	GenerationTimeMs int64     `db:"generation_time_ms"` // Wall-clock generation time in milliseconds
	Metadata         JSONMap   `db:"metadata"`           // Feature-specific details, JSONB
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}
