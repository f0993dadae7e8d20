package domain

import (
	"context"
	"time"
)

// AI feature identifiers recorded in usage logs. Free-form strings are
// accepted by the table; these cover the features this service invokes.
const (
	FeatureActivityGeneration = "activity-generation"
)

// AIUsageLog records a single AI feature invocation: which user triggered
// it, the model used, token counts in and out, and wall-clock generation
// time. Metadata carries feature-specific details (prompt topic, variant
// counts, ...) without schema changes.
type AIUsageLog struct {
	ID             string
	UserID         string
	Feature        string
	InputTokens    int
	OutputTokens   int
	Model          string
	GenerationTime time.Duration
	Metadata       map[string]interface{}
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewAIUsageLog creates a new AIUsageLog instance
func NewAIUsageLog(userID, feature, model string) *AIUsageLog {
	now := time.Now()
	return &AIUsageLog{
		UserID:    userID,
		Feature:   feature,
		Model:     model,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TotalTokens returns input plus output tokens for the invocation.
func (l *AIUsageLog) TotalTokens() int {
	return l.InputTokens + l.OutputTokens
}

// Validate validates the usage log
func (l *AIUsageLog) Validate() error {
	if l.UserID == "" {
		return NewMissingFieldError("user_id")
	}
	if l.Feature == "" {
		return NewMissingFieldError("feature")
	}
	if l.InputTokens < 0 || l.OutputTokens < 0 {
		return NewInvalidInputError("token counts cannot be negative")
	}
	return nil
}

// UsageFilters narrows usage log listings. CreatedAt is served by the
// created_at index in either direction.
type UsageFilters struct {
	Feature   string
	StartDate *time.Time
	EndDate   *time.Time
	SortOrder string // "ASC" or "DESC" on created_at, default DESC
}

// FeatureUsageSummary aggregates token consumption per feature for a user.
type FeatureUsageSummary struct {
	Feature       string
	Invocations   int
	InputTokens   int
	OutputTokens  int
	TotalTokens   int
	LastInvokedAt time.Time
}

// AIUsageLogRepository defines the interface for usage log persistence.
type AIUsageLogRepository interface {
	CreateUsageLog(ctx context.Context, log *AIUsageLog) error
	GetUsageLogsByUserID(ctx context.Context, userID string, filters UsageFilters, limit, offset int) ([]AIUsageLog, int, error)
	GetUsageSummaryByUserID(ctx context.Context, userID string) ([]FeatureUsageSummary, error)
}
