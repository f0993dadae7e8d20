package dto

import (
	"time"

	"lxp-core/internal/domain"
)

// UsageLogResponse represents an AI usage log entry in the API response
// @Description Single AI feature invocation record
type UsageLogResponse struct {
	ID               string                 `json:"id"`
	Feature          string                 `json:"feature"`
	Model            string                 `json:"model,omitempty"`
	InputTokens      int                    `json:"input_tokens"`
	OutputTokens     int                    `json:"output_tokens"`
	TotalTokens      int                    `json:"total_tokens"`
	GenerationTimeMs int64                  `json:"generation_time_ms"`
	Metadata         map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt        time.Time              `json:"created_at"`
}

// UsageLogListResponse wraps a page of usage log entries.
type UsageLogListResponse struct {
	Logs       []UsageLogResponse `json:"logs"`
	Pagination PaginationInfo     `json:"pagination"`
}

// UsageFilters defines query parameters for filtering usage log listings.
type UsageFilters struct {
	Feature   string `query:"feature"`
	StartDate string `query:"start_date"` // Format: YYYY-MM-DD
	EndDate   string `query:"end_date"`   // Format: YYYY-MM-DD
	SortOrder string `query:"sort_order"` // "asc" or "desc", default desc
}

// FeatureUsageSummaryResponse aggregates a user's consumption of one feature.
type FeatureUsageSummaryResponse struct {
	Feature       string    `json:"feature"`
	Invocations   int       `json:"invocations"`
	InputTokens   int       `json:"input_tokens"`
	OutputTokens  int       `json:"output_tokens"`
	TotalTokens   int       `json:"total_tokens"`
	LastInvokedAt time.Time `json:"last_invoked_at"`
}

// UsageSummaryResponse is the per-feature rollup for a user.
type UsageSummaryResponse struct {
	Features []FeatureUsageSummaryResponse `json:"features"`
}

// NewUsageLogResponse converts a domain usage log to its API representation.
func NewUsageLogResponse(l *domain.AIUsageLog) UsageLogResponse {
	return UsageLogResponse{
		ID:               l.ID,
		Feature:          l.Feature,
		Model:            l.Model,
		InputTokens:      l.InputTokens,
		OutputTokens:     l.OutputTokens,
		TotalTokens:      l.TotalTokens(),
		GenerationTimeMs: l.GenerationTime.Milliseconds(),
		Metadata:         l.Metadata,
		CreatedAt:        l.CreatedAt,
	}
}

// NewUsageSummaryResponse converts per-feature summaries to the API shape.
func NewUsageSummaryResponse(summaries []domain.FeatureUsageSummary) UsageSummaryResponse {
	features := make([]FeatureUsageSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		features = append(features, FeatureUsageSummaryResponse{
			Feature:       s.Feature,
			Invocations:   s.Invocations,
			InputTokens:   s.InputTokens,
			OutputTokens:  s.OutputTokens,
			TotalTokens:   s.TotalTokens,
			LastInvokedAt: s.LastInvokedAt,
		})
	}
	return UsageSummaryResponse{Features: features}
}
