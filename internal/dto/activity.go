package dto

import (
	"time"

	"lxp-core/internal/domain"
)

// CreateActivityRequest represents the request body for creating an activity.
// @Description Request body for creating an activity with versioned content
type CreateActivityRequest struct {
	Content domain.ContentEnvelope `json:"content" validate:"required"`
}

// GenerateActivityDraftRequest represents the request body for generating a
// quiz draft with the LLM.
// @Description Request body for AI-assisted quiz draft generation
type GenerateActivityDraftRequest struct {
	Topic        string `json:"topic" validate:"required"`
	NumQuestions int    `json:"num_questions"`
}

// ActivityResponse represents an activity in the API response
// @Description Activity with its content envelope
type ActivityResponse struct {
	ID        string                 `json:"id"`
	OwnerID   string                 `json:"owner_id"`
	Content   domain.ContentEnvelope `json:"content"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// ActivityListResponse wraps a page of activities.
type ActivityListResponse struct {
	Activities []ActivityResponse `json:"activities"`
	Pagination PaginationInfo     `json:"pagination"`
}

// ActivityDraftResponse carries a generated draft plus the usage recorded
// for the invocation. The draft is not persisted until the client submits it.
type ActivityDraftResponse struct {
	Content      domain.ContentEnvelope `json:"content"`
	Model        string                 `json:"model"`
	InputTokens  int                    `json:"input_tokens"`
	OutputTokens int                    `json:"output_tokens"`
}

// NewActivityResponse converts a domain activity to its API representation.
func NewActivityResponse(a *domain.Activity) ActivityResponse {
	return ActivityResponse{
		ID:        a.ID,
		OwnerID:   a.OwnerID,
		Content:   a.Content,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
