package dto

import (
	"time"

	"lxp-core/internal/domain"
)

// CreateCalendarEventRequest represents the request body for creating an event.
// @Description Request body for creating a personal calendar event
type CreateCalendarEventRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	StartsAt    time.Time `json:"starts_at" validate:"required"`
	EndsAt      time.Time `json:"ends_at" validate:"required"`
	IsAllDay    bool      `json:"is_all_day"`
	Type        string    `json:"type" validate:"required"`
	Color       string    `json:"color"`
}

// UpdateCalendarEventRequest represents the request body for updating an event.
// Zero-valued fields keep their stored values.
type UpdateCalendarEventRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	IsAllDay    *bool      `json:"is_all_day,omitempty"`
	Type        *string    `json:"type,omitempty"`
	Color       *string    `json:"color,omitempty"`
}

// CalendarEventResponse represents a calendar event in the API response
// @Description Personal calendar event
type CalendarEventResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	IsAllDay    bool      `json:"is_all_day"`
	Type        string    `json:"type"`
	Color       string    `json:"color,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CalendarRangeFilters defines query parameters for listing events in a
// time window. Format: RFC 3339.
type CalendarRangeFilters struct {
	From string `query:"from"`
	To   string `query:"to"`
}

// NewCalendarEventResponse converts a domain event to its API representation.
func NewCalendarEventResponse(e *domain.CalendarEvent) CalendarEventResponse {
	return CalendarEventResponse{
		ID:          e.ID,
		UserID:      e.UserID,
		Title:       e.Title,
		Description: e.Description,
		StartsAt:    e.StartsAt,
		EndsAt:      e.EndsAt,
		IsAllDay:    e.IsAllDay,
		Type:        string(e.Type),
		Color:       e.Color,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
