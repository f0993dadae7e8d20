package domain

import (
	"context"
	"time"
)

// EventType classifies a personal calendar event.
type EventType string

const (
	EventStudySession EventType = "STUDY_SESSION"
	EventAssignment   EventType = "ASSIGNMENT"
	EventExamPrep     EventType = "EXAM_PREP"
	EventMeeting      EventType = "MEETING"
	EventPersonal     EventType = "PERSONAL"
	EventReminder     EventType = "REMINDER"
	EventBreak        EventType = "BREAK"
)

// AllEventTypes lists the fixed enum in declaration order.
var AllEventTypes = []EventType{
	EventStudySession,
	EventAssignment,
	EventExamPrep,
	EventMeeting,
	EventPersonal,
	EventReminder,
	EventBreak,
}

// IsValid reports whether t is one of the fixed event types.
func (t EventType) IsValid() bool {
	for _, et := range AllEventTypes {
		if t == et {
			return true
		}
	}
	return false
}

// CalendarEvent is a personal calendar entry owned by a single user.
// Invariant: EndsAt never precedes StartsAt.
type CalendarEvent struct {
	ID          string
	UserID      string
	Title       string
	Description string
	StartsAt    time.Time
	EndsAt      time.Time
	IsAllDay    bool
	Type        EventType
	Color       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// NewCalendarEvent creates a new CalendarEvent instance
func NewCalendarEvent(userID, title string, eventType EventType, startsAt, endsAt time.Time) *CalendarEvent {
	now := time.Now()
	return &CalendarEvent{
		UserID:    userID,
		Title:     title,
		Type:      eventType,
		StartsAt:  startsAt,
		EndsAt:    endsAt,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Duration returns the event length. Zero for instantaneous reminders.
func (e *CalendarEvent) Duration() time.Duration {
	return e.EndsAt.Sub(e.StartsAt)
}

// Validate validates the calendar event
func (e *CalendarEvent) Validate() error {
	if e.UserID == "" {
		return NewMissingFieldError("user_id")
	}
	if e.Title == "" {
		return NewMissingFieldError("title")
	}
	if !e.Type.IsValid() {
		return NewInvalidInputError("unknown event type: " + string(e.Type))
	}
	if e.StartsAt.IsZero() || e.EndsAt.IsZero() {
		return NewMissingFieldError("starts_at/ends_at")
	}
	if e.EndsAt.Before(e.StartsAt) {
		return NewInvalidTimeRangeError("event cannot end before it starts")
	}
	return nil
}

// CalendarEventRepository defines the interface for calendar event persistence.
type CalendarEventRepository interface {
	CreateEvent(ctx context.Context, event *CalendarEvent) error
	GetEventByID(ctx context.Context, eventID string) (*CalendarEvent, error)
	GetEventsByUserID(ctx context.Context, userID string, from, to time.Time) ([]CalendarEvent, error)
	UpdateEvent(ctx context.Context, event *CalendarEvent) error
	DeleteEvent(ctx context.Context, eventID string) error
}
