package service

import (
	"context"
	"fmt"
	"time"

	"lxp-core/internal/domain"
	"lxp-core/internal/dto"
	"lxp-core/internal/logger"

	"go.uber.org/zap"
)

// defaultCalendarWindow is the listing range applied when the client omits
// one. Thirty days forward covers the typical month view.
const defaultCalendarWindow = 30 * 24 * time.Hour

// CalendarService defines the interface for personal calendar operations.
// All operations are scoped to the requesting user; accessing another
// user's event yields a not-found error rather than leaking its existence.
type CalendarService interface {
	CreateEvent(ctx context.Context, userID string, req *dto.CreateCalendarEventRequest) (*dto.CalendarEventResponse, error)
	GetEvent(ctx context.Context, userID, eventID string) (*dto.CalendarEventResponse, error)
	ListEvents(ctx context.Context, userID string, filters dto.CalendarRangeFilters) ([]dto.CalendarEventResponse, error)
	UpdateEvent(ctx context.Context, userID, eventID string, req *dto.UpdateCalendarEventRequest) (*dto.CalendarEventResponse, error)
	DeleteEvent(ctx context.Context, userID, eventID string) error
}

type calendarServiceImpl struct {
	eventRepo domain.CalendarEventRepository
}

// NewCalendarService creates a new instance of CalendarService.
func NewCalendarService(eventRepo domain.CalendarEventRepository) CalendarService {
	return &calendarServiceImpl{eventRepo: eventRepo}
}

// CreateEvent implements CalendarService.
func (s *calendarServiceImpl) CreateEvent(ctx context.Context, userID string, req *dto.CreateCalendarEventRequest) (*dto.CalendarEventResponse, error) {
	event := domain.NewCalendarEvent(userID, req.Title, domain.EventType(req.Type), req.StartsAt, req.EndsAt)
	event.Description = req.Description
	event.IsAllDay = req.IsAllDay
	event.Color = req.Color

	if err := event.Validate(); err != nil {
		return nil, err
	}

	if err := s.eventRepo.CreateEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create calendar event in repository: %w", err)
	}

	logger.Get().Info("Calendar event created",
		zap.String("userID", userID),
		zap.String("eventID", event.ID),
		zap.String("type", string(event.Type)))

	resp := dto.NewCalendarEventResponse(event)
	return &resp, nil
}

// GetEvent implements CalendarService.
func (s *calendarServiceImpl) GetEvent(ctx context.Context, userID, eventID string) (*dto.CalendarEventResponse, error) {
	event, err := s.getOwnedEvent(ctx, userID, eventID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewCalendarEventResponse(event)
	return &resp, nil
}

// ListEvents implements CalendarService. Events overlapping the [from, to)
// window are returned in starts_at order.
func (s *calendarServiceImpl) ListEvents(ctx context.Context, userID string, filters dto.CalendarRangeFilters) ([]dto.CalendarEventResponse, error) {
	from, to, err := parseCalendarRange(filters)
	if err != nil {
		return nil, err
	}

	events, err := s.eventRepo.GetEventsByUserID(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get calendar events from repository: %w", err)
	}

	responses := make([]dto.CalendarEventResponse, 0, len(events))
	for i := range events {
		responses = append(responses, dto.NewCalendarEventResponse(&events[i]))
	}
	return responses, nil
}

// UpdateEvent implements CalendarService. Only the fields present in the
// request change; the updated event is re-validated as a whole so the time
// range invariant holds across partial updates.
func (s *calendarServiceImpl) UpdateEvent(ctx context.Context, userID, eventID string, req *dto.UpdateCalendarEventRequest) (*dto.CalendarEventResponse, error) {
	event, err := s.getOwnedEvent(ctx, userID, eventID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.StartsAt != nil {
		event.StartsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		event.EndsAt = *req.EndsAt
	}
	if req.IsAllDay != nil {
		event.IsAllDay = *req.IsAllDay
	}
	if req.Type != nil {
		event.Type = domain.EventType(*req.Type)
	}
	if req.Color != nil {
		event.Color = *req.Color
	}
	event.UpdatedAt = time.Now()

	if err := event.Validate(); err != nil {
		return nil, err
	}

	if err := s.eventRepo.UpdateEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to update calendar event in repository: %w", err)
	}

	resp := dto.NewCalendarEventResponse(event)
	return &resp, nil
}

// DeleteEvent implements CalendarService.
func (s *calendarServiceImpl) DeleteEvent(ctx context.Context, userID, eventID string) error {
	if _, err := s.getOwnedEvent(ctx, userID, eventID); err != nil {
		return err
	}
	if err := s.eventRepo.DeleteEvent(ctx, eventID); err != nil {
		return fmt.Errorf("failed to delete calendar event in repository: %w", err)
	}
	logger.Get().Info("Calendar event deleted",
		zap.String("userID", userID),
		zap.String("eventID", eventID))
	return nil
}

// getOwnedEvent fetches an event and verifies ownership. Events of other
// users surface as not found.
func (s *calendarServiceImpl) getOwnedEvent(ctx context.Context, userID, eventID string) (*domain.CalendarEvent, error) {
	event, err := s.eventRepo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get calendar event from repository: %w", err)
	}
	if event == nil || event.UserID != userID {
		return nil, domain.NewEventNotFoundError(eventID)
	}
	return event, nil
}

// parseCalendarRange parses RFC 3339 range filters, applying the default
// window when either bound is missing.
func parseCalendarRange(filters dto.CalendarRangeFilters) (time.Time, time.Time, error) {
	var from, to time.Time
	var err error

	if filters.From != "" {
		from, err = time.Parse(time.RFC3339, filters.From)
		if err != nil {
			return time.Time{}, time.Time{}, domain.ValidationErrors{domain.NewInvalidFormatError("from", filters.From)}
		}
	} else {
		now := time.Now()
		from = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}

	if filters.To != "" {
		to, err = time.Parse(time.RFC3339, filters.To)
		if err != nil {
			return time.Time{}, time.Time{}, domain.ValidationErrors{domain.NewInvalidFormatError("to", filters.To)}
		}
	} else {
		to = from.Add(defaultCalendarWindow)
	}

	if to.Before(from) {
		return time.Time{}, time.Time{}, domain.NewInvalidTimeRangeError("range end cannot precede range start")
	}
	return from, to, nil
}
