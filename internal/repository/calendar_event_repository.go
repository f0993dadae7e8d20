package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lxp-core/internal/domain"
	"lxp-core/internal/repository/models"
	"lxp-core/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxCalendarEventRepository implements domain.CalendarEventRepository using sqlx.
type sqlxCalendarEventRepository struct {
	db DBTX
}

// NewSQLXCalendarEventRepository creates a new instance of sqlxCalendarEventRepository.
func NewSQLXCalendarEventRepository(db *sqlx.DB) domain.CalendarEventRepository {
	return &sqlxCalendarEventRepository{db: db}
}

func toDomainCalendarEvent(m *models.PersonalCalendarEvent) *domain.CalendarEvent {
	if m == nil {
		return nil
	}
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}
	return &domain.CalendarEvent{
		ID:          m.ID,
		UserID:      m.UserID,
		Title:       m.Title,
		Description: util.NullStringToString(m.Description),
		StartsAt:    m.StartsAt,
		EndsAt:      m.EndsAt,
		IsAllDay:    m.IsAllDay,
		Type:        domain.EventType(m.EventType),
		Color:       util.NullStringToString(m.Color),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		DeletedAt:   deletedAt,
	}
}

func fromDomainCalendarEvent(e *domain.CalendarEvent) *models.PersonalCalendarEvent {
	if e == nil {
		return nil
	}
	var deletedAt sql.NullTime
	if e.DeletedAt != nil {
		deletedAt = util.TimeToNullTime(*e.DeletedAt)
	}
	return &models.PersonalCalendarEvent{
		ID:          e.ID,
		UserID:      e.UserID,
		Title:       e.Title,
		Description: util.StringToNullString(e.Description),
		StartsAt:    e.StartsAt,
		EndsAt:      e.EndsAt,
		IsAllDay:    e.IsAllDay,
		EventType:   string(e.Type),
		Color:       util.StringToNullString(e.Color),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
		DeletedAt:   deletedAt,
	}
}

// CreateEvent inserts a calendar event. Foreign key violations on user_id
// map to USER_NOT_FOUND; a CHECK violation on the time range maps to
// INVALID_TIME_RANGE in case a caller slipped past service validation.
func (r *sqlxCalendarEventRepository) CreateEvent(ctx context.Context, event *domain.CalendarEvent) error {
	m := fromDomainCalendarEvent(event)
	if m.ID == "" {
		m.ID = util.NewULID()
		event.ID = m.ID
	}
	now := time.Now()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now

	query := `INSERT INTO personal_calendar_events (id, user_id, title, description, starts_at, ends_at, is_all_day, event_type, color, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		m.ID, m.UserID, m.Title, m.Description, m.StartsAt, m.EndsAt,
		m.IsAllDay, m.EventType, m.Color, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return domain.NewUserNotFoundError(event.UserID)
		}
		if IsCheckViolation(err) {
			return domain.NewInvalidTimeRangeError("event cannot end before it starts")
		}
		return fmt.Errorf("failed to create calendar event: %w", err)
	}
	return nil
}

// GetEventByID retrieves a single calendar event.
func (r *sqlxCalendarEventRepository) GetEventByID(ctx context.Context, eventID string) (*domain.CalendarEvent, error) {
	var m models.PersonalCalendarEvent
	query := `SELECT * FROM personal_calendar_events WHERE id = $1 AND deleted_at IS NULL`

	executor := GetExecutor(ctx, r.db)
	err := executor.GetContext(ctx, &m, query, eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get calendar event: %w", err)
	}
	return toDomainCalendarEvent(&m), nil
}

// GetEventsByUserID retrieves a user's events overlapping [from, to),
// ordered by start time. Zero bounds disable the corresponding filter.
func (r *sqlxCalendarEventRepository) GetEventsByUserID(ctx context.Context, userID string, from, to time.Time) ([]domain.CalendarEvent, error) {
	query := `SELECT * FROM personal_calendar_events
	          WHERE user_id = $1 AND deleted_at IS NULL`
	args := []interface{}{userID}
	argIndex := 2

	if !from.IsZero() {
		query += fmt.Sprintf(" AND ends_at >= $%d", argIndex)
		args = append(args, from)
		argIndex++
	}
	if !to.IsZero() {
		query += fmt.Sprintf(" AND starts_at < $%d", argIndex)
		args = append(args, to)
		argIndex++
	}
	query += " ORDER BY starts_at ASC"

	executor := GetExecutor(ctx, r.db)
	var modelEvents []models.PersonalCalendarEvent
	if err := executor.SelectContext(ctx, &modelEvents, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select calendar events: %w", err)
	}

	domainEvents := make([]domain.CalendarEvent, len(modelEvents))
	for i := range modelEvents {
		domainEvents[i] = *toDomainCalendarEvent(&modelEvents[i])
	}
	return domainEvents, nil
}

// UpdateEvent updates an event's mutable fields.
func (r *sqlxCalendarEventRepository) UpdateEvent(ctx context.Context, event *domain.CalendarEvent) error {
	m := fromDomainCalendarEvent(event)
	m.UpdatedAt = time.Now()

	query := `UPDATE personal_calendar_events SET
	            title = $1,
	            description = $2,
	            starts_at = $3,
	            ends_at = $4,
	            is_all_day = $5,
	            event_type = $6,
	            color = $7,
	            updated_at = $8
	          WHERE id = $9 AND deleted_at IS NULL`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query,
		m.Title, m.Description, m.StartsAt, m.EndsAt, m.IsAllDay,
		m.EventType, m.Color, m.UpdatedAt, m.ID,
	)
	if err != nil {
		if IsCheckViolation(err) {
			return domain.NewInvalidTimeRangeError("event cannot end before it starts")
		}
		return fmt.Errorf("failed to update calendar event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.NewEventNotFoundError(event.ID)
	}
	return nil
}

// DeleteEvent soft-deletes an event.
func (r *sqlxCalendarEventRepository) DeleteEvent(ctx context.Context, eventID string) error {
	query := `UPDATE personal_calendar_events SET deleted_at = $1, updated_at = $1
	          WHERE id = $2 AND deleted_at IS NULL`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query, time.Now(), eventID)
	if err != nil {
		return fmt.Errorf("failed to delete calendar event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.NewEventNotFoundError(eventID)
	}
	return nil
}
