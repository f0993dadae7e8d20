package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"lxp-core/internal/domain"
	"lxp-core/internal/repository/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func calendarEventColumns() []string {
	return []string{"id", "user_id", "title", "description", "starts_at", "ends_at", "is_all_day", "event_type", "color", "created_at", "updated_at", "deleted_at"}
}

func TestCreateEvent(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXCalendarEventRepository(db)

	startsAt := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	event := domain.NewCalendarEvent("01HUSER000000000000000000A", "Deep work", domain.EventStudySession, startsAt, startsAt.Add(2*time.Hour))

	mock.ExpectExec("INSERT INTO personal_calendar_events").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.CreateEvent(context.Background(), event)
	assert.NoError(t, err)
	assert.NotEmpty(t, event.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateEvent_TimeRangeCheckViolation(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXCalendarEventRepository(db)

	startsAt := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	event := domain.NewCalendarEvent("01HUSER000000000000000000A", "Backwards", domain.EventMeeting, startsAt, startsAt)

	mock.ExpectExec("INSERT INTO personal_calendar_events").
		WillReturnError(&pgconn.PgError{Code: "23514"})

	err := repo.CreateEvent(context.Background(), event)
	require.Error(t, err)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeInvalidTimeRange, domainErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateEvent_UserMissing(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXCalendarEventRepository(db)

	startsAt := time.Now()
	event := domain.NewCalendarEvent("deleted-user", "Orphan", domain.EventPersonal, startsAt, startsAt.Add(time.Hour))

	mock.ExpectExec("INSERT INTO personal_calendar_events").
		WillReturnError(&pgconn.PgError{Code: "23503"})

	err := repo.CreateEvent(context.Background(), event)
	require.Error(t, err)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeUserNotFound, domainErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetEventByID_NotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXCalendarEventRepository(db)

	mock.ExpectQuery("SELECT \\* FROM personal_calendar_events WHERE id").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	event, err := repo.GetEventByID(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, event)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetEventsByUserID(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXCalendarEventRepository(db)

	now := time.Now()
	from := now.Add(-24 * time.Hour)
	to := now.Add(24 * time.Hour)

	rows := sqlmock.NewRows(calendarEventColumns()).
		AddRow("01HEVT0000000000000000000A", "u1", "Mock exam run", sql.NullString{},
			now, now.Add(2*time.Hour), false, string(domain.EventExamPrep),
			sql.NullString{String: "#C0392B", Valid: true}, now, now, sql.NullTime{}).
		AddRow("01HEVT0000000000000000000B", "u1", "Pay course fee", sql.NullString{},
			now.Add(3*time.Hour), now.Add(3*time.Hour), false, string(domain.EventReminder),
			sql.NullString{}, now, now, sql.NullTime{})

	mock.ExpectQuery("SELECT \\* FROM personal_calendar_events").
		WithArgs("u1", from, to).
		WillReturnRows(rows)

	events, err := repo.GetEventsByUserID(context.Background(), "u1", from, to)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, domain.EventExamPrep, events[0].Type)
	assert.Equal(t, "#C0392B", events[0].Color)
	// Instantaneous reminder: zero duration is valid.
	assert.Equal(t, time.Duration(0), events[1].Duration())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateEvent_NotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXCalendarEventRepository(db)

	startsAt := time.Now()
	event := domain.NewCalendarEvent("u1", "Ghost", domain.EventBreak, startsAt, startsAt.Add(10*time.Minute))
	event.ID = "missing"

	mock.ExpectExec("UPDATE personal_calendar_events SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateEvent(context.Background(), event)
	require.Error(t, err)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeEventNotFound, domainErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteEvent_SoftDelete(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXCalendarEventRepository(db)

	mock.ExpectExec("UPDATE personal_calendar_events SET deleted_at").
		WithArgs(sqlmock.AnyArg(), "01HEVT0000000000000000000A").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.DeleteEvent(context.Background(), "01HEVT0000000000000000000A")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToDomainCalendarEvent_NullOptionals(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	m := &models.PersonalCalendarEvent{
		ID:          "01HEVT0000000000000000000A",
		UserID:      "u1",
		Title:       "Deep work",
		Description: sql.NullString{String: "stale", Valid: false},
		StartsAt:    now,
		EndsAt:      now.Add(time.Hour),
		EventType:   string(domain.EventStudySession),
		Color:       sql.NullString{String: "#stale", Valid: false},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	event := toDomainCalendarEvent(m)
	require.NotNil(t, event)
	assert.Equal(t, "", event.Description)
	assert.Equal(t, "", event.Color)

	m.Description = sql.NullString{String: "Focus block", Valid: true}
	m.Color = sql.NullString{String: "#4F86C6", Valid: true}
	event = toDomainCalendarEvent(m)
	assert.Equal(t, "Focus block", event.Description)
	assert.Equal(t, "#4F86C6", event.Color)
}
