package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventTypeIsValid(t *testing.T) {
	assert.Len(t, AllEventTypes, 7)
	for _, et := range AllEventTypes {
		assert.True(t, et.IsValid(), string(et))
	}
	assert.False(t, EventType("HOLIDAY").IsValid())
	assert.False(t, EventType("").IsValid())
}

func TestCalendarEventValidate(t *testing.T) {
	startsAt := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	t.Run("valid", func(t *testing.T) {
		event := NewCalendarEvent("u1", "Deep work", EventStudySession, startsAt, startsAt.Add(2*time.Hour))
		assert.NoError(t, event.Validate())
	})

	t.Run("instantaneous event is valid", func(t *testing.T) {
		// ends_at == starts_at satisfies ends_at >= starts_at.
		event := NewCalendarEvent("u1", "Pay course fee", EventReminder, startsAt, startsAt)
		assert.NoError(t, event.Validate())
		assert.Equal(t, time.Duration(0), event.Duration())
	})

	t.Run("ends before it starts", func(t *testing.T) {
		event := NewCalendarEvent("u1", "Backwards", EventMeeting, startsAt, startsAt.Add(-time.Minute))
		err := event.Validate()
		require.Error(t, err)
		var domainErr *DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, CodeInvalidTimeRange, domainErr.Code)
	})

	t.Run("missing user", func(t *testing.T) {
		event := NewCalendarEvent("", "Orphan", EventPersonal, startsAt, startsAt.Add(time.Hour))
		assert.Error(t, event.Validate())
	})

	t.Run("missing title", func(t *testing.T) {
		event := NewCalendarEvent("u1", "", EventPersonal, startsAt, startsAt.Add(time.Hour))
		assert.Error(t, event.Validate())
	})

	t.Run("unknown type", func(t *testing.T) {
		event := NewCalendarEvent("u1", "Mystery", "HOLIDAY", startsAt, startsAt.Add(time.Hour))
		assert.Error(t, event.Validate())
	})

	t.Run("zero times", func(t *testing.T) {
		event := NewCalendarEvent("u1", "No time", EventBreak, time.Time{}, time.Time{})
		assert.Error(t, event.Validate())
	})
}
