package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"lxp-core/internal/domain"
	"lxp-core/internal/dto"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testEventID = "01HX4J2M9PZX8Q3T7V5W6Y0C2D"

func registerCalendarRoutes(svc *MockCalendarService) func(router fiber.Router) {
	h := NewCalendarHandler(svc)
	return func(router fiber.Router) {
		router.Post("/calendar/events", h.CreateEvent)
		router.Get("/calendar/events", h.ListEvents)
		router.Get("/calendar/events/:id", h.GetEvent)
		router.Patch("/calendar/events/:id", h.UpdateEvent)
		router.Delete("/calendar/events/:id", h.DeleteEvent)
	}
}

func TestCreateEventHandler(t *testing.T) {
	startsAt := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	t.Run("created", func(t *testing.T) {
		mockSvc := new(MockCalendarService)
		app := setupTestApp("u1", registerCalendarRoutes(mockSvc))

		mockSvc.On("CreateEvent", mock.Anything, "u1", mock.MatchedBy(func(r *dto.CreateCalendarEventRequest) bool {
			return r.Title == "Deep work" && r.Type == string(domain.EventStudySession)
		})).Return(&dto.CalendarEventResponse{ID: testEventID, UserID: "u1", Title: "Deep work"}, nil)

		body, _ := json.Marshal(dto.CreateCalendarEventRequest{
			Title:    "Deep work",
			StartsAt: startsAt,
			EndsAt:   startsAt.Add(2 * time.Hour),
			Type:     string(domain.EventStudySession),
		})
		req := httptest.NewRequest("POST", "/calendar/events", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("unknown type rejected before the service", func(t *testing.T) {
		mockSvc := new(MockCalendarService)
		app := setupTestApp("u1", registerCalendarRoutes(mockSvc))

		body, _ := json.Marshal(dto.CreateCalendarEventRequest{
			Title:    "Mystery",
			StartsAt: startsAt,
			EndsAt:   startsAt.Add(time.Hour),
			Type:     "HOLIDAY",
		})
		req := httptest.NewRequest("POST", "/calendar/events", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		mockSvc.AssertNotCalled(t, "CreateEvent")
	})

	t.Run("inverted range maps to 400", func(t *testing.T) {
		mockSvc := new(MockCalendarService)
		app := setupTestApp("u1", registerCalendarRoutes(mockSvc))

		mockSvc.On("CreateEvent", mock.Anything, "u1", mock.Anything).
			Return(nil, domain.NewInvalidTimeRangeError("event cannot end before it starts"))

		body, _ := json.Marshal(dto.CreateCalendarEventRequest{
			Title:    "Backwards",
			StartsAt: startsAt,
			EndsAt:   startsAt.Add(-time.Hour),
			Type:     string(domain.EventMeeting),
		})
		req := httptest.NewRequest("POST", "/calendar/events", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestListEventsHandler(t *testing.T) {
	mockSvc := new(MockCalendarService)
	app := setupTestApp("u1", registerCalendarRoutes(mockSvc))

	mockSvc.On("ListEvents", mock.Anything, "u1", dto.CalendarRangeFilters{
		From: "2026-09-01T00:00:00Z",
		To:   "2026-09-08T00:00:00Z",
	}).Return([]dto.CalendarEventResponse{{ID: testEventID, Title: "Deep work"}}, nil)

	resp, err := app.Test(httptest.NewRequest("GET",
		"/calendar/events?from=2026-09-01T00:00:00Z&to=2026-09-08T00:00:00Z", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got []dto.CalendarEventResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, testEventID, got[0].ID)
	mockSvc.AssertExpectations(t)
}

func TestUpdateEventHandler(t *testing.T) {
	t.Run("partial update", func(t *testing.T) {
		mockSvc := new(MockCalendarService)
		app := setupTestApp("u1", registerCalendarRoutes(mockSvc))

		mockSvc.On("UpdateEvent", mock.Anything, "u1", testEventID, mock.MatchedBy(func(r *dto.UpdateCalendarEventRequest) bool {
			return r.Title != nil && *r.Title == "Deeper work" && r.StartsAt == nil
		})).Return(&dto.CalendarEventResponse{ID: testEventID, Title: "Deeper work"}, nil)

		req := httptest.NewRequest("PATCH", "/calendar/events/"+testEventID,
			bytes.NewReader([]byte(`{"title": "Deeper work"}`)))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("cleared title maps to 400", func(t *testing.T) {
		mockSvc := new(MockCalendarService)
		app := setupTestApp("u1", registerCalendarRoutes(mockSvc))

		mockSvc.On("UpdateEvent", mock.Anything, "u1", testEventID, mock.Anything).
			Return(nil, domain.NewMissingFieldError("title"))

		req := httptest.NewRequest("PATCH", "/calendar/events/"+testEventID,
			bytes.NewReader([]byte(`{"title": ""}`)))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("not found maps to 404", func(t *testing.T) {
		mockSvc := new(MockCalendarService)
		app := setupTestApp("u1", registerCalendarRoutes(mockSvc))

		mockSvc.On("UpdateEvent", mock.Anything, "u1", testEventID, mock.Anything).
			Return(nil, domain.NewEventNotFoundError(testEventID))

		req := httptest.NewRequest("PATCH", "/calendar/events/"+testEventID,
			bytes.NewReader([]byte(`{"title": "Ghost"}`)))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestDeleteEventHandler(t *testing.T) {
	mockSvc := new(MockCalendarService)
	app := setupTestApp("u1", registerCalendarRoutes(mockSvc))

	mockSvc.On("DeleteEvent", mock.Anything, "u1", testEventID).Return(nil)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/calendar/events/"+testEventID, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	mockSvc.AssertExpectations(t)
}
