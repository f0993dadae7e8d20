package handler

import (
	"lxp-core/internal/dto"
	"lxp-core/internal/middleware"
	"lxp-core/internal/service"
	"lxp-core/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type CalendarHandler struct {
	calendarService service.CalendarService
	validator       *validation.Validator
}

func NewCalendarHandler(calendarService service.CalendarService) *CalendarHandler {
	return &CalendarHandler{
		calendarService: calendarService,
		validator:       validation.NewValidator(),
	}
}

// CreateEvent creates a personal calendar event for the logged-in user.
// @Summary Create Calendar Event
// @Description Creates a calendar event. The event may not end before it starts.
// @Tags calendar
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.CreateCalendarEventRequest true "Event fields"
// @Success 201 {object} dto.CalendarEventResponse
// @Failure 400 {object} middleware.ErrorResponse "Invalid fields or time range"
// @Router /calendar/events [post]
func (h *CalendarHandler) CreateEvent(c *fiber.Ctx) error {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		return unauthorizedUserContext(c, "CreateEvent")
	}

	var req dto.CreateCalendarEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_REQUEST_BODY", Message: "Cannot parse request body", Status: fiber.StatusBadRequest,
		})
	}

	if errs := h.validator.ValidateCreateEventRequest(req.Title, req.Type, req.StartsAt, req.EndsAt, req.Color); len(errs) > 0 {
		return errs
	}

	resp, err := h.calendarService.CreateEvent(c.Context(), userID, &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetEvent retrieves one of the user's calendar events.
// @Summary Get Calendar Event
// @Tags calendar
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Event ID (ULID)"
// @Success 200 {object} dto.CalendarEventResponse
// @Failure 404 {object} middleware.ErrorResponse "Event not found"
// @Router /calendar/events/{id} [get]
func (h *CalendarHandler) GetEvent(c *fiber.Ctx) error {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		return unauthorizedUserContext(c, "GetEvent")
	}

	eventID := c.Params("id")
	if errs := h.validator.ValidateID("id", eventID); len(errs) > 0 {
		return errs
	}

	resp, err := h.calendarService.GetEvent(c.Context(), userID, eventID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ListEvents retrieves the user's events overlapping a time window.
// @Summary List Calendar Events
// @Description Lists events overlapping [from, to). Defaults to a 30-day window starting today.
// @Tags calendar
// @Security ApiKeyAuth
// @Produce json
// @Param from query string false "Window start (RFC 3339)"
// @Param to query string false "Window end (RFC 3339)"
// @Success 200 {array} dto.CalendarEventResponse
// @Router /calendar/events [get]
func (h *CalendarHandler) ListEvents(c *fiber.Ctx) error {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		return unauthorizedUserContext(c, "ListEvents")
	}

	filters := dto.CalendarRangeFilters{
		From: c.Query("from"),
		To:   c.Query("to"),
	}

	resp, err := h.calendarService.ListEvents(c.Context(), userID, filters)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// UpdateEvent partially updates one of the user's calendar events.
// @Summary Update Calendar Event
// @Description Updates the provided fields. The stored event is re-validated, so the time range invariant holds after partial updates.
// @Tags calendar
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Event ID (ULID)"
// @Param body body dto.UpdateCalendarEventRequest true "Fields to change"
// @Success 200 {object} dto.CalendarEventResponse
// @Failure 400 {object} middleware.ErrorResponse "Invalid fields or time range"
// @Failure 404 {object} middleware.ErrorResponse "Event not found"
// @Router /calendar/events/{id} [patch]
func (h *CalendarHandler) UpdateEvent(c *fiber.Ctx) error {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		return unauthorizedUserContext(c, "UpdateEvent")
	}

	eventID := c.Params("id")
	if errs := h.validator.ValidateID("id", eventID); len(errs) > 0 {
		return errs
	}

	var req dto.UpdateCalendarEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_REQUEST_BODY", Message: "Cannot parse request body", Status: fiber.StatusBadRequest,
		})
	}

	resp, err := h.calendarService.UpdateEvent(c.Context(), userID, eventID, &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// DeleteEvent removes one of the user's calendar events.
// @Summary Delete Calendar Event
// @Tags calendar
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Event ID (ULID)"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} middleware.ErrorResponse "Event not found"
// @Router /calendar/events/{id} [delete]
func (h *CalendarHandler) DeleteEvent(c *fiber.Ctx) error {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		return unauthorizedUserContext(c, "DeleteEvent")
	}

	eventID := c.Params("id")
	if errs := h.validator.ValidateID("id", eventID); len(errs) > 0 {
		return errs
	}

	if err := h.calendarService.DeleteEvent(c.Context(), userID, eventID); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "event deleted"})
}
