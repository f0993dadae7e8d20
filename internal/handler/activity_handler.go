package handler

import (
	"lxp-core/internal/dto"
	"lxp-core/internal/logger"
	"lxp-core/internal/middleware"
	"lxp-core/internal/service"
	"lxp-core/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ActivityHandler struct {
	activityService service.ActivityService
	validator       *validation.Validator
}

func NewActivityHandler(activityService service.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
		validator:       validation.NewValidator(),
	}
}

// CreateActivity stores a new activity with its content envelope.
// @Summary Create Activity
// @Description Creates an activity owned by the logged-in user. The content envelope must carry exactly one variant matching its activity type.
// @Tags activities
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.CreateActivityRequest true "Activity content"
// @Success 201 {object} dto.ActivityResponse
// @Failure 400 {object} middleware.ErrorResponse "Invalid content"
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Router /activities [post]
func (h *ActivityHandler) CreateActivity(c *fiber.Ctx) error {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		return unauthorizedUserContext(c, "CreateActivity")
	}

	var req dto.CreateActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_REQUEST_BODY", Message: "Cannot parse request body", Status: fiber.StatusBadRequest,
		})
	}

	resp, err := h.activityService.CreateActivity(c.Context(), userID, &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetActivity retrieves one of the user's activities.
// @Summary Get Activity
// @Tags activities
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Activity ID (ULID)"
// @Success 200 {object} dto.ActivityResponse
// @Failure 404 {object} middleware.ErrorResponse "Activity not found"
// @Router /activities/{id} [get]
func (h *ActivityHandler) GetActivity(c *fiber.Ctx) error {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		return unauthorizedUserContext(c, "GetActivity")
	}

	activityID := c.Params("id")
	if errs := h.validator.ValidateID("id", activityID); len(errs) > 0 {
		return errs
	}

	resp, err := h.activityService.GetActivity(c.Context(), userID, activityID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ListActivities retrieves a paginated list of the user's activities.
// @Summary List Activities
// @Tags activities
// @Security ApiKeyAuth
// @Produce json
// @Param limit query int false "Number of items per page (default 20)"
// @Param page query int false "Page number (default 1)"
// @Success 200 {object} dto.ActivityListResponse
// @Router /activities [get]
func (h *ActivityHandler) ListActivities(c *fiber.Ctx) error {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		return unauthorizedUserContext(c, "ListActivities")
	}

	resp, err := h.activityService.ListActivities(c.Context(), userID, parsePagination(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// DeleteActivity removes one of the user's activities.
// @Summary Delete Activity
// @Tags activities
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Activity ID (ULID)"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} middleware.ErrorResponse "Activity not found"
// @Router /activities/{id} [delete]
func (h *ActivityHandler) DeleteActivity(c *fiber.Ctx) error {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		return unauthorizedUserContext(c, "DeleteActivity")
	}

	activityID := c.Params("id")
	if errs := h.validator.ValidateID("id", activityID); len(errs) > 0 {
		return errs
	}

	if err := h.activityService.DeleteActivity(c.Context(), userID, activityID); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "activity deleted"})
}

// GenerateDraft asks the LLM for a quiz content draft on a topic. The
// invocation is recorded in the user's usage log.
// @Summary Generate Activity Draft
// @Description Generates quiz content for a topic with the configured LLM. The draft is returned for review and is not persisted.
// @Tags activities
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.GenerateActivityDraftRequest true "Draft parameters"
// @Success 200 {object} dto.ActivityDraftResponse
// @Failure 400 {object} middleware.ErrorResponse "Invalid parameters"
// @Failure 503 {object} middleware.ErrorResponse "LLM service unavailable"
// @Router /activities/draft [post]
func (h *ActivityHandler) GenerateDraft(c *fiber.Ctx) error {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		return unauthorizedUserContext(c, "GenerateDraft")
	}

	var req dto.GenerateActivityDraftRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_REQUEST_BODY", Message: "Cannot parse request body", Status: fiber.StatusBadRequest,
		})
	}

	if errs := h.validator.ValidateGenerateDraftRequest(req.Topic, req.NumQuestions); len(errs) > 0 {
		return errs
	}

	resp, err := h.activityService.GenerateDraft(c.Context(), userID, &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func unauthorizedUserContext(c *fiber.Ctx, op string) error {
	logger.Get().Warn("User ID not found in context", zap.String("op", op), zap.String("path", c.Path()))
	return c.Status(fiber.StatusUnauthorized).JSON(middleware.ErrorResponse{
		Code: "INVALID_USER_CONTEXT", Message: "User ID not found in context", Status: fiber.StatusUnauthorized,
	})
}
