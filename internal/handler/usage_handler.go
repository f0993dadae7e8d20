package handler

import (
	"lxp-core/internal/dto"
	"lxp-core/internal/middleware"
	"lxp-core/internal/service"

	"github.com/gofiber/fiber/v2"
)

type UsageHandler struct {
	usageService service.UsageService
}

func NewUsageHandler(usageService service.UsageService) *UsageHandler {
	return &UsageHandler{usageService: usageService}
}

// GetMyUsageLogs retrieves the user's AI usage history.
// @Summary Get My AI Usage Logs
// @Description Retrieves a paginated list of the logged-in user's AI feature invocations, with filtering options.
// @Tags usage
// @Security ApiKeyAuth
// @Produce json
// @Param limit query int false "Number of items per page (default 20)"
// @Param page query int false "Page number (default 1)"
// @Param feature query string false "Filter by feature name"
// @Param start_date query string false "Filter by start date (YYYY-MM-DD)"
// @Param end_date query string false "Filter by end date (YYYY-MM-DD)"
// @Param sort_order query string false "Sort order on created_at ('asc', 'desc', default 'desc')"
// @Success 200 {object} dto.UsageLogListResponse
// @Failure 400 {object} middleware.ErrorResponse "Invalid filters"
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Router /users/me/usage [get]
func (h *UsageHandler) GetMyUsageLogs(c *fiber.Ctx) error {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		return unauthorizedUserContext(c, "GetMyUsageLogs")
	}

	filters := dto.UsageFilters{
		Feature:   c.Query("feature"),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
		SortOrder: c.Query("sort_order"),
	}

	resp, err := h.usageService.GetUsageLogs(c.Context(), userID, filters, parsePagination(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetMyUsageSummary retrieves the user's per-feature usage rollup.
// @Summary Get My AI Usage Summary
// @Description Aggregates the logged-in user's token consumption per AI feature.
// @Tags usage
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.UsageSummaryResponse
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Router /users/me/usage/summary [get]
func (h *UsageHandler) GetMyUsageSummary(c *fiber.Ctx) error {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		return unauthorizedUserContext(c, "GetMyUsageSummary")
	}

	resp, err := h.usageService.GetUsageSummary(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
