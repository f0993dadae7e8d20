package handler

import (
	"context"

	"lxp-core/internal/domain"
	"lxp-core/internal/dto"
	"lxp-core/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
)

type MockActivityService struct {
	mock.Mock
}

func (m *MockActivityService) CreateActivity(ctx context.Context, ownerID string, req *dto.CreateActivityRequest) (*dto.ActivityResponse, error) {
	args := m.Called(ctx, ownerID, req)
	if r := args.Get(0); r != nil {
		return r.(*dto.ActivityResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockActivityService) GetActivity(ctx context.Context, ownerID, activityID string) (*dto.ActivityResponse, error) {
	args := m.Called(ctx, ownerID, activityID)
	if r := args.Get(0); r != nil {
		return r.(*dto.ActivityResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockActivityService) ListActivities(ctx context.Context, ownerID string, pagination dto.Pagination) (*dto.ActivityListResponse, error) {
	args := m.Called(ctx, ownerID, pagination)
	if r := args.Get(0); r != nil {
		return r.(*dto.ActivityListResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockActivityService) DeleteActivity(ctx context.Context, ownerID, activityID string) error {
	args := m.Called(ctx, ownerID, activityID)
	return args.Error(0)
}

func (m *MockActivityService) GenerateDraft(ctx context.Context, ownerID string, req *dto.GenerateActivityDraftRequest) (*dto.ActivityDraftResponse, error) {
	args := m.Called(ctx, ownerID, req)
	if r := args.Get(0); r != nil {
		return r.(*dto.ActivityDraftResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockCalendarService struct {
	mock.Mock
}

func (m *MockCalendarService) CreateEvent(ctx context.Context, userID string, req *dto.CreateCalendarEventRequest) (*dto.CalendarEventResponse, error) {
	args := m.Called(ctx, userID, req)
	if r := args.Get(0); r != nil {
		return r.(*dto.CalendarEventResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCalendarService) GetEvent(ctx context.Context, userID, eventID string) (*dto.CalendarEventResponse, error) {
	args := m.Called(ctx, userID, eventID)
	if r := args.Get(0); r != nil {
		return r.(*dto.CalendarEventResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCalendarService) ListEvents(ctx context.Context, userID string, filters dto.CalendarRangeFilters) ([]dto.CalendarEventResponse, error) {
	args := m.Called(ctx, userID, filters)
	var events []dto.CalendarEventResponse
	if r := args.Get(0); r != nil {
		events = r.([]dto.CalendarEventResponse)
	}
	return events, args.Error(1)
}

func (m *MockCalendarService) UpdateEvent(ctx context.Context, userID, eventID string, req *dto.UpdateCalendarEventRequest) (*dto.CalendarEventResponse, error) {
	args := m.Called(ctx, userID, eventID, req)
	if r := args.Get(0); r != nil {
		return r.(*dto.CalendarEventResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCalendarService) DeleteEvent(ctx context.Context, userID, eventID string) error {
	args := m.Called(ctx, userID, eventID)
	return args.Error(0)
}

type MockUsageService struct {
	mock.Mock
}

func (m *MockUsageService) RecordInvocation(ctx context.Context, userID, feature string, usage *domain.GenerationUsage, metadata map[string]interface{}) error {
	args := m.Called(ctx, userID, feature, usage, metadata)
	return args.Error(0)
}

func (m *MockUsageService) GetUsageLogs(ctx context.Context, userID string, filters dto.UsageFilters, pagination dto.Pagination) (*dto.UsageLogListResponse, error) {
	args := m.Called(ctx, userID, filters, pagination)
	if r := args.Get(0); r != nil {
		return r.(*dto.UsageLogListResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUsageService) GetUsageSummary(ctx context.Context, userID string) (*dto.UsageSummaryResponse, error) {
	args := m.Called(ctx, userID)
	if r := args.Get(0); r != nil {
		return r.(*dto.UsageSummaryResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

// setupTestApp builds a fiber app with the production error handler and a
// stub auth step that injects the given user ID into the request context.
func setupTestApp(userID string, register func(router fiber.Router)) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Use(func(c *fiber.Ctx) error {
		if userID != "" {
			c.Locals(middleware.UserIDKey, userID)
		}
		return c.Next()
	})
	register(app)
	return app
}
