package service

import (
	"context"
	"time"

	"lxp-core/internal/domain"
	"lxp-core/internal/dto"

	"github.com/stretchr/testify/mock"
)

// --- Repository mocks ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	args := m.Called(ctx, googleID)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockAIUsageLogRepository struct {
	mock.Mock
}

func (m *MockAIUsageLogRepository) CreateUsageLog(ctx context.Context, log *domain.AIUsageLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockAIUsageLogRepository) GetUsageLogsByUserID(ctx context.Context, userID string, filters domain.UsageFilters, limit, offset int) ([]domain.AIUsageLog, int, error) {
	args := m.Called(ctx, userID, filters, limit, offset)
	var logs []domain.AIUsageLog
	if l := args.Get(0); l != nil {
		logs = l.([]domain.AIUsageLog)
	}
	return logs, args.Int(1), args.Error(2)
}

func (m *MockAIUsageLogRepository) GetUsageSummaryByUserID(ctx context.Context, userID string) ([]domain.FeatureUsageSummary, error) {
	args := m.Called(ctx, userID)
	var summaries []domain.FeatureUsageSummary
	if s := args.Get(0); s != nil {
		summaries = s.([]domain.FeatureUsageSummary)
	}
	return summaries, args.Error(1)
}

type MockCalendarEventRepository struct {
	mock.Mock
}

func (m *MockCalendarEventRepository) CreateEvent(ctx context.Context, event *domain.CalendarEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockCalendarEventRepository) GetEventByID(ctx context.Context, eventID string) (*domain.CalendarEvent, error) {
	args := m.Called(ctx, eventID)
	if e := args.Get(0); e != nil {
		return e.(*domain.CalendarEvent), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCalendarEventRepository) GetEventsByUserID(ctx context.Context, userID string, from, to time.Time) ([]domain.CalendarEvent, error) {
	args := m.Called(ctx, userID, from, to)
	var events []domain.CalendarEvent
	if e := args.Get(0); e != nil {
		events = e.([]domain.CalendarEvent)
	}
	return events, args.Error(1)
}

func (m *MockCalendarEventRepository) UpdateEvent(ctx context.Context, event *domain.CalendarEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockCalendarEventRepository) DeleteEvent(ctx context.Context, eventID string) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) CreateActivity(ctx context.Context, activity *domain.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockActivityRepository) GetActivityByID(ctx context.Context, activityID string) (*domain.Activity, error) {
	args := m.Called(ctx, activityID)
	if a := args.Get(0); a != nil {
		return a.(*domain.Activity), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockActivityRepository) GetActivitiesByOwnerID(ctx context.Context, ownerID string, limit, offset int) ([]domain.Activity, int, error) {
	args := m.Called(ctx, ownerID, limit, offset)
	var activities []domain.Activity
	if a := args.Get(0); a != nil {
		activities = a.([]domain.Activity)
	}
	return activities, args.Int(1), args.Error(2)
}

func (m *MockActivityRepository) DeleteActivity(ctx context.Context, activityID string) error {
	args := m.Called(ctx, activityID)
	return args.Error(0)
}

// --- Adapter mocks ---

type MockContentGenerator struct {
	mock.Mock
}

func (m *MockContentGenerator) GenerateQuizDraft(ctx context.Context, topic string, numQuestions int) (*domain.ContentEnvelope, *domain.GenerationUsage, error) {
	args := m.Called(ctx, topic, numQuestions)
	var envelope *domain.ContentEnvelope
	if e := args.Get(0); e != nil {
		envelope = e.(*domain.ContentEnvelope)
	}
	var usage *domain.GenerationUsage
	if u := args.Get(1); u != nil {
		usage = u.(*domain.GenerationUsage)
	}
	return envelope, usage, args.Error(2)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
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
