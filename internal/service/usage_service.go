package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lxp-core/internal/domain"
	"lxp-core/internal/dto"
	"lxp-core/internal/logger"

	"go.uber.org/zap"
)

const (
	defaultUsagePageLimit = 20
	maxUsagePageLimit     = 100
)

// UsageService defines the interface for AI usage accounting operations.
type UsageService interface {
	// RecordInvocation writes one usage row for a completed AI call. It is
	// called by feature services after the call returns, never by handlers.
	RecordInvocation(ctx context.Context, userID, feature string, usage *domain.GenerationUsage, metadata map[string]interface{}) error

	GetUsageLogs(ctx context.Context, userID string, filters dto.UsageFilters, pagination dto.Pagination) (*dto.UsageLogListResponse, error)
	GetUsageSummary(ctx context.Context, userID string) (*dto.UsageSummaryResponse, error)
}

type usageServiceImpl struct {
	usageRepo domain.AIUsageLogRepository
}

// NewUsageService creates a new instance of UsageService.
func NewUsageService(usageRepo domain.AIUsageLogRepository) UsageService {
	return &usageServiceImpl{usageRepo: usageRepo}
}

// RecordInvocation implements UsageService.
func (s *usageServiceImpl) RecordInvocation(ctx context.Context, userID, feature string, usage *domain.GenerationUsage, metadata map[string]interface{}) error {
	if usage == nil {
		return domain.NewInvalidInputError("usage cannot be nil")
	}

	log := domain.NewAIUsageLog(userID, feature, usage.Model)
	log.InputTokens = usage.InputTokens
	log.OutputTokens = usage.OutputTokens
	log.GenerationTime = usage.GenerationTime
	log.Metadata = metadata

	if err := log.Validate(); err != nil {
		return err
	}

	if err := s.usageRepo.CreateUsageLog(ctx, log); err != nil {
		return fmt.Errorf("failed to create usage log in repository: %w", err)
	}

	logger.Get().Info("Recorded AI usage",
		zap.String("userID", userID),
		zap.String("feature", feature),
		zap.String("model", usage.Model),
		zap.Int("total_tokens", log.TotalTokens()),
	)
	return nil
}

// GetUsageLogs implements UsageService.
func (s *usageServiceImpl) GetUsageLogs(ctx context.Context, userID string, filters dto.UsageFilters, pagination dto.Pagination) (*dto.UsageLogListResponse, error) {
	domainFilters, err := parseUsageFilters(filters)
	if err != nil {
		return nil, err
	}

	limit := pagination.Limit
	if limit <= 0 {
		limit = defaultUsagePageLimit
	}
	if limit > maxUsagePageLimit {
		limit = maxUsagePageLimit
	}
	offset := pagination.Offset
	if offset < 0 {
		offset = 0
	}

	logs, total, err := s.usageRepo.GetUsageLogsByUserID(ctx, userID, domainFilters, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get usage logs from repository: %w", err)
	}

	items := make([]dto.UsageLogResponse, 0, len(logs))
	for i := range logs {
		items = append(items, dto.NewUsageLogResponse(&logs[i]))
	}

	return &dto.UsageLogListResponse{
		Logs:       items,
		Pagination: dto.NewPaginationInfo(total, limit, offset),
	}, nil
}

// GetUsageSummary implements UsageService.
func (s *usageServiceImpl) GetUsageSummary(ctx context.Context, userID string) (*dto.UsageSummaryResponse, error) {
	summaries, err := s.usageRepo.GetUsageSummaryByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get usage summary from repository: %w", err)
	}
	resp := dto.NewUsageSummaryResponse(summaries)
	return &resp, nil
}

// parseUsageFilters converts query-level filters into domain filters,
// validating date formats and sort order.
func parseUsageFilters(filters dto.UsageFilters) (domain.UsageFilters, error) {
	out := domain.UsageFilters{Feature: filters.Feature}

	if filters.StartDate != "" {
		t, err := time.Parse("2006-01-02", filters.StartDate)
		if err != nil {
			return out, domain.ValidationErrors{domain.NewInvalidFormatError("start_date", filters.StartDate)}
		}
		out.StartDate = &t
	}
	if filters.EndDate != "" {
		t, err := time.Parse("2006-01-02", filters.EndDate)
		if err != nil {
			return out, domain.ValidationErrors{domain.NewInvalidFormatError("end_date", filters.EndDate)}
		}
		// Inclusive end date: push to the end of the day.
		t = t.Add(24*time.Hour - time.Nanosecond)
		out.EndDate = &t
	}
	if out.StartDate != nil && out.EndDate != nil && out.EndDate.Before(*out.StartDate) {
		return out, domain.NewInvalidTimeRangeError("end_date cannot precede start_date")
	}

	switch strings.ToUpper(filters.SortOrder) {
	case "", "DESC":
		out.SortOrder = "DESC"
	case "ASC":
		out.SortOrder = "ASC"
	default:
		return out, domain.ValidationErrors{domain.NewInvalidFormatError("sort_order", filters.SortOrder)}
	}

	return out, nil
}
