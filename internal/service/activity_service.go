package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"lxp-core/internal/cache"
	"lxp-core/internal/domain"
	"lxp-core/internal/dto"
	"lxp-core/internal/logger"

	"go.uber.org/zap"
)

const (
	activityCacheService = "activity_service"
	activityObjectType   = "activity"

	defaultActivityPageLimit = 20
	maxActivityPageLimit     = 100

	defaultDraftQuestions = 5
	maxDraftQuestions     = 20
)

// ActivityService defines the interface for activity content operations.
type ActivityService interface {
	CreateActivity(ctx context.Context, ownerID string, req *dto.CreateActivityRequest) (*dto.ActivityResponse, error)
	GetActivity(ctx context.Context, ownerID, activityID string) (*dto.ActivityResponse, error)
	ListActivities(ctx context.Context, ownerID string, pagination dto.Pagination) (*dto.ActivityListResponse, error)
	DeleteActivity(ctx context.Context, ownerID, activityID string) error

	// GenerateDraft asks the LLM for quiz content on a topic. Every call,
	// successful or not, is recorded as a usage log row for the owner.
	GenerateDraft(ctx context.Context, ownerID string, req *dto.GenerateActivityDraftRequest) (*dto.ActivityDraftResponse, error)
}

type activityServiceImpl struct {
	activityRepo domain.ActivityRepository
	generator    domain.ContentGenerationService
	usageService UsageService
	cache        domain.Cache
	cacheTTL     time.Duration
}

// NewActivityService creates a new instance of ActivityService. The cache
// is optional; a nil cache disables read-through caching.
func NewActivityService(
	activityRepo domain.ActivityRepository,
	generator domain.ContentGenerationService,
	usageService UsageService,
	cacheClient domain.Cache,
	cacheTTL time.Duration,
) ActivityService {
	return &activityServiceImpl{
		activityRepo: activityRepo,
		generator:    generator,
		usageService: usageService,
		cache:        cacheClient,
		cacheTTL:     cacheTTL,
	}
}

// CreateActivity implements ActivityService.
func (s *activityServiceImpl) CreateActivity(ctx context.Context, ownerID string, req *dto.CreateActivityRequest) (*dto.ActivityResponse, error) {
	activity := domain.NewActivity(ownerID, req.Content)
	if err := activity.Validate(); err != nil {
		return nil, err
	}

	if err := s.activityRepo.CreateActivity(ctx, activity); err != nil {
		return nil, fmt.Errorf("failed to create activity in repository: %w", err)
	}

	logger.Get().Info("Activity created",
		zap.String("ownerID", ownerID),
		zap.String("activityID", activity.ID),
		zap.String("type", string(activity.Content.ActivityType)))

	resp := dto.NewActivityResponse(activity)
	return &resp, nil
}

// GetActivity implements ActivityService with a read-through cache.
func (s *activityServiceImpl) GetActivity(ctx context.Context, ownerID, activityID string) (*dto.ActivityResponse, error) {
	cacheKey := cache.GenerateCacheKey(activityCacheService, activityObjectType, activityID)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey)
		if err == nil {
			var resp dto.ActivityResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &resp); unmarshalErr == nil {
				if resp.OwnerID != ownerID {
					return nil, domain.NewActivityNotFoundError(activityID)
				}
				logger.Get().Debug("Activity cache hit", zap.String("activityID", activityID))
				return &resp, nil
			} else {
				logger.Get().Warn("Failed to unmarshal cached activity, falling through",
					zap.String("cacheKey", cacheKey), zap.Error(unmarshalErr))
			}
		} else if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Error("Activity cache read failed",
				zap.String("cacheKey", cacheKey), zap.Error(err))
		}
	}

	activity, err := s.activityRepo.GetActivityByID(ctx, activityID)
	if err != nil {
		return nil, fmt.Errorf("failed to get activity from repository: %w", err)
	}
	if activity == nil || activity.OwnerID != ownerID {
		return nil, domain.NewActivityNotFoundError(activityID)
	}

	resp := dto.NewActivityResponse(activity)

	if s.cache != nil {
		if data, marshalErr := json.Marshal(resp); marshalErr == nil {
			if setErr := s.cache.Set(ctx, cacheKey, string(data), s.cacheTTL); setErr != nil {
				logger.Get().Error("Activity cache write failed",
					zap.String("cacheKey", cacheKey), zap.Error(setErr))
			}
		}
	}

	return &resp, nil
}

// ListActivities implements ActivityService.
func (s *activityServiceImpl) ListActivities(ctx context.Context, ownerID string, pagination dto.Pagination) (*dto.ActivityListResponse, error) {
	limit := pagination.Limit
	if limit <= 0 {
		limit = defaultActivityPageLimit
	}
	if limit > maxActivityPageLimit {
		limit = maxActivityPageLimit
	}
	offset := pagination.Offset
	if offset < 0 {
		offset = 0
	}

	activities, total, err := s.activityRepo.GetActivitiesByOwnerID(ctx, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get activities from repository: %w", err)
	}

	items := make([]dto.ActivityResponse, 0, len(activities))
	for i := range activities {
		items = append(items, dto.NewActivityResponse(&activities[i]))
	}

	return &dto.ActivityListResponse{
		Activities: items,
		Pagination: dto.NewPaginationInfo(total, limit, offset),
	}, nil
}

// DeleteActivity implements ActivityService, invalidating the cache entry.
func (s *activityServiceImpl) DeleteActivity(ctx context.Context, ownerID, activityID string) error {
	activity, err := s.activityRepo.GetActivityByID(ctx, activityID)
	if err != nil {
		return fmt.Errorf("failed to get activity from repository: %w", err)
	}
	if activity == nil || activity.OwnerID != ownerID {
		return domain.NewActivityNotFoundError(activityID)
	}

	if err := s.activityRepo.DeleteActivity(ctx, activityID); err != nil {
		return fmt.Errorf("failed to delete activity in repository: %w", err)
	}

	if s.cache != nil {
		cacheKey := cache.GenerateCacheKey(activityCacheService, activityObjectType, activityID)
		if delErr := s.cache.Delete(ctx, cacheKey); delErr != nil {
			logger.Get().Error("Activity cache invalidation failed",
				zap.String("cacheKey", cacheKey), zap.Error(delErr))
		}
	}

	logger.Get().Info("Activity deleted",
		zap.String("ownerID", ownerID),
		zap.String("activityID", activityID))
	return nil
}

// GenerateDraft implements ActivityService.
func (s *activityServiceImpl) GenerateDraft(ctx context.Context, ownerID string, req *dto.GenerateActivityDraftRequest) (*dto.ActivityDraftResponse, error) {
	if req.Topic == "" {
		return nil, domain.ValidationErrors{domain.NewMissingFieldError("topic")}
	}
	numQuestions := req.NumQuestions
	if numQuestions <= 0 {
		numQuestions = defaultDraftQuestions
	}
	if numQuestions > maxDraftQuestions {
		numQuestions = maxDraftQuestions
	}

	envelope, usage, err := s.generator.GenerateQuizDraft(ctx, req.Topic, numQuestions)

	// Record usage whenever the call reached the model, even on parse
	// failures, so accounting matches what was actually consumed.
	if usage != nil {
		metadata := map[string]interface{}{
			"topic":         req.Topic,
			"num_questions": numQuestions,
			"succeeded":     err == nil,
		}
		if recErr := s.usageService.RecordInvocation(ctx, ownerID, domain.FeatureActivityGeneration, usage, metadata); recErr != nil {
			logger.Get().Error("Failed to record usage for draft generation",
				zap.String("ownerID", ownerID), zap.Error(recErr))
			// Accounting failure does not hide a successful generation.
		}
	}

	if err != nil {
		return nil, err
	}

	if validateErr := envelope.Validate(); validateErr != nil {
		return nil, domain.NewLLMServiceError(validateErr)
	}

	return &dto.ActivityDraftResponse{
		Content:      *envelope,
		Model:        usage.Model,
		InputTokens:  usage.InputTokens,
		OutputTokens: usage.OutputTokens,
	}, nil
}
