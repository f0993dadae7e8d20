package service

import (
	"context"
	"errors"
	"fmt"

	"lxp-core/internal/domain"
	"lxp-core/internal/dto"
	"lxp-core/internal/logger"

	"go.uber.org/zap"
)

var ErrUserProfileNotFound = errors.New("user profile not found")

// UserService defines the interface for user-related operations.
type UserService interface {
	GetUserProfile(ctx context.Context, userID string) (*dto.UserProfileResponse, error)
	DeleteAccount(ctx context.Context, userID string) error
}

type userServiceImpl struct {
	userRepo domain.UserRepository
}

// NewUserService creates a new instance of UserService.
func NewUserService(userRepo domain.UserRepository) UserService {
	return &userServiceImpl{userRepo: userRepo}
}

// GetUserProfile retrieves a user's profile information.
func (s *userServiceImpl) GetUserProfile(ctx context.Context, userID string) (*dto.UserProfileResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id from repository: %w", err)
	}
	if user == nil {
		return nil, ErrUserProfileNotFound
	}

	return &dto.UserProfileResponse{
		ID:                user.ID,
		Email:             user.Email,
		Name:              user.Name,
		ProfilePictureURL: user.ProfilePictureURL,
	}, nil
}

// DeleteAccount removes the user row. Usage logs, calendar events and
// activities cascade at the database level, so no per-table cleanup runs
// here.
func (s *userServiceImpl) DeleteAccount(ctx context.Context, userID string) error {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user by id from repository: %w", err)
	}
	if user == nil {
		return domain.NewUserNotFoundError(userID)
	}

	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user from repository: %w", err)
	}

	logger.Get().Info("User account deleted, dependent rows cascade",
		zap.String("userID", userID))
	return nil
}
