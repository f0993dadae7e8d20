package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"lxp-core/internal/domain"
	"lxp-core/internal/repository/models"
	"lxp-core/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxActivityRepository implements domain.ActivityRepository using sqlx.
type sqlxActivityRepository struct {
	db DBTX
}

// NewSQLXActivityRepository creates a new instance of sqlxActivityRepository.
func NewSQLXActivityRepository(db *sqlx.DB) domain.ActivityRepository {
	return &sqlxActivityRepository{db: db}
}

func toDomainActivity(m *models.Activity) (*domain.Activity, error) {
	if m == nil {
		return nil, nil
	}
	var content domain.ContentEnvelope
	if len(m.Content) > 0 {
		if err := json.Unmarshal(m.Content, &content); err != nil {
			return nil, fmt.Errorf("failed to decode activity content for %s: %w", m.ID, err)
		}
	}
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}
	return &domain.Activity{
		ID:        m.ID,
		OwnerID:   m.OwnerID,
		Content:   content,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		DeletedAt: deletedAt,
	}, nil
}

func fromDomainActivity(a *domain.Activity) (*models.Activity, error) {
	if a == nil {
		return nil, nil
	}
	contentJSON, err := json.Marshal(a.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to encode activity content: %w", err)
	}
	var deletedAt sql.NullTime
	if a.DeletedAt != nil {
		deletedAt = util.TimeToNullTime(*a.DeletedAt)
	}
	return &models.Activity{
		ID:           a.ID,
		OwnerID:      a.OwnerID,
		ActivityType: string(a.Content.ActivityType),
		Title:        a.Content.Title,
		Content:      contentJSON,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
		DeletedAt:    deletedAt,
	}, nil
}

// CreateActivity inserts an activity with its JSONB content envelope.
func (r *sqlxActivityRepository) CreateActivity(ctx context.Context, activity *domain.Activity) error {
	m, err := fromDomainActivity(activity)
	if err != nil {
		return err
	}
	if m.ID == "" {
		m.ID = util.NewULID()
		activity.ID = m.ID
	}
	now := time.Now()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now

	query := `INSERT INTO activities (id, owner_id, activity_type, title, content, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	executor := GetExecutor(ctx, r.db)
	_, err = executor.ExecContext(ctx, query,
		m.ID, m.OwnerID, m.ActivityType, m.Title, m.Content, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return domain.NewUserNotFoundError(activity.OwnerID)
		}
		return fmt.Errorf("failed to create activity: %w", err)
	}
	return nil
}

// GetActivityByID retrieves a single activity with its decoded envelope.
func (r *sqlxActivityRepository) GetActivityByID(ctx context.Context, activityID string) (*domain.Activity, error) {
	var m models.Activity
	query := `SELECT * FROM activities WHERE id = $1 AND deleted_at IS NULL`

	executor := GetExecutor(ctx, r.db)
	err := executor.GetContext(ctx, &m, query, activityID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	return toDomainActivity(&m)
}

// GetActivitiesByOwnerID retrieves a paginated list of a user's activities,
// newest first.
func (r *sqlxActivityRepository) GetActivitiesByOwnerID(ctx context.Context, ownerID string, limit, offset int) ([]domain.Activity, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT * FROM activities
	          WHERE owner_id = $1 AND deleted_at IS NULL
	          ORDER BY created_at DESC LIMIT %d OFFSET %d`, limit, offset)
	countQuery := `SELECT COUNT(*) FROM activities WHERE owner_id = $1 AND deleted_at IS NULL`

	executor := GetExecutor(ctx, r.db)

	var modelActivities []models.Activity
	if err := executor.SelectContext(ctx, &modelActivities, query, ownerID); err != nil {
		return nil, 0, fmt.Errorf("failed to select activities: %w", err)
	}

	var total int
	if err := executor.GetContext(ctx, &total, countQuery, ownerID); err != nil {
		return nil, 0, fmt.Errorf("failed to count activities: %w", err)
	}

	domainActivities := make([]domain.Activity, 0, len(modelActivities))
	for i := range modelActivities {
		da, err := toDomainActivity(&modelActivities[i])
		if err != nil {
			return nil, 0, err
		}
		domainActivities = append(domainActivities, *da)
	}
	return domainActivities, total, nil
}

// DeleteActivity soft-deletes an activity.
func (r *sqlxActivityRepository) DeleteActivity(ctx context.Context, activityID string) error {
	query := `UPDATE activities SET deleted_at = $1, updated_at = $1
	          WHERE id = $2 AND deleted_at IS NULL`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query, time.Now(), activityID)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.NewActivityNotFoundError(activityID)
	}
	return nil
}
