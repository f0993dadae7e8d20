package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lxp-core/internal/domain"
	"lxp-core/internal/repository/models"
	"lxp-core/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxAIUsageLogRepository implements domain.AIUsageLogRepository using sqlx.
type sqlxAIUsageLogRepository struct {
	db DBTX
}

// NewSQLXAIUsageLogRepository creates a new instance of sqlxAIUsageLogRepository.
func NewSQLXAIUsageLogRepository(db *sqlx.DB) domain.AIUsageLogRepository {
	return &sqlxAIUsageLogRepository{db: db}
}

func toDomainUsageLog(m *models.AIUsageLog) *domain.AIUsageLog {
	if m == nil {
		return nil
	}
	var metadata map[string]interface{}
	if m.Metadata != nil {
		metadata = m.Metadata
	} else {
		metadata = map[string]interface{}{}
	}
	return &domain.AIUsageLog{
		ID:             m.ID,
		UserID:         m.UserID,
		Feature:        m.Feature,
		InputTokens:    m.InputTokens,
		OutputTokens:   m.OutputTokens,
		Model:          m.Model,
		GenerationTime: time.Duration(m.GenerationTimeMs) * time.Millisecond,
		Metadata:       metadata,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func fromDomainUsageLog(l *domain.AIUsageLog) *models.AIUsageLog {
	if l == nil {
		return nil
	}
	var metadata models.JSONMap
	if l.Metadata != nil {
		metadata = l.Metadata
	} else {
		metadata = models.JSONMap{}
	}
	return &models.AIUsageLog{
		ID:               l.ID,
		UserID:           l.UserID,
		Feature:          l.Feature,
		InputTokens:      l.InputTokens,
		OutputTokens:     l.OutputTokens,
		Model:            l.Model,
		GenerationTimeMs: l.GenerationTime.Milliseconds(),
		Metadata:         metadata,
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
	}
}

// CreateUsageLog inserts a usage log row. A foreign key violation on
// user_id is surfaced as a USER_NOT_FOUND domain error.
func (r *sqlxAIUsageLogRepository) CreateUsageLog(ctx context.Context, usageLog *domain.AIUsageLog) error {
	m := fromDomainUsageLog(usageLog)
	if m.ID == "" {
		m.ID = util.NewULID()
		usageLog.ID = m.ID
	}
	now := time.Now()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now

	query := `INSERT INTO ai_usage_logs (id, user_id, feature, input_tokens, output_tokens, model, generation_time_ms, metadata, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		m.ID, m.UserID, m.Feature, m.InputTokens, m.OutputTokens,
		m.Model, m.GenerationTimeMs, m.Metadata, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return domain.NewUserNotFoundError(usageLog.UserID)
		}
		return fmt.Errorf("failed to create usage log: %w", err)
	}
	return nil
}

// buildUsageLogsQuery constructs the filtered SELECT and COUNT queries for a
// user's usage logs. Ordering is always on created_at so the index serves it.
func buildUsageLogsQuery(userID string, filters domain.UsageFilters, limit, offset int) (string, string, []interface{}) {
	var args []interface{}
	whereClauses := []string{}
	argIndex := 1

	whereClauses = append(whereClauses, fmt.Sprintf("user_id = $%d", argIndex))
	args = append(args, userID)
	argIndex++

	if filters.Feature != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("feature = $%d", argIndex))
		args = append(args, filters.Feature)
		argIndex++
	}
	if filters.StartDate != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("created_at >= $%d", argIndex))
		args = append(args, *filters.StartDate)
		argIndex++
	}
	if filters.EndDate != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("created_at <= $%d", argIndex))
		args = append(args, *filters.EndDate)
		argIndex++
	}

	queryWhere := "WHERE " + strings.Join(whereClauses, " AND ")

	sortOrder := "DESC"
	if strings.EqualFold(filters.SortOrder, "ASC") {
		sortOrder = "ASC"
	}

	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	resultsQuery := fmt.Sprintf(
		"SELECT * FROM ai_usage_logs %s ORDER BY created_at %s LIMIT %d OFFSET %d",
		queryWhere, sortOrder, limit, offset,
	)
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM ai_usage_logs %s", queryWhere)

	return resultsQuery, countQuery, args
}

// GetUsageLogsByUserID retrieves a paginated list of usage logs for a user.
func (r *sqlxAIUsageLogRepository) GetUsageLogsByUserID(ctx context.Context, userID string, filters domain.UsageFilters, limit, offset int) ([]domain.AIUsageLog, int, error) {
	resultsQuery, countQuery, args := buildUsageLogsQuery(userID, filters, limit, offset)

	executor := GetExecutor(ctx, r.db)

	var modelLogs []models.AIUsageLog
	if err := executor.SelectContext(ctx, &modelLogs, resultsQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to select usage logs: %w", err)
	}

	var total int
	if err := executor.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count usage logs: %w", err)
	}

	domainLogs := make([]domain.AIUsageLog, len(modelLogs))
	for i := range modelLogs {
		domainLogs[i] = *toDomainUsageLog(&modelLogs[i])
	}
	return domainLogs, total, nil
}

// usageSummaryRow is the scan target for the per-feature aggregate query.
type usageSummaryRow struct {
	Feature       string    `db:"feature"`
	Invocations   int       `db:"invocations"`
	InputTokens   int       `db:"input_tokens"`
	OutputTokens  int       `db:"output_tokens"`
	LastInvokedAt time.Time `db:"last_invoked_at"`
}

// GetUsageSummaryByUserID aggregates token consumption per feature.
func (r *sqlxAIUsageLogRepository) GetUsageSummaryByUserID(ctx context.Context, userID string) ([]domain.FeatureUsageSummary, error) {
	query := `SELECT feature,
	                 COUNT(*) AS invocations,
	                 COALESCE(SUM(input_tokens), 0) AS input_tokens,
	                 COALESCE(SUM(output_tokens), 0) AS output_tokens,
	                 MAX(created_at) AS last_invoked_at
	          FROM ai_usage_logs
	          WHERE user_id = $1
	          GROUP BY feature
	          ORDER BY feature`

	executor := GetExecutor(ctx, r.db)
	var rows []usageSummaryRow
	if err := executor.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to aggregate usage summary: %w", err)
	}

	summaries := make([]domain.FeatureUsageSummary, len(rows))
	for i, row := range rows {
		summaries[i] = domain.FeatureUsageSummary{
			Feature:       row.Feature,
			Invocations:   row.Invocations,
			InputTokens:   row.InputTokens,
			OutputTokens:  row.OutputTokens,
			TotalTokens:   row.InputTokens + row.OutputTokens,
			LastInvokedAt: row.LastInvokedAt,
		}
	}
	return summaries, nil
}
