package postgresadapter

import (
	"context"
	"log/slog"
	"time"

	"shepherd/contexts/insights/dashboard-service/domain/entities"

	"gorm.io/gorm"
)

// Repository projects the members and mobile_users tables owned by the
// membership service; the dashboard never writes them.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

func (r *Repository) CountMembers(ctx context.Context) (int, error) {
	return r.count(ctx, "dashboard_repo_count_members_failed",
		r.db.WithContext(ctx).Table("members"))
}

func (r *Repository) CountMobileUsers(ctx context.Context) (int, error) {
	return r.count(ctx, "dashboard_repo_count_mobile_failed",
		r.db.WithContext(ctx).Table("mobile_users"))
}

func (r *Repository) CountMembersRegisteredBetween(ctx context.Context, from, to time.Time) (int, error) {
	return r.count(ctx, "dashboard_repo_count_members_window_failed",
		r.db.WithContext(ctx).Table("members").
			Where("created_at >= ? AND created_at < ?", from, to))
}

func (r *Repository) CountMobileUsersRegisteredBetween(ctx context.Context, from, to time.Time) (int, error) {
	return r.count(ctx, "dashboard_repo_count_mobile_window_failed",
		r.db.WithContext(ctx).Table("mobile_users").
			Where("created_at >= ? AND created_at < ?", from, to))
}

func (r *Repository) RecentRegistrations(ctx context.Context, limit int) ([]entities.Registration, error) {
	var rows []registrationRow
	err := r.db.WithContext(ctx).
		Table("members").
		Select(
			"members.first_name",
			"members.last_name",
			"members.created_at",
			"CASE WHEN mobile_users.member_id IS NOT NULL THEN 'Mobile' ELSE 'Web' END AS source",
		).
		Joins("LEFT JOIN mobile_users ON mobile_users.member_id = members.id").
		Order("members.created_at DESC").
		Limit(limit).
		Scan(&rows).
		Error
	if err != nil {
		return nil, r.logError("dashboard_repo_recent_failed", err)
	}
	out := make([]entities.Registration, 0, len(rows))
	for _, row := range rows {
		out = append(out, entities.Registration{
			FirstName: row.FirstName,
			LastName:  row.LastName,
			Source:    row.Source,
			CreatedAt: row.CreatedAt,
		})
	}
	return out, nil
}

func (r *Repository) count(_ context.Context, event string, query *gorm.DB) (int, error) {
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, r.logError(event, err)
	}
	return int(count), nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "insights/dashboard-service",
		"layer", "adapter_postgres",
		"error", err.Error(),
	}, args...)
	r.logger.Error("dashboard repository operation failed", fields...)
	return err
}

type registrationRow struct {
	FirstName string
	LastName  string
	Source    string
	CreatedAt time.Time
}
