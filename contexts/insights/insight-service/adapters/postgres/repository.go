package postgresadapter

import (
	"context"
	"log/slog"
	"time"

	"shepherd/contexts/insights/insight-service/domain/entities"

	"gorm.io/gorm"
)

// Repository projects the members and mobile_users tables owned by the
// membership service; the insight service never writes them.
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
	var count int64
	if err := r.db.WithContext(ctx).Table("members").Count(&count).Error; err != nil {
		return 0, r.logError("insight_repo_count_members_failed", err)
	}
	return int(count), nil
}

func (r *Repository) CountMobileUsers(ctx context.Context) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Table("mobile_users").Count(&count).Error; err != nil {
		return 0, r.logError("insight_repo_count_mobile_failed", err)
	}
	return int(count), nil
}

func (r *Repository) CountCompletedProfiles(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("members").
		Where("profile_completed = ?", true).
		Count(&count).
		Error
	if err != nil {
		return 0, r.logError("insight_repo_count_completed_failed", err)
	}
	return int(count), nil
}

func (r *Repository) ListMemberSnapshots(ctx context.Context) ([]entities.MemberSnapshot, error) {
	return r.listSnapshots(ctx, "insight_repo_list_snapshots_failed", func(q *gorm.DB) *gorm.DB {
		return q
	})
}

func (r *Repository) ListMemberSnapshotsByAddress(ctx context.Context, term string) ([]entities.MemberSnapshot, error) {
	pattern := "%" + term + "%"
	return r.listSnapshots(ctx, "insight_repo_list_by_address_failed", func(q *gorm.DB) *gorm.DB {
		return q.Where("members.address ILIKE ?", pattern)
	})
}

func (r *Repository) MonthlyRegistrations(ctx context.Context, months int) ([]entities.MonthlyCount, error) {
	var rows []monthlyRow
	cutoff := time.Now().UTC().AddDate(0, -months, 0)
	err := r.db.WithContext(ctx).
		Table("members").
		Select("to_char(created_at, 'YYYY-MM') AS month, COUNT(*) AS count").
		Where("created_at >= ?", cutoff).
		Group("month").
		Order("month ASC").
		Scan(&rows).
		Error
	if err != nil {
		return nil, r.logError("insight_repo_monthly_failed", err)
	}
	out := make([]entities.MonthlyCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, entities.MonthlyCount{Month: row.Month, Count: row.Count})
	}
	return out, nil
}

func (r *Repository) listSnapshots(ctx context.Context, event string, refine func(*gorm.DB) *gorm.DB) ([]entities.MemberSnapshot, error) {
	var rows []snapshotRow
	query := refine(r.db.WithContext(ctx).
		Table("members").
		Select(
			"members.id",
			"members.gender",
			"members.date_of_birth",
			"members.address",
			"members.profile_completed",
			"members.created_at",
			"CASE WHEN mobile_users.member_id IS NOT NULL THEN 'Mobile' ELSE 'Web' END AS source",
			"COALESCE(mobile_users.verified, false) AS verified",
		).
		Joins("LEFT JOIN mobile_users ON mobile_users.member_id = members.id")).
		Order("members.created_at DESC")
	if err := query.Scan(&rows).Error; err != nil {
		return nil, r.logError(event, err)
	}
	out := make([]entities.MemberSnapshot, 0, len(rows))
	for _, row := range rows {
		out = append(out, entities.MemberSnapshot{
			MemberID:         row.ID,
			Gender:           row.Gender,
			DateOfBirth:      row.DateOfBirth,
			Address:          row.Address,
			Source:           row.Source,
			Verified:         row.Verified,
			ProfileCompleted: row.ProfileCompleted,
			CreatedAt:        row.CreatedAt,
		})
	}
	return out, nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "insights/insight-service",
		"layer", "adapter_postgres",
		"error", err.Error(),
	}, args...)
	r.logger.Error("insight repository operation failed", fields...)
	return err
}

type snapshotRow struct {
	ID               string
	Gender           string
	DateOfBirth      time.Time
	Address          string
	Source           string
	Verified         bool
	ProfileCompleted bool
	CreatedAt        time.Time
}

type monthlyRow struct {
	Month string
	Count int
}
