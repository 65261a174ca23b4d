package postgresadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"shepherd/contexts/congregation/membership-service/domain/entities"
	domainerrors "shepherd/contexts/congregation/membership-service/domain/errors"

	"gorm.io/gorm"
)

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

func (r *Repository) CreateMember(ctx context.Context, member entities.Member) error {
	row := memberModelFromEntity(member)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("membership_repo_create_member_failed", err, "member_id", member.MemberID)
	}
	return nil
}

func (r *Repository) GetMember(ctx context.Context, memberID string) (entities.MemberRecord, error) {
	var row memberRecordRow
	err := r.recordQuery(ctx).
		Where("members.id = ?", strings.TrimSpace(memberID)).
		Scan(&row).
		Error
	if err != nil {
		return entities.MemberRecord{}, r.logError("membership_repo_get_member_failed", err,
			"member_id", strings.TrimSpace(memberID))
	}
	if row.ID == "" {
		return entities.MemberRecord{}, domainerrors.ErrMemberNotFound
	}
	return row.toRecord(), nil
}

func (r *Repository) UpdateMember(ctx context.Context, member entities.Member) error {
	row := memberModelFromEntity(member)
	result := r.db.WithContext(ctx).
		Model(&memberModel{}).
		Where("id = ?", row.ID).
		Updates(map[string]any{
			"first_name":        row.FirstName,
			"last_name":         row.LastName,
			"gender":            row.Gender,
			"date_of_birth":     row.DateOfBirth,
			"address":           row.Address,
			"phone_number":      row.PhoneNumber,
			"profile_completed": row.ProfileCompleted,
			"updated_at":        row.UpdatedAt,
		})
	if result.Error != nil {
		return r.logError("membership_repo_update_member_failed", result.Error, "member_id", row.ID)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrMemberNotFound
	}
	return nil
}

func (r *Repository) DeleteMember(ctx context.Context, memberID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(memberID)).
		Delete(&memberModel{})
	if result.Error != nil {
		return r.logError("membership_repo_delete_member_failed", result.Error,
			"member_id", strings.TrimSpace(memberID))
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrMemberNotFound
	}
	return nil
}

func (r *Repository) ListMembers(ctx context.Context) ([]entities.MemberRecord, error) {
	return r.listRecords(ctx, "membership_repo_list_members_failed", func(q *gorm.DB) *gorm.DB {
		return q
	})
}

func (r *Repository) ListMembersBySource(ctx context.Context, source string) ([]entities.MemberRecord, error) {
	return r.listRecords(ctx, "membership_repo_list_by_source_failed", func(q *gorm.DB) *gorm.DB {
		if source == entities.SourceMobile {
			return q.Where("mobile_users.member_id IS NOT NULL")
		}
		return q.Where("mobile_users.member_id IS NULL")
	})
}

func (r *Repository) SearchMembersByName(ctx context.Context, term string) ([]entities.MemberRecord, error) {
	pattern := "%" + term + "%"
	return r.listRecords(ctx, "membership_repo_search_name_failed", func(q *gorm.DB) *gorm.DB {
		return q.Where("members.first_name ILIKE ? OR members.last_name ILIKE ?", pattern, pattern)
	})
}

func (r *Repository) SearchMembersByAddress(ctx context.Context, term string) ([]entities.MemberRecord, error) {
	pattern := "%" + term + "%"
	return r.listRecords(ctx, "membership_repo_search_address_failed", func(q *gorm.DB) *gorm.DB {
		return q.Where("members.address ILIKE ?", pattern)
	})
}

func (r *Repository) RecentRegistrations(ctx context.Context, limit int) ([]entities.MemberRecord, error) {
	return r.listRecords(ctx, "membership_repo_recent_failed", func(q *gorm.DB) *gorm.DB {
		return q.Limit(limit)
	})
}

func (r *Repository) CountMembers(ctx context.Context) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&memberModel{}).Count(&count).Error; err != nil {
		return 0, r.logError("membership_repo_count_members_failed", err)
	}
	return int(count), nil
}

func (r *Repository) CountMobileUsers(ctx context.Context) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&mobileUserModel{}).Count(&count).Error; err != nil {
		return 0, r.logError("membership_repo_count_mobile_failed", err)
	}
	return int(count), nil
}

// recordQuery joins members against mobile_users so every listing carries
// the registration source in a single round trip.
func (r *Repository) recordQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&memberModel{}).
		Select(
			"members.id",
			"members.first_name",
			"members.last_name",
			"members.gender",
			"members.date_of_birth",
			"members.address",
			"members.phone_number",
			"members.profile_completed",
			"members.created_at",
			"members.updated_at",
			"mobile_users.member_id AS mobile_member_id",
			"mobile_users.phone_number AS mobile_phone",
			"mobile_users.verified AS mobile_verified",
		).
		Joins("LEFT JOIN mobile_users ON mobile_users.member_id = members.id")
}

func (r *Repository) listRecords(ctx context.Context, event string, refine func(*gorm.DB) *gorm.DB) ([]entities.MemberRecord, error) {
	var rows []memberRecordRow
	query := refine(r.recordQuery(ctx)).Order("members.created_at DESC")
	if err := query.Scan(&rows).Error; err != nil {
		return nil, r.logError(event, err)
	}
	out := make([]entities.MemberRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toRecord())
	}
	return out, nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "congregation/membership-service",
		"layer", "adapter_postgres",
		"error", err.Error(),
	}, args...)
	r.logger.Error("membership repository operation failed", fields...)
	return err
}

type memberModel struct {
	ID               string    `gorm:"column:id;primaryKey"`
	FirstName        string    `gorm:"column:first_name"`
	LastName         string    `gorm:"column:last_name"`
	Gender           string    `gorm:"column:gender"`
	DateOfBirth      time.Time `gorm:"column:date_of_birth"`
	Address          string    `gorm:"column:address"`
	PhoneNumber      string    `gorm:"column:phone_number"`
	ProfileCompleted bool      `gorm:"column:profile_completed"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (memberModel) TableName() string {
	return "members"
}

func memberModelFromEntity(member entities.Member) memberModel {
	return memberModel{
		ID:               strings.TrimSpace(member.MemberID),
		FirstName:        member.FirstName,
		LastName:         member.LastName,
		Gender:           member.Gender,
		DateOfBirth:      member.DateOfBirth,
		Address:          member.Address,
		PhoneNumber:      member.PhoneNumber,
		ProfileCompleted: member.ProfileCompleted,
		CreatedAt:        member.CreatedAt,
		UpdatedAt:        member.UpdatedAt,
	}
}

// mobileUserModel is written by the mobile onboarding flow; this service
// only reads it to tag registration sources.
type mobileUserModel struct {
	MemberID    string    `gorm:"column:member_id;primaryKey"`
	PhoneNumber string    `gorm:"column:phone_number"`
	Verified    bool      `gorm:"column:verified"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (mobileUserModel) TableName() string {
	return "mobile_users"
}

type memberRecordRow struct {
	ID               string
	FirstName        string
	LastName         string
	Gender           string
	DateOfBirth      time.Time
	Address          string
	PhoneNumber      string
	ProfileCompleted bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
	MobileMemberID   *string
	MobilePhone      *string
	MobileVerified   *bool
}

func (row memberRecordRow) toRecord() entities.MemberRecord {
	record := entities.MemberRecord{
		Member: entities.Member{
			MemberID:         row.ID,
			FirstName:        row.FirstName,
			LastName:         row.LastName,
			Gender:           row.Gender,
			DateOfBirth:      row.DateOfBirth,
			Address:          row.Address,
			PhoneNumber:      row.PhoneNumber,
			ProfileCompleted: row.ProfileCompleted,
			CreatedAt:        row.CreatedAt,
			UpdatedAt:        row.UpdatedAt,
		},
		Source: entities.SourceWeb,
	}
	if row.MobileMemberID != nil && *row.MobileMemberID != "" {
		record.Source = entities.SourceMobile
		if row.MobilePhone != nil {
			record.MobilePhone = *row.MobilePhone
		}
		if row.MobileVerified != nil {
			record.Verified = *row.MobileVerified
		}
	}
	return record
}
