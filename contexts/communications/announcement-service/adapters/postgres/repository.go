package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"shepherd/contexts/communications/announcement-service/domain/entities"
	domainerrors "shepherd/contexts/communications/announcement-service/domain/errors"

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

func (r *Repository) CreateAnnouncement(ctx context.Context, announcement entities.Announcement) error {
	row := announcementModelFromEntity(announcement)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("announcement_repo_create_failed", err,
			"announcement_id", announcement.AnnouncementID)
	}
	return nil
}

func (r *Repository) GetAnnouncement(ctx context.Context, announcementID string) (entities.Announcement, error) {
	var row announcementModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(announcementID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Announcement{}, domainerrors.ErrAnnouncementNotFound
		}
		return entities.Announcement{}, r.logError("announcement_repo_get_failed", err,
			"announcement_id", strings.TrimSpace(announcementID))
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdateAnnouncement(ctx context.Context, announcement entities.Announcement) error {
	row := announcementModelFromEntity(announcement)
	result := r.db.WithContext(ctx).
		Model(&announcementModel{}).
		Where("id = ?", row.ID).
		Updates(map[string]any{
			"title":       row.Title,
			"content":     row.Content,
			"expiry_date": row.ExpiryDate,
			"updated_at":  row.UpdatedAt,
		})
	if result.Error != nil {
		return r.logError("announcement_repo_update_failed", result.Error, "announcement_id", row.ID)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrAnnouncementNotFound
	}
	return nil
}

func (r *Repository) DeleteAnnouncement(ctx context.Context, announcementID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(announcementID)).
		Delete(&announcementModel{})
	if result.Error != nil {
		return r.logError("announcement_repo_delete_failed", result.Error,
			"announcement_id", strings.TrimSpace(announcementID))
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrAnnouncementNotFound
	}
	return nil
}

func (r *Repository) ListAnnouncements(ctx context.Context) ([]entities.Announcement, error) {
	var rows []announcementModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("announcement_repo_list_failed", err)
	}
	return toEntities(rows), nil
}

func (r *Repository) ListActiveAnnouncements(ctx context.Context, now time.Time) ([]entities.Announcement, error) {
	var rows []announcementModel
	if err := r.db.WithContext(ctx).
		Where("expiry_date > ?", now).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("announcement_repo_list_active_failed", err)
	}
	return toEntities(rows), nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "communications/announcement-service",
		"layer", "adapter_postgres",
		"error", err.Error(),
	}, args...)
	r.logger.Error("announcement repository operation failed", fields...)
	return err
}

type announcementModel struct {
	ID         string    `gorm:"column:id;primaryKey"`
	Title      string    `gorm:"column:title"`
	Content    string    `gorm:"column:content"`
	ExpiryDate time.Time `gorm:"column:expiry_date"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (announcementModel) TableName() string {
	return "announcements"
}

func announcementModelFromEntity(announcement entities.Announcement) announcementModel {
	return announcementModel{
		ID:         strings.TrimSpace(announcement.AnnouncementID),
		Title:      announcement.Title,
		Content:    announcement.Content,
		ExpiryDate: announcement.ExpiryDate,
		CreatedAt:  announcement.CreatedAt,
		UpdatedAt:  announcement.UpdatedAt,
	}
}

func (m announcementModel) toEntity() entities.Announcement {
	return entities.Announcement{
		AnnouncementID: m.ID,
		Title:          m.Title,
		Content:        m.Content,
		ExpiryDate:     m.ExpiryDate,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toEntities(rows []announcementModel) []entities.Announcement {
	out := make([]entities.Announcement, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out
}
