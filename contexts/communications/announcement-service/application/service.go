package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"shepherd/contexts/communications/announcement-service/domain/entities"
	domainerrors "shepherd/contexts/communications/announcement-service/domain/errors"
	"shepherd/contexts/communications/announcement-service/ports"
)

const expiryDateLayout = "2006-01-02"

type Service struct {
	Repo   ports.Repository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (s Service) CreateAnnouncement(ctx context.Context, input ports.AnnouncementInput) (entities.Announcement, error) {
	announcement, err := s.buildAnnouncement(ctx, input)
	if err != nil {
		return entities.Announcement{}, err
	}
	if err := s.Repo.CreateAnnouncement(ctx, announcement); err != nil {
		return entities.Announcement{}, err
	}
	s.logger().Info("announcement created",
		"event", "announcement_created",
		"module", "communications/announcement-service",
		"layer", "application",
		"announcement_id", announcement.AnnouncementID,
	)
	return announcement, nil
}

func (s Service) UpdateAnnouncement(ctx context.Context, announcementID string, input ports.AnnouncementInput) (entities.Announcement, error) {
	existing, err := s.Repo.GetAnnouncement(ctx, strings.TrimSpace(announcementID))
	if err != nil {
		return entities.Announcement{}, err
	}
	updated, err := s.buildAnnouncement(ctx, input)
	if err != nil {
		return entities.Announcement{}, err
	}
	updated.AnnouncementID = existing.AnnouncementID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = s.now()
	if err := s.Repo.UpdateAnnouncement(ctx, updated); err != nil {
		return entities.Announcement{}, err
	}
	s.logger().Info("announcement updated",
		"event", "announcement_updated",
		"module", "communications/announcement-service",
		"layer", "application",
		"announcement_id", updated.AnnouncementID,
	)
	return updated, nil
}

func (s Service) DeleteAnnouncement(ctx context.Context, announcementID string) error {
	if err := s.Repo.DeleteAnnouncement(ctx, strings.TrimSpace(announcementID)); err != nil {
		return err
	}
	s.logger().Info("announcement deleted",
		"event", "announcement_deleted",
		"module", "communications/announcement-service",
		"layer", "application",
		"announcement_id", strings.TrimSpace(announcementID),
	)
	return nil
}

func (s Service) GetAnnouncement(ctx context.Context, announcementID string) (entities.Announcement, error) {
	return s.Repo.GetAnnouncement(ctx, strings.TrimSpace(announcementID))
}

func (s Service) ListAnnouncements(ctx context.Context) ([]entities.Announcement, error) {
	return s.Repo.ListAnnouncements(ctx)
}

// ListActiveAnnouncements returns unexpired announcements, newest first.
func (s Service) ListActiveAnnouncements(ctx context.Context) ([]entities.Announcement, error) {
	return s.Repo.ListActiveAnnouncements(ctx, s.now())
}

func (s Service) buildAnnouncement(ctx context.Context, input ports.AnnouncementInput) (entities.Announcement, error) {
	title := strings.TrimSpace(input.Title)
	content := strings.TrimSpace(input.Content)
	expiry := strings.TrimSpace(input.ExpiryDate)
	if title == "" || content == "" || expiry == "" {
		return entities.Announcement{}, domainerrors.ErrInvalidAnnouncementInput
	}
	expiryDate, err := time.Parse(expiryDateLayout, expiry)
	if err != nil {
		return entities.Announcement{}, domainerrors.ErrInvalidExpiryDate
	}
	announcementID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Announcement{}, err
	}
	now := s.now()
	return entities.Announcement{
		AnnouncementID: announcementID,
		Title:          title,
		Content:        content,
		ExpiryDate:     expiryDate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

func (s Service) now() time.Time {
	return s.Clock.Now().UTC()
}

func (s Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}
