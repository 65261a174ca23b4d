package ports

import (
	"context"
	"time"

	"shepherd/contexts/communications/announcement-service/domain/entities"
)

// AnnouncementInput carries caller-supplied fields; ExpiryDate arrives as
// a YYYY-MM-DD string and is parsed by the service.
type AnnouncementInput struct {
	Title      string
	Content    string
	ExpiryDate string
}

type Repository interface {
	CreateAnnouncement(ctx context.Context, announcement entities.Announcement) error
	GetAnnouncement(ctx context.Context, announcementID string) (entities.Announcement, error)
	UpdateAnnouncement(ctx context.Context, announcement entities.Announcement) error
	DeleteAnnouncement(ctx context.Context, announcementID string) error
	ListAnnouncements(ctx context.Context) ([]entities.Announcement, error)
	ListActiveAnnouncements(ctx context.Context, now time.Time) ([]entities.Announcement, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
