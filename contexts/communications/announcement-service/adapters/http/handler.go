package httpadapter

import (
	"context"
	"log/slog"

	"shepherd/contexts/communications/announcement-service/application"
	"shepherd/contexts/communications/announcement-service/domain/entities"
	"shepherd/contexts/communications/announcement-service/ports"
	httptransport "shepherd/contexts/communications/announcement-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateAnnouncementHandler(ctx context.Context, req httptransport.CreateAnnouncementRequest) (httptransport.StatusResponse, error) {
	announcement, err := h.Service.CreateAnnouncement(ctx, ports.AnnouncementInput{
		Title:      req.Title,
		Content:    req.Content,
		ExpiryDate: req.ExpiryDate,
	})
	if err != nil {
		return httptransport.StatusResponse{}, err
	}
	return httptransport.StatusResponse{
		Success:        true,
		Message:        "Announcement created successfully",
		AnnouncementID: announcement.AnnouncementID,
	}, nil
}

func (h Handler) UpdateAnnouncementHandler(ctx context.Context, announcementID string, req httptransport.UpdateAnnouncementRequest) (httptransport.StatusResponse, error) {
	_, err := h.Service.UpdateAnnouncement(ctx, announcementID, ports.AnnouncementInput{
		Title:      req.Title,
		Content:    req.Content,
		ExpiryDate: req.ExpiryDate,
	})
	if err != nil {
		return httptransport.StatusResponse{}, err
	}
	return httptransport.StatusResponse{Success: true, Message: "Announcement updated successfully"}, nil
}

func (h Handler) DeleteAnnouncementHandler(ctx context.Context, announcementID string) (httptransport.StatusResponse, error) {
	if err := h.Service.DeleteAnnouncement(ctx, announcementID); err != nil {
		return httptransport.StatusResponse{}, err
	}
	return httptransport.StatusResponse{Success: true, Message: "Announcement deleted successfully"}, nil
}

func (h Handler) GetAnnouncementHandler(ctx context.Context, announcementID string) (httptransport.AnnouncementResponse, error) {
	announcement, err := h.Service.GetAnnouncement(ctx, announcementID)
	if err != nil {
		return httptransport.AnnouncementResponse{}, err
	}
	return mapAnnouncement(announcement), nil
}

func (h Handler) ListAnnouncementsHandler(ctx context.Context) (httptransport.AnnouncementListResponse, error) {
	announcements, err := h.Service.ListAnnouncements(ctx)
	if err != nil {
		return httptransport.AnnouncementListResponse{}, err
	}
	return mapAnnouncements(announcements), nil
}

func (h Handler) ListActiveAnnouncementsHandler(ctx context.Context) (httptransport.AnnouncementListResponse, error) {
	announcements, err := h.Service.ListActiveAnnouncements(ctx)
	if err != nil {
		return httptransport.AnnouncementListResponse{}, err
	}
	return mapAnnouncements(announcements), nil
}

func mapAnnouncement(announcement entities.Announcement) httptransport.AnnouncementResponse {
	return httptransport.AnnouncementResponse{
		AnnouncementID: announcement.AnnouncementID,
		Title:          announcement.Title,
		Content:        announcement.Content,
		ExpiryDate:     announcement.ExpiryDate.Format("2006-01-02"),
		CreatedAt:      announcement.CreatedAt,
		UpdatedAt:      announcement.UpdatedAt,
	}
}

func mapAnnouncements(announcements []entities.Announcement) httptransport.AnnouncementListResponse {
	items := make([]httptransport.AnnouncementResponse, 0, len(announcements))
	for _, announcement := range announcements {
		items = append(items, mapAnnouncement(announcement))
	}
	return httptransport.AnnouncementListResponse{Items: items}
}
