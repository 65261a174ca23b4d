package unit

import (
	"context"
	"errors"
	"testing"
	"time"

	announcementservice "shepherd/contexts/communications/announcement-service"
	domainerrors "shepherd/contexts/communications/announcement-service/domain/errors"
	httptransport "shepherd/contexts/communications/announcement-service/transport/http"
)

func TestAnnouncementLifecycle(t *testing.T) {
	module := announcementservice.NewInMemoryModule(nil, nil)
	module.Store.SetNow(time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC))
	ctx := context.Background()

	created, err := module.Handler.CreateAnnouncementHandler(ctx, httptransport.CreateAnnouncementRequest{
		Title:      "Harvest Sunday",
		Content:    "Join us after the second service.",
		ExpiryDate: "2025-06-01",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !created.Success || created.AnnouncementID == "" {
		t.Fatalf("unexpected create response %+v", created)
	}

	fetched, err := module.Handler.GetAnnouncementHandler(ctx, created.AnnouncementID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if fetched.Title != "Harvest Sunday" || fetched.ExpiryDate != "2025-06-01" {
		t.Fatalf("unexpected announcement %+v", fetched)
	}

	if _, err := module.Handler.UpdateAnnouncementHandler(ctx, created.AnnouncementID, httptransport.UpdateAnnouncementRequest{
		Title:      "Harvest Sunday",
		Content:    "Rescheduled to the first service.",
		ExpiryDate: "2025-06-08",
	}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if _, err := module.Handler.DeleteAnnouncementHandler(ctx, created.AnnouncementID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := module.Handler.GetAnnouncementHandler(ctx, created.AnnouncementID); !errors.Is(err, domainerrors.ErrAnnouncementNotFound) {
		t.Fatalf("expected ErrAnnouncementNotFound, got %v", err)
	}
}

func TestAnnouncementActiveFilter(t *testing.T) {
	module := announcementservice.NewInMemoryModule(nil, nil)
	module.Store.SetNow(time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC))
	ctx := context.Background()

	live, err := module.Handler.CreateAnnouncementHandler(ctx, httptransport.CreateAnnouncementRequest{
		Title: "Prayer Meeting", Content: "Wednesday at 6pm.", ExpiryDate: "2025-06-01",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := module.Handler.CreateAnnouncementHandler(ctx, httptransport.CreateAnnouncementRequest{
		Title: "Easter Picnic", Content: "Bring a friend.", ExpiryDate: "2025-04-21",
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	all, err := module.Handler.ListAnnouncementsHandler(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all.Items) != 2 {
		t.Fatalf("expected 2 announcements, got %d", len(all.Items))
	}

	active, err := module.Handler.ListActiveAnnouncementsHandler(ctx)
	if err != nil {
		t.Fatalf("list active failed: %v", err)
	}
	if len(active.Items) != 1 || active.Items[0].AnnouncementID != live.AnnouncementID {
		t.Fatalf("unexpected active set %+v", active.Items)
	}
}
