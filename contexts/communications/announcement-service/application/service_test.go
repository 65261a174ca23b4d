package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"shepherd/contexts/communications/announcement-service/adapters/memory"
	domainerrors "shepherd/contexts/communications/announcement-service/domain/errors"
	"shepherd/contexts/communications/announcement-service/ports"
)

var announceNow = time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC)

func newFixture() (*memory.Store, Service) {
	store := memory.NewStore(nil)
	store.SetNow(announceNow)
	return store, Service{Repo: store, Clock: store, IDGen: store}
}

func TestCreateAnnouncementTrimsAndStamps(t *testing.T) {
	_, svc := newFixture()

	announcement, err := svc.CreateAnnouncement(context.Background(), ports.AnnouncementInput{
		Title:      "  Harvest Sunday  ",
		Content:    " Join us after the second service. ",
		ExpiryDate: "2025-06-01",
	})
	if err != nil {
		t.Fatalf("create announcement failed: %v", err)
	}
	if announcement.Title != "Harvest Sunday" {
		t.Fatalf("expected trimmed title, got %q", announcement.Title)
	}
	if announcement.Content != "Join us after the second service." {
		t.Fatalf("expected trimmed content, got %q", announcement.Content)
	}
	if !announcement.ExpiryDate.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected expiry %v", announcement.ExpiryDate)
	}
	if !announcement.CreatedAt.Equal(announceNow) || !announcement.UpdatedAt.Equal(announceNow) {
		t.Fatalf("unexpected timestamps %+v", announcement)
	}
}

func TestCreateAnnouncementValidation(t *testing.T) {
	_, svc := newFixture()
	ctx := context.Background()

	cases := []struct {
		name  string
		input ports.AnnouncementInput
		want  error
	}{
		{"blank title", ports.AnnouncementInput{Content: "c", ExpiryDate: "2025-06-01"}, domainerrors.ErrInvalidAnnouncementInput},
		{"blank content", ports.AnnouncementInput{Title: "t", ExpiryDate: "2025-06-01"}, domainerrors.ErrInvalidAnnouncementInput},
		{"blank expiry", ports.AnnouncementInput{Title: "t", Content: "c"}, domainerrors.ErrInvalidAnnouncementInput},
		{"malformed expiry", ports.AnnouncementInput{Title: "t", Content: "c", ExpiryDate: "01/06/2025"}, domainerrors.ErrInvalidExpiryDate},
	}
	for _, tc := range cases {
		if _, err := svc.CreateAnnouncement(ctx, tc.input); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestUpdateAnnouncementPreservesCreatedAt(t *testing.T) {
	store, svc := newFixture()
	ctx := context.Background()

	created, err := svc.CreateAnnouncement(ctx, ports.AnnouncementInput{
		Title:      "Prayer Meeting",
		Content:    "Wednesday at 6pm.",
		ExpiryDate: "2025-06-01",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	later := announceNow.Add(24 * time.Hour)
	store.SetNow(later)
	updated, err := svc.UpdateAnnouncement(ctx, created.AnnouncementID, ports.AnnouncementInput{
		Title:      "Prayer Meeting",
		Content:    "Moved to Thursday at 6pm.",
		ExpiryDate: "2025-06-08",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.AnnouncementID != created.AnnouncementID {
		t.Fatal("announcement id changed on update")
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("created_at must survive updates: %v vs %v", updated.CreatedAt, created.CreatedAt)
	}
	if !updated.UpdatedAt.Equal(later) {
		t.Fatalf("unexpected updated_at %v", updated.UpdatedAt)
	}
}

func TestUpdateAnnouncementUnknownID(t *testing.T) {
	_, svc := newFixture()
	_, err := svc.UpdateAnnouncement(context.Background(), "ghost", ports.AnnouncementInput{
		Title: "t", Content: "c", ExpiryDate: "2025-06-01",
	})
	if !errors.Is(err, domainerrors.ErrAnnouncementNotFound) {
		t.Fatalf("expected ErrAnnouncementNotFound, got %v", err)
	}
}

func TestListActiveAnnouncementsFiltersExpired(t *testing.T) {
	store, svc := newFixture()
	ctx := context.Background()

	// Expires after the pinned clock: active.
	active, err := svc.CreateAnnouncement(ctx, ports.AnnouncementInput{
		Title: "Still On", Content: "c", ExpiryDate: "2025-05-21",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	// Expiry is midnight of the stated day; by mid-morning it is gone.
	if _, err := svc.CreateAnnouncement(ctx, ports.AnnouncementInput{
		Title: "Expired Today", Content: "c", ExpiryDate: "2025-05-20",
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.CreateAnnouncement(ctx, ports.AnnouncementInput{
		Title: "Long Gone", Content: "c", ExpiryDate: "2024-01-01",
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	all, err := svc.ListAnnouncements(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 total, got %d", len(all))
	}

	current, err := svc.ListActiveAnnouncements(ctx)
	if err != nil {
		t.Fatalf("list active failed: %v", err)
	}
	if len(current) != 1 || current[0].AnnouncementID != active.AnnouncementID {
		t.Fatalf("unexpected active set %+v", current)
	}

	// Time passing flips the remaining one to expired.
	store.SetNow(time.Date(2025, 5, 22, 0, 0, 0, 0, time.UTC))
	current, err = svc.ListActiveAnnouncements(ctx)
	if err != nil {
		t.Fatalf("list active failed: %v", err)
	}
	if len(current) != 0 {
		t.Fatalf("expected none active, got %d", len(current))
	}
}

func TestDeleteAnnouncement(t *testing.T) {
	_, svc := newFixture()
	ctx := context.Background()

	created, err := svc.CreateAnnouncement(ctx, ports.AnnouncementInput{
		Title: "Clean Up Day", Content: "c", ExpiryDate: "2025-06-01",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.DeleteAnnouncement(ctx, created.AnnouncementID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.GetAnnouncement(ctx, created.AnnouncementID); !errors.Is(err, domainerrors.ErrAnnouncementNotFound) {
		t.Fatalf("expected ErrAnnouncementNotFound, got %v", err)
	}
}
