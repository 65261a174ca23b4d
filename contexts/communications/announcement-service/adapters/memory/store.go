package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"shepherd/contexts/communications/announcement-service/domain/entities"
	domainerrors "shepherd/contexts/communications/announcement-service/domain/errors"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	announcements map[string]entities.Announcement

	nowFunc func() time.Time
}

func NewStore(seed []entities.Announcement) *Store {
	announcements := make(map[string]entities.Announcement, len(seed))
	for _, announcement := range seed {
		announcements[announcement.AnnouncementID] = announcement
	}
	return &Store{announcements: announcements}
}

func (s *Store) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nowFunc = func() time.Time { return now }
}

func (s *Store) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.nowFunc != nil {
		return s.nowFunc()
	}
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) CreateAnnouncement(_ context.Context, announcement entities.Announcement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.announcements[announcement.AnnouncementID] = announcement
	return nil
}

func (s *Store) GetAnnouncement(_ context.Context, announcementID string) (entities.Announcement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	announcement, ok := s.announcements[announcementID]
	if !ok {
		return entities.Announcement{}, domainerrors.ErrAnnouncementNotFound
	}
	return announcement, nil
}

func (s *Store) UpdateAnnouncement(_ context.Context, announcement entities.Announcement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.announcements[announcement.AnnouncementID]; !ok {
		return domainerrors.ErrAnnouncementNotFound
	}
	s.announcements[announcement.AnnouncementID] = announcement
	return nil
}

func (s *Store) DeleteAnnouncement(_ context.Context, announcementID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.announcements[announcementID]; !ok {
		return domainerrors.ErrAnnouncementNotFound
	}
	delete(s.announcements, announcementID)
	return nil
}

func (s *Store) ListAnnouncements(_ context.Context) ([]entities.Announcement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(entities.Announcement) bool { return true }), nil
}

func (s *Store) ListActiveAnnouncements(_ context.Context, now time.Time) ([]entities.Announcement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(announcement entities.Announcement) bool {
		return announcement.ActiveAt(now)
	}), nil
}

// collect assumes the read lock is held; newest first.
func (s *Store) collect(keep func(entities.Announcement) bool) []entities.Announcement {
	out := make([]entities.Announcement, 0, len(s.announcements))
	for _, announcement := range s.announcements {
		if keep(announcement) {
			out = append(out, announcement)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].AnnouncementID < out[j].AnnouncementID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
