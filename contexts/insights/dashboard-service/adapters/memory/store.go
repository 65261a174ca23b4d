package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"shepherd/contexts/insights/dashboard-service/domain/entities"
)

// Store holds registration projection rows for dashboard reads.
type Store struct {
	mu sync.RWMutex

	registrations []entities.Registration

	nowFunc func() time.Time
}

func NewStore(seed []entities.Registration) *Store {
	return &Store{registrations: append([]entities.Registration(nil), seed...)}
}

func (s *Store) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nowFunc = func() time.Time { return now }
}

// AddRegistration seeds one projection row.
func (s *Store) AddRegistration(registration entities.Registration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registrations = append(s.registrations, registration)
}

func (s *Store) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.nowFunc != nil {
		return s.nowFunc()
	}
	return time.Now().UTC()
}

func (s *Store) CountMembers(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registrations), nil
}

func (s *Store) CountMobileUsers(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, registration := range s.registrations {
		if registration.Source == "Mobile" {
			count++
		}
	}
	return count, nil
}

func (s *Store) CountMembersRegisteredBetween(_ context.Context, from, to time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, registration := range s.registrations {
		if inWindow(registration.CreatedAt, from, to) {
			count++
		}
	}
	return count, nil
}

func (s *Store) CountMobileUsersRegisteredBetween(_ context.Context, from, to time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, registration := range s.registrations {
		if registration.Source == "Mobile" && inWindow(registration.CreatedAt, from, to) {
			count++
		}
	}
	return count, nil
}

func (s *Store) RecentRegistrations(_ context.Context, limit int) ([]entities.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := append([]entities.Registration(nil), s.registrations...)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// inWindow is half-open: [from, to).
func inWindow(at, from, to time.Time) bool {
	return !at.Before(from) && at.Before(to)
}
