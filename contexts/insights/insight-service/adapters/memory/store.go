package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"shepherd/contexts/insights/insight-service/domain/entities"
)

// Store holds member snapshots for insight reads.
type Store struct {
	mu sync.RWMutex

	snapshots []entities.MemberSnapshot

	nowFunc func() time.Time
}

func NewStore(seed []entities.MemberSnapshot) *Store {
	return &Store{snapshots: append([]entities.MemberSnapshot(nil), seed...)}
}

func (s *Store) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nowFunc = func() time.Time { return now }
}

// AddSnapshot seeds one projection row.
func (s *Store) AddSnapshot(snapshot entities.MemberSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots = append(s.snapshots, snapshot)
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
	return len(s.snapshots), nil
}

func (s *Store) CountMobileUsers(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, snapshot := range s.snapshots {
		if snapshot.Source == "Mobile" {
			count++
		}
	}
	return count, nil
}

func (s *Store) CountCompletedProfiles(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, snapshot := range s.snapshots {
		if snapshot.ProfileCompleted {
			count++
		}
	}
	return count, nil
}

func (s *Store) ListMemberSnapshots(_ context.Context) ([]entities.MemberSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.MemberSnapshot(nil), s.snapshots...), nil
}

func (s *Store) ListMemberSnapshotsByAddress(_ context.Context, term string) ([]entities.MemberSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	needle := strings.ToLower(term)
	out := make([]entities.MemberSnapshot, 0)
	for _, snapshot := range s.snapshots {
		if strings.Contains(strings.ToLower(snapshot.Address), needle) {
			out = append(out, snapshot)
		}
	}
	return out, nil
}

func (s *Store) MonthlyRegistrations(_ context.Context, months int) ([]entities.MonthlyCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cutoff := s.nowUnlocked().AddDate(0, -months, 0)
	counts := map[string]int{}
	for _, snapshot := range s.snapshots {
		if snapshot.CreatedAt.Before(cutoff) {
			continue
		}
		counts[snapshot.CreatedAt.Format("2006-01")]++
	}
	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	out := make([]entities.MonthlyCount, 0, len(keys))
	for _, key := range keys {
		out = append(out, entities.MonthlyCount{Month: key, Count: counts[key]})
	}
	return out, nil
}

func (s *Store) nowUnlocked() time.Time {
	if s.nowFunc != nil {
		return s.nowFunc()
	}
	return time.Now().UTC()
}

// StaticGenerator is a deterministic ports.TextGenerator for tests and
// offline mode: it echoes a digest of the prompt instead of calling out.
type StaticGenerator struct {
	Response string
	Err      error

	mu      sync.Mutex
	prompts []string
}

func (g *StaticGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	g.prompts = append(g.prompts, prompt)
	g.mu.Unlock()
	if g.Err != nil {
		return "", g.Err
	}
	if g.Response != "" {
		return g.Response, nil
	}
	return fmt.Sprintf("Generated insight (%d prompt bytes)", len(prompt)), nil
}

// Prompts returns every prompt seen, in order.
func (g *StaticGenerator) Prompts() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.prompts...)
}
