package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"shepherd/contexts/congregation/membership-service/domain/entities"
	domainerrors "shepherd/contexts/congregation/membership-service/domain/errors"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	members map[string]entities.Member
	mobile  map[string]entities.MobileUser

	nowFunc func() time.Time
}

func NewStore(seed []entities.Member) *Store {
	members := make(map[string]entities.Member, len(seed))
	for _, member := range seed {
		members[member.MemberID] = member
	}
	return &Store{
		members: members,
		mobile:  make(map[string]entities.MobileUser),
	}
}

func (s *Store) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nowFunc = func() time.Time { return now }
}

// SetMobileUser seeds a mobile-app registration for a member.
func (s *Store) SetMobileUser(user entities.MobileUser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mobile[user.MemberID] = user
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

func (s *Store) CreateMember(_ context.Context, member entities.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[member.MemberID] = member
	return nil
}

func (s *Store) GetMember(_ context.Context, memberID string) (entities.MemberRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	member, ok := s.members[memberID]
	if !ok {
		return entities.MemberRecord{}, domainerrors.ErrMemberNotFound
	}
	return s.record(member), nil
}

func (s *Store) UpdateMember(_ context.Context, member entities.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[member.MemberID]; !ok {
		return domainerrors.ErrMemberNotFound
	}
	s.members[member.MemberID] = member
	return nil
}

func (s *Store) DeleteMember(_ context.Context, memberID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[memberID]; !ok {
		return domainerrors.ErrMemberNotFound
	}
	delete(s.members, memberID)
	return nil
}

func (s *Store) ListMembers(_ context.Context) ([]entities.MemberRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(entities.Member) bool { return true }), nil
}

func (s *Store) ListMembersBySource(_ context.Context, source string) ([]entities.MemberRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(member entities.Member) bool {
		_, isMobile := s.mobile[member.MemberID]
		if source == entities.SourceMobile {
			return isMobile
		}
		return !isMobile
	}), nil
}

func (s *Store) SearchMembersByName(_ context.Context, term string) ([]entities.MemberRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	needle := strings.ToLower(term)
	return s.collect(func(member entities.Member) bool {
		return strings.Contains(strings.ToLower(member.FirstName), needle) ||
			strings.Contains(strings.ToLower(member.LastName), needle)
	}), nil
}

func (s *Store) SearchMembersByAddress(_ context.Context, term string) ([]entities.MemberRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	needle := strings.ToLower(term)
	return s.collect(func(member entities.Member) bool {
		return strings.Contains(strings.ToLower(member.Address), needle)
	}), nil
}

func (s *Store) RecentRegistrations(_ context.Context, limit int) ([]entities.MemberRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := s.collect(func(entities.Member) bool { return true })
	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (s *Store) CountMembers(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.members), nil
}

func (s *Store) CountMobileUsers(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.mobile), nil
}

// collect assumes the read lock is held; records come back newest first,
// matching the postgres adapter's ordering.
func (s *Store) collect(keep func(entities.Member) bool) []entities.MemberRecord {
	out := make([]entities.MemberRecord, 0, len(s.members))
	for _, member := range s.members {
		if keep(member) {
			out = append(out, s.record(member))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Member.CreatedAt.Equal(out[j].Member.CreatedAt) {
			return out[i].Member.MemberID < out[j].Member.MemberID
		}
		return out[i].Member.CreatedAt.After(out[j].Member.CreatedAt)
	})
	return out
}

func (s *Store) record(member entities.Member) entities.MemberRecord {
	record := entities.MemberRecord{Member: member, Source: entities.SourceWeb}
	if mobile, ok := s.mobile[member.MemberID]; ok {
		record.Source = entities.SourceMobile
		record.MobilePhone = mobile.PhoneNumber
		record.Verified = mobile.Verified
	}
	return record
}
