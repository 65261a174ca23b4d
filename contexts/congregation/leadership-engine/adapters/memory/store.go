package memory

import (
	"context"
	"sync"
	"time"

	"shepherd/contexts/congregation/leadership-engine/domain/entities"
	domainerrors "shepherd/contexts/congregation/leadership-engine/domain/errors"

	"github.com/google/uuid"
)

// Store is the in-memory adapter backing tests and local development. It
// implements every port of the engine; all rule re-checks in
// CreateAssignment happen under the store mutex, mirroring the row-locked
// transaction of the postgres adapter.
type Store struct {
	mu sync.RWMutex

	roles       map[string]entities.Role
	assignments map[string]entities.Assignment
	members     map[string]entities.MemberProfile

	nowFunc func() time.Time
}

func NewStore(seed []entities.Role) *Store {
	roles := make(map[string]entities.Role, len(seed))
	for _, role := range seed {
		roles[role.RoleID] = role
	}
	return &Store{
		roles:       roles,
		assignments: make(map[string]entities.Assignment),
		members:     make(map[string]entities.MemberProfile),
	}
}

// SetNow pins the clock, letting tests hit exact age boundaries.
func (s *Store) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nowFunc = func() time.Time { return now }
}

func (s *Store) SetMemberProfile(member entities.MemberProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[member.MemberID] = member
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

func (s *Store) CreateRole(_ context.Context, role entities.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.roles {
		if existing.Name == role.Name {
			return domainerrors.ErrDuplicateRoleName
		}
	}
	s.roles[role.RoleID] = role
	return nil
}

func (s *Store) GetRole(_ context.Context, roleID string) (entities.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	role, ok := s.roles[roleID]
	if !ok {
		return entities.Role{}, domainerrors.ErrRoleNotFound
	}
	return role, nil
}

func (s *Store) GetRoleByName(_ context.Context, name string) (entities.Role, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, role := range s.roles {
		if role.Name == name {
			return role, true, nil
		}
	}
	return entities.Role{}, false, nil
}

func (s *Store) UpdateRole(_ context.Context, role entities.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.roles[role.RoleID]; !ok {
		return domainerrors.ErrRoleNotFound
	}
	s.roles[role.RoleID] = role
	return nil
}

func (s *Store) DeleteRole(_ context.Context, roleID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.roles[roleID]; !ok {
		return domainerrors.ErrRoleNotFound
	}
	delete(s.roles, roleID)
	return nil
}

func (s *Store) ListRoles(_ context.Context) ([]entities.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.Role, 0, len(s.roles))
	for _, role := range s.roles {
		out = append(out, role)
	}
	return out, nil
}

func (s *Store) CreateAssignment(_ context.Context, assignment entities.Assignment, maxAllowed *int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.roles[assignment.RoleID]; !ok {
		return domainerrors.ErrRoleNotFound
	}
	count := 0
	for _, existing := range s.assignments {
		if existing.RoleID != assignment.RoleID {
			continue
		}
		if existing.MemberID == assignment.MemberID {
			return domainerrors.ErrAlreadyAssigned
		}
		count++
	}
	if maxAllowed != nil && count >= *maxAllowed {
		return domainerrors.ErrRoleFull
	}
	s.assignments[assignment.AssignmentID] = assignment
	return nil
}

func (s *Store) GetAssignment(_ context.Context, assignmentID string) (entities.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	assignment, ok := s.assignments[assignmentID]
	if !ok {
		return entities.Assignment{}, domainerrors.ErrAssignmentNotFound
	}
	return assignment, nil
}

func (s *Store) DeleteAssignment(_ context.Context, assignmentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.assignments[assignmentID]; !ok {
		return domainerrors.ErrAssignmentNotFound
	}
	delete(s.assignments, assignmentID)
	return nil
}

func (s *Store) HasAssignment(_ context.Context, roleID string, memberID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, assignment := range s.assignments {
		if assignment.RoleID == roleID && assignment.MemberID == memberID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) CountAssignments(_ context.Context, roleID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, assignment := range s.assignments {
		if assignment.RoleID == roleID {
			count++
		}
	}
	return count, nil
}

func (s *Store) ListAssignmentsByRole(_ context.Context, roleID string) ([]entities.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.Assignment, 0)
	for _, assignment := range s.assignments {
		if assignment.RoleID == roleID {
			out = append(out, assignment)
		}
	}
	return out, nil
}

func (s *Store) GetMemberProfile(_ context.Context, memberID string) (entities.MemberProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	member, ok := s.members[memberID]
	if !ok {
		return entities.MemberProfile{}, domainerrors.ErrMemberNotFound
	}
	return member, nil
}

func (s *Store) ListMemberProfiles(_ context.Context) ([]entities.MemberProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.MemberProfile, 0, len(s.members))
	for _, member := range s.members {
		out = append(out, member)
	}
	return out, nil
}
