package ports

import (
	"context"
	"time"

	"shepherd/contexts/congregation/leadership-engine/domain/entities"
)

type RoleRepository interface {
	CreateRole(ctx context.Context, role entities.Role) error
	GetRole(ctx context.Context, roleID string) (entities.Role, error)
	GetRoleByName(ctx context.Context, name string) (entities.Role, bool, error)
	UpdateRole(ctx context.Context, role entities.Role) error
	DeleteRole(ctx context.Context, roleID string) error
	ListRoles(ctx context.Context) ([]entities.Role, error)
}

// AssignmentLedger owns the member_leadership join rows. CreateAssignment
// must re-check the duplicate and capacity rules atomically with the
// insert: the command layer's eligibility evaluation and the write are
// separate calls, and two concurrent assigns at capacity-minus-one must
// not both land.
type AssignmentLedger interface {
	CreateAssignment(ctx context.Context, assignment entities.Assignment, maxAllowed *int) error
	GetAssignment(ctx context.Context, assignmentID string) (entities.Assignment, error)
	DeleteAssignment(ctx context.Context, assignmentID string) error
	HasAssignment(ctx context.Context, roleID string, memberID string) (bool, error)
	CountAssignments(ctx context.Context, roleID string) (int, error)
	ListAssignmentsByRole(ctx context.Context, roleID string) ([]entities.Assignment, error)
}

// MemberDirectory is the read-only view of the congregation directory the
// engine evaluates against. The directory itself is owned by the
// membership service.
type MemberDirectory interface {
	GetMemberProfile(ctx context.Context, memberID string) (entities.MemberProfile, error)
	ListMemberProfiles(ctx context.Context) ([]entities.MemberProfile, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
