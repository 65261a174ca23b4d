package queries

import (
	"context"
	"sort"
	"strings"

	"shepherd/contexts/congregation/leadership-engine/domain/entities"
	"shepherd/contexts/congregation/leadership-engine/domain/services"
	"shepherd/contexts/congregation/leadership-engine/ports"
)

type LeadershipQueryUseCase struct {
	Roles   ports.RoleRepository
	Members ports.MemberDirectory
	Ledger  ports.AssignmentLedger
	Clock   ports.Clock
}

func (uc LeadershipQueryUseCase) GetRole(ctx context.Context, roleID string) (entities.Role, error) {
	return uc.Roles.GetRole(ctx, strings.TrimSpace(roleID))
}

func (uc LeadershipQueryUseCase) ListRoles(ctx context.Context) ([]entities.Role, error) {
	roles, err := uc.Roles.ListRoles(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i].RoleID < roles[j].RoleID })
	return roles, nil
}

// EligibleMembers lists directory members who satisfy the role's age and
// gender rules and do not already hold it. Capacity is intentionally not
// applied: a full role still shows its bench.
func (uc LeadershipQueryUseCase) EligibleMembers(ctx context.Context, roleID string) ([]entities.MemberProfile, error) {
	role, err := uc.Roles.GetRole(ctx, strings.TrimSpace(roleID))
	if err != nil {
		return nil, err
	}
	assignments, err := uc.Ledger.ListAssignmentsByRole(ctx, role.RoleID)
	if err != nil {
		return nil, err
	}
	held := make(map[string]struct{}, len(assignments))
	for _, assignment := range assignments {
		held[assignment.MemberID] = struct{}{}
	}

	profiles, err := uc.Members.ListMemberProfiles(ctx)
	if err != nil {
		return nil, err
	}
	now := uc.Clock.Now().UTC()
	eligible := make([]entities.MemberProfile, 0, len(profiles))
	for _, profile := range profiles {
		if _, taken := held[profile.MemberID]; taken {
			continue
		}
		if services.MeetsProfileRules(role.Policy, profile, now) {
			eligible = append(eligible, profile)
		}
	}
	sort.Slice(eligible, func(i, j int) bool {
		if eligible[i].FirstName == eligible[j].FirstName {
			return eligible[i].LastName < eligible[j].LastName
		}
		return eligible[i].FirstName < eligible[j].FirstName
	})
	return eligible, nil
}

// CurrentLeadership returns every role with its holders, roles ordered by
// role id and holders by assignment time.
func (uc LeadershipQueryUseCase) CurrentLeadership(ctx context.Context) ([]entities.RoleLeadership, error) {
	roles, err := uc.ListRoles(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entities.RoleLeadership, 0, len(roles))
	for _, role := range roles {
		assignments, err := uc.Ledger.ListAssignmentsByRole(ctx, role.RoleID)
		if err != nil {
			return nil, err
		}
		sort.Slice(assignments, func(i, j int) bool {
			return assignments[i].AssignedAt.Before(assignments[j].AssignedAt)
		})
		holders := make([]entities.AssignedMember, 0, len(assignments))
		for _, assignment := range assignments {
			member, err := uc.Members.GetMemberProfile(ctx, assignment.MemberID)
			if err != nil {
				return nil, err
			}
			holders = append(holders, entities.AssignedMember{
				AssignmentID: assignment.AssignmentID,
				AssignedAt:   assignment.AssignedAt,
				AssignedBy:   assignment.AssignedBy,
				Member:       member,
			})
		}
		out = append(out, entities.RoleLeadership{Role: role, Assignments: holders})
	}
	return out, nil
}

// Stats reports occupancy per role; roles with no assignments report zero.
func (uc LeadershipQueryUseCase) Stats(ctx context.Context) ([]entities.LeadershipStat, error) {
	roles, err := uc.ListRoles(ctx)
	if err != nil {
		return nil, err
	}
	stats := make([]entities.LeadershipStat, 0, len(roles))
	for _, role := range roles {
		count, err := uc.Ledger.CountAssignments(ctx, role.RoleID)
		if err != nil {
			return nil, err
		}
		stats = append(stats, entities.LeadershipStat{
			RoleID:       role.RoleID,
			RoleName:     role.Name,
			MaxAllowed:   role.Policy.MaxAllowed,
			CurrentCount: count,
		})
	}
	return stats, nil
}
