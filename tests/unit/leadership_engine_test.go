package unit

import (
	"context"
	"errors"
	"testing"
	"time"

	leadershipengine "shepherd/contexts/congregation/leadership-engine"
	"shepherd/contexts/congregation/leadership-engine/domain/entities"
	domainerrors "shepherd/contexts/congregation/leadership-engine/domain/errors"
	httptransport "shepherd/contexts/congregation/leadership-engine/transport/http"
)

func intPtr(v int) *int { return &v }

func seedEngineMember(module leadershipengine.Module, id, gender string, birthYear int) {
	module.Store.SetMemberProfile(entities.MemberProfile{
		MemberID:    id,
		FirstName:   "Member",
		LastName:    id,
		Gender:      gender,
		DateOfBirth: time.Date(birthYear, 1, 1, 0, 0, 0, 0, time.UTC),
	})
}

func TestLeadershipRoleLifecycle(t *testing.T) {
	module := leadershipengine.NewInMemoryModule(nil, nil)
	ctx := context.Background()

	created, err := module.Handler.CreateRoleHandler(ctx, httptransport.CreateRoleRequest{
		Name:              "Head Usher",
		Description:       "Coordinates the ushering team",
		MaxAllowed:        intPtr(2),
		MinAge:            intPtr(25),
		GenderRequirement: "any",
	})
	if err != nil {
		t.Fatalf("create role failed: %v", err)
	}
	if !created.Success || created.RoleID == "" {
		t.Fatalf("unexpected create response %+v", created)
	}

	_, err = module.Handler.CreateRoleHandler(ctx, httptransport.CreateRoleRequest{Name: "Head Usher"})
	if !errors.Is(err, domainerrors.ErrDuplicateRoleName) {
		t.Fatalf("expected duplicate-name rejection, got %v", err)
	}

	if _, err := module.Handler.UpdateRoleHandler(ctx, created.RoleID, httptransport.UpdateRoleRequest{
		Name:   "Head Usher",
		MinAge: intPtr(30),
	}); err != nil {
		t.Fatalf("update role failed: %v", err)
	}

	roles, err := module.Handler.ListRolesHandler(ctx)
	if err != nil {
		t.Fatalf("list roles failed: %v", err)
	}
	if len(roles.Items) != 1 || roles.Items[0].MinAge == nil || *roles.Items[0].MinAge != 30 {
		t.Fatalf("unexpected role list %+v", roles.Items)
	}
	if roles.Items[0].MaxAllowed != nil {
		t.Fatalf("update replaces the whole policy; got max allowed %v", *roles.Items[0].MaxAllowed)
	}

	if _, err := module.Handler.DeleteRoleHandler(ctx, created.RoleID); err != nil {
		t.Fatalf("delete role failed: %v", err)
	}
	if _, err := module.Handler.DeleteRoleHandler(ctx, created.RoleID); !errors.Is(err, domainerrors.ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
}

func TestLeadershipAssignmentFlow(t *testing.T) {
	module := leadershipengine.NewInMemoryModule(nil, nil)
	module.Store.SetNow(time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	role, err := module.Handler.CreateRoleHandler(ctx, httptransport.CreateRoleRequest{
		Name:              "Elder",
		MinAge:            intPtr(40),
		GenderRequirement: "male",
		MaxAllowed:        intPtr(1),
	})
	if err != nil {
		t.Fatalf("create role failed: %v", err)
	}

	seedEngineMember(module, "m-young", "male", 2000)
	seedEngineMember(module, "m-female", "female", 1970)
	seedEngineMember(module, "m-fit", "male", 1975)
	seedEngineMember(module, "m-second", "male", 1980)

	_, err = module.Handler.AssignRoleHandler(ctx, httptransport.AssignRoleRequest{
		RoleID: role.RoleID, MemberID: "m-young", AssignedBy: "admin",
	})
	var eligErr *domainerrors.EligibilityError
	if !errors.As(err, &eligErr) || !errors.Is(err, domainerrors.ErrTooYoung) {
		t.Fatalf("expected too-young refusal, got %v", err)
	}

	_, err = module.Handler.AssignRoleHandler(ctx, httptransport.AssignRoleRequest{
		RoleID: role.RoleID, MemberID: "m-female", AssignedBy: "admin",
	})
	if !errors.Is(err, domainerrors.ErrGenderMismatch) {
		t.Fatalf("expected gender refusal, got %v", err)
	}

	assigned, err := module.Handler.AssignRoleHandler(ctx, httptransport.AssignRoleRequest{
		RoleID: role.RoleID, MemberID: "m-fit", AssignedBy: "admin",
	})
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if assigned.AssignmentID == "" {
		t.Fatal("expected assignment id")
	}

	_, err = module.Handler.AssignRoleHandler(ctx, httptransport.AssignRoleRequest{
		RoleID: role.RoleID, MemberID: "m-second", AssignedBy: "admin",
	})
	if !errors.Is(err, domainerrors.ErrRoleFull) {
		t.Fatalf("expected capacity refusal, got %v", err)
	}

	leadership, err := module.Handler.CurrentLeadershipHandler(ctx)
	if err != nil {
		t.Fatalf("current leadership failed: %v", err)
	}
	if len(leadership.Items) != 1 || len(leadership.Items[0].Assignments) != 1 {
		t.Fatalf("unexpected leadership %+v", leadership.Items)
	}
	if leadership.Items[0].Assignments[0].MemberID != "m-fit" {
		t.Fatalf("unexpected holder %+v", leadership.Items[0].Assignments[0])
	}

	if _, err := module.Handler.RemoveAssignmentHandler(ctx, assigned.AssignmentID); err != nil {
		t.Fatalf("remove assignment failed: %v", err)
	}
	stats, err := module.Handler.LeadershipStatsHandler(ctx)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if len(stats.Items) != 1 || stats.Items[0].CurrentCount != 0 {
		t.Fatalf("unexpected stats %+v", stats.Items)
	}
}

func TestLeadershipEligibleMembersBench(t *testing.T) {
	module := leadershipengine.NewInMemoryModule(nil, nil)
	module.Store.SetNow(time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	role, err := module.Handler.CreateRoleHandler(ctx, httptransport.CreateRoleRequest{
		Name:              "Deaconess",
		MinAge:            intPtr(30),
		MaxAllowed:        intPtr(1),
		GenderRequirement: "female",
	})
	if err != nil {
		t.Fatalf("create role failed: %v", err)
	}

	seedEngineMember(module, "w-1", "female", 1980)
	seedEngineMember(module, "w-2", "female", 1985)
	seedEngineMember(module, "m-1", "male", 1980)

	if _, err := module.Handler.AssignRoleHandler(ctx, httptransport.AssignRoleRequest{
		RoleID: role.RoleID, MemberID: "w-1", AssignedBy: "admin",
	}); err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	// The role is now full; the bench still lists the remaining
	// rule-satisfying member.
	bench, err := module.Handler.EligibleMembersHandler(ctx, role.RoleID)
	if err != nil {
		t.Fatalf("eligible members failed: %v", err)
	}
	if len(bench.Items) != 1 || bench.Items[0].MemberID != "w-2" {
		t.Fatalf("unexpected bench %+v", bench.Items)
	}

	// Deleting a role with holders is refused until they are removed.
	if _, err := module.Handler.DeleteRoleHandler(ctx, role.RoleID); !errors.Is(err, domainerrors.ErrRoleHasAssignments) {
		t.Fatalf("expected ErrRoleHasAssignments, got %v", err)
	}
}
