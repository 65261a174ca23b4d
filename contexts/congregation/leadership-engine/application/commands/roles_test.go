package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"shepherd/contexts/congregation/leadership-engine/adapters/memory"
	"shepherd/contexts/congregation/leadership-engine/domain/entities"
	domainerrors "shepherd/contexts/congregation/leadership-engine/domain/errors"
)

func intPtr(v int) *int { return &v }

func newRoleAdmin(store *memory.Store) RoleAdminUseCase {
	return RoleAdminUseCase{
		Roles:  store,
		Ledger: store,
		Clock:  store,
		IDGen:  store,
	}
}

func TestCreateRoleDefaultsToUnconstrainedPolicy(t *testing.T) {
	store := memory.NewStore(nil)
	store.SetNow(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	uc := newRoleAdmin(store)

	role, err := uc.CreateRole(context.Background(), CreateRoleCommand{
		Name:        "  Deacon  ",
		Description: " Serves the congregation ",
	})
	if err != nil {
		t.Fatalf("create role failed: %v", err)
	}
	if role.Name != "Deacon" {
		t.Fatalf("expected trimmed name, got %q", role.Name)
	}
	if role.Description != "Serves the congregation" {
		t.Fatalf("expected trimmed description, got %q", role.Description)
	}
	if role.Policy.GenderRequirement != entities.GenderAny {
		t.Fatalf("expected gender requirement any, got %q", role.Policy.GenderRequirement)
	}
	if role.Policy.MinAge != nil || role.Policy.MaxAge != nil || role.Policy.MaxAllowed != nil {
		t.Fatal("expected unconstrained policy")
	}
	if role.RoleID == "" {
		t.Fatal("expected generated role id")
	}
	if !role.CreatedAt.Equal(role.UpdatedAt) {
		t.Fatal("expected created_at to equal updated_at on create")
	}
}

func TestCreateRoleRejectsBlankName(t *testing.T) {
	store := memory.NewStore(nil)
	uc := newRoleAdmin(store)

	_, err := uc.CreateRole(context.Background(), CreateRoleCommand{Name: "   "})
	if !errors.Is(err, domainerrors.ErrInvalidRoleInput) {
		t.Fatalf("expected ErrInvalidRoleInput, got %v", err)
	}
}

func TestCreateRoleRejectsInvalidConstraints(t *testing.T) {
	store := memory.NewStore(nil)
	uc := newRoleAdmin(store)
	ctx := context.Background()

	cases := []struct {
		name string
		cmd  CreateRoleCommand
		want error
	}{
		{
			name: "inverted age range",
			cmd:  CreateRoleCommand{Name: "Elder", MinAge: intPtr(60), MaxAge: intPtr(40)},
			want: domainerrors.ErrInvalidAgeRange,
		},
		{
			name: "unknown gender requirement",
			cmd:  CreateRoleCommand{Name: "Elder", GenderRequirement: "robot"},
			want: domainerrors.ErrInvalidGenderRequirement,
		},
		{
			name: "non-positive capacity",
			cmd:  CreateRoleCommand{Name: "Elder", MaxAllowed: intPtr(0)},
			want: domainerrors.ErrInvalidMaxAllowed,
		},
	}
	for _, tc := range cases {
		if _, err := uc.CreateRole(ctx, tc.cmd); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestCreateRoleRejectsDuplicateName(t *testing.T) {
	store := memory.NewStore(nil)
	store.SetNow(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	uc := newRoleAdmin(store)
	ctx := context.Background()

	if _, err := uc.CreateRole(ctx, CreateRoleCommand{Name: "Usher"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	_, err := uc.CreateRole(ctx, CreateRoleCommand{Name: "Usher"})
	if !errors.Is(err, domainerrors.ErrDuplicateRoleName) {
		t.Fatalf("expected ErrDuplicateRoleName, got %v", err)
	}
}

func TestUpdateRoleKeepsExistingAssignments(t *testing.T) {
	store := memory.NewStore(nil)
	store.SetNow(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	uc := newRoleAdmin(store)
	ctx := context.Background()

	role, err := uc.CreateRole(ctx, CreateRoleCommand{Name: "Choir Lead"})
	if err != nil {
		t.Fatalf("create role failed: %v", err)
	}
	assignment := entities.Assignment{
		AssignmentID: "assignment-1",
		RoleID:       role.RoleID,
		MemberID:     "member-1",
		AssignedAt:   store.Now(),
	}
	if err := store.CreateAssignment(ctx, assignment, nil); err != nil {
		t.Fatalf("seed assignment failed: %v", err)
	}

	// Tightening the policy must not disturb the existing holder.
	updated, err := uc.UpdateRole(ctx, UpdateRoleCommand{
		RoleID:            role.RoleID,
		Name:              "Choir Lead",
		MinAge:            intPtr(50),
		GenderRequirement: "female",
	})
	if err != nil {
		t.Fatalf("update role failed: %v", err)
	}
	if updated.Policy.MinAge == nil || *updated.Policy.MinAge != 50 {
		t.Fatal("expected tightened min age")
	}
	if _, err := store.GetAssignment(ctx, assignment.AssignmentID); err != nil {
		t.Fatalf("existing assignment should survive policy update: %v", err)
	}
}

func TestUpdateRoleAllowsKeepingOwnName(t *testing.T) {
	store := memory.NewStore(nil)
	store.SetNow(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	uc := newRoleAdmin(store)
	ctx := context.Background()

	role, err := uc.CreateRole(ctx, CreateRoleCommand{Name: "Treasurer"})
	if err != nil {
		t.Fatalf("create role failed: %v", err)
	}
	if _, err := uc.UpdateRole(ctx, UpdateRoleCommand{RoleID: role.RoleID, Name: "Treasurer"}); err != nil {
		t.Fatalf("update with own name failed: %v", err)
	}
}

func TestUpdateRoleRejectsNameTakenByAnotherRole(t *testing.T) {
	store := memory.NewStore(nil)
	store.SetNow(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	uc := newRoleAdmin(store)
	ctx := context.Background()

	if _, err := uc.CreateRole(ctx, CreateRoleCommand{Name: "Secretary"}); err != nil {
		t.Fatalf("create role failed: %v", err)
	}
	second, err := uc.CreateRole(ctx, CreateRoleCommand{Name: "Clerk"})
	if err != nil {
		t.Fatalf("create role failed: %v", err)
	}

	_, err = uc.UpdateRole(ctx, UpdateRoleCommand{RoleID: second.RoleID, Name: "Secretary"})
	if !errors.Is(err, domainerrors.ErrDuplicateRoleName) {
		t.Fatalf("expected ErrDuplicateRoleName, got %v", err)
	}
}

func TestUpdateRoleUnknownRole(t *testing.T) {
	store := memory.NewStore(nil)
	uc := newRoleAdmin(store)

	_, err := uc.UpdateRole(context.Background(), UpdateRoleCommand{RoleID: "missing", Name: "Anything"})
	if !errors.Is(err, domainerrors.ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
}

func TestDeleteRoleBlockedByAssignments(t *testing.T) {
	store := memory.NewStore(nil)
	store.SetNow(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	uc := newRoleAdmin(store)
	ctx := context.Background()

	role, err := uc.CreateRole(ctx, CreateRoleCommand{Name: "Greeter"})
	if err != nil {
		t.Fatalf("create role failed: %v", err)
	}
	assignment := entities.Assignment{
		AssignmentID: "assignment-1",
		RoleID:       role.RoleID,
		MemberID:     "member-1",
		AssignedAt:   store.Now(),
	}
	if err := store.CreateAssignment(ctx, assignment, nil); err != nil {
		t.Fatalf("seed assignment failed: %v", err)
	}

	if err := uc.DeleteRole(ctx, role.RoleID); !errors.Is(err, domainerrors.ErrRoleHasAssignments) {
		t.Fatalf("expected ErrRoleHasAssignments, got %v", err)
	}

	if err := store.DeleteAssignment(ctx, assignment.AssignmentID); err != nil {
		t.Fatalf("remove assignment failed: %v", err)
	}
	if err := uc.DeleteRole(ctx, role.RoleID); err != nil {
		t.Fatalf("delete of empty role failed: %v", err)
	}
	if _, err := store.GetRole(ctx, role.RoleID); !errors.Is(err, domainerrors.ErrRoleNotFound) {
		t.Fatalf("expected role to be gone, got %v", err)
	}
}
