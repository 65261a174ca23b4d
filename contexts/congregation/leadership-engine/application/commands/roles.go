package commands

import (
	"context"
	"log/slog"
	"strings"

	application "shepherd/contexts/congregation/leadership-engine/application"
	"shepherd/contexts/congregation/leadership-engine/domain/entities"
	domainerrors "shepherd/contexts/congregation/leadership-engine/domain/errors"
	"shepherd/contexts/congregation/leadership-engine/ports"
)

// CreateRoleCommand is the write-model input for role definition.
// Nil optional fields mean "unconstrained"; an empty gender requirement
// defaults to any.
type CreateRoleCommand struct {
	Name              string
	Description       string
	MaxAllowed        *int
	MinAge            *int
	MaxAge            *int
	GenderRequirement string
}

type UpdateRoleCommand struct {
	RoleID            string
	Name              string
	Description       string
	MaxAllowed        *int
	MinAge            *int
	MaxAge            *int
	GenderRequirement string
}

// RoleAdminUseCase owns the role catalog lifecycle. Updating a role does
// not re-validate existing assignments against the new constraints:
// tightened policies only gate future assignments (grandfathering).
type RoleAdminUseCase struct {
	Roles  ports.RoleRepository
	Ledger ports.AssignmentLedger
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (uc RoleAdminUseCase) CreateRole(ctx context.Context, cmd CreateRoleCommand) (entities.Role, error) {
	logger := application.ResolveLogger(uc.Logger)
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return entities.Role{}, domainerrors.ErrInvalidRoleInput
	}

	policy, err := buildPolicy(cmd.MaxAllowed, cmd.MinAge, cmd.MaxAge, cmd.GenderRequirement)
	if err != nil {
		logger.Warn("role create validation failed",
			"event", "leadership_role_create_validation_failed",
			"module", "congregation/leadership-engine",
			"layer", "application",
			"role_name", name,
			"error", err.Error(),
		)
		return entities.Role{}, err
	}

	if _, exists, err := uc.Roles.GetRoleByName(ctx, name); err != nil {
		return entities.Role{}, err
	} else if exists {
		return entities.Role{}, domainerrors.ErrDuplicateRoleName
	}

	roleID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Role{}, err
	}

	now := uc.Clock.Now().UTC()
	role := entities.Role{
		RoleID:      roleID,
		Name:        name,
		Description: strings.TrimSpace(cmd.Description),
		Policy:      policy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.Roles.CreateRole(ctx, role); err != nil {
		return entities.Role{}, err
	}

	logger.Info("role created",
		"event", "leadership_role_created",
		"module", "congregation/leadership-engine",
		"layer", "application",
		"role_id", role.RoleID,
		"role_name", role.Name,
	)
	return role, nil
}

func (uc RoleAdminUseCase) UpdateRole(ctx context.Context, cmd UpdateRoleCommand) (entities.Role, error) {
	logger := application.ResolveLogger(uc.Logger)
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return entities.Role{}, domainerrors.ErrInvalidRoleInput
	}

	role, err := uc.Roles.GetRole(ctx, strings.TrimSpace(cmd.RoleID))
	if err != nil {
		return entities.Role{}, err
	}

	policy, err := buildPolicy(cmd.MaxAllowed, cmd.MinAge, cmd.MaxAge, cmd.GenderRequirement)
	if err != nil {
		return entities.Role{}, err
	}

	// Name uniqueness is re-checked excluding the role itself.
	if other, exists, err := uc.Roles.GetRoleByName(ctx, name); err != nil {
		return entities.Role{}, err
	} else if exists && other.RoleID != role.RoleID {
		return entities.Role{}, domainerrors.ErrDuplicateRoleName
	}

	role.Name = name
	role.Description = strings.TrimSpace(cmd.Description)
	role.Policy = policy
	role.UpdatedAt = uc.Clock.Now().UTC()
	if err := uc.Roles.UpdateRole(ctx, role); err != nil {
		return entities.Role{}, err
	}

	logger.Info("role updated",
		"event", "leadership_role_updated",
		"module", "congregation/leadership-engine",
		"layer", "application",
		"role_id", role.RoleID,
		"role_name", role.Name,
	)
	return role, nil
}

func (uc RoleAdminUseCase) DeleteRole(ctx context.Context, roleID string) error {
	logger := application.ResolveLogger(uc.Logger)
	roleID = strings.TrimSpace(roleID)

	if _, err := uc.Roles.GetRole(ctx, roleID); err != nil {
		return err
	}
	count, err := uc.Ledger.CountAssignments(ctx, roleID)
	if err != nil {
		return err
	}
	if count > 0 {
		return domainerrors.ErrRoleHasAssignments
	}
	if err := uc.Roles.DeleteRole(ctx, roleID); err != nil {
		return err
	}

	logger.Info("role deleted",
		"event", "leadership_role_deleted",
		"module", "congregation/leadership-engine",
		"layer", "application",
		"role_id", roleID,
	)
	return nil
}

func buildPolicy(maxAllowed, minAge, maxAge *int, genderRequirement string) (entities.EligibilityPolicy, error) {
	requirement := entities.GenderRequirement(strings.ToLower(strings.TrimSpace(genderRequirement)))
	if requirement == "" {
		requirement = entities.GenderAny
	}
	policy := entities.EligibilityPolicy{
		MinAge:            minAge,
		MaxAge:            maxAge,
		GenderRequirement: requirement,
		MaxAllowed:        maxAllowed,
	}
	if err := policy.Validate(); err != nil {
		return entities.EligibilityPolicy{}, err
	}
	return policy, nil
}
