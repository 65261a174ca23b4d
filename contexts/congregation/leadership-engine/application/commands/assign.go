package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	application "shepherd/contexts/congregation/leadership-engine/application"
	"shepherd/contexts/congregation/leadership-engine/domain/entities"
	domainerrors "shepherd/contexts/congregation/leadership-engine/domain/errors"
	"shepherd/contexts/congregation/leadership-engine/domain/services"
	"shepherd/contexts/congregation/leadership-engine/ports"
)

type AssignRoleCommand struct {
	RoleID     string
	MemberID   string
	AssignedBy string
}

// AssignmentUseCase is the only writer of the assignment ledger. A
// (role, member) pair is either Unassigned or Assigned: Assign is the sole
// transition in, Remove the sole transition out.
type AssignmentUseCase struct {
	Roles   ports.RoleRepository
	Members ports.MemberDirectory
	Ledger  ports.AssignmentLedger
	Clock   ports.Clock
	IDGen   ports.IDGenerator
	Logger  *slog.Logger
}

// Evaluate runs the eligibility rules against current ledger state without
// writing anything.
func (uc AssignmentUseCase) Evaluate(ctx context.Context, roleID string, memberID string) (services.Decision, error) {
	role, err := uc.Roles.GetRole(ctx, strings.TrimSpace(roleID))
	if err != nil {
		return services.Decision{}, err
	}
	member, err := uc.Members.GetMemberProfile(ctx, strings.TrimSpace(memberID))
	if err != nil {
		return services.Decision{}, err
	}
	assigned, err := uc.Ledger.HasAssignment(ctx, role.RoleID, member.MemberID)
	if err != nil {
		return services.Decision{}, err
	}
	count, err := uc.Ledger.CountAssignments(ctx, role.RoleID)
	if err != nil {
		return services.Decision{}, err
	}
	return services.EvaluateEligibility(role.Policy, member, assigned, count, uc.Clock.Now().UTC()), nil
}

// Assign validates eligibility and inserts one ledger row. The evaluation
// here produces the human-readable refusal; the ledger re-checks the
// duplicate and capacity rules atomically with the insert, so a losing
// racer still comes back as AlreadyAssigned or RoleFull rather than an
// invariant violation.
func (uc AssignmentUseCase) Assign(ctx context.Context, cmd AssignRoleCommand) (entities.Assignment, error) {
	logger := application.ResolveLogger(uc.Logger)

	role, err := uc.Roles.GetRole(ctx, strings.TrimSpace(cmd.RoleID))
	if err != nil {
		return entities.Assignment{}, err
	}
	decision, err := uc.Evaluate(ctx, role.RoleID, strings.TrimSpace(cmd.MemberID))
	if err != nil {
		return entities.Assignment{}, err
	}
	if !decision.Eligible {
		logger.Info("role assignment refused",
			"event", "leadership_assign_refused",
			"module", "congregation/leadership-engine",
			"layer", "application",
			"role_id", role.RoleID,
			"member_id", strings.TrimSpace(cmd.MemberID),
			"reason", decision.Reason.Error(),
		)
		return entities.Assignment{}, &domainerrors.EligibilityError{
			Reason:  decision.Reason,
			Message: decision.Message,
		}
	}

	assignmentID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Assignment{}, err
	}
	assignment := entities.Assignment{
		AssignmentID: assignmentID,
		RoleID:       role.RoleID,
		MemberID:     strings.TrimSpace(cmd.MemberID),
		AssignedBy:   strings.TrimSpace(cmd.AssignedBy),
		AssignedAt:   uc.Clock.Now().UTC(),
	}
	if err := uc.Ledger.CreateAssignment(ctx, assignment, role.Policy.MaxAllowed); err != nil {
		return entities.Assignment{}, uc.mapLedgerConflict(err, role)
	}

	logger.Info("role assigned",
		"event", "leadership_role_assigned",
		"module", "congregation/leadership-engine",
		"layer", "application",
		"assignment_id", assignment.AssignmentID,
		"role_id", assignment.RoleID,
		"member_id", assignment.MemberID,
	)
	return assignment, nil
}

func (uc AssignmentUseCase) Remove(ctx context.Context, assignmentID string) error {
	logger := application.ResolveLogger(uc.Logger)
	assignmentID = strings.TrimSpace(assignmentID)

	if err := uc.Ledger.DeleteAssignment(ctx, assignmentID); err != nil {
		return err
	}
	logger.Info("role assignment removed",
		"event", "leadership_role_removed",
		"module", "congregation/leadership-engine",
		"layer", "application",
		"assignment_id", assignmentID,
	)
	return nil
}

// mapLedgerConflict dresses race-path refusals from the ledger in the same
// display messages the eligibility evaluation would have produced.
func (uc AssignmentUseCase) mapLedgerConflict(err error, role entities.Role) error {
	switch {
	case errors.Is(err, domainerrors.ErrAlreadyAssigned):
		return &domainerrors.EligibilityError{
			Reason:  domainerrors.ErrAlreadyAssigned,
			Message: "Member is already assigned to this role",
		}
	case errors.Is(err, domainerrors.ErrRoleFull) && role.Policy.MaxAllowed != nil:
		return &domainerrors.EligibilityError{
			Reason:  domainerrors.ErrRoleFull,
			Message: services.CapacityMessage(*role.Policy.MaxAllowed),
		}
	default:
		return err
	}
}
