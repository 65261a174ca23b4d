package errors

import "errors"

var (
	ErrRoleNotFound             = errors.New("role not found")
	ErrMemberNotFound           = errors.New("member not found")
	ErrAssignmentNotFound       = errors.New("assignment not found")
	ErrInvalidRoleInput         = errors.New("role name is required")
	ErrDuplicateRoleName        = errors.New("role name already exists")
	ErrInvalidAgeRange          = errors.New("minimum age cannot exceed maximum age")
	ErrInvalidGenderRequirement = errors.New("gender requirement must be any, male, or female")
	ErrInvalidMaxAllowed        = errors.New("maximum allowed members must be a positive number")
	ErrTooYoung                 = errors.New("member is below the minimum age for this role")
	ErrTooOld                   = errors.New("member is above the maximum age for this role")
	ErrGenderMismatch           = errors.New("member does not meet the gender requirement for this role")
	ErrAlreadyAssigned          = errors.New("member is already assigned to this role")
	ErrRoleFull                 = errors.New("role has reached its maximum number of members")
	ErrRoleHasAssignments       = errors.New("cannot delete a role with existing assignments; remove all assignments first")
)

// EligibilityError pairs a rule sentinel with the exact message shown to
// the administrator, e.g. "Member must be at least 18 years old".
type EligibilityError struct {
	Reason  error
	Message string
}

func (e *EligibilityError) Error() string { return e.Message }

func (e *EligibilityError) Unwrap() error { return e.Reason }
