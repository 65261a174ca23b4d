package services

import (
	"fmt"
	"time"

	"shepherd/contexts/congregation/leadership-engine/domain/entities"
	domainerrors "shepherd/contexts/congregation/leadership-engine/domain/errors"
)

// Decision is the outcome of an eligibility evaluation. Reason is nil when
// the member is eligible; otherwise it is one of the eligibility sentinels
// and Message is suitable for direct display.
type Decision struct {
	Eligible bool
	Reason   error
	Message  string
}

// EvaluateEligibility applies the role's rules in a fixed order so failure
// messages stay deterministic: age bounds, then gender, then duplicate
// assignment, then capacity. Capacity is last because it is the most
// volatile condition and the only one re-checked inside the ledger write.
func EvaluateEligibility(
	policy entities.EligibilityPolicy,
	member entities.MemberProfile,
	alreadyAssigned bool,
	activeCount int,
	now time.Time,
) Decision {
	age := member.AgeAt(now)
	if policy.MinAge != nil && age < *policy.MinAge {
		return ineligible(domainerrors.ErrTooYoung,
			fmt.Sprintf("Member must be at least %d years old", *policy.MinAge))
	}
	if policy.MaxAge != nil && age > *policy.MaxAge {
		return ineligible(domainerrors.ErrTooOld,
			fmt.Sprintf("Member must be at most %d years old", *policy.MaxAge))
	}
	if policy.GenderRequirement != entities.GenderAny && member.Gender != string(policy.GenderRequirement) {
		return ineligible(domainerrors.ErrGenderMismatch,
			fmt.Sprintf("This role requires a %s", policy.GenderRequirement))
	}
	if alreadyAssigned {
		return ineligible(domainerrors.ErrAlreadyAssigned, "Member is already assigned to this role")
	}
	if policy.MaxAllowed != nil && activeCount >= *policy.MaxAllowed {
		return ineligible(domainerrors.ErrRoleFull, CapacityMessage(*policy.MaxAllowed))
	}
	return Decision{Eligible: true, Message: "Assignment is valid"}
}

// MeetsProfileRules applies only the member-intrinsic rules (age bounds and
// gender). It backs the eligible-member listing, which deliberately ignores
// capacity so administrators can plan future openings for a full role.
func MeetsProfileRules(policy entities.EligibilityPolicy, member entities.MemberProfile, now time.Time) bool {
	age := member.AgeAt(now)
	if policy.MinAge != nil && age < *policy.MinAge {
		return false
	}
	if policy.MaxAge != nil && age > *policy.MaxAge {
		return false
	}
	if policy.GenderRequirement != entities.GenderAny && member.Gender != string(policy.GenderRequirement) {
		return false
	}
	return true
}

// CapacityMessage is shared with the assignment command, which may hit the
// capacity rule again inside the ledger transaction.
func CapacityMessage(maxAllowed int) string {
	return fmt.Sprintf("Maximum of %d members allowed for this role", maxAllowed)
}

func ineligible(reason error, message string) Decision {
	return Decision{Reason: reason, Message: message}
}
