package services

import (
	"errors"
	"testing"
	"time"

	"shepherd/contexts/congregation/leadership-engine/domain/entities"
	domainerrors "shepherd/contexts/congregation/leadership-engine/domain/errors"
)

func intPtr(v int) *int { return &v }

var evalNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func memberBornOn(dob time.Time, gender string) entities.MemberProfile {
	return entities.MemberProfile{
		MemberID:    "member-1",
		FirstName:   "Ama",
		LastName:    "Mensah",
		Gender:      gender,
		DateOfBirth: dob,
	}
}

func TestEvaluateEligibilityPassesUnconstrainedRole(t *testing.T) {
	policy := entities.EligibilityPolicy{GenderRequirement: entities.GenderAny}
	member := memberBornOn(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), "female")

	decision := EvaluateEligibility(policy, member, false, 0, evalNow)
	if !decision.Eligible {
		t.Fatalf("expected eligible, got reason %v", decision.Reason)
	}
	if decision.Message != "Assignment is valid" {
		t.Fatalf("unexpected message %q", decision.Message)
	}
}

func TestEvaluateEligibilityMinAgeBoundary(t *testing.T) {
	policy := entities.EligibilityPolicy{
		MinAge:            intPtr(30),
		GenderRequirement: entities.GenderAny,
	}

	// Turns 30 exactly on the evaluation date.
	exactly := memberBornOn(time.Date(1995, 6, 15, 0, 0, 0, 0, time.UTC), "male")
	if decision := EvaluateEligibility(policy, exactly, false, 0, evalNow); !decision.Eligible {
		t.Fatalf("member turning 30 today should be eligible, got %v", decision.Reason)
	}

	// Turns 30 the next day: still 29, whole years truncate.
	dayShort := memberBornOn(time.Date(1995, 6, 16, 0, 0, 0, 0, time.UTC), "male")
	decision := EvaluateEligibility(policy, dayShort, false, 0, evalNow)
	if decision.Eligible {
		t.Fatal("member one day short of 30 should be ineligible")
	}
	if !errors.Is(decision.Reason, domainerrors.ErrTooYoung) {
		t.Fatalf("expected ErrTooYoung, got %v", decision.Reason)
	}
	if decision.Message != "Member must be at least 30 years old" {
		t.Fatalf("unexpected message %q", decision.Message)
	}
}

func TestEvaluateEligibilityMaxAgeBoundary(t *testing.T) {
	policy := entities.EligibilityPolicy{
		MaxAge:            intPtr(40),
		GenderRequirement: entities.GenderAny,
	}

	// Exactly 40 is still within the bound.
	exactly := memberBornOn(time.Date(1985, 6, 15, 0, 0, 0, 0, time.UTC), "female")
	if decision := EvaluateEligibility(policy, exactly, false, 0, evalNow); !decision.Eligible {
		t.Fatalf("member aged exactly 40 should be eligible, got %v", decision.Reason)
	}

	over := memberBornOn(time.Date(1984, 6, 14, 0, 0, 0, 0, time.UTC), "female")
	decision := EvaluateEligibility(policy, over, false, 0, evalNow)
	if !errors.Is(decision.Reason, domainerrors.ErrTooOld) {
		t.Fatalf("expected ErrTooOld, got %v", decision.Reason)
	}
	if decision.Message != "Member must be at most 40 years old" {
		t.Fatalf("unexpected message %q", decision.Message)
	}
}

func TestEvaluateEligibilityGenderMismatch(t *testing.T) {
	policy := entities.EligibilityPolicy{GenderRequirement: entities.GenderMale}
	member := memberBornOn(time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), "female")

	decision := EvaluateEligibility(policy, member, false, 0, evalNow)
	if !errors.Is(decision.Reason, domainerrors.ErrGenderMismatch) {
		t.Fatalf("expected ErrGenderMismatch, got %v", decision.Reason)
	}
	if decision.Message != "This role requires a male" {
		t.Fatalf("unexpected message %q", decision.Message)
	}
}

func TestEvaluateEligibilityAlreadyAssignedBeforeCapacity(t *testing.T) {
	// A member already holding a full role must be refused as duplicate,
	// not as capacity.
	policy := entities.EligibilityPolicy{
		GenderRequirement: entities.GenderAny,
		MaxAllowed:        intPtr(1),
	}
	member := memberBornOn(time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), "male")

	decision := EvaluateEligibility(policy, member, true, 1, evalNow)
	if !errors.Is(decision.Reason, domainerrors.ErrAlreadyAssigned) {
		t.Fatalf("expected ErrAlreadyAssigned, got %v", decision.Reason)
	}
	if decision.Message != "Member is already assigned to this role" {
		t.Fatalf("unexpected message %q", decision.Message)
	}
}

func TestEvaluateEligibilityRoleFull(t *testing.T) {
	policy := entities.EligibilityPolicy{
		GenderRequirement: entities.GenderAny,
		MaxAllowed:        intPtr(3),
	}
	member := memberBornOn(time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), "male")

	decision := EvaluateEligibility(policy, member, false, 3, evalNow)
	if !errors.Is(decision.Reason, domainerrors.ErrRoleFull) {
		t.Fatalf("expected ErrRoleFull, got %v", decision.Reason)
	}
	if decision.Message != "Maximum of 3 members allowed for this role" {
		t.Fatalf("unexpected message %q", decision.Message)
	}
}

func TestEvaluateEligibilityAgeCheckedBeforeGender(t *testing.T) {
	policy := entities.EligibilityPolicy{
		MinAge:            intPtr(18),
		GenderRequirement: entities.GenderMale,
	}
	// Fails both rules; the age refusal must win.
	member := memberBornOn(time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC), "female")

	decision := EvaluateEligibility(policy, member, false, 0, evalNow)
	if !errors.Is(decision.Reason, domainerrors.ErrTooYoung) {
		t.Fatalf("expected age refusal first, got %v", decision.Reason)
	}
}

func TestMeetsProfileRulesIgnoresCapacity(t *testing.T) {
	policy := entities.EligibilityPolicy{
		GenderRequirement: entities.GenderAny,
		MaxAllowed:        intPtr(1),
	}
	member := memberBornOn(time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), "male")

	if !MeetsProfileRules(policy, member, evalNow) {
		t.Fatal("profile rules must not consider capacity")
	}
}
