package entities

import (
	"strings"
	"time"

	domainerrors "shepherd/contexts/congregation/leadership-engine/domain/errors"
)

type GenderRequirement string

const (
	GenderAny    GenderRequirement = "any"
	GenderMale   GenderRequirement = "male"
	GenderFemale GenderRequirement = "female"
)

// EligibilityPolicy is the immutable constraint set attached to a role.
// Evaluation is a pure function of (policy, member, current ledger state);
// the policy never reads storage itself.
type EligibilityPolicy struct {
	MinAge            *int
	MaxAge            *int
	GenderRequirement GenderRequirement
	MaxAllowed        *int
}

func (p EligibilityPolicy) Validate() error {
	switch p.GenderRequirement {
	case GenderAny, GenderMale, GenderFemale:
	default:
		return domainerrors.ErrInvalidGenderRequirement
	}
	if p.MinAge != nil && p.MaxAge != nil && *p.MinAge > *p.MaxAge {
		return domainerrors.ErrInvalidAgeRange
	}
	if p.MaxAllowed != nil && *p.MaxAllowed <= 0 {
		return domainerrors.ErrInvalidMaxAllowed
	}
	return nil
}

// Bounded reports whether the policy caps simultaneous assignments.
func (p EligibilityPolicy) Bounded() bool {
	return p.MaxAllowed != nil
}

type Role struct {
	RoleID      string
	Name        string
	Description string
	Policy      EligibilityPolicy
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Assignment struct {
	AssignmentID string
	RoleID       string
	MemberID     string
	AssignedBy   string
	AssignedAt   time.Time
}

// MemberProfile is the read-only projection of the member directory that
// eligibility evaluation needs.
type MemberProfile struct {
	MemberID    string
	FirstName   string
	LastName    string
	Gender      string
	DateOfBirth time.Time
	Address     string
	PhoneNumber string
}

// AgeAt returns whole years elapsed since date of birth, truncated.
func (m MemberProfile) AgeAt(now time.Time) int {
	age := now.Year() - m.DateOfBirth.Year()
	if now.Month() < m.DateOfBirth.Month() ||
		(now.Month() == m.DateOfBirth.Month() && now.Day() < m.DateOfBirth.Day()) {
		age--
	}
	return age
}

func (m MemberProfile) FullName() string {
	return strings.TrimSpace(m.FirstName + " " + m.LastName)
}

// AssignedMember is one ledger row joined with its member profile.
type AssignedMember struct {
	AssignmentID string
	AssignedAt   time.Time
	AssignedBy   string
	Member       MemberProfile
}

// RoleLeadership is a role with its current holders.
type RoleLeadership struct {
	Role        Role
	Assignments []AssignedMember
}

type LeadershipStat struct {
	RoleID       string
	RoleName     string
	MaxAllowed   *int
	CurrentCount int
}
