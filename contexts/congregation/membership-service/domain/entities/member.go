package entities

import "time"

const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

const (
	SourceMobile = "Mobile"
	SourceWeb    = "Web"
)

type Member struct {
	MemberID         string
	FirstName        string
	LastName         string
	Gender           string
	DateOfBirth      time.Time
	Address          string
	PhoneNumber      string
	ProfileCompleted bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// MobileUser links a directory member to the mobile app. Rows are written
// by the mobile onboarding flow; the admin backend only reads them to tag
// each member's registration source.
type MobileUser struct {
	MemberID    string
	PhoneNumber string
	Verified    bool
	CreatedAt   time.Time
}

// MemberRecord is a member joined with mobile-user data for listings.
type MemberRecord struct {
	Member      Member
	Source      string
	MobilePhone string
	Verified    bool
}

func ValidGender(gender string) bool {
	switch gender {
	case GenderMale, GenderFemale, GenderOther:
		return true
	default:
		return false
	}
}
