package entities

import "time"

// Stats is the dashboard headline block. AttendanceRate is a fixed
// placeholder until attendance is actually captured.
type Stats struct {
	TotalMembers        int
	MobileUsers         int
	NewMembersThisMonth int
	AttendanceRate      int
	MemberGrowth        float64
	MobileGrowth        float64
}

type Activity struct {
	Type        string
	Title       string
	Description string
	Time        string
	Icon        string
}

// Registration is a member-directory projection row used for the
// activity feed and growth figures.
type Registration struct {
	FirstName string
	LastName  string
	Source    string
	CreatedAt time.Time
}
