package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type StatsDTO struct {
	TotalMembers        int     `json:"total_members"`
	MobileUsers         int     `json:"mobile_users"`
	NewMembersThisMonth int     `json:"new_members_this_month"`
	AttendanceRate      int     `json:"attendance_rate"`
	MemberGrowth        float64 `json:"member_growth"`
	MobileGrowth        float64 `json:"mobile_growth"`
}

type ActivityDTO struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Time        string `json:"time"`
	Icon        string `json:"icon"`
}

type DashboardResponse struct {
	Stats            StatsDTO      `json:"stats"`
	RecentActivities []ActivityDTO `json:"recent_activities"`
}
