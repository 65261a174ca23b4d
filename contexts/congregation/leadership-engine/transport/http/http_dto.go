package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateRoleRequest struct {
	Name              string `json:"name"`
	Description       string `json:"description,omitempty"`
	MaxAllowed        *int   `json:"max_allowed,omitempty"`
	MinAge            *int   `json:"min_age,omitempty"`
	MaxAge            *int   `json:"max_age,omitempty"`
	GenderRequirement string `json:"gender_requirement,omitempty"`
}

type UpdateRoleRequest struct {
	Name              string `json:"name"`
	Description       string `json:"description,omitempty"`
	MaxAllowed        *int   `json:"max_allowed,omitempty"`
	MinAge            *int   `json:"min_age,omitempty"`
	MaxAge            *int   `json:"max_age,omitempty"`
	GenderRequirement string `json:"gender_requirement,omitempty"`
}

type RoleResponse struct {
	RoleID            string    `json:"role_id"`
	Name              string    `json:"name"`
	Description       string    `json:"description,omitempty"`
	MaxAllowed        *int      `json:"max_allowed,omitempty"`
	MinAge            *int      `json:"min_age,omitempty"`
	MaxAge            *int      `json:"max_age,omitempty"`
	GenderRequirement string    `json:"gender_requirement"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type RoleListResponse struct {
	Items []RoleResponse `json:"items"`
}

// StatusResponse is the {success, message} envelope mutation endpoints
// return; RoleID/AssignmentID carry the created identifier when relevant.
type StatusResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	RoleID       string `json:"role_id,omitempty"`
	AssignmentID string `json:"assignment_id,omitempty"`
}

type AssignRoleRequest struct {
	RoleID     string `json:"role_id"`
	MemberID   string `json:"member_id"`
	AssignedBy string `json:"assigned_by,omitempty"`
}

type EligibleMemberResponse struct {
	MemberID    string `json:"member_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Gender      string `json:"gender"`
	DateOfBirth string `json:"dob"`
	Age         int    `json:"age"`
	Address     string `json:"address,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

type EligibleMembersResponse struct {
	RoleID string                   `json:"role_id"`
	Items  []EligibleMemberResponse `json:"items"`
}

type AssignmentItem struct {
	AssignmentID string    `json:"assignment_id"`
	MemberID     string    `json:"member_id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Gender       string    `json:"gender"`
	Age          int       `json:"age"`
	AssignedAt   time.Time `json:"assigned_at"`
	AssignedBy   string    `json:"assigned_by,omitempty"`
}

type RoleLeadershipItem struct {
	RoleID      string           `json:"role_id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	MaxAllowed  *int             `json:"max_allowed,omitempty"`
	Assignments []AssignmentItem `json:"assignments"`
}

type CurrentLeadershipResponse struct {
	Items []RoleLeadershipItem `json:"items"`
}

type LeadershipStatItem struct {
	RoleName     string `json:"role_name"`
	MaxAllowed   *int   `json:"max_allowed,omitempty"`
	CurrentCount int    `json:"current_count"`
}

type LeadershipStatsResponse struct {
	Items []LeadershipStatItem `json:"items"`
}
