package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateMemberRequest struct {
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Gender           string `json:"gender"`
	DateOfBirth      string `json:"dob"`
	Address          string `json:"address,omitempty"`
	PhoneNumber      string `json:"phone_number,omitempty"`
	ProfileCompleted bool   `json:"profile_completed,omitempty"`
}

type UpdateMemberRequest struct {
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Gender           string `json:"gender"`
	DateOfBirth      string `json:"dob"`
	Address          string `json:"address,omitempty"`
	PhoneNumber      string `json:"phone_number,omitempty"`
	ProfileCompleted bool   `json:"profile_completed,omitempty"`
}

type MemberResponse struct {
	MemberID         string    `json:"member_id"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Gender           string    `json:"gender"`
	DateOfBirth      string    `json:"dob"`
	Address          string    `json:"address,omitempty"`
	PhoneNumber      string    `json:"phone_number,omitempty"`
	ProfileCompleted bool      `json:"profile_completed"`
	Source           string    `json:"source"`
	MobilePhone      string    `json:"mobile_phone,omitempty"`
	Verified         bool      `json:"verified,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type MemberListResponse struct {
	Items []MemberResponse `json:"items"`
}

type StatusResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	MemberID string `json:"member_id,omitempty"`
}

type ImportResultResponse struct {
	Success  bool     `json:"success"`
	Imported int      `json:"imported"`
	Errors   []string `json:"errors"`
}
