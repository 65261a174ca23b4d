package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateAnnouncementRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	ExpiryDate string `json:"expiry_date"`
}

type UpdateAnnouncementRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	ExpiryDate string `json:"expiry_date"`
}

type AnnouncementResponse struct {
	AnnouncementID string    `json:"announcement_id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	ExpiryDate     string    `json:"expiry_date"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type AnnouncementListResponse struct {
	Items []AnnouncementResponse `json:"items"`
}

type StatusResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	AnnouncementID string `json:"announcement_id,omitempty"`
}
