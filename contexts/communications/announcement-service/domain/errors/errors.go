package errors

import "errors"

var (
	ErrAnnouncementNotFound     = errors.New("announcement not found")
	ErrInvalidAnnouncementInput = errors.New("title, content, and expiry date are required")
	ErrInvalidExpiryDate        = errors.New("expiry date must use the YYYY-MM-DD format")
)
