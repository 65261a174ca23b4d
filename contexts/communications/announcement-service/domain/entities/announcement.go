package entities

import "time"

type Announcement struct {
	AnnouncementID string
	Title          string
	Content        string
	ExpiryDate     time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ActiveAt reports whether the announcement should still be shown; an
// announcement expires at the end of its expiry instant, not before.
func (a Announcement) ActiveAt(now time.Time) bool {
	return a.ExpiryDate.After(now)
}
