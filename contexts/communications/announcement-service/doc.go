// Package announcementservice manages congregation-wide announcements in
// the communications context: CRUD plus an active feed that filters out
// entries past their expiry date.
package announcementservice
