// Package membershipservice owns the member directory inside the
// congregation context: member CRUD, name and address search, registration
// source tagging via mobile-user records, and bulk CSV import.
package membershipservice
