// Package dashboardservice aggregates read-only congregation figures for
// the admin dashboard: headline counts, month-over-month growth, and a
// recent-registration activity feed.
package dashboardservice
