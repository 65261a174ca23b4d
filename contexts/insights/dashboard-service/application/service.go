package application

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"shepherd/contexts/insights/dashboard-service/domain/entities"
	"shepherd/contexts/insights/dashboard-service/ports"
)

const attendanceRatePlaceholder = 78

type Service struct {
	Repo   ports.StatsRepository
	Clock  ports.Clock
	Logger *slog.Logger
}

func (s Service) Stats(ctx context.Context) (entities.Stats, error) {
	now := s.Clock.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	prevMonthStart := monthStart.AddDate(0, -1, 0)

	total, err := s.Repo.CountMembers(ctx)
	if err != nil {
		return entities.Stats{}, err
	}
	mobile, err := s.Repo.CountMobileUsers(ctx)
	if err != nil {
		return entities.Stats{}, err
	}
	membersThisMonth, err := s.Repo.CountMembersRegisteredBetween(ctx, monthStart, now)
	if err != nil {
		return entities.Stats{}, err
	}
	membersPrevMonth, err := s.Repo.CountMembersRegisteredBetween(ctx, prevMonthStart, monthStart)
	if err != nil {
		return entities.Stats{}, err
	}
	mobileThisMonth, err := s.Repo.CountMobileUsersRegisteredBetween(ctx, monthStart, now)
	if err != nil {
		return entities.Stats{}, err
	}
	mobilePrevMonth, err := s.Repo.CountMobileUsersRegisteredBetween(ctx, prevMonthStart, monthStart)
	if err != nil {
		return entities.Stats{}, err
	}

	return entities.Stats{
		TotalMembers:        total,
		MobileUsers:         mobile,
		NewMembersThisMonth: membersThisMonth,
		AttendanceRate:      attendanceRatePlaceholder,
		MemberGrowth:        memberGrowth(membersThisMonth, membersPrevMonth),
		MobileGrowth:        mobileGrowth(mobileThisMonth, mobilePrevMonth),
	}, nil
}

func (s Service) RecentActivities(ctx context.Context, limit int) ([]entities.Activity, error) {
	if limit <= 0 {
		limit = 10
	}
	registrations, err := s.Repo.RecentRegistrations(ctx, limit)
	if err != nil {
		return nil, err
	}
	now := s.Clock.Now().UTC()
	activities := make([]entities.Activity, 0, len(registrations))
	for _, registration := range registrations {
		activities = append(activities, entities.Activity{
			Type:  "member",
			Title: "New Member Registration",
			Description: fmt.Sprintf("%s %s joined the congregation (%s)",
				registration.FirstName, registration.LastName, registration.Source),
			Time: TimeAgo(registration.CreatedAt, now),
			Icon: "UserCheck",
		})
	}
	return activities, nil
}

// memberGrowth returns the month-over-month percentage; with no prior
// month data there is nothing to compare against.
func memberGrowth(current, previous int) float64 {
	if previous == 0 {
		return 0
	}
	return round1(float64(current-previous) / float64(previous) * 100)
}

// mobileGrowth mirrors memberGrowth except an empty prior month reports
// the raw current count, so a brand-new mobile rollout still shows movement.
func mobileGrowth(current, previous int) float64 {
	if previous == 0 {
		return float64(current)
	}
	return round1(float64(current-previous) / float64(previous) * 100)
}

func round1(value float64) float64 {
	return math.Round(value*10) / 10
}

// TimeAgo humanizes the gap between then and now.
func TimeAgo(then, now time.Time) string {
	elapsed := now.Sub(then)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(elapsed.Minutes()))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(elapsed.Hours()))
	case elapsed < 30*24*time.Hour:
		return fmt.Sprintf("%d days ago", int(elapsed.Hours()/24))
	case elapsed < 365*24*time.Hour:
		return fmt.Sprintf("%d months ago", int(elapsed.Hours()/(24*30)))
	default:
		return fmt.Sprintf("%d years ago", int(elapsed.Hours()/(24*365)))
	}
}
