package httpadapter

import (
	"context"
	"log/slog"

	"shepherd/contexts/insights/dashboard-service/application"
	httptransport "shepherd/contexts/insights/dashboard-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) DashboardHandler(ctx context.Context) (httptransport.DashboardResponse, error) {
	stats, err := h.Service.Stats(ctx)
	if err != nil {
		return httptransport.DashboardResponse{}, err
	}
	activities, err := h.Service.RecentActivities(ctx, 10)
	if err != nil {
		return httptransport.DashboardResponse{}, err
	}
	items := make([]httptransport.ActivityDTO, 0, len(activities))
	for _, activity := range activities {
		items = append(items, httptransport.ActivityDTO{
			Type:        activity.Type,
			Title:       activity.Title,
			Description: activity.Description,
			Time:        activity.Time,
			Icon:        activity.Icon,
		})
	}
	return httptransport.DashboardResponse{
		Stats: httptransport.StatsDTO{
			TotalMembers:        stats.TotalMembers,
			MobileUsers:         stats.MobileUsers,
			NewMembersThisMonth: stats.NewMembersThisMonth,
			AttendanceRate:      stats.AttendanceRate,
			MemberGrowth:        stats.MemberGrowth,
			MobileGrowth:        stats.MobileGrowth,
		},
		RecentActivities: items,
	}, nil
}
