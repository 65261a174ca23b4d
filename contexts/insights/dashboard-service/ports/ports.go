package ports

import (
	"context"
	"time"

	"shepherd/contexts/insights/dashboard-service/domain/entities"
)

// StatsRepository reads aggregate figures from the member directory. The
// dashboard never writes; it projects tables owned by other contexts.
type StatsRepository interface {
	CountMembers(ctx context.Context) (int, error)
	CountMobileUsers(ctx context.Context) (int, error)
	CountMembersRegisteredBetween(ctx context.Context, from, to time.Time) (int, error)
	CountMobileUsersRegisteredBetween(ctx context.Context, from, to time.Time) (int, error)
	RecentRegistrations(ctx context.Context, limit int) ([]entities.Registration, error)
}

type Clock interface {
	Now() time.Time
}
