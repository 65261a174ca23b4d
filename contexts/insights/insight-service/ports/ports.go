package ports

import (
	"context"
	"time"

	"shepherd/contexts/insights/insight-service/domain/entities"
)

// ReportRequest selects a report and its optional filters.
type ReportRequest struct {
	ReportType  string
	Period      string
	AddressTerm string
	UserQuery   string
}

// PredictionRequest selects a forecast and its horizon.
type PredictionRequest struct {
	PredictionType   string
	PredictionPeriod string
}

// DataSource reads member-directory aggregates. The insight service never
// writes; it projects tables owned by the membership context.
type DataSource interface {
	CountMembers(ctx context.Context) (int, error)
	CountMobileUsers(ctx context.Context) (int, error)
	CountCompletedProfiles(ctx context.Context) (int, error)
	ListMemberSnapshots(ctx context.Context) ([]entities.MemberSnapshot, error)
	ListMemberSnapshotsByAddress(ctx context.Context, term string) ([]entities.MemberSnapshot, error)
	MonthlyRegistrations(ctx context.Context, months int) ([]entities.MonthlyCount, error)
}

// TextGenerator produces narrative text from a prompt. Implementations
// must honor ctx cancellation.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type Clock interface {
	Now() time.Time
}
