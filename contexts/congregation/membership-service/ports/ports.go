package ports

import (
	"context"
	"time"

	"shepherd/contexts/congregation/membership-service/domain/entities"
)

// MemberInput carries the caller-supplied member fields; DateOfBirth
// arrives as a YYYY-MM-DD string and is parsed by the service.
type MemberInput struct {
	FirstName        string
	LastName         string
	Gender           string
	DateOfBirth      string
	Address          string
	PhoneNumber      string
	ProfileCompleted bool
}

type Repository interface {
	CreateMember(ctx context.Context, member entities.Member) error
	GetMember(ctx context.Context, memberID string) (entities.MemberRecord, error)
	UpdateMember(ctx context.Context, member entities.Member) error
	DeleteMember(ctx context.Context, memberID string) error
	ListMembers(ctx context.Context) ([]entities.MemberRecord, error)
	ListMembersBySource(ctx context.Context, source string) ([]entities.MemberRecord, error)
	SearchMembersByName(ctx context.Context, term string) ([]entities.MemberRecord, error)
	SearchMembersByAddress(ctx context.Context, term string) ([]entities.MemberRecord, error)
	RecentRegistrations(ctx context.Context, limit int) ([]entities.MemberRecord, error)
	CountMembers(ctx context.Context) (int, error)
	CountMobileUsers(ctx context.Context) (int, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
