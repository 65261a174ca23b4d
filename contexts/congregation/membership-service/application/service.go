package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"shepherd/contexts/congregation/membership-service/domain/entities"
	domainerrors "shepherd/contexts/congregation/membership-service/domain/errors"
	"shepherd/contexts/congregation/membership-service/ports"
)

const dateOfBirthLayout = "2006-01-02"

type Service struct {
	Repo   ports.Repository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (s Service) CreateMember(ctx context.Context, input ports.MemberInput) (entities.Member, error) {
	member, err := s.buildMember(ctx, input)
	if err != nil {
		return entities.Member{}, err
	}
	if err := s.Repo.CreateMember(ctx, member); err != nil {
		return entities.Member{}, err
	}
	s.logger().Info("member created",
		"event", "membership_member_created",
		"module", "congregation/membership-service",
		"layer", "application",
		"member_id", member.MemberID,
	)
	return member, nil
}

func (s Service) UpdateMember(ctx context.Context, memberID string, input ports.MemberInput) (entities.Member, error) {
	record, err := s.Repo.GetMember(ctx, strings.TrimSpace(memberID))
	if err != nil {
		return entities.Member{}, err
	}
	updated, err := s.buildMember(ctx, input)
	if err != nil {
		return entities.Member{}, err
	}
	updated.MemberID = record.Member.MemberID
	updated.CreatedAt = record.Member.CreatedAt
	updated.UpdatedAt = s.now()
	if err := s.Repo.UpdateMember(ctx, updated); err != nil {
		return entities.Member{}, err
	}
	s.logger().Info("member updated",
		"event", "membership_member_updated",
		"module", "congregation/membership-service",
		"layer", "application",
		"member_id", updated.MemberID,
	)
	return updated, nil
}

func (s Service) DeleteMember(ctx context.Context, memberID string) error {
	if err := s.Repo.DeleteMember(ctx, strings.TrimSpace(memberID)); err != nil {
		return err
	}
	s.logger().Info("member deleted",
		"event", "membership_member_deleted",
		"module", "congregation/membership-service",
		"layer", "application",
		"member_id", strings.TrimSpace(memberID),
	)
	return nil
}

func (s Service) GetMember(ctx context.Context, memberID string) (entities.MemberRecord, error) {
	return s.Repo.GetMember(ctx, strings.TrimSpace(memberID))
}

func (s Service) ListMembers(ctx context.Context) ([]entities.MemberRecord, error) {
	return s.Repo.ListMembers(ctx)
}

func (s Service) ListMembersBySource(ctx context.Context, source string) ([]entities.MemberRecord, error) {
	source = strings.TrimSpace(source)
	if source != entities.SourceMobile && source != entities.SourceWeb {
		return nil, domainerrors.ErrInvalidSource
	}
	return s.Repo.ListMembersBySource(ctx, source)
}

func (s Service) SearchMembersByName(ctx context.Context, term string) ([]entities.MemberRecord, error) {
	return s.Repo.SearchMembersByName(ctx, strings.TrimSpace(term))
}

func (s Service) SearchMembersByAddress(ctx context.Context, term string) ([]entities.MemberRecord, error) {
	return s.Repo.SearchMembersByAddress(ctx, strings.TrimSpace(term))
}

func (s Service) RecentRegistrations(ctx context.Context, limit int) ([]entities.MemberRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.Repo.RecentRegistrations(ctx, limit)
}

func (s Service) CountMembers(ctx context.Context) (int, error) {
	return s.Repo.CountMembers(ctx)
}

func (s Service) CountMobileUsers(ctx context.Context) (int, error) {
	return s.Repo.CountMobileUsers(ctx)
}

func (s Service) buildMember(ctx context.Context, input ports.MemberInput) (entities.Member, error) {
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	gender := strings.ToLower(strings.TrimSpace(input.Gender))
	dob := strings.TrimSpace(input.DateOfBirth)
	if firstName == "" || lastName == "" || gender == "" || dob == "" {
		return entities.Member{}, domainerrors.ErrInvalidMemberInput
	}
	if !entities.ValidGender(gender) {
		return entities.Member{}, domainerrors.ErrInvalidGender
	}
	dateOfBirth, err := time.Parse(dateOfBirthLayout, dob)
	if err != nil {
		return entities.Member{}, domainerrors.ErrInvalidDateOfBirth
	}
	memberID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Member{}, err
	}
	now := s.now()
	return entities.Member{
		MemberID:         memberID,
		FirstName:        firstName,
		LastName:         lastName,
		Gender:           gender,
		DateOfBirth:      dateOfBirth,
		Address:          strings.TrimSpace(input.Address),
		PhoneNumber:      strings.TrimSpace(input.PhoneNumber),
		ProfileCompleted: input.ProfileCompleted,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

func (s Service) now() time.Time {
	return s.Clock.Now().UTC()
}

func (s Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}
