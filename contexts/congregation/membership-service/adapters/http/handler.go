package httpadapter

import (
	"context"
	"io"
	"log/slog"

	"shepherd/contexts/congregation/membership-service/application"
	"shepherd/contexts/congregation/membership-service/domain/entities"
	"shepherd/contexts/congregation/membership-service/ports"
	httptransport "shepherd/contexts/congregation/membership-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateMemberHandler(ctx context.Context, req httptransport.CreateMemberRequest) (httptransport.StatusResponse, error) {
	member, err := h.Service.CreateMember(ctx, memberInput(req.FirstName, req.LastName, req.Gender, req.DateOfBirth, req.Address, req.PhoneNumber, req.ProfileCompleted))
	if err != nil {
		return httptransport.StatusResponse{}, err
	}
	return httptransport.StatusResponse{
		Success:  true,
		Message:  "Member created successfully",
		MemberID: member.MemberID,
	}, nil
}

func (h Handler) UpdateMemberHandler(ctx context.Context, memberID string, req httptransport.UpdateMemberRequest) (httptransport.StatusResponse, error) {
	_, err := h.Service.UpdateMember(ctx, memberID, memberInput(req.FirstName, req.LastName, req.Gender, req.DateOfBirth, req.Address, req.PhoneNumber, req.ProfileCompleted))
	if err != nil {
		return httptransport.StatusResponse{}, err
	}
	return httptransport.StatusResponse{Success: true, Message: "Member updated successfully"}, nil
}

func (h Handler) DeleteMemberHandler(ctx context.Context, memberID string) (httptransport.StatusResponse, error) {
	if err := h.Service.DeleteMember(ctx, memberID); err != nil {
		return httptransport.StatusResponse{}, err
	}
	return httptransport.StatusResponse{Success: true, Message: "Member deleted successfully"}, nil
}

func (h Handler) GetMemberHandler(ctx context.Context, memberID string) (httptransport.MemberResponse, error) {
	record, err := h.Service.GetMember(ctx, memberID)
	if err != nil {
		return httptransport.MemberResponse{}, err
	}
	return mapRecord(record), nil
}

func (h Handler) ListMembersHandler(ctx context.Context) (httptransport.MemberListResponse, error) {
	records, err := h.Service.ListMembers(ctx)
	if err != nil {
		return httptransport.MemberListResponse{}, err
	}
	return mapRecords(records), nil
}

func (h Handler) ListMembersBySourceHandler(ctx context.Context, source string) (httptransport.MemberListResponse, error) {
	records, err := h.Service.ListMembersBySource(ctx, source)
	if err != nil {
		return httptransport.MemberListResponse{}, err
	}
	return mapRecords(records), nil
}

func (h Handler) SearchMembersByNameHandler(ctx context.Context, term string) (httptransport.MemberListResponse, error) {
	records, err := h.Service.SearchMembersByName(ctx, term)
	if err != nil {
		return httptransport.MemberListResponse{}, err
	}
	return mapRecords(records), nil
}

func (h Handler) SearchMembersByAddressHandler(ctx context.Context, term string) (httptransport.MemberListResponse, error) {
	records, err := h.Service.SearchMembersByAddress(ctx, term)
	if err != nil {
		return httptransport.MemberListResponse{}, err
	}
	return mapRecords(records), nil
}

func (h Handler) RecentRegistrationsHandler(ctx context.Context, limit int) (httptransport.MemberListResponse, error) {
	records, err := h.Service.RecentRegistrations(ctx, limit)
	if err != nil {
		return httptransport.MemberListResponse{}, err
	}
	return mapRecords(records), nil
}

func (h Handler) ImportCSVHandler(ctx context.Context, r io.Reader) (httptransport.ImportResultResponse, error) {
	result, err := h.Service.ImportCSV(ctx, r)
	if err != nil {
		return httptransport.ImportResultResponse{}, err
	}
	errs := result.Errors
	if errs == nil {
		errs = []string{}
	}
	return httptransport.ImportResultResponse{
		Success:  len(result.Errors) == 0,
		Imported: len(result.Imported),
		Errors:   errs,
	}, nil
}

func memberInput(firstName, lastName, gender, dob, address, phone string, completed bool) ports.MemberInput {
	return ports.MemberInput{
		FirstName:        firstName,
		LastName:         lastName,
		Gender:           gender,
		DateOfBirth:      dob,
		Address:          address,
		PhoneNumber:      phone,
		ProfileCompleted: completed,
	}
}

func mapRecord(record entities.MemberRecord) httptransport.MemberResponse {
	return httptransport.MemberResponse{
		MemberID:         record.Member.MemberID,
		FirstName:        record.Member.FirstName,
		LastName:         record.Member.LastName,
		Gender:           record.Member.Gender,
		DateOfBirth:      record.Member.DateOfBirth.Format("2006-01-02"),
		Address:          record.Member.Address,
		PhoneNumber:      record.Member.PhoneNumber,
		ProfileCompleted: record.Member.ProfileCompleted,
		Source:           record.Source,
		MobilePhone:      record.MobilePhone,
		Verified:         record.Verified,
		CreatedAt:        record.Member.CreatedAt,
		UpdatedAt:        record.Member.UpdatedAt,
	}
}

func mapRecords(records []entities.MemberRecord) httptransport.MemberListResponse {
	items := make([]httptransport.MemberResponse, 0, len(records))
	for _, record := range records {
		items = append(items, mapRecord(record))
	}
	return httptransport.MemberListResponse{Items: items}
}
