package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	membershiperrors "shepherd/contexts/congregation/membership-service/domain/errors"
	membershiphttp "shepherd/contexts/congregation/membership-service/transport/http"
)

func writeMembershipError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, membershiphttp.ErrorResponse{Code: code, Message: message})
}

func writeMembershipDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, membershiperrors.ErrMemberNotFound):
		writeMembershipError(w, http.StatusNotFound, "member_not_found", err.Error())
	case errors.Is(err, membershiperrors.ErrInvalidMemberInput),
		errors.Is(err, membershiperrors.ErrInvalidGender),
		errors.Is(err, membershiperrors.ErrInvalidDateOfBirth),
		errors.Is(err, membershiperrors.ErrInvalidSource),
		errors.Is(err, membershiperrors.ErrInvalidCSVHeader):
		writeMembershipError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeMembershipError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	var (
		resp membershiphttp.MemberListResponse
		err  error
	)
	switch {
	case query.Get("source") != "":
		resp, err = s.membership.Handler.ListMembersBySourceHandler(r.Context(), query.Get("source"))
	case query.Get("search") != "":
		resp, err = s.membership.Handler.SearchMembersByNameHandler(r.Context(), query.Get("search"))
	case query.Get("address") != "":
		resp, err = s.membership.Handler.SearchMembersByAddressHandler(r.Context(), query.Get("address"))
	default:
		resp, err = s.membership.Handler.ListMembersHandler(r.Context())
	}
	if err != nil {
		writeMembershipDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateMember(w http.ResponseWriter, r *http.Request) {
	var req membershiphttp.CreateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMembershipError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.membership.Handler.CreateMemberHandler(r.Context(), req)
	if err != nil {
		writeMembershipDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetMember(w http.ResponseWriter, r *http.Request) {
	resp, err := s.membership.Handler.GetMemberHandler(r.Context(), r.PathValue("member_id"))
	if err != nil {
		writeMembershipDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateMember(w http.ResponseWriter, r *http.Request) {
	var req membershiphttp.UpdateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMembershipError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.membership.Handler.UpdateMemberHandler(r.Context(), r.PathValue("member_id"), req)
	if err != nil {
		writeMembershipDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteMember(w http.ResponseWriter, r *http.Request) {
	resp, err := s.membership.Handler.DeleteMemberHandler(r.Context(), r.PathValue("member_id"))
	if err != nil {
		writeMembershipDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRecentRegistrations(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if limitRaw := r.URL.Query().Get("limit"); limitRaw != "" {
		parsed, err := strconv.Atoi(limitRaw)
		if err != nil {
			writeMembershipError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
			return
		}
		limit = parsed
	}
	resp, err := s.membership.Handler.RecentRegistrationsHandler(r.Context(), limit)
	if err != nil {
		writeMembershipDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleImportMembers(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	resp, err := s.membership.Handler.ImportCSVHandler(r.Context(), r.Body)
	if err != nil {
		writeMembershipDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
