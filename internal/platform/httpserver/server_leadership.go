package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	leadershiperrors "shepherd/contexts/congregation/leadership-engine/domain/errors"
	leadershiphttp "shepherd/contexts/congregation/leadership-engine/transport/http"
)

func writeLeadershipError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, leadershiphttp.ErrorResponse{Code: code, Message: message})
}

func writeLeadershipDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, leadershiperrors.ErrRoleNotFound),
		errors.Is(err, leadershiperrors.ErrMemberNotFound),
		errors.Is(err, leadershiperrors.ErrAssignmentNotFound):
		writeLeadershipError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, leadershiperrors.ErrInvalidRoleInput),
		errors.Is(err, leadershiperrors.ErrInvalidAgeRange),
		errors.Is(err, leadershiperrors.ErrInvalidGenderRequirement),
		errors.Is(err, leadershiperrors.ErrInvalidMaxAllowed):
		writeLeadershipError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, leadershiperrors.ErrDuplicateRoleName):
		writeLeadershipError(w, http.StatusConflict, "duplicate_role_name", err.Error())
	case errors.Is(err, leadershiperrors.ErrRoleHasAssignments):
		writeLeadershipError(w, http.StatusConflict, "role_has_assignments", err.Error())
	case errors.Is(err, leadershiperrors.ErrAlreadyAssigned):
		writeLeadershipError(w, http.StatusConflict, "already_assigned", err.Error())
	case errors.Is(err, leadershiperrors.ErrRoleFull):
		writeLeadershipError(w, http.StatusConflict, "role_full", err.Error())
	case errors.Is(err, leadershiperrors.ErrTooYoung),
		errors.Is(err, leadershiperrors.ErrTooOld),
		errors.Is(err, leadershiperrors.ErrGenderMismatch):
		writeLeadershipError(w, http.StatusUnprocessableEntity, "not_eligible", err.Error())
	default:
		writeLeadershipError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleListRoles(w http.ResponseWriter, r *http.Request) {
	resp, err := s.leadership.Handler.ListRolesHandler(r.Context())
	if err != nil {
		writeLeadershipDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateRole(w http.ResponseWriter, r *http.Request) {
	var req leadershiphttp.CreateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeLeadershipError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.leadership.Handler.CreateRoleHandler(r.Context(), req)
	if err != nil {
		writeLeadershipDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleUpdateRole(w http.ResponseWriter, r *http.Request) {
	var req leadershiphttp.UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeLeadershipError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.leadership.Handler.UpdateRoleHandler(r.Context(), r.PathValue("role_id"), req)
	if err != nil {
		writeLeadershipDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteRole(w http.ResponseWriter, r *http.Request) {
	resp, err := s.leadership.Handler.DeleteRoleHandler(r.Context(), r.PathValue("role_id"))
	if err != nil {
		writeLeadershipDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEligibleMembers(w http.ResponseWriter, r *http.Request) {
	resp, err := s.leadership.Handler.EligibleMembersHandler(r.Context(), r.PathValue("role_id"))
	if err != nil {
		writeLeadershipDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCurrentLeadership(w http.ResponseWriter, r *http.Request) {
	resp, err := s.leadership.Handler.CurrentLeadershipHandler(r.Context())
	if err != nil {
		writeLeadershipDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLeadershipStats(w http.ResponseWriter, r *http.Request) {
	resp, err := s.leadership.Handler.LeadershipStatsHandler(r.Context())
	if err != nil {
		writeLeadershipDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAssignRole(w http.ResponseWriter, r *http.Request) {
	var req leadershiphttp.AssignRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeLeadershipError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.leadership.Handler.AssignRoleHandler(r.Context(), req)
	if err != nil {
		writeLeadershipDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleRemoveAssignment(w http.ResponseWriter, r *http.Request) {
	resp, err := s.leadership.Handler.RemoveAssignmentHandler(r.Context(), r.PathValue("assignment_id"))
	if err != nil {
		writeLeadershipDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
