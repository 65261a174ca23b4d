package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	announcementerrors "shepherd/contexts/communications/announcement-service/domain/errors"
	announcementhttp "shepherd/contexts/communications/announcement-service/transport/http"
)

func writeAnnouncementError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, announcementhttp.ErrorResponse{Code: code, Message: message})
}

func writeAnnouncementDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, announcementerrors.ErrAnnouncementNotFound):
		writeAnnouncementError(w, http.StatusNotFound, "announcement_not_found", err.Error())
	case errors.Is(err, announcementerrors.ErrInvalidAnnouncementInput),
		errors.Is(err, announcementerrors.ErrInvalidExpiryDate):
		writeAnnouncementError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeAnnouncementError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleListAnnouncements(w http.ResponseWriter, r *http.Request) {
	var (
		resp announcementhttp.AnnouncementListResponse
		err  error
	)
	if r.URL.Query().Get("active") == "true" {
		resp, err = s.announcements.Handler.ListActiveAnnouncementsHandler(r.Context())
	} else {
		resp, err = s.announcements.Handler.ListAnnouncementsHandler(r.Context())
	}
	if err != nil {
		writeAnnouncementDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var req announcementhttp.CreateAnnouncementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAnnouncementError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.announcements.Handler.CreateAnnouncementHandler(r.Context(), req)
	if err != nil {
		writeAnnouncementDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleUpdateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var req announcementhttp.UpdateAnnouncementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAnnouncementError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.announcements.Handler.UpdateAnnouncementHandler(r.Context(), r.PathValue("announcement_id"), req)
	if err != nil {
		writeAnnouncementDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	resp, err := s.announcements.Handler.DeleteAnnouncementHandler(r.Context(), r.PathValue("announcement_id"))
	if err != nil {
		writeAnnouncementDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
