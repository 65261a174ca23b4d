package httpserver

import (
	"net/http"

	dashboardhttp "shepherd/contexts/insights/dashboard-service/transport/http"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	resp, err := s.dashboard.Handler.DashboardHandler(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dashboardhttp.ErrorResponse{
			Code:    "internal_error",
			Message: "internal server error",
		})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
