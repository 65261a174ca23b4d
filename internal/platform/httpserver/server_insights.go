package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	insighterrors "shepherd/contexts/insights/insight-service/domain/errors"
	insighthttp "shepherd/contexts/insights/insight-service/transport/http"
)

func writeInsightError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, insighthttp.ErrorResponse{Code: code, Message: message})
}

func writeInsightDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, insighterrors.ErrInvalidReportType),
		errors.Is(err, insighterrors.ErrInvalidPredictionType):
		writeInsightError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, insighterrors.ErrGeneratorUnavailable):
		writeInsightError(w, http.StatusBadGateway, "generator_unavailable", err.Error())
	default:
		writeInsightError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	var req insighthttp.GenerateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInsightError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.insights.Handler.GenerateReportHandler(r.Context(), req)
	if err != nil {
		writeInsightDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	resp, err := s.insights.Handler.AnalyticsHandler(r.Context())
	if err != nil {
		writeInsightDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGeneratePrediction(w http.ResponseWriter, r *http.Request) {
	var req insighthttp.GeneratePredictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInsightError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.insights.Handler.GeneratePredictionHandler(r.Context(), req)
	if err != nil {
		writeInsightDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
