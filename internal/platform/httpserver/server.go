package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	announcementservice "shepherd/contexts/communications/announcement-service"
	leadershipengine "shepherd/contexts/congregation/leadership-engine"
	membershipservice "shepherd/contexts/congregation/membership-service"
	dashboardservice "shepherd/contexts/insights/dashboard-service"
	insightservice "shepherd/contexts/insights/insight-service"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "shepherd/internal/platform/httpserver/docs"
)

type Server struct {
	mux            *http.ServeMux
	logger         *slog.Logger
	addr           string
	allowedOrigins map[string]bool
	leadership     leadershipengine.Module
	membership     membershipservice.Module
	announcements  announcementservice.Module
	dashboard      dashboardservice.Module
	insights       *insightservice.Module
}

// New wires every context module onto one mux. The insights module is
// optional; pass nil when AI insights are disabled.
func New(
	leadership leadershipengine.Module,
	membership membershipservice.Module,
	announcements announcementservice.Module,
	dashboard dashboardservice.Module,
	insights *insightservice.Module,
	logger *slog.Logger,
	addr string,
	allowedOrigins []string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	origins := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		origins[origin] = true
	}

	s := &Server{
		mux:            http.NewServeMux(),
		logger:         logger,
		addr:           addr,
		allowedOrigins: origins,
		leadership:     leadership,
		membership:     membership,
		announcements:  announcements,
		dashboard:      dashboard,
		insights:       insights,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.corsHandler(s.mux))
}

// Handler exposes the routed mux, CORS included, for tests.
func (s *Server) Handler() http.Handler {
	return s.corsHandler(s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("GET /api/leadership/v1/roles", s.handleListRoles)
	s.mux.HandleFunc("POST /api/leadership/v1/roles", s.handleCreateRole)
	s.mux.HandleFunc("PUT /api/leadership/v1/roles/{role_id}", s.handleUpdateRole)
	s.mux.HandleFunc("DELETE /api/leadership/v1/roles/{role_id}", s.handleDeleteRole)
	s.mux.HandleFunc("GET /api/leadership/v1/roles/{role_id}/eligible-members", s.handleEligibleMembers)
	s.mux.HandleFunc("GET /api/leadership/v1/current", s.handleCurrentLeadership)
	s.mux.HandleFunc("GET /api/leadership/v1/stats", s.handleLeadershipStats)
	s.mux.HandleFunc("POST /api/leadership/v1/assignments", s.handleAssignRole)
	s.mux.HandleFunc("DELETE /api/leadership/v1/assignments/{assignment_id}", s.handleRemoveAssignment)

	s.mux.HandleFunc("GET /api/members/v1", s.handleListMembers)
	s.mux.HandleFunc("POST /api/members/v1", s.handleCreateMember)
	s.mux.HandleFunc("GET /api/members/v1/recent", s.handleRecentRegistrations)
	s.mux.HandleFunc("POST /api/members/v1/import", s.handleImportMembers)
	s.mux.HandleFunc("GET /api/members/v1/{member_id}", s.handleGetMember)
	s.mux.HandleFunc("PUT /api/members/v1/{member_id}", s.handleUpdateMember)
	s.mux.HandleFunc("DELETE /api/members/v1/{member_id}", s.handleDeleteMember)

	s.mux.HandleFunc("GET /api/announcements/v1", s.handleListAnnouncements)
	s.mux.HandleFunc("POST /api/announcements/v1", s.handleCreateAnnouncement)
	s.mux.HandleFunc("PUT /api/announcements/v1/{announcement_id}", s.handleUpdateAnnouncement)
	s.mux.HandleFunc("DELETE /api/announcements/v1/{announcement_id}", s.handleDeleteAnnouncement)

	s.mux.HandleFunc("GET /api/dashboard/v1", s.handleDashboard)

	if s.insights != nil {
		s.mux.HandleFunc("POST /api/insights/v1/reports", s.handleGenerateReport)
		s.mux.HandleFunc("POST /api/insights/v1/predictions", s.handleGeneratePrediction)
		s.mux.HandleFunc("GET /api/insights/v1/analytics", s.handleAnalytics)
	}
}

// corsHandler answers preflight requests and stamps CORS headers on
// every response for configured origins.
func (s *Server) corsHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && s.allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
