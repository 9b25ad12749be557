package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	allocationengine "clearfund/contexts/funding/allocation-engine"
	fundingentities "clearfund/contexts/funding/domain/entities"
	donationledger "clearfund/contexts/funding/donation-ledger"
	requestledger "clearfund/contexts/funding/request-ledger"
	transparencyview "clearfund/contexts/funding/transparency-view"
	identityservice "clearfund/contexts/identity-access/identity-service"
	identityerrors "clearfund/contexts/identity-access/identity-service/domain/errors"
	_ "clearfund/internal/platform/httpserver/docs"
)

// Modules collects everything the HTTP surface exposes. HealthCheck is
// optional; when set it is invoked by the health endpoint (DB ping).
type Modules struct {
	Identity     identityservice.Module
	Donations    donationledger.Module
	Requests     requestledger.Module
	Allocations  allocationengine.Module
	Transparency transparencyview.Module
	HealthCheck  func(ctx context.Context) error
}

type Server struct {
	mux         *http.ServeMux
	logger      *slog.Logger
	addr        string
	modules     Modules
	apiLimiter  *ipRateLimiter
	authLimiter *ipRateLimiter
}

func New(modules Modules, logger *slog.Logger, addr string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:         http.NewServeMux(),
		logger:      logger,
		addr:        addr,
		modules:     modules,
		apiLimiter:  newIPRateLimiter(rateWindow, apiRateMax),
		authLimiter: newIPRateLimiter(rateWindow, authRateMax),
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
	return http.ListenAndServe(s.addr, s.Handler())
}

// Handler exposes the routed mux, mainly for tests.
func (s *Server) Handler() http.Handler {
	return corsMiddleware(s.mux)
}

// corsMiddleware answers browser preflight requests so the transparency
// dashboard can call the API from another origin.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	s.mux.Handle("GET /metrics", promhttp.Handler())
	s.mux.HandleFunc("GET /health", s.handleHealth)

	s.handle("POST /api/auth/register", s.handleRegister)
	s.handle("POST /api/auth/login", s.handleLogin)
	s.handle("GET /api/auth/profile", s.handleProfile)
	s.handle("GET /api/auth/validate", s.handleValidate)

	s.handle("POST /api/donations", s.handleRecordDonation)
	s.handle("GET /api/donations", s.handleListDonations)
	s.handle("GET /api/donations/my", s.handleListMyDonations)
	s.handle("GET /api/donations/stats", s.handleDonationStats)
	s.handle("GET /api/donations/source/{source_tag}", s.handleListDonationsBySourceTag)
	s.handle("GET /api/donations/{id}", s.handleGetDonation)
	s.handle("GET /api/donations/{id}/balance", s.handleDonationBalance)

	s.handle("POST /api/budget-requests", s.handleSubmitRequest)
	s.handle("GET /api/budget-requests", s.handleListRequests)
	s.handle("GET /api/budget-requests/my", s.handleListMyRequests)
	s.handle("GET /api/budget-requests/stats", s.handleRequestStats)
	s.handle("GET /api/budget-requests/status/{status}", s.handleListRequestsByStatus)
	s.handle("GET /api/budget-requests/{id}", s.handleGetRequest)
	s.handle("PUT /api/budget-requests/{id}", s.handleUpdateRequest)
	s.handle("DELETE /api/budget-requests/{id}", s.handleDeleteRequest)
	s.handle("PATCH /api/budget-requests/{id}/decision", s.handleDecideRequest)

	s.handle("POST /api/allocations", s.handleCreateAllocation)
	s.handle("GET /api/allocations", s.handleListAllocations)
	s.handle("GET /api/allocations/stats", s.handleAllocationStats)
	s.handle("GET /api/allocations/donation/{donation_id}", s.handleListAllocationsByDonation)
	s.handle("GET /api/allocations/request/{request_id}", s.handleListAllocationsByRequest)
	s.handle("GET /api/allocations/beneficiary/{beneficiary_type}", s.handleListAllocationsByBeneficiaryType)
	s.handle("GET /api/allocations/source/{source_tag}", s.handleListAllocationsBySourceTag)
	s.handle("GET /api/allocations/{id}", s.handleGetAllocation)
	s.handle("PATCH /api/allocations/{id}/status", s.handleSetAllocationStatus)

	s.handle("GET /api/transparency/trail", s.handleFundingTrail)
	s.handle("GET /api/transparency/donations", s.handleDonationSummaries)
	s.handle("GET /api/transparency/requests", s.handleRequestSummaries)
	s.handle("GET /api/transparency/overview", s.handleTransparencyOverview)
}

// handle registers a routed handler wrapped with request logging and
// Prometheus instrumentation. The route pattern doubles as the metric
// label so path parameters do not explode cardinality.
func (s *Server) handle(pattern string, handler http.HandlerFunc) {
	parts := strings.SplitN(pattern, " ", 2)
	route := parts[len(parts)-1]

	s.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		if s.allowRequest(route, resolveClientIP(r)) {
			handler(recorder, r)
		} else {
			writeRateLimited(recorder)
		}

		elapsed := time.Since(started)
		observeRequest(r.Method, route, recorder.status, elapsed)
		s.logger.Info("http request handled",
			"event", "http_request_handled",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"method", r.Method,
			"route", route,
			"status", recorder.status,
			"duration_ms", elapsed.Milliseconds(),
			"client_ip", resolveClientIP(r),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.modules.HealthCheck != nil {
		if err := s.modules.HealthCheck(r.Context()); err != nil {
			s.logger.Error("health check failed",
				"event", "health_check_failed",
				"module", "internal/platform/httpserver",
				"layer", "platform",
				"error", err.Error(),
			)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// authenticate resolves the bearer token into the funding caller identity.
// The funding contexts never parse tokens themselves; they only see the
// resolved caller.
func (s *Server) authenticate(r *http.Request) (fundingentities.Caller, error) {
	token, err := bearerToken(r)
	if err != nil {
		return fundingentities.Caller{}, err
	}

	identity, err := s.modules.Identity.Service.Resolve(r.Context(), token)
	if err != nil {
		return fundingentities.Caller{}, err
	}
	return fundingentities.Caller{
		UserID:    identity.UserID,
		Role:      fundingentities.Role(identity.Role),
		SourceTag: identity.SourceTag,
	}, nil
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", identityerrors.ErrInvalidToken
	}
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || strings.TrimSpace(token) == "" {
		return "", identityerrors.ErrInvalidToken
	}
	return strings.TrimSpace(token), nil
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func resolveClientIP(r *http.Request) string {
	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	return r.RemoteAddr
}
