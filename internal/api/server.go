package api

import (
	"context"
	"net/http"
	"time"

	"github.com/azure/newsroom-desk/internal/metrics"
	"github.com/azure/newsroom-desk/internal/models"
	"github.com/azure/newsroom-desk/internal/newsroom"
	"github.com/azure/newsroom-desk/internal/storage"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
)

const manualDigestTimeout = 10 * time.Minute

// DigestRunner is the digest work exposed over HTTP
type DigestRunner interface {
	RunDigest(ctx context.Context) error
	GetMetrics() string
}

// Sidebar holds the read-only widget data served next to the board
type Sidebar struct {
	Trends  []models.TrendInsight       `json:"trends"`
	Presets []models.DistributionPreset `json:"presets"`
	Plugins []models.MarketPlugin       `json:"plugins"`
}

// Config wires the server's collaborators
type Config struct {
	Board   *newsroom.Board
	Digest  DigestRunner
	Archive storage.StorageInterface
	Sidebar Sidebar
	// Metrics is optional; nil disables request counting
	Metrics  *metrics.Collector
	Gatherer prometheus.Gatherer
	// FactCheckRatePerMinute limits fact-check triggers across all clients
	FactCheckRatePerMinute int
}

// Server exposes the newsroom desk over HTTP
type Server struct {
	board    *newsroom.Board
	digest   DigestRunner
	archive  storage.StorageInterface
	sidebar  Sidebar
	metrics  *metrics.Collector
	gatherer prometheus.Gatherer
	limiter  *rate.Limiter
}

// NewServer creates a Server from cfg
func NewServer(cfg Config) *Server {
	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	perMinute := cfg.FactCheckRatePerMinute
	if perMinute <= 0 {
		perMinute = 30
	}

	return &Server{
		board:    cfg.Board,
		digest:   cfg.Digest,
		archive:  cfg.Archive,
		sidebar:  cfg.Sidebar,
		metrics:  cfg.Metrics,
		gatherer: gatherer,
		limiter:  rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute),
	}
}

// Router builds the HTTP routes
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.Use(s.loggingMiddleware)

	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	router.Handle("/metrics", metrics.Handler(s.gatherer)).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/board", s.handleBoard).Methods(http.MethodGet)
	api.HandleFunc("/events", s.handleEvents).Methods(http.MethodGet)
	api.HandleFunc("/filters", s.handleGetFilters).Methods(http.MethodGet)
	api.HandleFunc("/filters", s.handlePatchFilters).Methods(http.MethodPatch)
	api.HandleFunc("/selection", s.handleSelect).Methods(http.MethodPut)
	api.HandleFunc("/events/{id}/factcheck", s.handleFactCheck).Methods(http.MethodPost)
	api.HandleFunc("/factcheck", s.handleGetFactCheck).Methods(http.MethodGet)
	api.HandleFunc("/factcheck", s.handleDismiss).Methods(http.MethodDelete)
	api.HandleFunc("/sidebar", s.handleSidebar).Methods(http.MethodGet)
	api.HandleFunc("/digest/trigger", s.handleDigestTrigger).Methods(http.MethodPost)
	api.HandleFunc("/digest/stats", s.handleDigestStats).Methods(http.MethodGet)
	api.HandleFunc("/digest/archive", s.handleArchiveList).Methods(http.MethodGet)
	api.HandleFunc("/digest/archive/{name}", s.handleArchiveGet).Methods(http.MethodGet)
	api.HandleFunc("/digest/archive/{name}", s.handleArchiveDelete).Methods(http.MethodDelete)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "no route for "+r.URL.Path)
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", r.Method+" is not allowed on "+r.URL.Path)
	})

	return router
}
