package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sophialabs/blueprintmock/internal/domain/catalog"
	"github.com/sophialabs/blueprintmock/internal/domain/markup"
	"github.com/sophialabs/blueprintmock/internal/domain/trace"
	"github.com/sophialabs/blueprintmock/internal/infrastructure/ports"
	"github.com/sophialabs/blueprintmock/internal/infrastructure/services"
	"github.com/sophialabs/blueprintmock/internal/infrastructure/usecases"
)

// DefaultAdminPrefix is where the admin routes are mounted unless configured otherwise.
const DefaultAdminPrefix = "/__admin"

const defaultTraceLast = 10

// Options holds the optional parts of the server.
type Options struct {
	// AdminPrefix mounts the admin routes. Empty disables them.
	AdminPrefix string
	// Document is the parsed configuration served at {admin}/document.
	Document markup.Value
	// Metrics serves {admin}/metrics when set.
	Metrics http.Handler
}

// Server answers every request that is not an admin route from the catalog.
type Server struct {
	router   *chi.Mux
	simUC    *usecases.SimulateRequestUseCase
	traceBuf *trace.RingBuffer
	logger   ports.Logger
	opts     Options
}

// NewServer creates a new Server and builds its router.
func NewServer(
	simUC *usecases.SimulateRequestUseCase,
	traceBuf *trace.RingBuffer,
	logger ports.Logger,
	opts Options,
) *Server {
	s := &Server{
		simUC:    simUC,
		traceBuf: traceBuf,
		logger:   logger,
		opts:     opts,
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	if prefix := strings.TrimSuffix(s.opts.AdminPrefix, "/"); prefix != "" {
		r.Route(prefix, func(r chi.Router) {
			r.Get("/health", s.handleHealth)
			r.Get("/endpoints", s.handleListEndpoints)
			r.Get("/trace", s.handleGetTrace)
			r.Get("/document", s.handleGetDocument)
			if s.opts.Metrics != nil {
				r.Method(http.MethodGet, "/metrics", s.opts.Metrics)
			}
			r.MethodNotAllowed(s.simulateHandler)
		})
	}

	// Everything else, including paths chi has no route for and admin paths
	// hit with another method, is simulated.
	r.HandleFunc("/*", s.simulateHandler)
	r.NotFound(s.simulateHandler)
	r.MethodNotAllowed(s.simulateHandler)

	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) simulateHandler(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug("request received", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery, "remote", r.RemoteAddr)

	result := s.simUC.Execute(r.Context(), r.Method, r.URL.Path)
	resp := result.Response

	body, err := services.EncodeBody(resp.Body)
	if err != nil {
		s.logger.Error("failed to encode response body", "path", r.URL.Path, "error", err)
		http.Error(w, "response encoding error", http.StatusInternalServerError)
		return
	}

	for _, h := range resp.Headers {
		w.Header().Set(h.Name, h.Value)
	}
	w.WriteHeader(resp.Status)
	if len(body) > 0 {
		if _, err := w.Write(body); err != nil {
			s.logger.Debug("failed to write response body", "error", err)
		}
	}

	s.logger.Info("request served",
		"method", r.Method,
		"path", r.URL.Path,
		"route", result.TraceEntry.Route,
		"outcome", result.TraceEntry.Outcome,
		"status", resp.Status,
		"delay_ms", result.TraceEntry.DelayMs,
	)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, map[string]any{
		"status":    "ok",
		"endpoints": s.simUC.Catalog().Len(),
		"served":    s.traceBuf.Total(),
	})
}

type endpointView struct {
	Method      string  `json:"method"`
	Path        string  `json:"path"`
	Dynamic     bool    `json:"dynamic"`
	Status      int     `json:"status"`
	LatencyMs   int     `json:"latency_ms"`
	ErrorRate   float64 `json:"error_rate"`
	ErrorStatus int     `json:"error_status"`
}

func (s *Server) handleListEndpoints(w http.ResponseWriter, _ *http.Request) {
	routes := s.simUC.Catalog().Routes()
	views := make([]endpointView, 0, len(routes))
	for _, route := range routes {
		views = append(views, toEndpointView(route))
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, views)
}

func toEndpointView(route catalog.Route) endpointView {
	return endpointView{
		Method:      route.Method,
		Path:        route.Pattern,
		Dynamic:     route.Dynamic,
		Status:      route.Blueprint.Status,
		LatencyMs:   route.Blueprint.LatencyMs,
		ErrorRate:   route.Blueprint.ErrorRatePercent,
		ErrorStatus: route.Blueprint.ErrorStatus,
	}
}

func (s *Server) handleGetTrace(w http.ResponseWriter, r *http.Request) {
	n := defaultTraceLast
	if lastParam := r.URL.Query().Get("last"); lastParam != "" {
		if parsed, err := strconv.Atoi(lastParam); err == nil && parsed > 0 {
			n = parsed
		}
	}

	entries := s.traceBuf.Last(n)
	if entries == nil {
		entries = []trace.Entry{}
	}
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, entries)
}

func (s *Server) handleGetDocument(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/yaml; charset=utf-8")
	if _, err := w.Write(markup.Encode(s.opts.Document)); err != nil {
		s.logger.Debug("failed to write document", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
