package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tournevent/ordertrack/internal/api"
	"github.com/tournevent/ordertrack/internal/telemetry"
	"github.com/tournevent/ordertrack/pkg/orders"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const (
	requestIDHeader = "X-Request-ID"
	maxBodyBytes    = 64 << 10
)

// Server is the HTTP server for the order tracking service.
type Server struct {
	port           int
	allowedOrigins []string
	logger         *otelzap.Logger
	registry       *prometheus.Registry
	metrics        *telemetry.Metrics
	resolver       *api.Resolver
	validate       *validator.Validate
}

// Config holds server configuration.
type Config struct {
	Port int
	// AllowedOrigins lists substrings; an Origin containing any of them passes CORS.
	AllowedOrigins []string
	// Mode is reported by /api/health.
	Mode string
}

// New creates a new server instance. Metrics are registered on a registry
// owned by the server and exposed at /metrics.
func New(cfg Config, pipeline *orders.Pipeline, logger *otelzap.Logger) *Server {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := telemetry.NewMetrics(registry)
	resolver := api.NewResolver(pipeline, logger, metrics, cfg.Mode)

	return &Server{
		port:           cfg.Port,
		allowedOrigins: cfg.AllowedOrigins,
		logger:         logger,
		registry:       registry,
		metrics:        metrics,
		resolver:       resolver,
		validate:       validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Handler returns the fully wired HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(s.requestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowOriginFunc: s.allowOrigin,
		AllowedMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:  []string{"Content-Type"},
		MaxAge:          300,
	}))

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(sub chi.Router) {
		sub.Get("/health", s.handleAPIHealth)
		sub.Post("/links", s.handleLinks)
		sub.Post("/lookup", s.handleLookup)
	})

	return otelhttp.NewHandler(r, "ordertrack")
}

// Run starts the HTTP server and blocks until context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", zap.Int("port", s.port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) allowOrigin(r *http.Request, origin string) bool {
	for _, allowed := range s.allowedOrigins {
		if allowed = strings.TrimSpace(allowed); allowed != "" && strings.Contains(origin, allowed) {
			return true
		}
	}
	return false
}

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(requestIDHeader, id)
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.Ctx(r.Context()).Info("Request completed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.String("request_id", r.Header.Get(requestIDHeader)),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleAPIHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.resolver.Health(r.Context()))
}

type linksRequest struct {
	OrderName string `json:"orderName" validate:"omitempty,max=64"`
	Email     string `json:"email" validate:"omitempty,email,max=254"`
}

type lookupRequest struct {
	Email string `json:"email" validate:"required,email,max=254"`
}

func (s *Server) handleLinks(w http.ResponseWriter, r *http.Request) {
	var req linksRequest
	if !s.decode(w, r, &req) {
		return
	}
	req.OrderName = strings.TrimSpace(req.OrderName)
	req.Email = strings.TrimSpace(req.Email)
	if !s.check(w, &req) {
		return
	}

	ctx := r.Context()
	if req.Email != "" {
		result, err := s.resolver.EmailOrders(ctx, req.Email)
		if err != nil {
			writeError(w, err)
			return
		}
		if len(result.Orders) == 0 {
			writeJSON(w, http.StatusNotFound, api.NewNoOrdersResponse())
			return
		}
		writeJSON(w, http.StatusOK, result)
		return
	}

	links, err := s.resolver.OrderLinks(ctx, req.OrderName)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, links)
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	var req lookupRequest
	if !s.decode(w, r, &req) {
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		writeJSON(w, http.StatusBadRequest, api.ErrorResponse{Error: "email required"})
		return
	}
	if !s.check(w, &req) {
		return
	}

	result, err := s.resolver.Lookup(r.Context(), req.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	if result.OrderCount == 0 {
		writeJSON(w, http.StatusNotFound, api.NewNoOrdersResponse())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// decode reads a JSON body into v. An empty body decodes as {}.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	writeJSON(w, http.StatusBadRequest, api.ErrorResponse{Error: "invalid JSON body"})
	return false
}

func (s *Server) check(w http.ResponseWriter, v any) bool {
	err := s.validate.Struct(v)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		writeJSON(w, http.StatusBadRequest, api.ErrorResponse{
			Error: fmt.Sprintf("invalid %s", lowerFirst(verrs[0].Field())),
		})
		return false
	}
	writeJSON(w, http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	return false
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, api.StatusCode(err), api.ErrorResponse{Error: api.ErrorMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
