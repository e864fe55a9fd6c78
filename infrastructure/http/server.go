package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/vendorops/insights/infrastructure/http/handler"
	"github.com/vendorops/insights/infrastructure/http/middleware"
	"github.com/vendorops/insights/infrastructure/http/response"
	"github.com/vendorops/insights/infrastructure/service/logger"
)

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

// Server represents the HTTP server
type Server struct {
	server *http.Server
	logger logger.Logger
}

type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	CORSOrigins  []string
	LogRequests  bool
}

type Components struct {
	Insights  *handler.InsightHandler
	Auth      *middleware.AuthMiddleware
	RateLimit *middleware.RateLimitMiddleware
	// Metrics is optional; nil disables /metrics and request metrics.
	Metrics interface {
		middleware.HTTPRecorder
		Handler() http.Handler
	}
	Checks map[string]HealthCheck
	Logger logger.Logger
}

func NewServer(cfg ServerConfig, c Components) *Server {
	router := mux.NewRouter()

	router.Use(middleware.CorrelationIDMiddleware)
	router.Use(middleware.Recovery(c.Logger))
	if len(cfg.CORSOrigins) > 0 {
		router.Use(middleware.CORS(cfg.CORSOrigins))
	}
	if cfg.LogRequests {
		var recorder middleware.HTTPRecorder
		if c.Metrics != nil {
			recorder = c.Metrics
		}
		router.Use(middleware.RequestLogger(c.Logger, recorder))
	}

	router.HandleFunc("/health", healthHandler(c.Checks)).Methods(http.MethodGet)
	if c.Metrics != nil {
		router.Handle("/metrics", c.Metrics.Handler()).Methods(http.MethodGet)
	}
	c.Insights.RegisterRoutes(router, c.Auth, c.RateLimit)

	return &Server{
		server: &http.Server{
			Addr:         cfg.Addr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		logger: c.Logger,
	}
}

// Handler exposes the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start blocks until the server stops. A graceful Shutdown returns nil.
func (s *Server) Start() error {
	s.logger.Info(context.Background(), "Starting server", map[string]interface{}{"addr": s.server.Addr})
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func healthHandler(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := make(map[string]string, len(checks))
		healthy := true
		for name, check := range checks {
			if err := check(ctx); err != nil {
				status[name] = err.Error()
				healthy = false
				continue
			}
			status[name] = "ok"
		}

		if !healthy {
			response.WriteJSON(w, http.StatusServiceUnavailable, false, "unhealthy", status)
			return
		}
		response.Success(w, http.StatusOK, "healthy", status)
	}
}
