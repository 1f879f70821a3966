// Package apiserver provides the JSON API HTTP server
package apiserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/net/http2"

	"github.com/alchemorsel/composer/internal/infrastructure/config"
	"github.com/alchemorsel/composer/internal/infrastructure/http/handlers"
	"github.com/alchemorsel/composer/internal/infrastructure/http/middleware"
	"github.com/alchemorsel/composer/internal/infrastructure/monitoring"
	"github.com/alchemorsel/composer/internal/ports/inbound"
	"github.com/alchemorsel/composer/pkg/healthcheck"
)

// Dependencies are the services and observability hooks the server routes to
type Dependencies struct {
	Compositions inbound.CompositionService
	Catalog      inbound.CatalogService
	Health       *healthcheck.HealthCheck
	Metrics      *monitoring.MetricsCollector
	Telemetry    *monitoring.Telemetry
	RateLimiter  *middleware.RateLimiter
}

// Server is the JSON API HTTP server
type Server struct {
	config  *config.Config
	logger  *zap.Logger
	server  *http.Server
	router  *chi.Mux
	deps    Dependencies
	openAPI *OpenAPIHandler
}

// NewServer creates a new API server instance
func NewServer(cfg *config.Config, deps Dependencies, log *zap.Logger) (*Server, error) {
	s := &Server{
		config:  cfg,
		logger:  log.Named("api-server"),
		deps:    deps,
		openAPI: NewOpenAPIHandler(log),
	}

	s.router = s.setupRoutes()

	var handler http.Handler = s.router
	if deps.Telemetry != nil {
		handler = deps.Telemetry.InstrumentHTTPHandler(handler, "composer-api")
	}

	s.server = &http.Server{
		Addr:           net.JoinHostPort(cfg.Server.Host, fmt.Sprintf("%d", cfg.Server.Port)),
		Handler:        handler,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	if cfg.Server.EnableHTTP2 {
		if err := http2.ConfigureServer(s.server, &http2.Server{IdleTimeout: cfg.Server.IdleTimeout}); err != nil {
			return nil, fmt.Errorf("failed to configure HTTP/2: %w", err)
		}
	}

	return s, nil
}

// Router returns the route tree
func (s *Server) Router() http.Handler {
	return s.router
}

// Server returns the underlying HTTP server instance
func (s *Server) Server() *http.Server {
	return s.server
}

func (s *Server) setupRoutes() *chi.Mux {
	r := chi.NewRouter()
	mon := s.config.Monitoring

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger, mon.HealthCheckPath, mon.ReadinessPath, mon.MetricsPath))
	r.Use(chimiddleware.Recoverer)
	if s.deps.Metrics != nil {
		r.Use(s.deps.Metrics.HTTPMiddleware)
	}
	r.Use(middleware.Security())
	if s.config.Server.EnableCORS {
		r.Use(middleware.CORS(s.config.Server.AllowedOrigins))
	}
	if s.config.Server.EnableCompression {
		r.Use(middleware.Compress(5))
	}

	if s.deps.Health != nil {
		r.Get(mon.HealthCheckPath, s.deps.Health.Handler())
		r.Get(mon.ReadinessPath, s.deps.Health.ReadinessHandler())
		r.Get("/live", s.deps.Health.LivenessHandler())
	}
	if s.deps.Metrics != nil && mon.EnableMetrics {
		r.Method(http.MethodGet, mon.MetricsPath, s.deps.Metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		if s.config.Server.RequestTimeout > 0 {
			r.Use(chimiddleware.Timeout(s.config.Server.RequestTimeout))
		}
		if s.deps.RateLimiter != nil {
			r.Use(s.deps.RateLimiter.Handler)
		}
		r.Use(middleware.JSONOnly())

		r.Get("/openapi.yaml", s.openAPI.ServeOpenAPISpec)
		s.setupAPIV1Routes(r)
	})

	return r
}

func (s *Server) setupAPIV1Routes(r chi.Router) {
	analysisH := handlers.NewAnalysisHandlers(s.deps.Compositions, s.logger)
	catalogH := handlers.NewCatalogHandlers(s.deps.Catalog, s.logger)
	compositionH := handlers.NewCompositionHandlers(s.deps.Compositions, s.logger)

	r.Post("/analysis", analysisH.Analyze)
	r.Post("/suggestions", analysisH.Suggestions)

	r.Route("/ingredients", func(r chi.Router) {
		r.Get("/", catalogH.ListIngredients)
		r.Get("/{id}/profile", catalogH.ResolveProfile)
	})

	r.Route("/catalog", func(r chi.Router) {
		r.Get("/", catalogH.Status)
		r.Post("/refresh", catalogH.Refresh)
	})

	r.Route("/compositions", func(r chi.Router) {
		r.Post("/", compositionH.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", compositionH.Get)
			r.Delete("/", compositionH.Delete)
			r.Get("/profile", compositionH.Profile)
			r.Get("/analysis", compositionH.Analysis)
			r.Post("/ingredients", compositionH.AddIngredient)
			r.Delete("/ingredients/{ingredientID}", compositionH.RemoveIngredient)
			r.Put("/ingredients/{ingredientID}/cooking-method", compositionH.SetCookingMethod)
			r.Put("/ingredients/{ingredientID}/weight", compositionH.SetWeight)
		})
	})
}

// Start listens and serves until the server is shut down
func (s *Server) Start() error {
	s.logger.Info("Starting API server",
		zap.String("address", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
		zap.Bool("http2", s.config.Server.EnableHTTP2),
	)

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Serve serves on an existing listener
func (s *Server) Serve(ln net.Listener) error {
	if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(ctx, s.shutdownTimeout())
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

func (s *Server) shutdownTimeout() time.Duration {
	if s.config.Server.ShutdownTimeout > 0 {
		return s.config.Server.ShutdownTimeout
	}
	return 30 * time.Second
}
