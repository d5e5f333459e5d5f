package web

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/streetsweeper/internal/cache"
	"github.com/streetsweeper/internal/normalize"
	"github.com/streetsweeper/internal/parser"
	"github.com/streetsweeper/internal/web/handlers"
	"github.com/streetsweeper/internal/web/middleware"
)

// Server represents the web server
type Server struct {
	config     *Config
	parser     *parser.Parser
	cache      cache.Cache
	registry   *prometheus.Registry
	metrics    *middleware.Metrics
	httpServer *http.Server
	router     *mux.Router
}

// NewServer creates a new web server instance. A nil cache disables caching.
func NewServer(config *Config, p *parser.Parser, c cache.Cache) (*Server, error) {
	if p == nil {
		return nil, fmt.Errorf("web server needs a parser")
	}
	if c == nil {
		c = cache.Noop{}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	server := &Server{
		config:   config,
		parser:   p,
		cache:    c,
		registry: registry,
		metrics:  middleware.NewMetrics(registry),
	}

	server.setupRoutes()

	server.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port),
		Handler:      server.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return server, nil
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router = mux.NewRouter()

	parseHandler := &handlers.ParseHandler{
		Parser:   s.parser,
		Cache:    s.cache,
		Defaults: normalize.Options{AvoidRedundantStreetType: s.config.Parse.AvoidRedundantStreetType},
		Metrics:  s.metrics,
	}
	statesHandler := &handlers.StatesHandler{Tables: s.parser.Tables()}

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/parse", parseHandler.Parse).Methods("GET", "OPTIONS")
	api.HandleFunc("/parse/batch", parseHandler.ParseBatch).Methods("POST", "OPTIONS")
	api.HandleFunc("/states/{code}", statesHandler.GetState).Methods("GET", "OPTIONS")
	api.Use(middleware.APIKey(s.config.Auth.APIKey))

	s.router.HandleFunc("/healthz", handlers.Health).Methods("GET")
	s.router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods("GET")

	s.router.Use(middleware.CORS())
	s.router.Use(middleware.RequestLogging())
	s.router.Use(s.metrics.Middleware())
}

// Start serves until SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	errCh := make(chan error, 1)
	go func() {
		fmt.Printf("Starting server on http://%s\n", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	fmt.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	fmt.Println("Server stopped")
	return nil
}
