package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/faleproxy/backend/internal/api/http"
	"github.com/GriffinCanCode/faleproxy/backend/internal/api/middleware"
	"github.com/GriffinCanCode/faleproxy/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/faleproxy/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/faleproxy/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/faleproxy/backend/internal/infrastructure/tracing"
	httpclient "github.com/GriffinCanCode/faleproxy/backend/internal/providers/http/client"
	"github.com/GriffinCanCode/faleproxy/backend/internal/proxy"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router  *gin.Engine
	handler http.Handler
	http    *http.Server
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	logger := logging.FromLevel(cfg.Logging.Level, cfg.Logging.Development)

	logger.Info("Initializing Faleproxy server",
		zap.String("port", cfg.Server.Port),
		zap.Duration("fetch_timeout", cfg.Fetch.Timeout),
		zap.Bool("breaker_enabled", cfg.Breaker.Enabled),
	)

	metrics := monitoring.NewMetrics()
	tracer := tracing.New("faleproxy", logger.Logger)

	httpClient := httpclient.New(httpclient.Config{
		Timeout:        cfg.Fetch.Timeout,
		UserAgent:      cfg.Fetch.UserAgent,
		RateLimit:      cfg.Fetch.RateLimit,
		BreakerEnabled: cfg.Breaker.Enabled,
		MaxFailures:    cfg.Breaker.MaxFailures,
		BreakerTimeout: cfg.Breaker.Timeout,
	})
	fetcher := proxy.NewHTTPFetcher(httpClient, cfg.Fetch.MaxBodyBytes)
	pipeline := proxy.NewPipeline(fetcher, logger.Logger).WithMetrics(metrics)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := apihttp.NewHandlers(pipeline, logger)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.POST("/fetch", handlers.Fetch)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Rewritten documents are large; compress responses when the client allows it
	handler := gzhttp.GzipHandler(router)

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	logger.Info("Server initialized successfully")

	return &Server{
		router:  router,
		handler: handler,
		http: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}, nil
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run starts the HTTP server and blocks until it stops
func (s *Server) Run() error {
	s.logger.Info("Faleproxy server running", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Close gracefully shuts down the server
func (s *Server) Close(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	if err := s.http.Shutdown(ctx); err != nil {
		s.logger.Error("Failed to shut down HTTP server", zap.Error(err))
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}

	_ = s.logger.Sync()
	return nil
}
