package api

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/perio-stage-predictor/internal/domain"
	"github.com/perio-stage-predictor/internal/middleware"
	"github.com/perio-stage-predictor/internal/monitoring"
	"github.com/perio-stage-predictor/internal/service"
	"github.com/perio-stage-predictor/internal/session"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// Server represents the HTTP server
type Server struct {
	config    *domain.Config
	serverCfg domain.ServerConfig
	cookieCfg domain.SessionConfig
	logger    *logrus.Logger
	router    *gin.Engine
	server    *http.Server
	sessions  *session.Store
	predictor *service.PredictionService
	limiter   *middleware.RateLimiter
	metrics   *monitoring.Collector
}

// NewServer creates a new HTTP server instance
func NewServer(configManager domain.ConfigManager, logger *logrus.Logger) (*Server, error) {
	cfg := configManager.GetConfig()

	sessionCfg := *configManager.GetSessionConfig()
	if configManager.IsProduction() {
		sessionCfg.SecureCookie = true
	}

	// Gin debug output only for development with debug logging
	if configManager.IsDevelopment() && cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	router := gin.New()
	router.SetHTMLTemplate(tmpl)

	router.Use(gin.Recovery())
	router.Use(middleware.CorrelationID())
	router.Use(middleware.AuditLogger(logger))
	router.Use(middleware.SecurityHeaders())

	metrics := monitoring.NewCollector(logger)

	s := &Server{
		config:    cfg,
		serverCfg: *configManager.GetServerConfig(),
		cookieCfg: sessionCfg,
		logger:    logger,
		router:    router,
		sessions:  session.NewStore(sessionCfg, cfg.Clinic, logger),
		predictor: service.NewPredictionService(logger, metrics),
		limiter:   middleware.NewRateLimiter(cfg.RateLimit, logger),
		metrics:   metrics,
	}

	s.setupRoutes()

	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	cfg := s.serverCfg
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", addr).Info("HTTP server listening")
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listening on %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.metrics.LogSummary()
	return s.server.Shutdown(shutdownCtx)
}

// setupRoutes configures the page and API routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/metrics", s.handleMetrics)

	pages := s.router.Group("/", s.sessionMiddleware())
	{
		pages.GET("/", s.handleIndex)
		pages.POST("/predict", s.limiter.MiddlewareFunc(s.handleRateLimitedForm), s.handlePredictForm)
		pages.POST("/contact/reveal", s.handleRevealForm)
		pages.GET("/report/download", s.handleDownload)
		pages.POST("/session/reset", s.handleResetForm)
	}

	v1 := s.router.Group("/api/v1", s.sessionMiddleware())
	{
		v1.POST("/predict", s.limiter.Middleware(), s.handlePredictJSON)
		v1.GET("/session", s.handleGetSession)
		v1.POST("/session/contact", s.handleRevealJSON)
		v1.DELETE("/session", s.handleResetJSON)
		v1.GET("/report", s.handleDownload)
	}
}

// handleHealth handles health check requests
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":          "healthy",
		"timestamp":       time.Now().UTC(),
		"version":         Version,
		"active_sessions": s.sessions.Len(),
		"predictions":     s.metrics.Snapshot().Predictions.Value,
	})
}

// handleMetrics returns the usage counters.
func (s *Server) handleMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, s.metrics.Snapshot())
}

// presentationDelay waits the configured cosmetic delay before a result is
// shown, returning early if the client goes away.
func (s *Server) presentationDelay(ctx context.Context) error {
	d := s.config.UI.ResultDelay
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
