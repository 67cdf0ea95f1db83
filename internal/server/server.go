package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/everstacklabs/costpilot/internal/architect"
	"github.com/everstacklabs/costpilot/internal/config"
)

const (
	maxBodyBytes        = 1 << 20 // 1 MiB
	shutdownGracePeriod = 10 * time.Second
	readTimeout         = 30 * time.Second
	writeTimeout        = 45 * time.Second
	idleTimeout         = 120 * time.Second

	requestIDHeader = "X-Request-ID"
)

// Server exposes the architect and catalog over HTTP.
type Server struct {
	cfg       config.ServerConfig
	architect *architect.Architect
	catalog   architect.CatalogSource
	app       *echo.Echo
	address   string
}

// New constructs an HTTP server wired with routing and middleware.
func New(cfg config.ServerConfig, arch *architect.Architect, source architect.CatalogSource) (*Server, error) {
	if arch == nil {
		return nil, errors.New("architect must not be nil")
	}
	if source == nil {
		return nil, errors.New("catalog source must not be nil")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover())
	e.Use(requestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogLatency: true,
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			slog.Info("request",
				"request_id", c.Response().Header().Get(requestIDHeader),
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency_ms", v.Latency.Milliseconds(),
				"error", v.Error,
			)
			return nil
		},
	}))

	srv := &Server{
		cfg:       cfg,
		architect: arch,
		catalog:   source,
		app:       e,
		address:   fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
	}

	srv.registerRoutes()

	return srv, nil
}

// requestID assigns each request a UUID, honoring one supplied by the caller.
func requestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(requestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			c.Response().Header().Set(requestIDHeader, id)
			return next(c)
		}
	}
}

func (s *Server) registerRoutes() {
	optimizeLimit := newRouteLimiter(s.cfg.OptimizePerMin, s.cfg.RateLimitEnabled)
	readsLimit := newRouteLimiter(s.cfg.ReadsPerMin, s.cfg.RateLimitEnabled)

	s.app.GET("/", s.handleRoot)
	s.app.GET("/health", s.handleHealth)
	s.app.POST("/api/architect/optimize", s.handleOptimize, optimizeLimit.Middleware())
	s.app.GET("/api/models", s.handleModels, readsLimit.Middleware())
	s.app.GET("/api/providers", s.handleProviders, readsLimit.Middleware())
	s.app.GET("/api/stats", s.handleStats, readsLimit.Middleware())
}

// Run starts the HTTP server and blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	slog.Info("starting server", "addr", s.address)

	httpServer := &http.Server{
		Addr:         s.address,
		Handler:      s.app,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.app.StartServer(httpServer); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGracePeriod)
		defer cancel()
		if err := s.app.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		slog.Info("server shutdown complete")
		return nil
	case err := <-errCh:
		return err
	}
}

// Handler exposes the underlying echo handler for tests.
func (s *Server) Handler() http.Handler {
	return s.app
}

type requestError struct {
	Status  int
	Message string
}

func (e requestError) Error() string {
	return e.Message
}

type errorBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func writeError(c echo.Context, status int, message string) error {
	return c.JSON(status, errorBody{Status: "error", Message: message})
}

func errorHandler(err error, c echo.Context) {
	var reqErr requestError
	if errors.As(err, &reqErr) {
		_ = writeError(c, reqErr.Status, reqErr.Message)
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		_ = writeError(c, he.Code, fmt.Sprintf("%v", he.Message))
		return
	}

	_ = writeError(c, http.StatusInternalServerError, "internal server error")
}

func toHTTPError(err error) error {
	switch {
	case errors.Is(err, architect.ErrInvalidInput):
		return requestError{Status: http.StatusBadRequest, Message: err.Error()}
	case errors.Is(err, architect.ErrCatalogUnavailable):
		return requestError{Status: http.StatusServiceUnavailable, Message: err.Error()}
	}
	return requestError{Status: http.StatusInternalServerError, Message: "internal server error"}
}
