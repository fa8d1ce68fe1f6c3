// Package service exposes the scanner over HTTP: a JSON tokenize endpoint
// backed by a result cache and audit log, and a WebSocket stream that
// broadcasts every tokenize result to connected subscribers.
package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/conduit-lang/jsscan/internal/audit"
	"github.com/conduit-lang/jsscan/internal/cache"
	"github.com/conduit-lang/jsscan/internal/wsbus"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Service wires the chi router, auth middleware, cache, audit store, and
// broadcast hub together behind a plain http.Handler.
type Service struct {
	Cache  cache.Cache
	Audit  audit.Store
	Hub    *wsbus.Hub
	Auth   *AuthService
	Logger *zap.Logger

	router   chi.Router
	upgrader websocket.Upgrader
}

// Options configures a new Service.
type Options struct {
	Cache     cache.Cache
	Audit     audit.Store
	Hub       *wsbus.Hub
	Auth      *AuthService
	Logger    *zap.Logger
	APIPrefix string
}

// New builds a Service and its chi router.
func New(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		Cache:  opts.Cache,
		Audit:  opts.Audit,
		Hub:    opts.Hub,
		Auth:   opts.Auth,
		Logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(zapRequestLogger(logger))

	prefix := opts.APIPrefix
	if prefix == "" {
		prefix = "/v1"
	}

	r.Get("/healthz", s.handleHealth)

	r.Route(prefix, func(api chi.Router) {
		if s.Auth != nil {
			api.Use(s.Auth.Middleware)
		}
		api.Post("/tokenize", s.handleTokenize)
		api.Get("/stream", s.handleStream)
	})

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Service) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// zapRequestLogger logs each request's method, path, status, and latency.
func zapRequestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
			)
		})
	}
}

// Server wraps an http.Server around a Service with graceful shutdown.
type Server struct {
	httpServer *http.Server
	hub        *wsbus.Hub
	logger     *zap.Logger
}

// NewServer builds a Server listening on addr.
func NewServer(addr string, svc *Service, hub *wsbus.Hub, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           svc,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
			ReadHeaderTimeout: 10 * time.Second,
		},
		hub:    hub,
		logger: logger,
	}
}

// Run starts the hub loop (if any) and the HTTP server, blocking until the
// server stops. It returns http.ErrServerClosed on a graceful Shutdown.
func (s *Server) Run() error {
	if s.hub != nil {
		go s.hub.Run()
	}
	s.logger.Info("jsscan service listening", zap.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server and the broadcast hub within
// the given timeout.
func (s *Server) Shutdown(timeout time.Duration) error {
	if s.hub != nil {
		s.hub.Shutdown()
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("service: shutdown: %w", err)
	}
	return nil
}
