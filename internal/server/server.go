// Package server implements the avatar HTTP service.
//
// The service renders avatars on demand and caches the encoded PNGs behind
// a pluggable cache backend. Every parameter of the library's generators is
// exposed as a query parameter, so a seeded request URL is a stable,
// shareable identicon.
//
// # Endpoints
//
//   - GET /healthz                   liveness probe
//   - GET /v1/variants               list of supported avatar variants
//   - GET /v1/palettes/{name}        colors of a built-in palette
//   - GET /v1/avatar/{variant}       render an avatar as PNG
//
// # Logging
//
// Requests are logged with the charmbracelet/log logger handed to New. Each
// request carries a UUID request ID, returned in the X-Request-ID header
// and attached to error responses.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/avagen/avagen/pkg/cache"
)

// Config carries the dependencies and settings for a Server.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// Cache stores encoded PNGs. Nil disables caching.
	Cache cache.Cache

	// Keyer derives cache keys from requests. Nil uses the default keyer.
	Keyer cache.Keyer

	// Logger receives request and error logs. Nil uses log.Default().
	Logger *log.Logger

	// TTL bounds the lifetime of cached avatars. Zero uses cache.TTLAvatar.
	TTL time.Duration
}

// Server is the avatar HTTP service.
type Server struct {
	addr   string
	cache  cache.Cache
	keyer  cache.Keyer
	logger *log.Logger
	ttl    time.Duration
	router chi.Router
}

// New creates a Server with the given configuration. Missing dependencies
// fall back to no-op or default implementations.
func New(cfg Config) *Server {
	s := &Server{
		addr:   cfg.Addr,
		cache:  cfg.Cache,
		keyer:  cfg.Keyer,
		logger: cfg.Logger,
		ttl:    cfg.TTL,
	}
	if s.cache == nil {
		s.cache = cache.NewNullCache()
	}
	if s.keyer == nil {
		s.keyer = cache.NewDefaultKeyer()
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if s.ttl == 0 {
		s.ttl = cache.TTLAvatar
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestID)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Get("/v1/variants", s.handleVariants)
	r.Get("/v1/palettes/{name}", s.handlePalette)
	r.Get("/v1/avatar/{variant}", s.handleAvatar)

	s.router = r
	return s
}

// Handler returns the service's HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe runs the service until ctx is canceled, then drains
// in-flight requests with a bounded shutdown.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("serving avatars", "addr", s.addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// Close releases the cache backend.
func (s *Server) Close() error {
	return s.cache.Close()
}
