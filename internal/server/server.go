// Package server runs the public site listener and the admin listener.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"git.home.luguber.info/inful/sitegen/internal/config"
	ferrors "git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/inquiry"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/metrics"
	smw "git.home.luguber.info/inful/sitegen/internal/server/middleware"
	"git.home.luguber.info/inful/sitegen/internal/version"
)

const shutdownTimeout = 10 * time.Second

// Options wires the runtime dependencies of a Server.
type Options struct {
	DistDir   string
	Content   *Content
	Inquiries *inquiry.Service // nil disables the form endpoints
	Recorder  metrics.Recorder
	// MetricsHandler is mounted on the admin listener when metrics are enabled.
	MetricsHandler http.Handler
}

// Server manages the public and admin HTTP endpoints.
type Server struct {
	cfg          config.ServerConfig
	monitoring   config.MonitoringConfig
	dist         string
	content      *Content
	inquiries    *inquiry.Service
	recorder     metrics.Recorder
	metrics      http.Handler
	errorAdapter *ferrors.HTTPErrorAdapter
	started      time.Time

	mchain func(http.Handler) http.Handler
}

// New constructs the server wiring.
func New(cfg config.ServerConfig, monitoring config.MonitoringConfig, opts Options) *Server {
	content := opts.Content
	if content == nil {
		content = &Content{}
	}
	s := &Server{
		cfg:          cfg,
		monitoring:   monitoring,
		dist:         opts.DistDir,
		content:      content,
		inquiries:    opts.Inquiries,
		recorder:     metrics.OrNoop(opts.Recorder),
		metrics:      opts.MetricsHandler,
		errorAdapter: ferrors.NewHTTPErrorAdapter(slog.Default()),
		started:      time.Now(),
	}
	s.mchain = smw.Chain(slog.Default(), s.errorAdapter, s.recorder)
	return s
}

// PublicHandler serves the site and its JSON API.
func (s *Server) PublicHandler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(s.mchain)
	r.Use(s.canonicalHost)

	r.Route("/api", func(api chi.Router) {
		api.Get("/search", s.handleSearch)
		api.Get("/routes", s.handleRoutes)
		api.Get("/meta", s.handleMeta)
		api.Get("/posts", s.handlePosts)
		api.Get("/posts/{id}", s.handlePost)
		api.Get("/inquiries/options", s.handleInquiryOptions)
		api.Post("/inquiries/{kind}", s.handleSubmitInquiry)
		api.NotFound(func(w http.ResponseWriter, r *http.Request) {
			s.errorAdapter.WriteErrorResponse(w, r, ferrors.NotFoundError("unknown API endpoint").
				WithContext("path", r.URL.Path).Build())
		})
	})
	static := staticHandler{dist: s.dist}
	r.NotFound(static.ServeHTTP)
	r.MethodNotAllowed(static.ServeHTTP)

	if len(s.cfg.CORSOrigins) == 0 {
		return r
	}
	return cors.New(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(r)
}

// AdminHandler serves health, readiness, metrics and the inquiry listing.
func (s *Server) AdminHandler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.mchain)
	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReadiness)
	r.Get("/api/inquiries", s.handleListInquiries)
	if s.monitoring.Metrics.Enabled && s.metrics != nil {
		r.Handle(s.monitoring.Metrics.Path, s.metrics)
	}
	return r
}

// HealthResponse is the body of /healthz.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Commit    string    `json:"commit,omitempty"`
	Uptime    float64   `json:"uptime"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = writeJSONPretty(w, r, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   version.Version,
		Commit:    version.Commit(),
		Uptime:    time.Since(s.started).Seconds(),
	})
}

// handleReadiness reports ready once the prerendered index.html exists.
func (s *Server) handleReadiness(w http.ResponseWriter, _ *http.Request) {
	if st, err := os.Stat(filepath.Join(s.dist, "index.html")); err == nil && !st.IsDir() {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
		return
	}
	w.WriteHeader(http.StatusServiceUnavailable)
	_, _ = w.Write([]byte("not ready: index.html missing"))
}

// Run binds both listeners, serves until ctx is done and then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	type preBind struct {
		name string
		addr string
		ln   net.Listener
	}
	binds := []preBind{
		{name: "public", addr: s.cfg.Addr},
		{name: "admin", addr: s.cfg.AdminAddr},
	}
	// Pre-bind both ports so a conflict fails fast before anything is served.
	var bindErrs []error
	lc := net.ListenConfig{}
	for i := range binds {
		ln, err := lc.Listen(ctx, "tcp", binds[i].addr)
		if err != nil {
			bindErrs = append(bindErrs, fmt.Errorf("%s %s: %w", binds[i].name, binds[i].addr, err))
			continue
		}
		binds[i].ln = ln
	}
	if len(bindErrs) > 0 {
		for _, b := range binds {
			if b.ln != nil {
				_ = b.ln.Close()
			}
		}
		return ferrors.WrapError(errors.Join(bindErrs...), ferrors.CategoryRuntime, "http startup failed").Build()
	}

	servers := []*http.Server{
		{Handler: s.PublicHandler(), ReadTimeout: s.cfg.ReadTimeout, WriteTimeout: s.cfg.WriteTimeout, IdleTimeout: 120 * time.Second},
		{Handler: s.AdminHandler(), ReadTimeout: 30 * time.Second, WriteTimeout: 30 * time.Second, IdleTimeout: 120 * time.Second},
	}
	errCh := make(chan error, len(servers))
	for i, srv := range servers {
		go func() {
			if err := srv.Serve(binds[i].ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("%s server: %w", binds[i].name, err)
			}
		}()
	}
	slog.Info("HTTP servers started",
		slog.String("public_addr", binds[0].ln.Addr().String()),
		slog.String("admin_addr", binds[1].ln.Addr().String()))

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
		slog.Error("HTTP server failed", logfields.Error(runErr))
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	var errs []error
	for i := len(servers) - 1; i >= 0; i-- {
		if err := servers[i].Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("%s server shutdown: %w", binds[i].name, err))
		}
	}
	if len(errs) > 0 {
		return errors.Join(append(errs, runErr)...)
	}
	slog.Info("HTTP servers stopped")
	return runErr
}
