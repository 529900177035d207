// SPDX-License-Identifier: EPL-2.0

// Package server exposes the watermark operations over HTTP.
//
// Routes:
//
//   - POST /upload    multipart field "audio", returns watermarked_<name>
//   - POST /remove    multipart field "audio", returns unwatermarked_<name>
//   - GET  /api/nodes catalog nodes as JSON, 503 without a database
//   - GET  /healthz   liveness probe
//   - GET  /metrics   Prometheus exposition
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/ik5/wavmark"
	"github.com/ik5/wavmark/internal/catalog"
	"github.com/ik5/wavmark/internal/config"
)

const readHeaderTimeout = 10 * time.Second

// NodeLister is the part of the catalog the server reads.
type NodeLister interface {
	ListNodes(ctx context.Context) ([]catalog.Node, error)
}

// Server serves the HTTP API. Build it with [New].
type Server struct {
	cfg    config.ServerConfig
	marker *wavmark.Marker
	nodes  NodeLister
	log    *slog.Logger
	mux    *http.ServeMux
}

// New wires the routes. nodes may be nil, in which case /api/nodes answers
// 503. A nil logger uses slog.Default.
func New(cfg config.ServerConfig, marker *wavmark.Marker, nodes NodeLister, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}

	s := &Server{
		cfg:    cfg,
		marker: marker,
		nodes:  nodes,
		log:    log,
		mux:    http.NewServeMux(),
	}

	s.mux.HandleFunc("POST /upload", s.transform(opInsert))
	s.mux.HandleFunc("POST /remove", s.transform(opRemove))
	s.mux.HandleFunc("GET /api/nodes", s.handleNodes)
	s.mux.HandleFunc("GET /healthz", handleHealthz)
	s.mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Handler returns the root handler with CORS applied.
func (s *Server) Handler() http.Handler {
	return cors(s.cfg.AllowedOrigins, s.mux)
}

// Run listens on cfg.ListenAddr until ctx is cancelled, then shuts down
// gracefully within cfg.ShutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener. The listener is closed on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.Info("http server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		timeout := s.cfg.ShutdownTimeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		s.log.Info("http server shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
