// Package server exposes a store over a small HTTP API for previewing
// expansions in a browser or from scripts.
package server

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/nodeshift/pkg/cache"
	"github.com/matzehuels/nodeshift/pkg/classify"
	"github.com/matzehuels/nodeshift/pkg/core/cascade"
	"github.com/matzehuels/nodeshift/pkg/core/trigger"
	"github.com/matzehuels/nodeshift/pkg/graph"
	"github.com/matzehuels/nodeshift/pkg/store"
)

// Options configures a Server.
type Options struct {
	// ExpandHeight is used when a request does not give a height.
	ExpandHeight float64

	// RootType overrides the graph's root type when set.
	RootType graph.RootType

	// Cascade is passed to every plan and expansion.
	Cascade []cascade.Option

	// Cache stores rendered previews. Nil disables caching.
	Cache    cache.Cache
	CacheTTL time.Duration

	// Logger receives one debug line per request. Nil discards.
	Logger *log.Logger
}

// Server serves one store. At most one expansion is active at a time.
type Server struct {
	store *store.Store
	rules classify.Rules
	opts  Options
	cache cache.Cache
	keyer cache.Keyer

	mu      sync.Mutex
	watcher *trigger.Watcher
	active  *Expansion
}

// Expansion describes the applied expansion.
type Expansion struct {
	ID       string          `json:"id"`
	Height   float64         `json:"height"`
	RootType string          `json:"root_type"`
	Moves    cascade.MoveSet `json:"moves"`
	Total    float64         `json:"total"`
}

// New creates a server over st.
func New(st *store.Store, rules classify.Rules, opts Options) *Server {
	if rules == nil {
		rules = classify.DefaultRules()
	}
	c := opts.Cache
	if c == nil {
		c = cache.NewNullCache()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	s := &Server{
		store: st,
		rules: rules,
		opts:  opts,
		cache: c,
		keyer: cache.NewDefaultKeyer(),
	}
	s.watcher = trigger.NewWatcher(s.run)
	return s
}

func (s *Server) cascadeOptions() []cascade.Option {
	return s.opts.Cascade
}

// run is the watcher callback; it records the applied moves.
// Called with s.mu held.
func (s *Server) run(in trigger.Inputs) func() {
	moves, cleanup := cascade.ExpandMoves(in.Source, cascade.Request{
		ID:                 in.ID,
		ExpandHeight:       in.ExpandHeight,
		RootType:           in.RootType,
		IsTransformational: s.rules.IsTransformational,
	}, s.cascadeOptions()...)

	s.active = &Expansion{
		ID:       in.ID,
		Height:   in.ExpandHeight,
		RootType: string(in.RootType),
		Moves:    moves,
		Total:    moves.Total(),
	}
	return func() {
		cleanup()
		s.active = nil
	}
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/graph", s.handleGraph)
		r.Get("/nodes/{id}/plan", s.handlePlan)
		r.Post("/nodes/{id}/expand", s.handleExpand)
		r.Post("/collapse", s.handleCollapse)
		r.Get("/render.svg", s.handleRender)
	})
	return r
}

// Close collapses the active expansion.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watcher.Close()
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully and collapses any active expansion.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.Close()
	return err
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.opts.Logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"id", middleware.GetReqID(r.Context()),
			"took", time.Since(start).Round(time.Microsecond))
	})
}
