package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/san-kum/qwalk/internal/chart"
	"github.com/san-kum/qwalk/internal/config"
	"github.com/san-kum/qwalk/internal/walk"
)

const (
	svgWidth  = 800
	svgHeight = 450
)

// Config holds server configuration
type Config struct {
	Addr     string
	Log      zerolog.Logger
	Registry *walk.Registry
	Defaults walk.Params
}

// Server serves walk figures over HTTP.
type Server struct {
	router   *chi.Mux
	server   *http.Server
	log      zerolog.Logger
	registry *walk.Registry
	defaults walk.Params
}

func New(cfg Config) *Server {
	reg := cfg.Registry
	if reg == nil {
		reg = walk.NewRegistry()
	}
	s := &Server{
		router:   chi.NewRouter(),
		log:      cfg.Log.With().Str("component", "server").Logger(),
		registry: reg,
		defaults: cfg.Defaults,
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/walk", s.handleWalk)
		r.Get("/walk.svg", s.handleWalkSVG)
		r.Get("/presets", s.handlePresets)
		r.Get("/presets/{walk}", s.handlePresets)
	})
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("starting HTTP server")
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("query", r.URL.RawQuery).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"walks":  s.registry.List(),
	})
}

func (s *Server) handleWalk(w http.ResponseWriter, r *http.Request) {
	d, status, err := s.compute(r)
	if err != nil {
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, chart.NewFigure(d))
}

func (s *Server) handleWalkSVG(w http.ResponseWriter, r *http.Request) {
	d, status, err := s.compute(r)
	if err != nil {
		writeError(w, status, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(chart.SVG(d, svgWidth, svgHeight)))
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	if name := chi.URLParam(r, "walk"); name != "" {
		presets := config.ListPresets(name)
		if presets == nil {
			writeError(w, http.StatusNotFound, walk.ErrUnknownWalk)
			return
		}
		writeJSON(w, http.StatusOK, presets)
		return
	}
	out := make(map[string][]string, len(config.Presets))
	for name := range config.Presets {
		out[name] = config.ListPresets(name)
	}
	writeJSON(w, http.StatusOK, out)
}

// compute runs the walk described by the query. A missing or unknown walk
// type yields a nil distribution (an empty figure) rather than an error.
func (s *Server) compute(r *http.Request) (*walk.Distribution, int, error) {
	p, err := s.parseParams(r)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}

	start := time.Now()
	d, err := s.registry.Run(r.Context(), p)
	switch {
	case errors.Is(err, walk.ErrUnknownWalk):
		s.log.Warn().Str("type", string(p.Kind)).Msg("no walk type selected, returning empty figure")
		return nil, http.StatusOK, nil
	case errors.Is(err, walk.ErrParameterBounds), errors.Is(err, walk.ErrUnknownCoin):
		return nil, http.StatusBadRequest, err
	case err != nil:
		return nil, http.StatusInternalServerError, err
	}

	s.log.Debug().
		Str("walk", string(p.Kind)).
		Int("steps", p.Steps).
		Int("repetitions", p.Repetitions).
		Int("bins", d.Len()).
		Dur("elapsed", time.Since(start)).
		Msg("walk computed")
	return d, http.StatusOK, nil
}

func (s *Server) parseParams(r *http.Request) (walk.Params, error) {
	q := r.URL.Query()
	p := s.defaults

	if v := q.Get("type"); v != "" {
		p.Kind = walk.Kind(v)
		if kind, err := walk.ParseKind(v); err == nil {
			p.Kind = kind
		}
	}
	if v := q.Get("coin"); v != "" {
		coin, err := walk.ParseCoin(v)
		if err != nil {
			return p, err
		}
		p.Coin = coin
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"qubits", &p.Qubits},
		{"steps", &p.Steps},
		{"repetitions", &p.Repetitions},
	}
	for _, f := range ints {
		if v := q.Get(f.name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return p, &paramError{name: f.name, err: err}
			}
			*f.dst = n
		}
	}

	if v := q.Get("start"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return p, &paramError{name: "start", err: err}
		}
		p.Start = &n
	}
	if v := q.Get("bias"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return p, &paramError{name: "bias", err: err}
		}
		p.Bias = f
	}
	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return p, &paramError{name: "seed", err: err}
		}
		p.Seed = seed
	}
	return p, nil
}

type paramError struct {
	name string
	err  error
}

func (e *paramError) Error() string { return "invalid " + e.name + ": " + e.err.Error() }
func (e *paramError) Unwrap() error { return e.err }

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
