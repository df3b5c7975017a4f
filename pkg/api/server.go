// Package api serves the wordgraph pipeline over HTTP.
//
// # Endpoints
//
//	GET  /healthz              liveness and build version
//	POST /v1/count             plain text body → ordered counts (JSON)
//	POST /v1/layout            {"text"|"counts", "config"} → layout (JSON)
//	POST /v1/render?format=svg plain text or layout JSON body → artifact
//
// Render accepts the query parameters format, style, scale, flow, seed,
// title and boxes. A request body with Content-Type application/json is
// taken as a previously computed layout and only re-rendered.
//
// Errors are returned as JSON with the machine-readable code from
// [errors.Code] and an HTTP status derived from it. Every response carries
// an X-Request-ID header; a well-formed incoming one is kept.
package api

import (
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/wordgraph/pkg/pipeline"
)

// DefaultMaxBodyBytes caps request bodies.
const DefaultMaxBodyBytes = 10 << 20

// Server holds the handlers' shared state.
type Server struct {
	runner   *pipeline.Runner
	logger   *log.Logger
	defaults pipeline.Options
	maxBody  int64
}

// Option configures a [Server].
type Option func(*Server)

// WithLogger sets the request logger. The default discards.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDefaults sets the pipeline options requests start from. Source fields
// (Text, Paths, Reader) are ignored.
func WithDefaults(opts pipeline.Options) Option {
	return func(s *Server) {
		opts.Text, opts.Paths, opts.Reader = "", nil, nil
		s.defaults = opts
	}
}

// WithMaxBodyBytes caps request bodies at n bytes. n <= 0 keeps the default.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// New returns a server that runs requests through runner.
func New(runner *pipeline.Runner, opts ...Option) *Server {
	s := &Server{
		runner:  runner,
		logger:  log.NewWithOptions(io.Discard, log.Options{}),
		maxBody: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Use(s.limitBody)
		r.Post("/count", s.handleCount)
		r.Post("/layout", s.handleLayout)
		r.Post("/render", s.handleRender)
	})
	return r
}

// NewHTTPServer wraps the handler in an http.Server with conservative
// timeouts. Rendering large clouds is CPU bound, so the write timeout is
// generous.
func (s *Server) NewHTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}
}

func (s *Server) limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
		next.ServeHTTP(w, r)
	})
}

// options returns a copy of the server defaults for one request.
func (s *Server) options() pipeline.Options {
	opts := s.defaults
	opts.Formats = append([]string(nil), s.defaults.Formats...)
	opts.Logger = s.logger
	return opts
}
