package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/hpgl2svg"
	"github.com/aretw0/hpgl2svg/pkg/domain"
	"github.com/aretw0/hpgl2svg/pkg/observability"
	"github.com/aretw0/hpgl2svg/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request identifier in both directions.
const RequestIDHeader = "X-Request-ID"

// DefaultMaxBodyBytes bounds the size of uploaded programs.
const DefaultMaxBodyBytes = 8 << 20

// Converter defines the conversion core used by the handlers.
type Converter interface {
	Convert(ctx context.Context, r io.Reader, sink ports.Sink) (*domain.Summary, error)
	Inspect(ctx context.Context, r io.Reader) (*domain.Summary, error)
}

// SinkFactory builds the sink for a format name and reports the document content type.
// An unknown format is an error.
type SinkFactory func(format string, w io.Writer) (ports.Sink, string, error)

// Server holds the HTTP handlers.
type Server struct {
	Converter Converter
	Sinks     SinkFactory
	Metrics   *observability.Metrics
	Logger    *slog.Logger
	MaxBody   int64
}

// Option configures the Server.
type Option func(*Server)

// WithMetrics records conversions and serves GET /metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) {
		s.Metrics = m
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// WithMaxBodyBytes bounds the request body.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		s.MaxBody = n
	}
}

// NewHandler creates a new HTTP handler for the converter.
func NewHandler(conv Converter, sinks SinkFactory, opts ...Option) http.Handler {
	server := &Server{
		Converter: conv,
		Sinks:     sinks,
		Logger:    slog.Default(),
		MaxBody:   DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)

	r.Post("/convert", server.Convert)
	r.Post("/inspect", server.Inspect)
	r.Get("/healthz", server.GetHealth)
	if server.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", server.Metrics.Handler())
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+RequestIDHeader)
		w.Header().Set("Access-Control-Expose-Headers", RequestIDHeader)
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type requestIDKey struct{}

// requestID propagates the caller's X-Request-ID or assigns a fresh UUID.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

// RequestID returns the identifier assigned to the request carried by ctx.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func (s *Server) logger(r *http.Request) *slog.Logger {
	return s.Logger.With("request_id", RequestID(r.Context()))
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id"`
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: err.Error(), RequestID: RequestID(r.Context())})
}

// statusFor maps conversion errors to HTTP status codes.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, hpgl2svg.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusUnprocessableEntity
}

func (s *Server) observe(start time.Time, err error) {
	if s.Metrics != nil {
		s.Metrics.ObserveConversion(start, err, hpgl2svg.ErrInvalidInput)
	}
}

// Convert handles the POST /convert request.
// The body is the HPGL program; the response is the rendered document.
func (s *Server) Convert(w http.ResponseWriter, r *http.Request) {
	log := s.logger(r)
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "svg"
	}

	var doc strings.Builder
	sink, contentType, err := s.Sinks(format, &doc)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		log.Warn("Convert: Invalid format", "format", format, "err", err)
		return
	}

	start := time.Now()
	body := http.MaxBytesReader(w, r.Body, s.MaxBody)
	summary, err := s.Converter.Convert(r.Context(), body, sink)
	s.observe(start, err)
	if err != nil {
		status := statusFor(err)
		s.fail(w, r, status, err)
		log.Warn("Convert failed", "status", status, "err", err)
		return
	}

	log.Info("Converted", "format", format, "segments", summary.Segments, "bytes", doc.Len(), "duration", time.Since(start))
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-HPGL-Segments", fmt.Sprint(summary.Segments))
	io.WriteString(w, doc.String())
}

// Inspect handles the POST /inspect request.
func (s *Server) Inspect(w http.ResponseWriter, r *http.Request) {
	log := s.logger(r)

	start := time.Now()
	body := http.MaxBytesReader(w, r.Body, s.MaxBody)
	summary, err := s.Converter.Inspect(r.Context(), body)
	s.observe(start, err)
	if err != nil {
		status := statusFor(err)
		s.fail(w, r, status, err)
		log.Warn("Inspect failed", "status", status, "err", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(summary); err != nil {
		log.Error("Inspect response encode failed", "err", err)
	}
}

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{
		"status":  "ok",
		"app":     "hpgl2svg-http",
		"version": strings.TrimSpace(hpgl2svg.Version),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
