package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/aretw0/folio/internal/logging"
	"github.com/aretw0/folio/pkg/carousel"
	"github.com/aretw0/folio/pkg/content"
	"github.com/aretw0/folio/pkg/domain"
	"github.com/aretw0/folio/pkg/i18n"
	"github.com/aretw0/folio/pkg/ports"
	"github.com/aretw0/folio/pkg/registry"
	"github.com/go-chi/chi/v5"
)

const (
	// SessionParam and SessionHeader carry the visitor session id.
	SessionParam  = "session_id"
	SessionHeader = "X-Session-ID"

	// PublicSession is used when a request names no session.
	PublicSession = "public"
)

var sessionPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// Sessions hands out the carousel of a visitor session.
// *session.Manager implements it.
type Sessions interface {
	Get(ctx context.Context, sessionID string) (*carousel.Controller, error)
	Acquire(ctx context.Context, sessionID string) (*carousel.Controller, func(), error)
	// Lookup returns a mounted carousel without creating one.
	Lookup(sessionID string) (*carousel.Controller, error)
}

// Server serves the portfolio page and the carousel API.
type Server struct {
	sessions    Sessions
	slides      *registry.Registry
	broadcaster ports.Broadcaster
	catalog     *i18n.Catalog
	library     *content.Library
	metrics     http.Handler
	logger      *slog.Logger
	theme       domain.Theme
	version     string
}

// Option configures a Server.
type Option func(*Server)

// WithBroadcaster enables GET /api/events. Without it the endpoint answers 501.
func WithBroadcaster(b ports.Broadcaster) Option {
	return func(s *Server) { s.broadcaster = b }
}

func WithCatalog(c *i18n.Catalog) Option {
	return func(s *Server) { s.catalog = c }
}

func WithContent(l *content.Library) Option {
	return func(s *Server) { s.library = l }
}

// WithMetrics mounts h on GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) { s.metrics = h }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithDefaultTheme sets the theme used when a request does not pick one.
func WithDefaultTheme(t domain.Theme) Option {
	return func(s *Server) { s.theme = t }
}

func WithVersion(v string) Option {
	return func(s *Server) { s.version = strings.TrimSpace(v) }
}

// NewHandler creates the HTTP handler for a set of sessions over slides.
func NewHandler(sessions Sessions, slides *registry.Registry, opts ...Option) (http.Handler, error) {
	if slides == nil || slides.Len() == 0 {
		return nil, domain.ErrEmptyRegistry
	}
	s := &Server{
		sessions: sessions,
		slides:   slides,
		catalog:  i18n.Default(),
		library:  content.Default(),
		logger:   logging.NewNop(),
		theme:    domain.ThemeSystem,
		version:  "dev",
	}
	for _, opt := range opts {
		opt(s)
	}

	validate, err := requestValidator()
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(enableCORS)

	r.Get("/", s.Page)
	r.Get("/health", s.GetHealth)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(openapiSpec)
	})
	r.Get("/ws", s.ServeWebSocket)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(validate)
		r.Get("/carousel", s.GetCarousel)
		r.Post("/carousel/next", s.intentHandler(domain.IntentNext))
		r.Post("/carousel/prev", s.intentHandler(domain.IntentPrev))
		r.Post("/carousel/pause", s.intentHandler(domain.IntentPause))
		r.Post("/carousel/resume", s.intentHandler(domain.IntentResume))
		r.Post("/carousel/goto/{index}", s.GoTo)
		r.Get("/slides", s.GetSlides)
		r.Get("/events", s.SubscribeEvents)
	})

	return r, nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+SessionHeader)
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"app":     "folio",
		"version": s.version,
	})
}

// sessionID resolves the session of a request. ok is false for malformed ids.
func sessionID(r *http.Request) (id string, ok bool) {
	id = strings.TrimSpace(r.URL.Query().Get(SessionParam))
	if id == "" {
		id = strings.TrimSpace(r.Header.Get(SessionHeader))
	}
	if id == "" {
		return PublicSession, true
	}
	return id, sessionPattern.MatchString(id)
}

func (s *Server) controller(w http.ResponseWriter, r *http.Request) (*carousel.Controller, bool) {
	id, ok := sessionID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return nil, false
	}
	c, err := s.sessions.Get(r.Context(), id)
	if err != nil {
		s.fail(w, err, "session_id", id)
		return nil, false
	}
	return c, true
}

// fail maps domain errors onto status codes.
func (s *Server) fail(w http.ResponseWriter, err error, args ...any) {
	var verr *registry.ValidationError
	switch {
	case errors.Is(err, domain.ErrClosed):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, domain.ErrSessionLimit):
		w.Header().Set("Retry-After", "60")
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, domain.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnknownIntent), errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.Canceled):
		// Client went away.
	default:
		s.logger.Error("request failed", append(args, "err", err)...)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
