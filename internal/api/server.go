package api

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"expvar"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ajitpratap0/legacyloop/internal/content"
	"github.com/ajitpratap0/legacyloop/internal/engagement"
	"github.com/ajitpratap0/legacyloop/internal/session"
	"github.com/ajitpratap0/legacyloop/internal/store"
)

const (
	// SessionHeader carries the session id on API requests.
	SessionHeader = "X-Session-ID"
	// SessionCookie carries the session id for browser clients.
	SessionCookie = "legacyloop_session"

	maxBodyBytes = 1 << 20 // 1 MB
)

// Server is an HTTP API server that exposes per-session portfolio,
// engagement and generated-content operations.
type Server struct {
	sessions  *session.Manager
	content   *content.Service
	logger    *slog.Logger
	authToken string // empty = no auth required
}

// NewServer creates a new Server with the given dependencies.
func NewServer(sessions *session.Manager, svc *content.Service, logger *slog.Logger, authToken string) *Server {
	return &Server{
		sessions:  sessions,
		content:   svc,
		logger:    logger,
		authToken: authToken,
	}
}

// sessionHandler is a handler that runs against a resolved session.
type sessionHandler func(w http.ResponseWriter, r *http.Request, sess *session.Session)

// Handler returns an http.Handler with all routes registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Health check, no auth required.
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.Handle("GET /debug/vars", s.auth(expvar.Handler().ServeHTTP))

	mux.HandleFunc("GET /v1/catalog/asset-types", s.auth(s.handleAssetTypes))
	mux.HandleFunc("GET /v1/catalog/profiles", s.auth(s.handleProfiles))

	mux.HandleFunc("POST /v1/sessions", s.auth(s.handleCreateSession))
	mux.HandleFunc("DELETE /v1/sessions/{id}", s.auth(s.handleDeleteSession))

	mux.HandleFunc("GET /v1/session", s.withSession(s.handleGetSession))
	mux.HandleFunc("PUT /v1/session/role", s.withSession(s.handleSetRole))
	mux.HandleFunc("PUT /v1/session/ui", s.withSession(s.handleSetUI))

	mux.HandleFunc("GET /v1/assets", s.withSession(s.handleListAssets))
	mux.HandleFunc("POST /v1/assets", s.withSession(s.handleAddAsset))
	mux.HandleFunc("GET /v1/assets/{id}", s.withSession(s.handleGetAsset))
	mux.HandleFunc("PATCH /v1/assets/{id}", s.withSession(s.handleUpdateAsset))
	mux.HandleFunc("DELETE /v1/assets/{id}", s.withSession(s.handleDeleteAsset))
	mux.HandleFunc("GET /v1/assets/{id}/explanation", s.withSession(s.handleExplainAsset))
	mux.HandleFunc("GET /v1/portfolio/summary", s.withSession(s.handleSummary))

	mux.HandleFunc("GET /v1/heir/feed", s.withSession(s.handleHeirFeed))

	mux.HandleFunc("POST /v1/engagement", s.withSession(s.handleAskAdvisor))
	mux.HandleFunc("GET /v1/engagement", s.withSession(s.handleListEngagement))
	mux.HandleFunc("GET /v1/engagement/metrics", s.withSession(s.handleMetrics))

	mux.HandleFunc("GET /v1/mission", s.withSession(s.handleGetMission))
	mux.HandleFunc("POST /v1/mission", s.withSession(s.handleDraftMission))
	mux.HandleFunc("POST /v1/mission/regenerate", s.withSession(s.handleRegenerateMission))

	mux.HandleFunc("POST /v1/advisor/email", s.withSession(s.handleAdvisorEmail))

	return mux
}

// --- middleware ---

// auth wraps a handler with Bearer token authentication when authToken is set.
func (s *Server) auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.authToken == "" {
			next(w, r)
			return
		}
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(s.authToken)) != 1 {
			s.writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, r)
	}
}

// withSession authenticates the request and resolves its session from the
// X-Session-ID header, falling back to the session cookie.
func (s *Server) withSession(next sessionHandler) http.HandlerFunc {
	return s.auth(func(w http.ResponseWriter, r *http.Request) {
		id := sessionID(r)
		if id == "" {
			s.writeError(w, http.StatusBadRequest, "session id is required")
			return
		}
		sess, err := s.sessions.Get(id)
		if err != nil {
			s.writeError(w, http.StatusNotFound, "session not found")
			return
		}
		next(w, r, sess)
	})
}

func sessionID(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(SessionHeader)); id != "" {
		return id
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}

// --- helpers ---

// decode reads a JSON body of at most maxBodyBytes into v.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

// writeJSON encodes v as JSON and writes it to w with the given status code.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(v); encErr != nil {
		s.logger.Error("failed to encode response", "error", encErr)
	}
}

// writeError writes a JSON error response.
func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// writeDomainError maps a domain error to its HTTP status.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrValidation),
		errors.Is(err, engagement.ErrEmptyAsset),
		errors.Is(err, session.ErrUnknownRole):
		s.writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("request failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// Shutdown gracefully shuts down an http.Server with the given timeout.
// This is a convenience helper used by the serve command.
func Shutdown(srv *http.Server, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
