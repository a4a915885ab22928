// Package server provides the EduGenie HTTP server: a single-page chat UI
// plus a small JSON API backed by one transcript per browser session.
package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/edugenie/edugenie/internal/config"
	"github.com/edugenie/edugenie/internal/features"
	"github.com/edugenie/edugenie/internal/llm"
	"github.com/edugenie/edugenie/internal/session"
)

// sessionCookie carries the browser session id. The cookie is the only
// session handle; losing it (or restarting the server) starts a fresh
// transcript.
const sessionCookie = "edugenie_session"

const greeting = "Hi! I am EduGenie. Ask me anything about your studies, " +
	"topics, or exam preparation."

// Server is the EduGenie HTTP server.
type Server struct {
	config   *config.Config
	store    *session.Store
	provider llm.Provider
	tools    *features.Features
	router   chi.Router
}

// New creates a Server with all dependencies.
func New(cfg *config.Config, store *session.Store, provider llm.Provider) *Server {
	s := &Server{
		config:   cfg,
		store:    store,
		provider: provider,
		tools:    features.New(provider),
	}
	s.router = s.buildRouter()
	return s
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the HTTP server until the context is cancelled, then shuts
// down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.config.ServerAddr,
		Handler: s.router,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("EduGenie listening on %s (model %s)", s.config.ServerAddr, s.config.Model)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Minute))

	r.Get("/", s.handleIndex)

	r.Route("/api", func(r chi.Router) {
		r.Get("/messages", s.handleGetMessages)
		r.Post("/chat", s.handleChat)
		r.Post("/clear", s.handleClear)
		r.Post("/settings", s.handleSettings)
		r.Post("/tools/{tool}", s.handleTool)
		r.Get("/insights", s.handleInsights)
	})

	// Health check.
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	return r
}

// resolveSession returns the browser session for the request, creating one
// (seeded with the assistant greeting) when the cookie is absent or stale.
func (s *Server) resolveSession(w http.ResponseWriter, r *http.Request) (*session.Session, error) {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		sess, err := s.store.GetSession(c.Value)
		if err == nil {
			return sess, nil
		}
		// Only an unknown session id falls through to a fresh session; a
		// failing store must not silently reset the user's transcript.
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
	}

	sess := &session.Session{ID: uuid.New().String()}
	if err := s.store.CreateSession(sess); err != nil {
		return nil, err
	}
	if err := s.store.AppendMessage(&session.Message{
		SessionID: sess.ID,
		Role:      string(llm.RoleAssistant),
		Content:   greeting,
	}); err != nil {
		return nil, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess, nil
}

// --- Response helpers ---

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
