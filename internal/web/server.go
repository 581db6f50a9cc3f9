package web

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"dokusho-feedback/internal/config"
	"dokusho-feedback/internal/llm"
	"dokusho-feedback/internal/session"
	"dokusho-feedback/internal/storage"
)

const sessionCookie = "dokusho_session"

// ClientFactory builds a model client for one (provider, model) pair.
// Satisfied by llm.Factory; tests substitute a fake.
type ClientFactory interface {
	CreateClient(ctx context.Context, provider config.Provider, model string) (llm.Client, error)
}

// Server is the single-page web UI: generate a passage, collect a
// reflection, score it, and show the score history.
type Server struct {
	sessions *session.Manager
	recorder storage.Recorder
	factory  ClientFactory
	provider config.Provider
	port     int
	server   *http.Server
	tmpl     *template.Template
	now      func() time.Time
}

func NewServer(sessions *session.Manager, recorder storage.Recorder, factory ClientFactory, provider config.Provider, port int) *Server {
	return &Server{
		sessions: sessions,
		recorder: recorder,
		factory:  factory,
		provider: provider,
		port:     port,
		tmpl:     template.Must(template.New("page").Parse(pageTemplate)),
		now:      time.Now,
	}
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/history", s.handleHistory)
	mux.HandleFunc("/generate", s.handleGenerate)
	mux.HandleFunc("/feedback", s.handleFeedback)
	mux.HandleFunc("/", s.handleIndex)
	return mux
}

// Start blocks serving HTTP until Stop or a listener error.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute, // handlers block on the model call
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("starting web server on http://localhost:%d", s.port)
	return s.server.ListenAndServe()
}

func (s *Server) Stop() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}

// sessionFor returns the browser's session, creating one and setting
// the cookie on first contact.
func (s *Server) sessionFor(w http.ResponseWriter, r *http.Request) *session.Session {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return s.sessions.Get(c.Value)
	}
	id, err := session.NewID()
	if err != nil {
		log.Printf("session id generation failed: %v", err)
		id = "fallback"
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return s.sessions.Get(id)
}
