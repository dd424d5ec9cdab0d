// Package httpapi exposes the assistant over HTTP: the chat endpoint, the
// direct calendar/mail endpoints the web client uses, and session exchange.
package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/sandevgo/netnavi/internal/config"
	"github.com/sandevgo/netnavi/internal/core"
	"github.com/sandevgo/netnavi/internal/service/session"
	"github.com/sandevgo/netnavi/internal/service/triage"
	"github.com/sandevgo/netnavi/pkg/log"
)

type Responder interface {
	Respond(ctx context.Context, sess *session.Session, message string) (string, error)
}

type MailAnalyzer interface {
	Analyze(ctx context.Context, subject, body, sender string) triage.Verdict
}

type Server struct {
	agent    Responder
	calendar core.Calendar
	mail     core.Mail
	analyzer MailAnalyzer
	sessions *session.Store
	logger   zerolog.Logger

	httpServer *http.Server
}

func NewServer(
	cfg *config.ServerConfig,
	logger zerolog.Logger,
	agent Responder,
	calendar core.Calendar,
	mail core.Mail,
	analyzer MailAnalyzer,
	sessions *session.Store,
) *Server {
	s := &Server{
		agent:    agent,
		calendar: calendar,
		mail:     mail,
		analyzer: analyzer,
		sessions: sessions,
		logger:   logger,
	}
	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Router(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.Use(s.loggerMiddleware, recoveryMiddleware, s.sessionMiddleware)

	router.HandleFunc("/health", s.Health).Methods(http.MethodGet)
	router.HandleFunc("/chat", s.Chat).Methods(http.MethodPost)
	router.HandleFunc("/mail/check", s.CheckMail).Methods(http.MethodPost)
	router.HandleFunc("/mail/reply", s.SendReply).Methods(http.MethodPost)
	router.HandleFunc("/schedule", s.ListSchedules).Methods(http.MethodGet)
	router.HandleFunc("/schedule", s.CreateSchedule).Methods(http.MethodPost)
	router.HandleFunc("/auth/session", s.CreateSession).Methods(http.MethodPost)

	return router
}

func (s *Server) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("addr", s.httpServer.Addr).Msg("starting HTTP server")

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
