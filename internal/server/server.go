package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/career-coach/internal/history"
	"github.com/jonathan/career-coach/internal/server/middleware"
	"github.com/jonathan/career-coach/internal/session"
	"github.com/jonathan/career-coach/internal/store"
)

// Server represents the HTTP server.
type Server struct {
	httpServer *http.Server
	controller *session.Controller
	store      *store.Store
	history    *history.Log
	jwtService *JWTService
	log        *zap.Logger
}

// Config holds server configuration.
type Config struct {
	Port       string
	Controller *session.Controller
	Store      *store.Store
	History    *history.Log
	JWTService *JWTService
	Logger     *zap.Logger
}

// New creates a new server instance.
func New(cfg Config) *Server {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		controller: cfg.Controller,
		store:      cfg.Store,
		history:    cfg.History,
		jwtService: cfg.JWTService,
		log:        log,
	}

	auth := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /pricing", s.handlePricing)

	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("POST /auth/logout", s.handleLogout)
	mux.HandleFunc("GET /session", s.handleSession)

	// Candidate endpoints, scoped to the authenticated contact.
	mux.Handle("GET /profile", auth(http.HandlerFunc(s.handleProfile)))
	mux.Handle("POST /analyze", auth(http.HandlerFunc(s.handleAnalyze)))
	mux.Handle("POST /generate-cv", auth(http.HandlerFunc(s.handleGenerateCV)))
	mux.Handle("POST /courses/{course_id}/complete", auth(http.HandlerFunc(s.handleCompleteCourse)))
	mux.Handle("POST /tier", auth(http.HandlerFunc(s.handleChangeTier)))
	mux.Handle("POST /tier/renew", auth(http.HandlerFunc(s.handleRenewTier)))
	mux.Handle("POST /ucas-statement", auth(http.HandlerFunc(s.handleUCASStatement)))
	mux.Handle("POST /suggest-careers", auth(http.HandlerFunc(s.handleSuggestCareers)))
	mux.Handle("GET /history", auth(http.HandlerFunc(s.handleListHistory)))
	mux.Handle("DELETE /history/{id}", auth(http.HandlerFunc(s.handleDeleteHistory)))

	// Recruiter portal endpoints.
	mux.HandleFunc("GET /clients", s.handleListClients)
	mux.HandleFunc("POST /clients", s.handleAddClient)
	mux.HandleFunc("GET /vacancies", s.handleListVacancies)
	mux.HandleFunc("POST /rank", s.handleRank)
	mux.HandleFunc("POST /place", s.handlePlace)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // AI calls can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}

	s.log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.log.Info("server stopped")
	return nil
}

// Handler exposes the configured routes, used by tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// withCORS adds CORS headers.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("request handled",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)))
	})
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("failed to encode response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
