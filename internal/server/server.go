package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/applytrack/internal/config"
	"github.com/jonathan/applytrack/internal/db"
	"github.com/jonathan/applytrack/internal/drive"
	"github.com/jonathan/applytrack/internal/fetch"
	"github.com/jonathan/applytrack/internal/ingestion"
	"github.com/jonathan/applytrack/internal/latex"
	"github.com/jonathan/applytrack/internal/llm"
	"github.com/jonathan/applytrack/internal/server/middleware"
	"github.com/jonathan/applytrack/internal/server/ratelimit"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	store       DBClient
	ai          AIClient
	files       FileStore
	pipeline    *ingestion.Pipeline
	compiler    *latex.Compiler
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
	validator   *validator.Validate

	db        *db.DB     // non-nil only when New owns the connection
	llmClient llm.Client // non-nil only when New owns the client
}

// New creates a server from validated configuration, connecting the database,
// applying the schema, and constructing the AI gateway and ingestion pipeline.
func New(cfg *config.Config) (*Server, error) {
	ctx := context.Background()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, err
	}

	llmClient, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, "")
	if err != nil {
		database.Close()
		return nil, err
	}
	gateway := llm.NewGateway(llmClient)

	var files FileStore
	if cfg.DriveCredentialsFile != "" {
		store, err := drive.NewStore(ctx, cfg.DriveCredentialsFile, cfg.DriveFolderID)
		if err != nil {
			database.Close()
			return nil, err
		}
		files = store
	}

	fetcher := fetch.NewPageFetcher()
	pipeline := ingestion.New(database, gateway, fetcher, cfg.IngestConcurrency, cfg.GatewayTimeout)

	s, err := newServer(database, gateway, files, pipeline)
	if err != nil {
		database.Close()
		return nil, err
	}
	s.db = database
	s.llmClient = llmClient

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // bulk URL ingestion can take a while
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// newServer wires the handler-facing pieces. Tests call this directly with
// in-memory collaborators.
func newServer(store DBClient, ai AIClient, files FileStore, pipeline *ingestion.Pipeline) (*Server, error) {
	s := &Server{
		store:     store,
		ai:        ai,
		files:     files,
		pipeline:  pipeline,
		compiler:  latex.NewCompiler(),
		validator: validator.New(),
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(store, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	return s, nil
}

// Handler builds the route table with the middleware chain applied. Everything
// except the health check and the register/login endpoints requires a bearer
// token.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	// Authentication
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)

	auth := middleware.Auth(s.jwtService.AsTokenValidator())
	protected := func(h http.HandlerFunc) http.Handler { return auth(h) }

	mux.Handle("PUT /users/{id}/password", protected(s.handleUpdatePassword))

	// Users
	mux.Handle("POST /users", protected(s.handleCreateUser))
	mux.Handle("GET /users", protected(s.handleListUsers))
	mux.Handle("GET /users/{id}", protected(s.handleGetUser))
	mux.Handle("PUT /users/{id}", protected(s.handleUpdateUser))
	mux.Handle("DELETE /users/{id}", protected(s.handleDeleteUser))
	mux.Handle("GET /users/{id}/stats", protected(s.handleUserStats))

	// Applications
	mux.Handle("GET /users/{id}/applications", protected(s.handleListApplications))
	mux.Handle("POST /users/{id}/applications", protected(s.handleCreateApplication))
	mux.Handle("GET /applications/{id}", protected(s.handleGetApplication))
	mux.Handle("PUT /applications/{id}", protected(s.handleUpdateApplication))
	mux.Handle("PATCH /applications/{id}/status", protected(s.handleUpdateApplicationStatus))
	mux.Handle("DELETE /applications/{id}", protected(s.handleDeleteApplication))

	// Bulk ingestion
	mux.Handle("POST /applications/bulk", protected(s.handleBulkAdd))
	mux.Handle("POST /applications/bulk-urls", protected(s.handleBulkAddURLs))

	// Resumes
	mux.Handle("GET /users/{id}/resumes", protected(s.handleListResumes))
	mux.Handle("POST /users/{id}/resumes", protected(s.handleCreateResume))
	mux.Handle("GET /resumes/{id}", protected(s.handleGetResume))
	mux.Handle("PUT /resumes/{id}", protected(s.handleUpdateResume))
	mux.Handle("DELETE /resumes/{id}", protected(s.handleDeleteResume))
	mux.Handle("POST /resumes/{id}/compile", protected(s.handleCompileResume))

	// AI operations
	mux.Handle("POST /ai/keywords", protected(s.handleExtractKeywords))
	mux.Handle("POST /ai/score", protected(s.handleScoreResume))

	return s.withRateLimit(s.withLogging(s.withCORS(mux)))
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.llmClient != nil {
		_ = s.llmClient.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleUpdatePassword handles password update requests.
func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	s.authHandler.UpdatePassword(w, r)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier (IP address) from the request.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
