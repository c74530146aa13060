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

	"github.com/google/uuid"

	"github.com/ramanhiring/hiring-agent/internal/ai"
	"github.com/ramanhiring/hiring-agent/internal/assessment"
	"github.com/ramanhiring/hiring-agent/internal/config"
	"github.com/ramanhiring/hiring-agent/internal/db"
	"github.com/ramanhiring/hiring-agent/internal/llm"
	"github.com/ramanhiring/hiring-agent/internal/mailer"
	"github.com/ramanhiring/hiring-agent/internal/realtime"
	"github.com/ramanhiring/hiring-agent/internal/server/middleware"
	"github.com/ramanhiring/hiring-agent/internal/server/ratelimit"
	"github.com/ramanhiring/hiring-agent/internal/shortlist"
	"github.com/ramanhiring/hiring-agent/internal/storage"
	"github.com/ramanhiring/hiring-agent/internal/types"
)

// sweepInterval is how often expired assessment sessions are auto-submitted.
const sweepInterval = 30 * time.Second

// Store is the persistence surface the HTTP handlers depend on. *db.DB
// satisfies it; tests substitute fakes for the slices they exercise.
type Store interface {
	DBClient

	CreateJob(ctx context.Context, createdBy uuid.UUID, req *types.CreateJobRequest) (uuid.UUID, error)
	GetJob(ctx context.Context, jobID uuid.UUID) (*db.Job, error)
	ListJobs(ctx context.Context, status string) ([]*db.Job, error)
	UpdateJob(ctx context.Context, jobID uuid.UUID, req *types.UpdateJobRequest) error
	DeleteJob(ctx context.Context, jobID uuid.UUID) error
	IncrementApplicationCount(ctx context.Context, jobID uuid.UUID) error

	CreateApplication(ctx context.Context, jobID, candidateID uuid.UUID, resumePath, coverLetter string) (uuid.UUID, error)
	GetApplication(ctx context.Context, id uuid.UUID) (*db.Application, error)
	ListApplicationsByCandidate(ctx context.Context, candidateID uuid.UUID) ([]*db.Application, error)
	ListApplicationDetails(ctx context.Context, jobID uuid.UUID) ([]*db.ApplicationDetail, error)
	UpdateApplication(ctx context.Context, id uuid.UUID, req *types.UpdateApplicationRequest) error
	UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status string) error
	MarkFeedbackSent(ctx context.Context, id uuid.UUID, feedback string) error

	GetAssessmentResult(ctx context.Context, jobID, candidateID uuid.UUID) (*db.AssessmentResult, error)
	GetMatchScore(ctx context.Context, jobID, candidateID uuid.UUID) (*db.MatchScore, error)

	ListUsers(ctx context.Context) ([]*db.User, error)
	SetAdmin(ctx context.Context, userID uuid.UUID, isAdmin bool) error
	DeleteUser(ctx context.Context, userID uuid.UUID) error

	GetAnalytics(ctx context.Context) (*db.Analytics, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	store       Store
	rateLimiter *ratelimit.Limiter

	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler

	llmClient    llm.Client
	scorer       *ai.Scorer
	describer    *ai.Describer
	resumeParser *ai.ResumeParser

	mailer      mailer.Mailer
	emailConfig *config.EmailConfig
	resumes     storage.Store
	hub         *realtime.Hub
	listener    *realtime.Listener
	assessments *assessment.Manager
	shortlister *shortlist.Orchestrator

	cancelBackground context.CancelFunc
}

// Config holds server configuration
type Config struct {
	Port        int
	DatabaseURL string
	APIKey      string // empty runs AI features in degraded mode
	StorageDir  string
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Server{
		db:    database,
		store: database,
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	// Authentication services
	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(database, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	// AI services run degraded when no API key is configured: scoring
	// returns zero scores and generation returns placeholders.
	if cfg.APIKey != "" {
		client, err := llm.NewGeminiClient(context.Background(), llm.DefaultConfig(), cfg.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		s.llmClient = client
	} else {
		log.Println("GEMINI_API_KEY not set, AI features run in degraded mode")
	}
	s.scorer = ai.NewScorer(s.llmClient)
	s.describer = ai.NewDescriber(s.llmClient)
	s.resumeParser = ai.NewResumeParser(s.llmClient)

	// Email notifications are optional: without provider credentials the
	// shortlist batch records notify failures instead of sending.
	emailConfig, err := config.NewEmailConfig()
	if err != nil {
		log.Printf("Email notifications disabled: %v", err)
		s.emailConfig = &config.EmailConfig{}
		s.mailer = mailer.Disabled{}
	} else {
		s.emailConfig = emailConfig
		s.mailer = mailer.NewEmailJSMailer(emailConfig)
	}

	storageDir := cfg.StorageDir
	if storageDir == "" {
		storageDir = "uploads"
	}
	resumes, err := storage.NewLocalStore(storageDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create resume store: %w", err)
	}
	s.resumes = resumes

	s.hub = realtime.NewHub()
	s.listener = realtime.NewListener(database.Pool(), s.hub)
	s.assessments = assessment.NewManager(database)
	s.shortlister = shortlist.New(database, s.scorer, s.mailer, s.emailConfig.ShortlistTemplateID, s.companyContact())

	// Setup router
	authed := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	admin := func(h http.HandlerFunc) http.Handler {
		return authed(middleware.RequireAdmin()(h))
	}
	user := func(h http.HandlerFunc) http.Handler {
		return authed(h)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Authentication
	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.Handle("PUT /auth/password", user(s.handleUpdatePassword))

	// Profile
	mux.Handle("GET /users/me", user(s.handleGetProfile))
	mux.Handle("PUT /users/me", user(s.handleUpdateProfile))
	mux.Handle("POST /resumes/parse", user(s.handleParseResume))

	// User administration
	mux.Handle("GET /users", admin(s.handleListUsers))
	mux.Handle("PUT /users/{id}/admin", admin(s.handleSetAdmin))
	mux.Handle("DELETE /users/{id}", admin(s.handleDeleteUser))

	// Jobs
	mux.HandleFunc("GET /jobs", s.handleListJobs)
	mux.HandleFunc("GET /jobs/{id}", s.handleGetJob)
	mux.Handle("POST /jobs", admin(s.handleCreateJob))
	mux.Handle("POST /jobs/describe", admin(s.handleDescribeJob))
	mux.Handle("PUT /jobs/{id}", admin(s.handleUpdateJob))
	mux.Handle("DELETE /jobs/{id}", admin(s.handleDeleteJob))

	// Applications
	mux.Handle("POST /jobs/{id}/apply", user(s.handleApply))
	mux.Handle("GET /jobs/{id}/applications", admin(s.handleListJobApplications))
	mux.Handle("GET /applications", user(s.handleListMyApplications))
	mux.Handle("GET /applications/{id}", user(s.handleGetApplication))
	mux.Handle("GET /applications/{id}/resume", user(s.handleDownloadResume))
	mux.Handle("PUT /applications/{id}", admin(s.handleUpdateApplication))
	mux.Handle("POST /applications/{id}/feedback", admin(s.handleSendFeedback))

	// Assessments
	mux.Handle("POST /jobs/{id}/assessment/start", user(s.handleStartAssessment))
	mux.Handle("POST /jobs/{id}/assessment/answers", user(s.handleRecordAnswer))
	mux.Handle("POST /jobs/{id}/assessment/submit", user(s.handleSubmitAssessment))
	mux.Handle("GET /jobs/{id}/assessment", user(s.handleAssessmentStatus))

	// Shortlisting and analytics
	mux.Handle("POST /jobs/{id}/shortlist", admin(s.handleShortlist))
	mux.Handle("GET /analytics", admin(s.handleAnalytics))

	// Realtime change feed
	mux.Handle("GET /events", user(s.handleEvents))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for shortlist batches and SSE
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// companyContact builds the template contact block from the email config.
func (s *Server) companyContact() mailer.CompanyContact {
	return mailer.CompanyContact{
		Email:   s.emailConfig.CompanyEmail,
		Phone:   s.emailConfig.CompanyPhone,
		Address: s.emailConfig.CompanyAddress,
		Website: s.emailConfig.CompanyWebsite,
	}
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Background workers: the change-feed listener and the assessment
	// sweeper run until shutdown.
	ctx, cancel := context.WithCancel(context.Background())
	s.cancelBackground = cancel
	go s.listener.Run(ctx)
	go s.assessments.RunSweeper(ctx, sweepInterval)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.cancelBackground()

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.llmClient != nil {
		s.llmClient.Close() //nolint:errcheck
	}

	s.db.Close()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
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
		if !allowed {
			s.setRateLimitHeaders(w, info)
			s.rateLimitResponse(w, info)
			return
		}

		s.setRateLimitHeaders(w, info)
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

// handleRegister handles user registration requests.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	s.authHandler.Register(w, r)
}

// handleLogin handles user login requests.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	s.authHandler.Login(w, r)
}

// handleUpdatePassword handles password update requests.
func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	s.authHandler.UpdatePasswordWithUserID(w, r, userID)
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; X-Forwarded-For is not
// trusted.
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

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
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

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Error encoding rate limit response: %v", err)
	}
}
