package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-match/internal/db"
	"github.com/jonathan/resume-match/internal/resume"
	"github.com/jonathan/resume-match/internal/server/middleware"
	"github.com/jonathan/resume-match/internal/server/ratelimit"
	"github.com/jonathan/resume-match/internal/skills"
	"github.com/jonathan/resume-match/internal/types"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout    = 30 * time.Second
	healthCheckTimeout = 2 * time.Second
)

// Checker reports whether a dependency of the server is healthy.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer   *http.Server
	vocabulary   *skills.Vocabulary
	resume       *types.Resume
	db           *db.DB
	checkers     []Checker
	rateLimiter  *ratelimit.Limiter
	jwtService   *JWTService
	authRequired bool
	corsOrigins  map[string]bool
}

// Config holds server configuration. Vocabulary and Resume default to the
// built-in data; DB and JWTService are optional.
type Config struct {
	Port         int
	Vocabulary   *skills.Vocabulary
	Resume       *types.Resume
	DB           *db.DB
	JWTService   *JWTService
	AuthRequired bool
	CORSOrigins  []string
	RateLimit    *ratelimit.Config
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.AuthRequired && cfg.JWTService == nil {
		return nil, errors.New("auth required but no JWT service configured")
	}

	s := &Server{
		vocabulary:   cfg.Vocabulary,
		resume:       cfg.Resume,
		db:           cfg.DB,
		jwtService:   cfg.JWTService,
		authRequired: cfg.AuthRequired,
		corsOrigins:  make(map[string]bool),
	}
	if s.vocabulary == nil {
		s.vocabulary = skills.Default()
	}
	if s.resume == nil {
		r, err := resume.Default()
		if err != nil {
			return nil, fmt.Errorf("failed to load default resume: %w", err)
		}
		s.resume = r
	}
	if cfg.DB != nil {
		s.checkers = append(s.checkers, cfg.DB)
	}
	for _, origin := range cfg.CORSOrigins {
		s.corsOrigins[origin] = true
	}
	if len(s.corsOrigins) == 0 {
		s.corsOrigins["*"] = true
	}

	s.rateLimiter = ratelimit.NewLimiter(cfg.RateLimit)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /api/resume", s.protect(s.handleResume))
	mux.Handle("POST /api/job/parse", s.protect(s.handleParseJob))
	mux.Handle("POST /api/match", s.protect(s.handleMatch))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withRateLimit(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// protect applies the bearer-token gate when auth is required.
func (s *Server) protect(h http.HandlerFunc) http.Handler {
	if !s.authRequired {
		return h
	}
	return middleware.AuthMiddleware(s.jwtService.AsTokenValidator())(h)
}

// Start serves until ctx is cancelled or SIGINT/SIGTERM is received, then
// shuts down gracefully and releases server resources.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		s.Close()
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("Server starting on %s", listener.Addr())
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	err = g.Wait()
	s.Close()
	log.Println("Server stopped")
	return err
}

// Close stops the rate limiter and closes the database pool.
func (s *Server) Close() {
	s.rateLimiter.Stop()
	s.db.Close()
}

// withCORS adds CORS headers for allowed origins
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.corsOrigins["*"] {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		} else if origin := r.Header.Get("Origin"); s.corsOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(extractClientID(r), r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for request logs.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging tags each request with an X-Request-ID and logs it
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		log.Printf("[%s] %s %s request_id=%s", r.Method, r.URL.Path, r.RemoteAddr, requestID)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("[%s] %s %d completed in %v request_id=%s",
			r.Method, r.URL.Path, rec.status, time.Since(start), requestID)
	})
}

// extractClientID uses the IP address from RemoteAddr. X-Forwarded-For is
// not trusted.
func extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Round(time.Second).Seconds())
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d", info.Limit, info.Remaining)

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
