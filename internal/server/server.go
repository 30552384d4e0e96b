// Package server provides the HTTP REST API for the CV export service.
package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"

	"github.com/Slavigrad/cv-export/internal/analytics"
	"github.com/Slavigrad/cv-export/internal/cache"
	"github.com/Slavigrad/cv-export/internal/config"
	"github.com/Slavigrad/cv-export/internal/cvdata"
	"github.com/Slavigrad/cv-export/internal/processor"
	"github.com/Slavigrad/cv-export/internal/rendering"
	"github.com/Slavigrad/cv-export/internal/server/middleware"
	"github.com/Slavigrad/cv-export/internal/server/ratelimit"
	"github.com/Slavigrad/cv-export/internal/types"
)

// sessionKeyPrefix namespaces this service's keys in a shared Redis.
const sessionKeyPrefix = "cvexport:cache:"

// Server represents the HTTP server.
type Server struct {
	httpServer *http.Server
	cfg        *config.Config

	provider cvdata.Provider
	proc     *processor.Processor
	html     *rendering.HTMLRenderer
	pdf      *rendering.PDFRenderer

	store       *cache.Store
	tierNames   []cache.TierName
	sweeper     *cache.Sweeper
	sweepCancel context.CancelFunc
	redisClient *redis.Client
	durableTier *cache.DurableTier

	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	adminConfig *config.AdminConfig
	validate    *validator.Validate
}

// New creates a server instance. The memory cache tier is always active; the
// session and durable tiers are enabled by RedisAddr and DatabaseURL.
func New(cfg *config.Config) (*Server, error) {
	cv, err := loadCV(cfg.CVPath)
	if err != nil {
		return nil, err
	}

	htmlRenderer, err := rendering.NewHTMLRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize HTML renderer: %w", err)
	}

	s := &Server{
		cfg:      cfg,
		provider: cvdata.NewStaticProvider(cv, nil),
		proc:     processor.New(),
		html:     htmlRenderer,
		pdf:      rendering.NewPDFRenderer(),
		validate: validator.New(),
	}

	tracker := analytics.NewTracker()
	if cfg.Verbose {
		tracker.OnChange(func(snap analytics.Snapshot) {
			log.Printf("cache analytics: hits=%d misses=%d evictions=%d hit_rate=%.1f%%",
				snap.Hits, snap.Misses, snap.Evictions, snap.HitRate)
		})
	}

	tiers := []cache.Tier{cache.NewMemoryTier(cache.DefaultConfig(cache.TierMemory), nil)}

	if cfg.RedisAddr != "" {
		s.redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		if err := s.redisClient.Ping(context.Background()).Err(); err != nil {
			return nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		tiers = append(tiers, cache.NewSessionTier(s.redisClient, sessionKeyPrefix, cache.DefaultConfig(cache.TierSession), nil))
	}

	if cfg.DatabaseURL != "" {
		durable, err := cache.ConnectDurableTier(context.Background(), cfg.DatabaseURL, cache.DefaultConfig(cache.TierDurable))
		if err != nil {
			return nil, fmt.Errorf("failed to connect durable cache tier: %w", err)
		}
		s.durableTier = durable
		tiers = append(tiers, durable)
	}

	s.store = cache.NewStore(tracker, tiers)
	for _, t := range tiers {
		s.tierNames = append(s.tierNames, t.Name())
	}
	s.sweeper = cache.NewSweeper(s.store)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)

	adminConfig, err := config.NewAdminConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create admin config: %w", err)
	}
	s.adminConfig = adminConfig

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // PDF rendering can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes wires the endpoint handlers.
func (s *Server) routes() http.Handler {
	requireAuth := middleware.RequireAuth(s.jwtService.AsTokenValidator())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /cv", s.handleGetCV)
	mux.HandleFunc("GET /cv/stats", s.handleCVStats)
	mux.HandleFunc("GET /templates", s.handleListTemplates)

	mux.HandleFunc("POST /export", s.handleExport)
	mux.HandleFunc("POST /preview", s.handlePreview)

	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("GET /cache/analytics", s.handleCacheAnalytics)
	mux.Handle("POST /cache/clear", requireAuth(http.HandlerFunc(s.handleCacheClear)))

	return mux
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	sweepCtx, cancel := context.WithCancel(context.Background())
	s.sweepCancel = cancel
	go func() {
		if err := s.sweeper.Run(sweepCtx); err != nil && err != context.Canceled {
			log.Printf("warning: cache sweeper stopped: %v", err)
		}
	}()

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

	ctx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.Close()
	log.Println("Server stopped")
	return nil
}

// Close releases background goroutines and backend connections.
func (s *Server) Close() {
	if s.sweepCancel != nil {
		s.sweepCancel()
	}
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Printf("warning: failed to close redis client: %v", err)
		}
	}
	if s.durableTier != nil {
		s.durableTier.Close()
	}
}

func loadCV(path string) (*types.CVData, error) {
	if path == "" {
		return cvdata.Default(), nil
	}
	cv, err := cvdata.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load CV from %s: %w", path, err)
	}
	return cv, nil
}

// withCORS adds CORS headers.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware.
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

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// extractClientID identifies the client by IP address from RemoteAddr.
// X-Forwarded-For is deliberately ignored; it is only trustworthy behind a
// known proxy.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit == 0 {
		return
	}
	w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
	w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
	w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
}

func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	s.errorResponse(w, http.StatusTooManyRequests, "rate limit exceeded")
}
