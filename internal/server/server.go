// Package server provides the HTTP REST API of the portfolio builder.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/portfolio-builder/internal/config"
	"github.com/jonathan/portfolio-builder/internal/db"
	"github.com/jonathan/portfolio-builder/internal/enrich"
	"github.com/jonathan/portfolio-builder/internal/fetch"
	"github.com/jonathan/portfolio-builder/internal/llm"
	"github.com/jonathan/portfolio-builder/internal/logging"
	"github.com/jonathan/portfolio-builder/internal/marketplace"
	"github.com/jonathan/portfolio-builder/internal/metrics"
	"github.com/jonathan/portfolio-builder/internal/parsing"
	"github.com/jonathan/portfolio-builder/internal/registry"
	"github.com/jonathan/portfolio-builder/internal/server/middleware"
	"github.com/jonathan/portfolio-builder/internal/server/ratelimit"
	"github.com/jonathan/portfolio-builder/internal/types"
	"go.uber.org/zap"
)

// PortfolioStore is the portfolio persistence the API needs
type PortfolioStore interface {
	CreatePortfolio(ctx context.Context, userID uuid.UUID, data *types.SavePortfolioData) (*db.Portfolio, error)
	GetPortfolio(ctx context.Context, id uuid.UUID) (*db.Portfolio, error)
	GetPublicPortfolioBySlug(ctx context.Context, slug string) (*db.Portfolio, error)
	ListPortfoliosByUser(ctx context.Context, userID uuid.UUID) ([]db.PortfolioSummary, error)
	UpdatePortfolioLayout(ctx context.Context, id uuid.UUID, layout []types.PortfolioComponent, isPublic *bool) (*db.Portfolio, error)
	DeletePortfolio(ctx context.Context, id uuid.UUID) (bool, error)
}

// Pinger reports backend health
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies are the collaborators of a Server. LLM, Enricher, Marketplace,
// Metrics and Health are optional; the routes that need a missing one answer 503.
type Dependencies struct {
	Logger        *zap.Logger
	Metrics       *metrics.Metrics
	Catalog       *registry.Registry
	Users         DBClient
	Portfolios    PortfolioStore
	Marketplace   *marketplace.Service
	JWT           *JWTService
	Passwords     *config.PasswordConfig
	RateLimiter   *ratelimit.Limiter
	LLM           llm.Client
	Enricher      *enrich.Enricher
	Health        Pinger
	DefaultPreset string
	EnrichTimeout time.Duration
	Now           func() time.Time
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	logger      *zap.Logger
	metrics     *metrics.Metrics
	catalog     *registry.Registry
	hybrid      *registry.HybridRegistry
	users       *UserService
	portfolios  PortfolioStore
	marketplace *marketplace.Service
	rateLimiter *ratelimit.Limiter
	authHandler *AuthHandler
	llm         llm.Client
	enricher    *enrich.Enricher
	health      Pinger

	defaultPreset string
	enrichTimeout time.Duration
	now           func() time.Time
	closers       []func()
}

// New builds a server around deps and registers its routes.
func New(port int, deps Dependencies) *Server {
	s := &Server{
		logger:        logging.OrNop(deps.Logger),
		metrics:       deps.Metrics,
		catalog:       deps.Catalog,
		portfolios:    deps.Portfolios,
		marketplace:   deps.Marketplace,
		rateLimiter:   deps.RateLimiter,
		llm:           deps.LLM,
		enricher:      deps.Enricher,
		health:        deps.Health,
		defaultPreset: deps.DefaultPreset,
		enrichTimeout: deps.EnrichTimeout,
		now:           deps.Now,
	}
	if s.catalog == nil {
		s.catalog = registry.Default()
	}
	if s.defaultPreset == "" {
		s.defaultPreset = config.DefaultPreset
	}
	if s.enrichTimeout <= 0 {
		s.enrichTimeout = 20 * time.Second
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.rateLimiter == nil {
		s.rateLimiter = ratelimit.NewLimiter(&ratelimit.Config{Enabled: false})
	}

	var source registry.MarketplaceSource
	if s.marketplace != nil {
		source = approvedComponents{service: s.marketplace}
	}
	s.hybrid = registry.NewHybridRegistry(s.catalog, source)

	s.users = NewUserService(deps.Users, deps.Passwords)
	s.authHandler = NewAuthHandler(s.users, deps.JWT, s.logger)
	requireAuth := middleware.AuthMiddleware(deps.JWT.AsTokenValidator())
	auth := func(h http.HandlerFunc) http.Handler { return requireAuth(h) }

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics.Handler())
	}

	// Auth
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)
	mux.Handle("GET /auth/me", auth(s.authHandler.Me))
	mux.Handle("PUT /auth/password", auth(s.authHandler.UpdatePassword))

	// Component registry
	mux.HandleFunc("GET /registry/sections", s.handleListSections)
	mux.HandleFunc("GET /registry/sections/{section}/variants", s.handleListSectionVariants)
	mux.HandleFunc("GET /registry/popular", s.handlePopularVariants)
	mux.HandleFunc("GET /registry/search", s.handleSearchVariants)
	mux.HandleFunc("GET /registry/color-schemes", s.handleListColorSchemes)
	mux.HandleFunc("GET /registry/presets", s.handleListPresets)

	// Portfolios
	mux.HandleFunc("POST /portfolios/preview", s.handlePreviewPortfolio)
	mux.Handle("POST /portfolios/import", auth(s.handleImportPortfolio))
	mux.Handle("GET /portfolios", auth(s.handleListPortfolios))
	mux.Handle("GET /portfolios/{id}", auth(s.handleGetPortfolio))
	mux.Handle("PUT /portfolios/{id}/layout", auth(s.handleUpdateLayout))
	mux.Handle("DELETE /portfolios/{id}", auth(s.handleDeletePortfolio))
	mux.HandleFunc("GET /p/{slug}", s.handleGetPublicPortfolio)

	// Resume parsing
	mux.HandleFunc("POST /resumes/parse", s.handleParseResume)

	// Marketplace
	mux.HandleFunc("GET /marketplace/components", s.handleListMarketplaceComponents)
	mux.Handle("POST /marketplace/components", auth(s.handleSubmitComponent))
	mux.Handle("GET /marketplace/pending", auth(s.handleListPendingComponents))
	mux.Handle("POST /marketplace/components/{id}/review", auth(s.handleReviewComponent))
	mux.Handle("POST /marketplace/components/{id}/install", auth(s.handleInstallComponent))
	mux.Handle("POST /marketplace/components/{id}/rate", auth(s.handleRateComponent))

	s.handler = s.withCORS(s.withLogging(s.withMetrics(s.withRateLimit(mux))))
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// NewFromConfig connects to the database and wires the production dependencies.
func NewFromConfig(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Server, error) {
	logger = logging.OrNop(logger)

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}

	m := metrics.New()
	cache := marketplace.NewCache(marketplace.NewDBLoader(database, logger), cfg.CacheTTL(),
		marketplace.WithMetrics(m), marketplace.WithLogger(logger))

	deps := Dependencies{
		Logger:        logger,
		Metrics:       m,
		Catalog:       registry.Default(),
		Users:         database,
		Portfolios:    database,
		Marketplace:   marketplace.NewService(database, cache, logger),
		JWT:           NewJWTService(jwtConfig),
		Passwords:     passwordConfig,
		RateLimiter:   ratelimit.NewLimiter(ratelimit.LoadConfig()),
		Health:        database,
		DefaultPreset: cfg.DefaultPreset,
		EnrichTimeout: cfg.EnrichDeadline(),
	}

	var closers []func()
	var describer enrich.Describer
	if cfg.APIKey != "" {
		client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
		if err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		deps.LLM = client
		describer = enrich.DescriberFunc(func(ctx context.Context, name, pageText string) (string, error) {
			return parsing.DescribeProject(ctx, client, name, pageText)
		})
		closers = append(closers, func() { _ = client.Close() })
	}

	fetcherCfg := fetch.PageFetcherConfig{Logger: logger}
	if cfg.UseBrowser {
		fetcherCfg.Renderer = fetch.NewChromeRenderer(0)
	}
	deps.Enricher = enrich.New(fetch.NewPageFetcher(fetcherCfg),
		enrich.WithDescriber(describer), enrich.WithLogger(logger))

	s := New(cfg.Port, deps)
	s.closers = append(closers, database.Close)
	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until ctx is canceled or SIGINT/SIGTERM arrives, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			s.Close()
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.Close()
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.Close()
	s.logger.Info("server stopped")
	return nil
}

// Close releases the rate limiter and any backends opened by NewFromConfig.
func (s *Server) Close() {
	s.rateLimiter.Stop()
	for _, closeFn := range s.closers {
		closeFn()
	}
	s.closers = nil
}

// approvedComponents exposes the marketplace cache as a hybrid registry source
type approvedComponents struct {
	service *marketplace.Service
}

func (a approvedComponents) Get(ctx context.Context) ([]types.MarketplaceComponentVariant, error) {
	return a.service.Approved(ctx)
}

// statusRecorder captures the status written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging logs one line per request
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
			zap.String("remote", s.extractClientID(r)))
	})
}

// withMetrics records request counts and latency by route pattern.
// ServeMux stores the matched pattern on the request it was handed.
func (s *Server) withMetrics(next http.Handler) http.Handler {
	if s.metrics == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		s.metrics.ObserveRequest(r.Method, route, rec.status, time.Since(start))
	})
}

// withRateLimit rejects requests over their endpoint budget
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// extractClientID uses the IP of RemoteAddr. Forwarded headers are not trusted.
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
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}
	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds())
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.logger.Warn("rate limit exceeded",
		zap.Int("limit", info.Limit),
		zap.Time("reset", info.ResetTime))
	writeJSON(w, s.logger, http.StatusTooManyRequests, response)
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.health.Ping(ctx); err != nil {
			s.logger.Warn("health check failed", zap.Error(err))
			writeJSON(w, s.logger, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, s.logger, http.StatusOK, map[string]string{"status": "ok"})
}

// actor resolves the authenticated user into a marketplace actor.
func (s *Server) actor(r *http.Request) (marketplace.Actor, error) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		return marketplace.Actor{}, &ErrInvalidCredentials{}
	}
	user, err := s.users.GetUser(r.Context(), userID)
	if err != nil {
		return marketplace.Actor{}, err
	}
	return marketplace.Actor{ID: user.ID, IsAdmin: user.IsAdmin}, nil
}

// pathUUID parses a UUID path parameter.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: name, Message: "invalid UUID"}
	}
	return id, nil
}
