package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"journal-api/internal/config"
	pgRepo "journal-api/internal/infra/adapter/persistence/postgres"
	sqliteRepo "journal-api/internal/infra/adapter/persistence/sqlite"
	"journal-api/internal/infra/db"
	"journal-api/internal/infra/worker"
	"journal-api/internal/observability/logging"
	"journal-api/internal/observability/tracing"
	"journal-api/internal/repository"
	"journal-api/internal/resilience/circuitbreaker"
	authservice "journal-api/internal/service/auth"
	jUC "journal-api/internal/usecase/journal"

	hhttp "journal-api/internal/handler/http"
	hauth "journal-api/internal/handler/http/auth"
	hjournal "journal-api/internal/handler/http/journal"
	"journal-api/internal/handler/http/requestid"
)

// @title           Journal API
// @version         1.0
// @description     ジャーナルと記事を管理する REST API
// @description     JWT による認証と、読み取り/書き込みスコープによる認可を提供します。

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.basic BasicAuth

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT トークンによる認証。ヘッダーに "Bearer {token}" 形式で指定してください。

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_FILE"), "path to a YAML config file")
	flag.Parse()

	// .env is optional; real environment variables win
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to read .env", slog.Any("error", err))
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := initLogger(cfg)
	if err := run(logger, cfg); err != nil {
		logger.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

// initLogger builds the process logger and installs it as the slog default.
func initLogger(cfg *config.Config) *slog.Logger {
	logger := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	slog.SetDefault(logger)
	return logger
}

func run(logger *slog.Logger, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing := tracing.Init(cfg.Tracing.SampleRatio)
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("tracer shutdown failed", slog.Any("error", err))
		}
	}()

	authSvc, err := initAuth(logger, cfg)
	if err != nil {
		return err
	}

	database, err := initDatabase(ctx, logger, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	policy, err := jUC.ParseDatePolicy(cfg.Journal.DatePolicy)
	if err != nil {
		return err
	}
	repo, breaker := initRepository(database, cfg)
	svc := &jUC.Service{Repo: repo, Mapper: jUC.Mapper{Policy: policy}, Logger: logger}

	trusted, err := parseTrustedProxies(cfg.HTTP.TrustedProxies)
	if err != nil {
		return err
	}
	tokenLimiter := hhttp.NewRateLimiter(cfg.Auth.RateLimit, time.Minute, trusted)

	health := &hhttp.HealthHandler{DB: database, Version: cfg.Version}
	if breaker != nil {
		health.Breaker = breaker
	}
	mux := setupRoutes(svc, authSvc, tokenLimiter, health, database)
	handler := applyMiddleware(logger, mux)

	scheduler := worker.NewScheduler(config.CronParser, logger)
	statsJob := &worker.StatsJob{
		Counter: svc,
		Metrics: worker.NewWorkerMetrics(prometheus.DefaultRegisterer),
		Logger:  logger,
	}
	if err := scheduler.Add(cfg.Stats.Schedule, statsJob); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout, // Prevent Slowloris attacks
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", cfg.HTTP.Addr),
			slog.String("version", cfg.Version),
			slog.String("driver", cfg.Database.Driver),
			slog.String("date_policy", string(policy)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		logger.Info("server stopped")
		return nil
	})

	g.Go(func() error {
		statsJob.Run()
		return scheduler.Run(gctx)
	})

	g.Go(func() error {
		db.ReportStats(gctx, database, cfg.Database.StatsInterval)
		return nil
	})

	g.Go(func() error {
		runLimiterCleanup(gctx, logger, tokenLimiter, time.Minute)
		return nil
	})

	return g.Wait()
}

// initAuth validates the configured users and builds the token service.
// A weak admin password is fatal; a bad demo account only disables it.
func initAuth(logger *slog.Logger, cfg *config.Config) (*authservice.AuthService, error) {
	admin := hauth.User{Name: cfg.Auth.AdminUser, Password: cfg.Auth.AdminPassword, Role: hauth.RoleAdmin}
	if err := hauth.ValidateAdmin(admin); err != nil {
		return nil, err
	}

	users := []hauth.User{admin}
	viewer := hauth.User{Name: cfg.Auth.DemoUser, Password: cfg.Auth.DemoPassword, Role: hauth.RoleViewer}
	if hauth.ValidateViewer(admin, viewer, logger) {
		users = append(users, viewer)
	}

	issuer, err := authservice.NewTokenIssuer([]byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL)
	if err != nil {
		return nil, err
	}
	provider := hauth.NewUserProvider(users, hauth.DefaultRequirements())
	return authservice.NewAuthService(provider, issuer), nil
}

// initDatabase opens the configured store and applies the schema.
func initDatabase(ctx context.Context, logger *slog.Logger, cfg *config.Config) (*sql.DB, error) {
	database, err := db.Open(ctx, db.Config{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.URL,
		Pool: db.ConnectionConfig{
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		},
	})
	if err != nil {
		return nil, err
	}
	if err := db.MigrateUp(ctx, database, cfg.Database.Driver); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	logger.Info("database ready", slog.String("driver", cfg.Database.Driver))
	return database, nil
}

// initRepository picks the adapter for the driver and, when enabled, guards
// it with the store circuit breaker. The breaker is nil when disabled.
func initRepository(database *sql.DB, cfg *config.Config) (repository.JournalRepository, *circuitbreaker.CircuitBreaker) {
	var repo repository.JournalRepository
	switch cfg.Database.Driver {
	case db.DriverSQLite:
		repo = sqliteRepo.NewJournalRepo(database)
	default:
		repo = pgRepo.NewJournalRepo(database)
	}
	if !cfg.Database.CircuitBreaker {
		return repo, nil
	}
	guarded := circuitbreaker.NewJournalRepository(repo, circuitbreaker.StoreConfig())
	return guarded, guarded.Breaker()
}

// setupRoutes registers the public and the token-protected routes.
func setupRoutes(
	svc *jUC.Service,
	authSvc *authservice.AuthService,
	tokenLimiter *hhttp.RateLimiter,
	health *hhttp.HealthHandler,
	database *sql.DB,
) *http.ServeMux {
	mux := http.NewServeMux()

	// 認証不要
	mux.Handle("POST /auth/token", tokenLimiter.Limit(hauth.TokenHandler(authSvc)))
	mux.Handle("GET /health", health)
	mux.Handle("GET /ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	hjournal.Register(mux, svc, hauth.Authz(authSvc))
	return mux
}

// applyMiddleware wraps the handler with the middleware chain.
// Order: Request ID → Tracing → Logging → Recovery → Metrics → Input limits
func applyMiddleware(logger *slog.Logger, handler http.Handler) http.Handler {
	chain := handler

	// Apply in reverse order (innermost to outermost)
	chain = hhttp.InputValidation()(chain)
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = tracing.Middleware(chain)
	chain = requestid.Middleware(chain)

	return chain
}

func parseTrustedProxies(cidrs []string) ([]netip.Prefix, error) {
	out := make([]netip.Prefix, 0, len(cidrs))
	for _, c := range cidrs {
		p, err := netip.ParsePrefix(c)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", c, err)
		}
		out = append(out, p.Masked())
	}
	return out, nil
}

// runLimiterCleanup evicts idle rate limit entries until ctx is done.
func runLimiterCleanup(ctx context.Context, logger *slog.Logger, rl *hhttp.RateLimiter, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := rl.Cleanup(); n > 0 {
				logger.Debug("rate limiter cleanup", slog.Int("removed", n), slog.Int("remaining", rl.Size()))
			}
		}
	}
}
