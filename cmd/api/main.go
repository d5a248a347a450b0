package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/patio-health/internal/config"
	"github.com/jwalitptl/patio-health/internal/handler/health"
	"github.com/jwalitptl/patio-health/internal/middleware"
	"github.com/jwalitptl/patio-health/internal/repository"
	"github.com/jwalitptl/patio-health/internal/repository/memory"
	"github.com/jwalitptl/patio-health/internal/repository/postgres"
	"github.com/jwalitptl/patio-health/internal/router"
	"github.com/jwalitptl/patio-health/internal/service/directory"
	"github.com/jwalitptl/patio-health/internal/service/identity"
	"github.com/jwalitptl/patio-health/internal/storage"
	"github.com/jwalitptl/patio-health/pkg/auth"
	"github.com/jwalitptl/patio-health/pkg/logger"
	"github.com/jwalitptl/patio-health/pkg/metrics"
	"github.com/jwalitptl/patio-health/pkg/security"
)

func main() {
	// A missing .env is fine, the environment and config.yaml still apply
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Init(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("server exited properly")
}

func run(cfg *config.Config) error {
	ctx := context.Background()
	checks := map[string]health.Checker{}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(cfg.Metrics.Namespace, reg)

	users, db, err := newUserRepository(ctx, cfg.Database)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
		checks["database"] = health.CheckerFunc(db.PingContext)
	}

	codec, err := newTokenCodec(cfg.Auth, cfg.Session.TTL)
	if err != nil {
		return err
	}

	provider := identity.NewService(users, codec,
		identity.WithLatency(identity.Latency{
			Login:    cfg.Auth.Latency.Login,
			Register: cfg.Auth.Latency.Register,
			Verify:   cfg.Auth.Latency.Verify,
		}),
		identity.WithHasher(security.NewBcryptHasher(cfg.Auth.BcryptCost)),
		identity.WithMetrics(m),
		identity.WithLogger(logger.Component("identity")),
	)

	cookie := middleware.CookieConfig{Secure: cfg.Session.CookieSecure, MaxAge: cfg.Session.TTL}
	var tokenStorage middleware.StorageFactory
	switch cfg.Session.Store {
	case "memory":
		backend := storage.NewMemoryBackend(cfg.Session.TTL, 10*time.Minute)
		tokenStorage = middleware.BackendTokenStorage(storage.Instrumented(backend, "memory", m), cookie)
	case "redis":
		backend, err := storage.NewRedisBackend(ctx, cfg.Redis, logger.Component("redis"))
		if err != nil {
			return err
		}
		defer backend.Close()
		checks["redis"] = backend
		tokenStorage = middleware.BackendTokenStorage(storage.Instrumented(backend, "redis", m), cookie)
	default:
		tokenStorage = middleware.CookieTokenStorage(cookie)
	}

	r := router.NewRouter(router.Config{
		Provider:       provider,
		Storage:        tokenStorage,
		Directory:      directory.NewService(users, memory.NewAppointmentRepository(), logger.Component("directory")),
		Metrics:        m,
		Gatherer:       reg,
		Checks:         checks,
		Logger:         logger.Component("http"),
		RateLimit:      rate.Limit(cfg.RateLimit.RPS),
		RateBurst:      cfg.RateLimit.Burst,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RequestTimeout: cfg.Server.WriteTimeout,
		HSTS:           cfg.Session.CookieSecure,
	})
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout + cfg.Auth.Latency.Login,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("session_store", cfg.Session.Store).
			Str("database", cfg.Database.Driver).
			Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-quit:
	}
	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

// newUserRepository returns the identity table. The returned db is nil for the
// in-memory table.
func newUserRepository(ctx context.Context, cfg config.DatabaseConfig) (repository.UserRepository, *sqlx.DB, error) {
	if cfg.Driver != "postgres" {
		return memory.NewUserRepository(memory.SeedUsers()...), nil, nil
	}

	db, err := postgres.NewDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}

	users := postgres.NewUserRepository(db)
	if err := postgres.Seed(ctx, users, memory.SeedUsers()); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to seed identity table: %w", err)
	}
	return users, db, nil
}

func newTokenCodec(cfg config.AuthConfig, ttl time.Duration) (auth.TokenCodec, error) {
	switch cfg.TokenFormat {
	case "jwt":
		return auth.NewJWTCodec(cfg.JWTSecret, cfg.JWTIssuer, ttl), nil
	case "prefix":
		return auth.NewPrefixCodec(), nil
	default:
		return nil, fmt.Errorf("unknown token format %q", cfg.TokenFormat)
	}
}
