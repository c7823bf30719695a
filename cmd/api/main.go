// Command api serves the project board: the HTML pages, the read-only JSON
// API under /api, and the operational endpoints.
//
// @title           Project Board API
// @version         1.0
// @description     Read-only JSON access to board articles, comments and hashtags.
// @BasePath        /api
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"
	"golang.org/x/sync/errgroup"

	_ "project-board/docs" // swagger docs
	"project-board/internal/common/pagination"
	"project-board/internal/config"
	hhttp "project-board/internal/handler/http"
	"project-board/internal/handler/http/api"
	"project-board/internal/handler/http/article"
	"project-board/internal/handler/http/auth"
	"project-board/internal/handler/http/comment"
	"project-board/internal/handler/http/requestid"
	"project-board/internal/handler/http/view"
	"project-board/internal/infra/adapter/persistence/postgres"
	"project-board/internal/infra/adapter/persistence/sqlite"
	"project-board/internal/infra/db"
	"project-board/internal/infra/worker"
	"project-board/internal/observability/logging"
	"project-board/internal/observability/tracing"
	"project-board/internal/repository"
	"project-board/internal/resilience/circuitbreaker"
	"project-board/internal/resilience/retry"
	accountUC "project-board/internal/usecase/account"
	artUC "project-board/internal/usecase/article"
	commentUC "project-board/internal/usecase/comment"
)

const limiterCleanupInterval = 5 * time.Minute

func main() {
	logger := initLogger()
	if err := run(logger); err != nil {
		logger.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
}

// initLogger installs the JSON logger as the slog default.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	shutdownTracing, err := tracing.Setup(tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Tracing.ServiceName,
		SampleRatio: cfg.Tracing.SampleRatio,
	}, logger)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Error("tracing shutdown failed", slog.Any("error", err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := initDatabase(ctx, logger, cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	components, err := setupServer(logger, cfg, database, getVersion())
	if err != nil {
		return err
	}
	return runServer(ctx, logger, cfg, components)
}

// initDatabase opens the pool and, unless disabled, applies the schema.
func initDatabase(ctx context.Context, logger *slog.Logger, cfg config.DatabaseConfig) (*sql.DB, error) {
	conn, err := db.Open(ctx, db.Options{
		Driver: cfg.Driver,
		DSN:    cfg.DSN,
		Pool:   db.NewConnectionConfig(cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime, cfg.ConnMaxIdleTime),
	})
	if err != nil {
		return nil, err
	}
	if !cfg.AutoMigrate {
		return conn, nil
	}
	dialect, err := db.DialectFor(cfg.Driver)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if err := db.MigrateUp(ctx, conn, dialect); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	logger.Info("database schema up to date", slog.String("dialect", string(dialect)))
	return conn, nil
}

// newTxManager picks the repository family for the driver and routes every
// transaction through the circuit breaker.
func newTxManager(driver string, breaker *circuitbreaker.DBCircuitBreaker) (repository.TxManager, error) {
	dialect, err := db.DialectFor(driver)
	if err != nil {
		return nil, err
	}
	if dialect == db.DialectSQLite {
		return sqlite.NewTxManager(breaker, breaker.Wrap), nil
	}
	return postgres.NewTxManager(breaker, breaker.Wrap), nil
}

// ServerComponents holds what runServer starts and stops.
type ServerComponents struct {
	Handler   http.Handler
	Limiter   *auth.LoginLimiter
	Refresher *worker.StatsRefresher
}

// setupServer builds services, routes and the middleware chain.
func setupServer(logger *slog.Logger, cfg *config.Config, database *sql.DB, version string) (*ServerComponents, error) {
	breaker := circuitbreaker.NewDBCircuitBreaker(database, circuitbreaker.DBConfig())
	tx, err := newTxManager(cfg.Database.Driver, breaker)
	if err != nil {
		return nil, err
	}

	articles := &artUC.Service{Tx: tx, Logger: logger}
	comments := &commentUC.Service{Tx: tx, Logger: logger}
	accounts := &accountUC.Service{Tx: tx, BcryptCost: cfg.Auth.BcryptCost}

	issuer, err := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return nil, err
	}
	cookie := auth.CookieConfig{Name: cfg.Auth.CookieName, Secure: cfg.Auth.CookieSecure}
	limiter := auth.NewLoginLimiter(cfg.Auth.LoginRate, cfg.Auth.LoginBurst)

	views, err := view.New(logger)
	if err != nil {
		return nil, err
	}
	pageCfg := pagination.WithSizes(cfg.Pagination.DefaultSize, cfg.Pagination.MaxSize, cfg.Pagination.BarLength)

	mux := http.NewServeMux()
	article.Register(mux, article.Handler{Svc: articles, View: views, Pagination: pageCfg, Logger: logger})
	comment.Register(mux, comment.Handler{Svc: comments, View: views, Logger: logger})
	auth.Register(mux, auth.LoginHandler{
		Accounts: accounts,
		Issuer:   issuer,
		Limiter:  limiter,
		Cookie:   cookie,
		View:     views,
		Logger:   logger,
	})
	api.Register(mux, api.Routes{Articles: articles, Comments: comments, Pagination: pageCfg, Logger: logger})

	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)
	mux.Handle("GET /health", &hhttp.HealthHandler{DB: database, Breaker: breaker, Version: version})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("GET /live", hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	errorPage := func(w http.ResponseWriter, r *http.Request) {
		views.Error(w, auth.Viewer(r.Context()), http.StatusInternalServerError, "")
	}
	handler := hhttp.Chain(mux,
		requestid.Middleware,
		tracing.Middleware,
		hhttp.Logging(logger),
		hhttp.Recover(logger, errorPage),
		hhttp.InputLimits(int64(cfg.Server.MaxBodyBytes)),
		hhttp.Metrics,
		auth.Identify(issuer, cookie, logger),
		hhttp.Timeout(cfg.Server.RequestTimeout),
	)

	var refresher *worker.StatsRefresher
	if cfg.Stats.Enabled {
		m := worker.NewMetrics()
		m.MustRegister(nil)
		refresher = &worker.StatsRefresher{
			Tx:      tx,
			Pool:    database,
			Timeout: cfg.Stats.Timeout,
			Logger:  logger,
			Metrics: m,
			Retry:   retry.DBConfig(),
		}
	}

	return &ServerComponents{Handler: handler, Limiter: limiter, Refresher: refresher}, nil
}

// runServer serves until ctx is cancelled, then shuts down gracefully.
func runServer(ctx context.Context, logger *slog.Logger, cfg *config.Config, c *ServerComponents) error {
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           c.Handler,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", srv.Addr),
			slog.String("version", getVersion()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		logger.Info("server stopped")
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(limiterCleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if n := c.Limiter.Cleanup(); n > 0 {
					logger.Debug("login limiter cleanup", slog.Int("removed", n))
				}
			}
		}
	})

	if c.Refresher != nil {
		g.Go(func() error {
			return c.Refresher.Run(gctx, cfg.Stats.Cron)
		})
	}

	return g.Wait()
}
