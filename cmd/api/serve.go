package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"golang.org/x/sync/errgroup"

	"article-inventory/internal/config"
	hhttp "article-inventory/internal/handler/http"
	"article-inventory/internal/handler/http/auth"
	"article-inventory/internal/handler/http/respond"
	"article-inventory/internal/infra/adapter/persistence/sqldb"
	"article-inventory/internal/infra/db"
	"article-inventory/internal/observability/tracing"
	"article-inventory/internal/resilience/retry"
	artUC "article-inventory/internal/usecase/article"
)

const (
	limiterSweepInterval = time.Minute
	limiterIdleTimeout   = 10 * time.Minute
)

var migrateOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  runServe,
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, serveCmd} {
		c.Flags().BoolVar(&migrateOnStart, "migrate", true, "create the articles table before serving")
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	a, err := newApp(ctx, cfg, logger, migrateOnStart)
	if err != nil {
		return err
	}
	return a.run(ctx)
}

// app owns every long-lived resource of the server process.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	tracer  *sdktrace.TracerProvider
	pool    *db.Pool
	monitor *db.Monitor
	limiter *hhttp.RateLimiter
	server  *http.Server
}

func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger, migrate bool) (_ *app, err error) {
	gate, err := auth.NewAPIKeyGate(cfg.APIKeySecret, logger)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger}
	defer func() {
		if err != nil {
			a.release(context.Background())
		}
	}()

	a.tracer = tracing.NewProvider(serviceName, Version, cfg.TraceSampleRatio)

	a.pool, err = db.Open(ctx, cfg.DB(), logger)
	if err != nil {
		return nil, err
	}
	if migrate {
		err = retry.WithBackoff(ctx, retry.StartupConfig(), func() error {
			return db.MigrateUp(ctx, a.pool)
		})
		if err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	a.monitor, err = db.StartMonitor(a.pool, cfg.Database.MonitorSchedule, logger)
	if err != nil {
		return nil, err
	}

	a.limiter = hhttp.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, logger)
	if !a.limiter.Enabled() {
		logger.Warn("rate limiting is disabled")
	}

	svc := artUC.Service{Repo: sqldb.NewArticleRepo(a.pool, logger), Logger: logger}
	handler := hhttp.NewRouter(hhttp.RouterConfig{
		Articles:     svc,
		APIKey:       gate,
		Pool:         a.pool,
		Errors:       &respond.ErrorNormalizer{Logger: logger, Production: cfg.Production()},
		Limiter:      a.limiter,
		CORS:         hhttp.DefaultCORSConfig(cfg.CORSAllowedOrigins),
		MaxBodyBytes: cfg.MaxBodyBytes,
		Debug:        !cfg.Production(),
		Version:      Version,
		Logger:       logger,
	})

	// Requests outlive the signal; Shutdown decides when they stop.
	a.server = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}
	return a, nil
}

// run serves until ctx is cancelled or the listener fails, then shuts down.
func (a *app) run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("server starting",
			slog.String("addr", a.server.Addr),
			slog.String("env", a.cfg.Env))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	if a.limiter.Enabled() {
		g.Go(func() error {
			a.limiter.RunCleanup(gctx, limiterSweepInterval, limiterIdleTimeout)
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		return a.shutdown(shutdownCtx)
	})

	err := g.Wait()
	a.logger.Info("shutdown complete")
	return err
}

// shutdown stops accepting requests, drains them, then stops the monitor,
// the pool and the tracer in that order.
func (a *app) shutdown(ctx context.Context) error {
	var errs []error
	if err := a.server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http server: %w", err))
	}
	return errors.Join(append(errs, a.release(ctx))...)
}

func (a *app) release(ctx context.Context) error {
	var errs []error
	if a.monitor != nil {
		if err := a.monitor.Stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("pool monitor: %w", err))
		}
	}
	if a.pool != nil {
		if err := a.pool.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("pool: %w", err))
		}
	}
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer: %w", err))
		}
	}
	return errors.Join(errs...)
}
