package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/contentware/tenantguard/pkg/config"
	"github.com/contentware/tenantguard/pkg/logger"
	"github.com/contentware/tenantguard/pkg/pg"
	"github.com/contentware/tenantguard/pkg/redis"
	"github.com/contentware/tenantguard/pkg/session"
	"github.com/contentware/tenantguard/pkg/tenant"
	"github.com/contentware/tenantguard/pkg/tenantsql"
)

type appConfig struct {
	Addr            string        `env:"SERVER_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"json"`

	Session session.Config
	PG      pg.Config
	Redis   redis.Config
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.New(
		logger.WithFormat(logger.Format(cfg.LogFormat)),
		logger.WithService("tenantguard"),
		logger.WithContextExtractors(
			tenant.LoggerExtractor(),
			session.LoggerExtractor(),
		),
	)
	logger.SetAsDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg appConfig, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pg.Connect(ctx, cfg.PG)
	if err != nil {
		return err
	}
	defer pool.Close()

	redisClient, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	sessions, err := session.New(cfg.Session, session.NewRedisStore(redisClient), session.WithLogger(log))
	if err != nil {
		return err
	}

	rewriter := tenantsql.New(tenantsql.WithLogger(log))
	// Identity lookups are global; a tenant predicate there would make logins
	// tenant-dependent.
	rewriter.Registry().Ignore("auth.user_by_email")

	app := &application{
		db:       tenantsql.NewQuerier(pool, rewriter),
		sessions: sessions,
		log:      log,
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(tenant.Middleware(tenant.DefaultResolver(), tenant.WithSkipPaths("/health")))
	r.Use(sessions.Middleware)

	r.Get("/health", app.handleHealth(pg.Healthcheck(pool), redis.Healthcheck(redisClient)))
	r.Post("/auth/login", app.handleLogin)
	r.Post("/auth/refresh", app.handleRefresh)
	r.Post("/auth/logout", app.handleLogout)

	r.Group(func(r chi.Router) {
		r.Use(sessions.RequireSession)
		r.Get("/articles", app.handleListArticles)
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", slog.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
