package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"shiftease/internal/auth"
	"shiftease/internal/config"
	"shiftease/internal/http-server/handlers/auth/login"
	"shiftease/internal/http-server/handlers/auth/logout"
	"shiftease/internal/http-server/handlers/auth/signup"
	"shiftease/internal/http-server/handlers/event/createEvent"
	"shiftease/internal/http-server/handlers/event/deleteEvent"
	"shiftease/internal/http-server/handlers/event/editEvent"
	"shiftease/internal/http-server/handlers/event/getAllEvents"
	"shiftease/internal/http-server/handlers/event/getEventInfo"
	"shiftease/internal/http-server/handlers/event/register"
	"shiftease/internal/http-server/handlers/event/unregister"
	"shiftease/internal/http-server/handlers/feedback/createFeedback"
	"shiftease/internal/http-server/handlers/feedback/getAllFeedback"
	"shiftease/internal/http-server/handlers/user/getProfile"
	"shiftease/internal/http-server/handlers/user/updateProfile"
	"shiftease/internal/http-server/middleware/mwauth"
	"shiftease/internal/http-server/middleware/mwlogger"
	"shiftease/internal/lib/logger/handlers/slogpretty"
	"shiftease/internal/lib/logger/sl"
	"shiftease/internal/models"
	"shiftease/internal/notifier"
	"shiftease/internal/storage"
	"shiftease/internal/storage/memory"
	"shiftease/internal/storage/postgres"
	"shiftease/internal/storage/redis"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("starting shiftease", slog.String("env", cfg.Env))
	log.Debug("debug messages are enabled")

	store, err := setupStorage(cfg)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	if err = bootstrapAdmin(log, store, cfg.Auth); err != nil {
		log.Error("failed to bootstrap admin account", sl.Err(err))
		os.Exit(1)
	}

	denylist, closeDenylist, err := setupDenylist(cfg)
	if err != nil {
		log.Error("failed to init token denylist", sl.Err(err))
		os.Exit(1)
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, denylist)
	authService := auth.NewService(store, tokens)

	sender, err := setupSender(log, cfg.Notifier)
	if err != nil {
		log.Error("failed to init notifier", sl.Err(err))
		os.Exit(1)
	}

	worker := notifier.New(log, store, sender, notifier.Options{
		PollInterval: cfg.Notifier.PollInterval,
		BatchSize:    cfg.Notifier.BatchSize,
		MaxAttempts:  cfg.Notifier.MaxAttempts,
		Timeout:      cfg.Notifier.Timeout,
	})

	router := newRouter(log, store, authService, tokens)

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	workerDone := make(chan struct{})

	go func() {
		defer close(workerDone)
		worker.Run(workerCtx)
	}()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", sl.Err(err))
			stop <- syscall.SIGTERM
		}
	}()

	sign := <-stop

	log.Info("application stopping", slog.String("signal", sign.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err = srv.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	stopWorker()
	<-workerDone

	log.Info("application stopped")

	if err = store.Close(); err != nil {
		log.Error("failed to close storage", sl.Err(err))
	}

	log.Info("storage closed")

	if err = closeDenylist(); err != nil {
		log.Error("failed to close token denylist", sl.Err(err))
	}
}

func newRouter(log *slog.Logger, store storage.Storage, authService *auth.Service, tokens *auth.TokenManager) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	router.Use(mwauth.New(log, tokens))

	router.Post("/auth/signup", signup.New(log, authService))
	router.Post("/auth/login", login.New(log, authService))

	router.Get("/events", getAllEvents.New(log, store))
	router.Get("/events/{id}", getEventInfo.New(log, store))

	router.Group(func(r chi.Router) {
		r.Use(mwauth.RequireUser)

		r.Post("/auth/logout", logout.New(log, authService))

		r.Post("/events/{id}/register", register.New(log, store))
		r.Post("/events/{id}/unregister", unregister.New(log, store))

		r.Get("/users/me", getProfile.New(log, store))
		r.Put("/users/me", updateProfile.New(log, store))

		r.Post("/feedback", createFeedback.New(log, store))
	})

	router.Group(func(r chi.Router) {
		r.Use(mwauth.RequireAdmin)

		r.Post("/events", createEvent.New(log, store))
		r.Put("/events/{id}", editEvent.New(log, store))
		r.Delete("/events/{id}", deleteEvent.New(log, store))

		r.Get("/feedback", getAllFeedback.New(log, store))
	})

	return router
}

func setupStorage(cfg *config.Config) (storage.Storage, error) {
	switch cfg.Storage.Type {
	case config.StorageMemory:
		return memory.New(), nil
	case config.StoragePostgres:
		return postgres.InitDB(&cfg.Database)
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Storage.Type)
	}
}

// bootstrapAdmin makes sure the configured admin account exists.
func bootstrapAdmin(log *slog.Logger, accounts auth.AccountStore, cfg config.Auth) error {
	if cfg.BootstrapAdminEmail == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	created, err := auth.EnsureAccount(ctx, accounts, auth.Account{
		Email:    cfg.BootstrapAdminEmail,
		Password: cfg.BootstrapAdminPassword,
		Role:     models.RoleAdmin,
	})
	if err != nil {
		return err
	}

	log.Info("admin account ready", slog.String("email", cfg.BootstrapAdminEmail), slog.Bool("created", created))

	return nil
}

func setupDenylist(cfg *config.Config) (auth.Denylist, func() error, error) {
	switch cfg.Auth.Denylist {
	case config.DenylistMemory:
		return auth.NewMemoryDenylist(), func() error { return nil }, nil
	case config.DenylistRedis:
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		d, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return d, d.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown token denylist %q", cfg.Auth.Denylist)
	}
}

func setupSender(log *slog.Logger, cfg config.Notifier) (notifier.Sender, error) {
	switch cfg.Sender {
	case config.SenderLog:
		return notifier.NewLogSender(log), nil
	case config.SenderWebhook:
		if cfg.WebhookURL == "" {
			return nil, errors.New("notifier webhook_url is required for the webhook sender")
		}
		return notifier.NewWebhookSender(cfg.WebhookURL, &http.Client{Timeout: cfg.Timeout}), nil
	default:
		return nil, fmt.Errorf("unknown notifier sender %q", cfg.Sender)
	}
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	h := opts.NewPrettyHandler(os.Stdout)

	return slog.New(h)
}
