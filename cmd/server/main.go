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

	"github.com/passengerdesk/auth-service/internal/api"
	"github.com/passengerdesk/auth-service/internal/api/handler"
	"github.com/passengerdesk/auth-service/internal/core/ports"
	"github.com/passengerdesk/auth-service/internal/core/service"
	"github.com/passengerdesk/auth-service/internal/infrastructure/config"
	"github.com/passengerdesk/auth-service/internal/infrastructure/db/memory"
	mongodb "github.com/passengerdesk/auth-service/internal/infrastructure/db/mongo"
	redisdb "github.com/passengerdesk/auth-service/internal/infrastructure/db/redis"
	"github.com/passengerdesk/auth-service/internal/infrastructure/identity"
	"github.com/passengerdesk/auth-service/internal/infrastructure/session"
	"github.com/passengerdesk/auth-service/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "passenger-auth: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Service: "passenger-auth",
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
	})

	var closers []func(context.Context) error
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](closeCtx); err != nil {
				log.Warn().Err(err).Msg("close dependency")
			}
		}
	}()

	health := map[string]handler.Pinger{}

	users, err := buildUserRepository(ctx, cfg, health, &closers)
	if err != nil {
		return err
	}

	verifier, err := buildVerifier(ctx, cfg)
	if err != nil {
		return err
	}

	sessions, err := buildSessionStore(ctx, cfg, health, &closers)
	if err != nil {
		return err
	}

	e := api.NewRouter(api.Dependencies{
		Log:                logger.Component("http"),
		Credentials:        service.NewCredentialService(users, logger.Component("credentials")),
		Identity:           service.NewIdentityService(verifier, cfg.Identity.Audience, cfg.Identity.VerifyTimeout, logger.Component("identity")),
		Sessions:           sessions,
		Health:             health,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	serveErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("identity_provider", cfg.Identity.Provider).
			Str("session_backend", cfg.Session.Backend).
			Str("user_store", cfg.Users.Store).
			Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Dur("timeout", shutdownTimeout).Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

func buildUserRepository(ctx context.Context, cfg *config.Config, health map[string]handler.Pinger, closers *[]func(context.Context) error) (ports.UserRepository, error) {
	if !cfg.NeedsMongo() {
		return memory.NewUserRepository(memory.SeedUsers()...)
	}

	db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return nil, err
	}
	*closers = append(*closers, db.Close)
	health["mongodb"] = db

	repo := mongodb.NewUserRepository(db.Database)
	if err := repo.EnsureIndexes(ctx); err != nil {
		return nil, err
	}
	if cfg.Users.Seed {
		if err := repo.Seed(ctx, memory.SeedUsers()); err != nil {
			return nil, err
		}
	}
	return repo, nil
}

func buildVerifier(ctx context.Context, cfg *config.Config) (ports.TokenVerifier, error) {
	if cfg.Identity.Provider == config.IdentityProviderLocal {
		return identity.NewLocalVerifier(cfg.Identity.LocalSecret)
	}
	return identity.NewGoogleVerifier(ctx, &http.Client{Timeout: cfg.Identity.VerifyTimeout})
}

func buildSessionStore(ctx context.Context, cfg *config.Config, health map[string]handler.Pinger, closers *[]func(context.Context) error) (ports.SessionStore, error) {
	sc := cfg.Session
	switch sc.Backend {
	case config.SessionBackendMemory:
		return session.NewMemoryStore(sc.Lifetime, sc.SecureCookies), nil
	case config.SessionBackendRedis:
		client, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return nil, err
		}
		*closers = append(*closers, func(context.Context) error { return client.Close() })
		health["redis"] = redisdb.Pinger{Client: client}
		return session.NewRedisStore(client, sc.Lifetime, sc.SecureCookies), nil
	default:
		return session.NewCookieStore(sc.Secret, sc.Lifetime, sc.SecureCookies)
	}
}
