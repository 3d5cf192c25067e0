package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	httpadapter "recipeauth/internal/adapters/http"
	"recipeauth/internal/adapters/mail"
	"recipeauth/internal/adapters/postgres"
	redisadapter "recipeauth/internal/adapters/redis"
	"recipeauth/internal/config"
	"recipeauth/internal/core/auth"
	"recipeauth/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	log := logger.New(cfg)

	if cfg.JWTSecret == "" {
		panic("FATAL: JWT_SECRET is mandatory for Server!")
	}

	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.JWTExpiry)
	if err != nil {
		panic("FATAL: invalid signing configuration: " + err.Error())
	}

	dbPool, err := postgres.InitDB(cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to init DB", "error", err)
		return
	}
	defer dbPool.Close()

	redisClient := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()

	limiter := redisadapter.NewAttemptLimiter(redisClient)

	brevo := mail.NewBrevoClient(cfg.BrevoAPIKey, cfg.SenderName, cfg.SenderEmail)
	mailer := mail.NewDispatcher(brevo, log, cfg.VerificationCodeTTL, 2, 64)
	defer mailer.Close()

	userRepo := postgres.NewUserRepository(dbPool)
	authService := auth.NewService(userRepo, tokens, mailer, limiter, cfg.VerificationCodeTTL)
	authHandler := httpadapter.NewAuthHandler(authService, cfg)

	router := httpadapter.NewRouter(cfg, &httpadapter.RouterDeps{
		Auth:   authHandler,
		Tokens: tokens,
	})

	srv := httpadapter.NewServer(router, cfg.Address)

	errCh := make(chan error, 1)
	go func() {
		log.Info("http: starting server", "address", cfg.Address)
		errCh <- srv.ListenAndServe()
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("http: server shutdown error", "error", err)
		}

	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			log.Error("http: server error", "error", err)
		}
	}

	log.Info("server stopped")
}
