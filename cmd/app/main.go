package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	apiHttp "github.com/saludplus/backend/internal/api/http"
	"github.com/saludplus/backend/internal/cache"
	"github.com/saludplus/backend/internal/config"
	"github.com/saludplus/backend/internal/db"
	"github.com/saludplus/backend/internal/queue/asynqserver"
	queueClient "github.com/saludplus/backend/internal/queue/client"
	"github.com/saludplus/backend/internal/repository"
	"github.com/saludplus/backend/internal/sacs"
	"github.com/saludplus/backend/internal/server"
	"github.com/saludplus/backend/internal/service"
	"github.com/saludplus/backend/internal/worker"
	"github.com/saludplus/backend/pkg/auth"
	"github.com/saludplus/backend/pkg/email/smtp"
	"github.com/saludplus/backend/pkg/hash"
	"github.com/saludplus/backend/pkg/logger"
	"github.com/saludplus/backend/pkg/otp"
)

func main() {
	cfg := config.MustLoad()

	logger.Setup(cfg.Env, cfg.LogLevel)
	defer logger.Logger().Sync()

	logger.Info("starting registration backend", zap.String("env", cfg.Env))

	dbMySQL, err := db.New(cfg.Database)
	if err != nil {
		logger.Error("mysql connect problem", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		if err := dbMySQL.Close(); err != nil {
			logger.Error("error when closing mysql", zap.Error(err))
		}
	}()
	logger.Info("mysql connection done")

	redisCache, err := cache.NewRedis(cfg.Cache)
	if err != nil {
		logger.Error("redis connect problem", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		if err := redisCache.Close(); err != nil {
			logger.Error("error when closing redis", zap.Error(err))
		}
	}()
	logger.Info("redis connection done")

	hasher := hash.NewSHA256Hasher(cfg.Auth.PasswordSalt)

	emailSender, err := smtp.NewSMTPSender(cfg.SMTP.From, cfg.SMTP.Pass, cfg.SMTP.Host, cfg.SMTP.Port)
	if err != nil {
		logger.Error("smtp sender creation failed", zap.Error(err))
		return
	}

	tokenManager, err := auth.NewManager(cfg.Auth.JWT)
	if err != nil {
		logger.Error("auth manager creation failed", zap.Error(err))
		return
	}

	otpGenerator := otp.NewGOTPGenerator()
	sacsClient := sacs.NewClient(cfg.Registry)

	// Async task queue: worker consumes, the registration service enqueues
	// through the global client.
	workers := worker.NewWorkers(worker.Deps{
		Redis:         redisCache,
		EmailProvider: emailSender,
		Config:        cfg,
	})

	asynqSrv, asynqMux := asynqserver.New(cfg.Cache, workers)
	go func() {
		if err := asynqSrv.Run(asynqMux); err != nil {
			logger.Error("asynq server stopped", zap.Error(err))
		}
	}()

	taskClient := asynq.NewClient(asynqserver.RedisOptions(cfg.Cache))
	defer taskClient.Close()
	queueClient.SetClient(taskClient)

	repos := repository.NewRepositories(dbMySQL, redisCache, cfg.Registration.DraftTTL)
	services := service.NewServices(service.Deps{
		Config:       cfg,
		Hasher:       hasher,
		TokenManager: tokenManager,
		OtpGenerator: otpGenerator,
		Repos:        repos,
		SacsClient:   sacsClient,
	})
	handlers := apiHttp.NewHandlers(services, tokenManager, cfg)

	srv := server.NewServer(cfg, handlers.Init(cfg))
	go func() {
		if err := srv.Run(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("error occurred while running http server", zap.Error(err))
		}
	}()
	logger.Info("server started", zap.String("port", cfg.HttpServer.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	<-quit

	const timeout = 5 * time.Second

	ctx, shutdown := context.WithTimeout(context.Background(), timeout)
	defer shutdown()

	if err := srv.Stop(ctx); err != nil {
		logger.Error("failed to stop server", zap.Error(err))
	}

	// Flush pending autosaves before the process exits.
	services.Registrations.Shutdown()
	asynqSrv.Shutdown()

	logger.Info("app stopped")
}
