package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/femcoders/pettrack/internal/api/http"
	"github.com/femcoders/pettrack/internal/api/http/handlers"
	"github.com/femcoders/pettrack/internal/auth"
	"github.com/femcoders/pettrack/internal/config"
	"github.com/femcoders/pettrack/internal/events"
	"github.com/femcoders/pettrack/internal/observability"
	"github.com/femcoders/pettrack/internal/persistence"
	"github.com/femcoders/pettrack/internal/repository"
	"github.com/femcoders/pettrack/internal/service"
	"github.com/femcoders/pettrack/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	petRepo := repository.NewPetRepository(pool)
	recordRepo := repository.NewMedicalRecordRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	identityCache := auth.NewIdentityCache(redis.Client, cfg.Auth.IdentityCacheTTL())

	authService := service.NewAuthService(*cfg, userRepo, dispatcher)
	userService := service.NewUserService(userRepo, cfg.Auth.BcryptCost, identityCache, dispatcher)
	petService := service.NewPetService(petRepo, userRepo, dispatcher)
	recordService := service.NewMedicalRecordService(recordRepo, petRepo, dispatcher)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewMiddleware(authService.TokenManager(), userRepo, identityCache)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(userService),
		Pets:           handlers.NewPetsHandler(petService),
		MedicalRecords: handlers.NewMedicalRecordsHandler(recordService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
