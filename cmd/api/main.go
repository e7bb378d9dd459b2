package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/shift-roster/internal/api/http"
	"github.com/spec-kit/shift-roster/internal/api/http/handlers"
	"github.com/spec-kit/shift-roster/internal/auth"
	"github.com/spec-kit/shift-roster/internal/config"
	"github.com/spec-kit/shift-roster/internal/events"
	"github.com/spec-kit/shift-roster/internal/observability"
	"github.com/spec-kit/shift-roster/internal/persistence"
	"github.com/spec-kit/shift-roster/internal/repository"
	"github.com/spec-kit/shift-roster/internal/service"
	"github.com/spec-kit/shift-roster/internal/worker"
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

	if !cfg.Shifts.EnforceTransitions {
		logger.Warn("shift status transitions are not enforced; any status may follow any other")
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	shiftRepo := repository.NewShiftRepository(pool)
	requestRepo := repository.NewRequestRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)

	dispatcher := events.NewInMemoryDispatcher(logger)
	notificationService := service.NewNotificationService(dispatcher, redis, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService, logger)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{UserRepo: userRepo})
	shiftService := service.NewShiftService(service.ShiftDependencies{
		ShiftRepo:          shiftRepo,
		UserRepo:           userRepo,
		Dispatcher:         dispatcher,
		EnforceTransitions: cfg.Shifts.EnforceTransitions,
	})
	requestService := service.NewRequestService(service.RequestDependencies{
		RequestRepo: requestRepo,
		UserRepo:    userRepo,
		Dispatcher:  dispatcher,
	})
	analyticsService := service.NewAnalyticsService(service.AnalyticsDependencies{
		UserRepo:    userRepo,
		ShiftRepo:   shiftRepo,
		RequestRepo: requestRepo,
		Location:    cfg.App.Location(),
	})
	employeeService := service.NewEmployeeService(userRepo)
	messageService := service.NewMessageService(messageRepo, dispatcher)
	rosterService := service.NewRosterService(userRepo, nil)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		Logger:      logger,
		Metrics:     metrics,
		Timeout:     cfg.App.RequestTimeout(),
		CORSOrigins: cfg.App.CORSOrigins,
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Auth:           handlers.NewAuthHandler(authService),
		Shifts:         handlers.NewShiftsHandler(shiftService, rosterService),
		Requests:       handlers.NewRequestsHandler(requestService),
		Employees:      handlers.NewEmployeesHandler(employeeService),
		Messages:       handlers.NewMessagesHandler(messageService),
		Analytics:      handlers.NewAnalyticsHandler(analyticsService),
		AuthMiddleware: authMiddleware,
		LoginLimiter:   redis,
		LoginAttempts:  cfg.RateLimit.LoginAttempts,
		LoginWindow:    cfg.RateLimit.LoginWindow(),
		Logger:         logger,
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.String("env", cfg.App.Env))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.Shutdown(); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
