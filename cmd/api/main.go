package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/match-reveal-service/internal/api/http"
	"github.com/spec-kit/match-reveal-service/internal/api/http/handlers"
	"github.com/spec-kit/match-reveal-service/internal/auth"
	"github.com/spec-kit/match-reveal-service/internal/config"
	"github.com/spec-kit/match-reveal-service/internal/events"
	"github.com/spec-kit/match-reveal-service/internal/observability"
	"github.com/spec-kit/match-reveal-service/internal/persistence"
	"github.com/spec-kit/match-reveal-service/internal/ratelimit"
	"github.com/spec-kit/match-reveal-service/internal/repository"
	"github.com/spec-kit/match-reveal-service/internal/service"
	"github.com/spec-kit/match-reveal-service/internal/worker"
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

	var participantRepo repository.ParticipantRepository
	var recordRepo repository.MatchRecordRepository
	if pool := pg.PoolHandle(); pool != nil {
		participantRepo = repository.NewParticipantRepository(pool)
		recordRepo = repository.NewMatchRecordRepository(pool)
	} else {
		participantRepo = repository.NewInMemoryParticipants()
		recordRepo = repository.NewInMemoryMatchRecords()
	}

	dispatcher := events.NewInMemoryDispatcher(logger)
	auditService := service.NewAuditService(dispatcher, logger)
	worker.StartAuditWorker(auditService)

	pairingService := service.NewPairingService(service.PairingDependencies{
		ParticipantRepo: participantRepo,
		Dispatcher:      dispatcher,
	})
	assignmentService := service.NewAssignmentService(service.AssignmentDependencies{
		RecordRepo: recordRepo,
		Dispatcher: dispatcher,
	})
	revealService := service.NewRevealService(participantRepo)
	authService := service.NewAuthService(cfg.Admin)
	adminMiddleware := auth.NewMiddleware(authService.TokenManager())

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	var revealLimiter fiber.Handler
	if cfg.RateLimit.Enforce {
		journal := ratelimit.NewRedisJournal(redis.Client, "ratelimit:reveal:", cfg.RateLimit.Window())
		limiter := ratelimit.New(journal, cfg.RateLimit.MaxRequests, cfg.RateLimit.Window())
		revealLimiter = ratelimit.Middleware(limiter, logger)
		logger.Info("server-side reveal rate limiting enabled",
			zap.Int("max_requests", cfg.RateLimit.MaxRequests),
			zap.Duration("window", cfg.RateLimit.Window()),
		)
	}

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	authHandler := handlers.NewAuthHandler(authService)
	revealHandler := handlers.NewRevealHandler(revealService)
	participantsHandler := handlers.NewParticipantsHandler(pairingService)
	matchRecordsHandler := handlers.NewMatchRecordsHandler(assignmentService)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:          healthHandler,
		Auth:            authHandler,
		Reveal:          revealHandler,
		Participants:    participantsHandler,
		MatchRecords:    matchRecordsHandler,
		AdminMiddleware: adminMiddleware,
		RevealLimiter:   revealLimiter,
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
