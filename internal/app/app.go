package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"journal-service/internal/config"
	domainservice "journal-service/internal/domain/service"
	"journal-service/internal/infrastructure/ai"
	"journal-service/internal/infrastructure/cron"
	infradb "journal-service/internal/infrastructure/db"
	"journal-service/internal/infrastructure/kafka"
	"journal-service/internal/infrastructure/metrics"
	"journal-service/internal/infrastructure/postgres"
	infraredis "journal-service/internal/infrastructure/redis"
	"journal-service/internal/infrastructure/smtp"
	"journal-service/internal/logger"
	"journal-service/internal/service"
	"journal-service/internal/transport/grpc"
	"journal-service/internal/transport/http/handler"
	"journal-service/internal/transport/http/middleware"
	"journal-service/pkg/jwt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// App represents the application
type App struct {
	config *config.Config
	logger *zap.Logger

	pgPool      *pgxpool.Pool
	redisClient *redis.Client

	httpServer        *http.Server
	grpcServer        *grpc.Server
	kafkaProducer     *kafka.Producer
	kafkaConsumer     *kafka.Consumer
	reminderScheduler scheduler
}

type scheduler interface {
	Start() error
	Stop()
}

// New creates a new application
func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(&cfg.Logging, cfg.Service)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	log.Info("configuration loaded")

	app := &App{config: cfg, logger: log}

	ctx := context.Background()
	app.pgPool, err = infradb.NewPostgresPool(ctx, &cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	log.Info("connected to PostgreSQL")

	app.redisClient, err = infraredis.NewRedisClient(&cfg.Redis)
	if err != nil {
		app.pgPool.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Info("connected to Redis")

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.Metrics.Namespace)
	}

	// Repositories and storages
	userRepo := postgres.NewUserRepository(app.pgPool)
	entryRepo := postgres.NewEntryRepository(app.pgPool)
	sessionStorage := infraredis.NewSessionStorage(app.redisClient, cfg.Redis.SessionTTL)
	verificationTokenStorage := infraredis.NewVerificationTokenStorage(app.redisClient)
	reminderLog := infraredis.NewReminderLog(app.redisClient)

	// Outbound integrations
	var mailer domainservice.Mailer = smtp.NewLogMailer(log)
	if cfg.SMTP.MailEnabled() {
		smtpClient, err := smtp.NewClient(&cfg.SMTP, &cfg.Email)
		if err != nil {
			app.closeStores()
			return nil, fmt.Errorf("failed to create SMTP client: %w", err)
		}
		mailer = smtpClient
	}

	var publisher domainservice.EventPublisher
	if cfg.Kafka.Enabled {
		app.kafkaProducer = kafka.NewProducer(&cfg.Kafka, log)
		app.kafkaConsumer = kafka.NewConsumer(&cfg.Kafka, mailer, log)
		publisher = app.kafkaProducer
		log.Info("kafka producer initialized", zap.Strings("brokers", cfg.Kafka.Brokers))
	} else {
		publisher = service.NewMailPublisher(mailer, log)
	}

	var feedbackService domainservice.FeedbackService
	if cfg.AI.FeedbackEnabled() {
		feedbackService = service.NewFeedbackService(ai.NewClient(&cfg.AI), m, log)
	} else {
		log.Warn("AI feedback disabled: no API key configured")
	}

	tokenManager := jwt.NewTokenManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenTTL,
		cfg.JWT.RefreshTokenTTL,
		cfg.JWT.Issuer,
	)

	// Services
	userService := service.NewUserService(userRepo)
	authService := service.NewAuthService(
		userService,
		sessionStorage,
		verificationTokenStorage,
		tokenManager,
		publisher,
		log,
	)
	journalService := service.NewJournalService(entryRepo, feedbackService, publisher, m, log)

	if cfg.Reminder.Enabled {
		reminderService := service.NewReminderService(userRepo, entryRepo, reminderLog, mailer, cfg.Reminder.Hour, m, log)
		app.reminderScheduler = cron.NewReminderScheduler(reminderService, cfg.Reminder.CheckInterval, log)
	}

	// Transport
	router := handler.NewRouter(
		handler.NewAuthHandler(authService, log),
		handler.NewAccountHandler(userService, log),
		handler.NewEntryHandler(journalService, userService, log),
		middleware.NewAuthMiddleware(authService, log),
		m,
		cfg.Metrics.Path,
		log,
	)

	app.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	if cfg.GRPC.Port != 0 {
		app.grpcServer = grpc.NewServer(&cfg.GRPC, log)
	}

	return app, nil
}

// Run starts the application and blocks until SIGINT or SIGTERM
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return a.run(ctx)
}

// run serves until ctx is done or a server fails, then shuts everything down
func (a *App) run(ctx context.Context) error {
	errCh := make(chan error, 2)

	go func() {
		a.logger.Info("HTTP server listening", zap.String("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	if a.grpcServer != nil {
		go func() {
			if err := a.grpcServer.Start(); err != nil {
				errCh <- fmt.Errorf("grpc server: %w", err)
			}
		}()
	}

	consumerCtx, cancelConsumer := context.WithCancel(context.Background())
	defer cancelConsumer()
	if a.kafkaConsumer != nil {
		go func() {
			if err := a.kafkaConsumer.Start(consumerCtx); err != nil {
				a.logger.Error("kafka consumer stopped", zap.Error(err))
			}
		}()
	}

	var runErr error
	if a.reminderScheduler != nil {
		if err := a.reminderScheduler.Start(); err != nil {
			runErr = fmt.Errorf("failed to start reminder scheduler: %w", err)
			a.logger.Error("startup failed, shutting down", zap.Error(runErr))
		}
	}

	if runErr == nil {
		a.logger.Info("journal service started")

		select {
		case <-ctx.Done():
			a.logger.Info("shutting down")
		case runErr = <-errCh:
			a.logger.Error("server failed, shutting down", zap.Error(runErr))
		}
	}

	a.shutdown(cancelConsumer)

	return runErr
}

func (a *App) shutdown(cancelConsumer context.CancelFunc) {
	timeout := a.config.HTTP.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if a.grpcServer != nil {
		a.grpcServer.Stop()
	}

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.logger.Error("failed to shut down HTTP server", zap.Error(err))
	}

	if a.reminderScheduler != nil {
		a.reminderScheduler.Stop()
	}

	cancelConsumer()
	if a.kafkaConsumer != nil {
		if err := a.kafkaConsumer.Close(); err != nil {
			a.logger.Error("failed to close kafka consumer", zap.Error(err))
		}
	}
	if a.kafkaProducer != nil {
		if err := a.kafkaProducer.Close(); err != nil {
			a.logger.Error("failed to close kafka producer", zap.Error(err))
		}
	}

	a.closeStores()

	a.logger.Info("shutdown complete")
	_ = a.logger.Sync()
}

func (a *App) closeStores() {
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Error("failed to close redis client", zap.Error(err))
		}
	}
	if a.pgPool != nil {
		a.pgPool.Close()
	}
}
