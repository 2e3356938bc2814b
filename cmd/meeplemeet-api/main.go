package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/meeplemeet/meeplemeet-api/api/swagger"
	"github.com/meeplemeet/meeplemeet-api/internal/availability"
	"github.com/meeplemeet/meeplemeet-api/internal/handler"
	"github.com/meeplemeet/meeplemeet-api/internal/repository"
	"github.com/meeplemeet/meeplemeet-api/internal/service"
	"github.com/meeplemeet/meeplemeet-api/pkg/cache"
	"github.com/meeplemeet/meeplemeet-api/pkg/config"
	"github.com/meeplemeet/meeplemeet-api/pkg/database"
	"github.com/meeplemeet/meeplemeet-api/pkg/export"
	"github.com/meeplemeet/meeplemeet-api/pkg/jobs"
	"github.com/meeplemeet/meeplemeet-api/pkg/logger"
	"github.com/meeplemeet/meeplemeet-api/pkg/push"
	"github.com/meeplemeet/meeplemeet-api/pkg/storage"
)

const (
	shutdownTimeout    = 15 * time.Second
	rentalSweepPeriod  = 5 * time.Minute
	notificationBuffer = 256
)

// @title MeepleMeet API
// @version 1.0.0
// @description Board-game discussions, sessions, space rentals and invitations.
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if err := run(cfg, logr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logr *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer db.Close() //nolint:errcheck

	if err := database.Migrate(ctx, db, logr); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	var redisClient *redis.Client
	var cacheRepo service.CacheRepository
	if cfg.Cache.Enabled {
		redisClient, err = cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, caching disabled", zap.Error(err))
		} else {
			defer redisClient.Close() //nolint:errcheck
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
		}
	}

	sender, err := push.New(ctx, cfg.Push, logr)
	if err != nil {
		logr.Warn("push disabled", zap.Error(err))
		sender = push.NopSender{}
	}

	app := buildApp(cfg, logr, db, cacheRepo, sender)
	app.start(ctx)
	defer app.stop()

	checks := map[string]handler.ReadinessCheck{"postgres": db.PingContext}
	if redisClient != nil {
		checks["redis"] = cache.Probe(redisClient)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           newRouter(cfg, logr, app, checks),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// app holds the wired services and their background workers.
type app struct {
	logger *zap.Logger

	metrics       *service.MetricsService
	auth          *service.AuthService
	accounts      *service.AccountService
	shops         *service.ShopService
	spaceRenters  *service.SpaceRenterService
	rentals       *service.RentalService
	discussions   *service.DiscussionService
	sessions      *service.SessionService
	notifications *service.NotificationService
	reports       *service.ReportService

	notificationQueue *jobs.Queue
	exportQueue       *jobs.Queue
}

func buildApp(cfg *config.Config, logr *zap.Logger, db *sqlx.DB, cacheRepo service.CacheRepository, sender push.Sender) *app {
	validate := validator.New()
	metrics := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.TTL, logr, cfg.Cache.Enabled)
	availConfig := availability.Config{Location: cfg.Availability.Location(), Now: time.Now}

	accountRepo := repository.NewAccountRepository(db)
	shopRepo := repository.NewShopRepository(db)
	spaceRenterRepo := repository.NewSpaceRenterRepository(db)
	rentalRepo := repository.NewRentalRepository(db)
	discussionRepo := repository.NewDiscussionRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	a := &app{logger: logr, metrics: metrics}
	a.auth = service.NewAuthService(accountRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             cfg.JWT.Issuer,
	})
	a.accounts = service.NewAccountService(accountRepo, cacheSvc, validate, logr)
	a.shops = service.NewShopService(shopRepo, accountRepo, cacheSvc, validate, logr)
	a.spaceRenters = service.NewSpaceRenterService(spaceRenterRepo, accountRepo, cacheSvc, validate, logr)
	a.rentals = service.NewRentalService(rentalRepo, spaceRenterRepo, availConfig, metrics, validate, logr)
	a.discussions = service.NewDiscussionService(discussionRepo, accountRepo, nil, validate, logr)
	a.sessions = service.NewSessionService(sessionRepo, discussionRepo, a.rentals, nil, availConfig, validate, logr)
	a.discussions.SetHooks(a.sessions)

	a.notifications = service.NewNotificationService(service.NotificationDeps{
		Repo:            notificationRepo,
		Accounts:        accountRepo,
		Discussions:     discussionRepo,
		Sessions:        sessionRepo,
		DiscussionJoins: a.discussions,
		SessionJoins:    a.sessions,
		Sender:          sender,
		Metrics:         metrics,
	}, validate, logr)
	a.sessions.SetNotifier(a.notifications)

	a.notificationQueue = jobs.NewQueue("notifications", a.notifications.HandleDelivery, jobs.QueueConfig{
		Workers:    cfg.Notifications.Workers,
		BufferSize: notificationBuffer,
		MaxRetries: cfg.Notifications.MaxRetries,
		Logger:     logr,
		OnDrop:     a.notifications.RecordDropped,
	})
	a.notifications.SetQueue(a.notificationQueue)

	if cfg.Exports.Enabled {
		a.reports, a.exportQueue = buildExports(cfg, logr, db, rentalRepo, spaceRenterRepo, metrics, validate, availConfig)
	}
	return a
}

func buildExports(cfg *config.Config, logr *zap.Logger, db *sqlx.DB, rentals *repository.RentalRepository, renters *repository.SpaceRenterRepository, metrics *service.MetricsService, validate *validator.Validate, availConfig availability.Config) (*service.ReportService, *jobs.Queue) {
	store, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		logr.Warn("export storage unavailable, exports disabled", zap.Error(err))
		return nil, nil
	}
	signer := storage.NewDownloadSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
	exporter := service.NewExportService(rentals, renters, store, signer, service.ExportConfig{
		APIPrefix:    cfg.APIPrefix,
		ResultTTL:    cfg.Exports.SignedURLTTL,
		Availability: availConfig,
	}, logr, export.NewCSVRenderer(), export.NewPDFRenderer())

	jobRepo := repository.NewExportJobRepository(db)
	worker := service.NewReportWorker(jobRepo, exporter, metrics, cfg.Exports.WorkerRetries, logr)
	queue := jobs.NewQueue("exports", worker.Handle, jobs.QueueConfig{
		Workers:    cfg.Exports.WorkerConcurrency,
		MaxRetries: cfg.Exports.WorkerRetries,
		Logger:     logr,
	})
	reports := service.NewReportService(jobRepo, renters, queue, exporter, validate, logr, service.ReportServiceConfig{
		ResultTTL:       cfg.Exports.SignedURLTTL,
		CleanupInterval: cfg.Exports.CleanupInterval,
	})
	return reports, queue
}

func (a *app) start(ctx context.Context) {
	a.notificationQueue.Start(ctx)
	if a.exportQueue != nil {
		a.exportQueue.Start(ctx)
		a.reports.RecoverPendingJobs(ctx)
		a.reports.StartCleanup(ctx)
	}
	go a.sweepRentals(ctx)
}

func (a *app) stop() {
	a.notificationQueue.Stop()
	if a.exportQueue != nil {
		a.exportQueue.Stop()
	}
}

// sweepRentals marks rentals whose window has passed as completed.
func (a *app) sweepRentals(ctx context.Context) {
	ticker := time.NewTicker(rentalSweepPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := a.rentals.CompleteEnded(ctx)
			if err != nil {
				a.logger.Warn("rental sweep failed", zap.Error(err))
				continue
			}
			if n > 0 {
				a.logger.Info("rentals completed", zap.Int64("count", n))
			}
		}
	}
}
