// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/brokerdash/backend/config"
	"github.com/brokerdash/backend/internal/application/adapter"
	"github.com/brokerdash/backend/internal/application/usecase/dashboard"
	"github.com/brokerdash/backend/internal/application/usecase/digest"
	"github.com/brokerdash/backend/internal/infra/db"
	"github.com/brokerdash/backend/internal/infra/scheduler"
	"github.com/brokerdash/backend/internal/infra/server/router"
	"github.com/brokerdash/backend/internal/integration/adapters"
	"github.com/brokerdash/backend/internal/integration/cache"
	"github.com/brokerdash/backend/internal/integration/email"
	"github.com/brokerdash/backend/internal/integration/email/templates"
	"github.com/brokerdash/backend/internal/integration/entrypoint/controller"
	"github.com/brokerdash/backend/internal/integration/entrypoint/middleware"
	"github.com/brokerdash/backend/internal/integration/persistence"
)

const rateLimiterCleanupSchedule = "@every 10m"

// Injector holds all application dependencies.
type Injector struct {
	Config    *config.Config
	DB        *gorm.DB
	Router    *router.Router
	Scheduler *scheduler.Scheduler
	Cache     adapter.ReportCache
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient may be nil, in which case reports are not cached. clock may be
// nil to use the wall clock.
func NewInjector(cfg *config.Config, gormDB *gorm.DB, redisClient *redis.Client, clock adapter.Clock) (*Injector, error) {
	if clock == nil {
		clock = adapter.SystemClock{}
	}

	// Create repositories
	operationRepo := persistence.NewOperationRepository(gormDB)
	expenseRepo := persistence.NewExpenseRepository(gormDB)
	userRepo := persistence.NewUserRepository(gormDB)

	// Report cache stays an untyped nil when disabled
	var (
		reportCache        adapter.ReportCache
		cacheHealthChecker func() bool
	)
	if redisClient != nil {
		reportCache = cache.NewRedisReportCache(redisClient, cfg.Redis.TTL)
		cacheHealthChecker = db.RedisHealthCheck(redisClient)
	}

	// Create dashboard use cases
	loader := dashboard.NewLoader(operationRepo, expenseRepo, userRepo, reportCache, clock)
	dashboardController := controller.NewDashboardController(
		dashboard.NewListOperationsUseCase(loader),
		dashboard.NewGetTotalsUseCase(loader),
		dashboard.NewGetTypeBreakdownUseCase(loader),
		dashboard.NewGetGroupSummaryUseCase(loader),
		dashboard.NewGetSeriesUseCase(loader),
		dashboard.NewGetKPIsUseCase(loader),
		dashboard.NewGetRankingUseCase(loader),
		dashboard.NewGetExpenseSummaryUseCase(loader),
	)

	healthController := controller.NewHealthController(db.PostgresHealthCheck(gormDB), cacheHealthChecker)

	// Create middleware
	// Higher rate limits for E2E/test environments prevent flaky tests
	var rateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		rateLimiter = middleware.NewRateLimiterWithConfig(1000, 1000, cfg.RateLimit.Enabled)
	} else {
		rateLimiter = middleware.NewRateLimiterWithConfig(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, cfg.RateLimit.Enabled)
	}
	authMiddleware := middleware.NewAuthMiddleware(adapters.NewTokenService(cfg.JWT.Secret), userRepo)

	// Create background jobs
	jobs, err := scheduler.New(cfg.Digest.Timezone)
	if err != nil {
		return nil, err
	}
	if err := jobs.AddJob(rateLimiterCleanupSchedule, scheduler.NewCleanupJob("rate_limiter_cleanup", rateLimiter)); err != nil {
		return nil, err
	}

	if cfg.Digest.Enabled {
		if cfg.Email.ResendAPIKey == "" {
			slog.Warn("Monthly digest disabled: RESEND_API_KEY is not set")
		} else {
			digestJob, err := newDigestJob(cfg, operationRepo, userRepo, clock)
			if err != nil {
				return nil, err
			}
			if err := jobs.AddJob(cfg.Digest.Schedule, digestJob); err != nil {
				return nil, err
			}
		}
	}

	return &Injector{
		Config:    cfg,
		DB:        gormDB,
		Router:    router.NewRouter(healthController, dashboardController, rateLimiter, authMiddleware),
		Scheduler: jobs,
		Cache:     reportCache,
	}, nil
}

func newDigestJob(
	cfg *config.Config,
	operationRepo adapter.OperationRepository,
	userRepo adapter.UserRepository,
	clock adapter.Clock,
) (*scheduler.DigestJob, error) {
	renderer, err := templates.NewRenderer(cfg.Report.Locale)
	if err != nil {
		return nil, fmt.Errorf("failed to create digest renderer: %w", err)
	}

	sender, err := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.ResendURL, cfg.Email.FromName, cfg.Email.FromEmail)
	if err != nil {
		return nil, err
	}

	uc := digest.NewSendMonthlyDigestUseCase(operationRepo, userRepo, renderer, sender).
		WithConcurrency(cfg.Digest.Concurrency)
	return scheduler.NewDigestJob(uc, clock), nil
}
