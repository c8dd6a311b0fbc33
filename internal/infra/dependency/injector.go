// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/subscription-tracker/backend/config"
	"github.com/subscription-tracker/backend/internal/application/adapter"
	"github.com/subscription-tracker/backend/internal/application/usecase/analytics"
	"github.com/subscription-tracker/backend/internal/application/usecase/billingdate"
	"github.com/subscription-tracker/backend/internal/application/usecase/category"
	"github.com/subscription-tracker/backend/internal/application/usecase/notification"
	"github.com/subscription-tracker/backend/internal/application/usecase/reminder"
	"github.com/subscription-tracker/backend/internal/application/usecase/settings"
	"github.com/subscription-tracker/backend/internal/application/usecase/subscription"
	"github.com/subscription-tracker/backend/internal/infra/server/router"
	"github.com/subscription-tracker/backend/internal/integration/adapters"
	"github.com/subscription-tracker/backend/internal/integration/cache"
	"github.com/subscription-tracker/backend/internal/integration/email"
	"github.com/subscription-tracker/backend/internal/integration/email/templates"
	"github.com/subscription-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/subscription-tracker/backend/internal/integration/entrypoint/middleware"
	"github.com/subscription-tracker/backend/internal/integration/persistence"
)

// Options carries the collaborators that differ between production and tests.
// Zero values fall back to the system clock, a no-op cache and the Resend client.
type Options struct {
	Clock        adapter.Clock
	Cache        adapter.BillingDateCache
	EmailSender  adapter.EmailSender
	HealthChecks []controller.HealthCheck
}

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Router      *router.Router
	Reminders   *reminder.GenerateRemindersUseCase
	EmailWorker *email.Worker
	RateLimiter *middleware.RateLimiter
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, opts Options) (*Injector, error) {
	clock := opts.Clock
	if clock == nil {
		clock = adapter.SystemClock{}
	}
	billingCache := opts.Cache
	if billingCache == nil {
		billingCache = cache.NewNoopBillingDateCache()
	}
	sender := opts.EmailSender
	if sender == nil {
		resendClient := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
		if cfg.Email.ResendBaseURL != "" {
			if err := resendClient.SetBaseURL(cfg.Email.ResendBaseURL); err != nil {
				return nil, err
			}
		}
		sender = resendClient
	}

	// Create repositories
	subscriptionRepo := persistence.NewSubscriptionRepository(db)
	notificationRepo := persistence.NewNotificationRepository(db)
	settingsRepo := persistence.NewUserSettingsRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)

	// Create adapters/services
	tokenVerifier := adapters.NewTokenVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.Leeway)
	emailService := email.NewService(emailQueueRepo, cfg.Email.AppBaseURL)
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}

	// Create controllers with their use cases
	subscriptionController := controller.NewSubscriptionController(
		subscription.NewListSubscriptionsUseCase(subscriptionRepo),
		subscription.NewCreateSubscriptionUseCase(subscriptionRepo),
		subscription.NewGetSubscriptionUseCase(subscriptionRepo, clock),
		subscription.NewUpdateSubscriptionUseCase(subscriptionRepo),
		subscription.NewDeleteSubscriptionUseCase(subscriptionRepo),
		subscription.NewUpcomingSubscriptionsUseCase(subscriptionRepo, clock),
		cfg.Billing.UpcomingWindowDays,
	)

	billingController := controller.NewBillingController(
		billingdate.NewGetNextBillingDateUseCase(billingCache, clock),
		billingdate.NewProjectBillingDatesUseCase(clock),
	)

	analyticsController := controller.NewAnalyticsController(
		analytics.NewGetSummaryUseCase(subscriptionRepo, clock),
		analytics.NewTotalByFrequencyUseCase(subscriptionRepo, clock),
		analytics.NewCategoryBreakdownUseCase(subscriptionRepo, clock),
		analytics.NewTopSubscriptionsUseCase(subscriptionRepo, clock),
		cfg.Billing.TopLimit,
	)

	categoryController := controller.NewCategoryController(
		category.NewListCategoriesUseCase(categoryRepo),
		category.NewCreateCategoryUseCase(categoryRepo),
		category.NewDeleteCategoryUseCase(categoryRepo, subscriptionRepo),
	)

	notificationController := controller.NewNotificationController(
		notification.NewListNotificationsUseCase(notificationRepo),
		notification.NewMarkReadUseCase(notificationRepo),
		notification.NewMarkAllReadUseCase(notificationRepo),
		notification.NewDeleteNotificationUseCase(notificationRepo),
	)

	settingsController := controller.NewSettingsController(
		settings.NewGetSettingsUseCase(settingsRepo),
		settings.NewUpdateSettingsUseCase(settingsRepo),
	)

	// Create middleware
	rateLimiter := middleware.NewRateLimiter(cfg.Billing.RPCRateLimit, cfg.Billing.RPCRateWindow)
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		rateLimiter.Disable()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenVerifier)

	r := router.NewRouter(router.Controllers{
		Health:       controller.NewHealthController(opts.HealthChecks...),
		Subscription: subscriptionController,
		Billing:      billingController,
		Analytics:    analyticsController,
		Category:     categoryController,
		Notification: notificationController,
		Settings:     settingsController,
	}, rateLimiter, authMiddleware)

	reminders := reminder.NewGenerateRemindersUseCase(settingsRepo, subscriptionRepo, notificationRepo, emailService, clock)

	worker := email.NewWorker(emailQueueRepo, sender, renderer, email.WorkerConfig{
		PollInterval:  cfg.Email.PollInterval,
		BatchSize:     cfg.Email.BatchSize,
		RetentionDays: cfg.Email.RetentionDays,
	})

	return &Injector{
		Config:      cfg,
		DB:          db,
		Router:      r,
		Reminders:   reminders,
		EmailWorker: worker,
		RateLimiter: rateLimiter,
	}, nil
}
