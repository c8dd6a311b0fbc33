// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/subscription-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/subscription-tracker/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                 *gin.Engine
	healthController       *controller.HealthController
	subscriptionController *controller.SubscriptionController
	billingController      *controller.BillingController
	analyticsController    *controller.AnalyticsController
	categoryController     *controller.CategoryController
	notificationController *controller.NotificationController
	settingsController     *controller.SettingsController
	rpcRateLimiter         *middleware.RateLimiter
	authMiddleware         *middleware.AuthMiddleware
}

// Controllers groups the API controllers mounted by the router.
// A nil controller leaves its routes unregistered.
type Controllers struct {
	Health       *controller.HealthController
	Subscription *controller.SubscriptionController
	Billing      *controller.BillingController
	Analytics    *controller.AnalyticsController
	Category     *controller.CategoryController
	Notification *controller.NotificationController
	Settings     *controller.SettingsController
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	controllers Controllers,
	rpcRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:       controllers.Health,
		subscriptionController: controllers.Subscription,
		billingController:      controllers.Billing,
		analyticsController:    controllers.Analytics,
		categoryController:     controllers.Category,
		notificationController: controllers.Notification,
		settingsController:     controllers.Settings,
		rpcRateLimiter:         rpcRateLimiter,
		authMiddleware:         authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test", "e2e":
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	if r.healthController != nil {
		r.engine.GET("/health", r.healthController.Check)
	}
}

// setupAPIRoutes configures the main API routes. Everything under /api/v1
// requires a verified access token.
func (r *Router) setupAPIRoutes() {
	if r.authMiddleware == nil {
		return
	}

	v1 := r.engine.Group("/api/v1")
	v1.Use(r.authMiddleware.Authenticate())

	if r.billingController != nil {
		rpc := v1.Group("/rpc")
		if r.rpcRateLimiter != nil {
			rpc.Use(r.rpcRateLimiter.Middleware())
		}
		{
			rpc.POST("/get_next_billing_date", r.billingController.GetNextBillingDate)
			rpc.POST("/project_billing_dates", r.billingController.ProjectBillingDates)
		}
	}

	if r.subscriptionController != nil {
		subscriptions := v1.Group("/subscriptions")
		{
			subscriptions.GET("", r.subscriptionController.List)
			subscriptions.POST("", r.subscriptionController.Create)
			subscriptions.GET("/upcoming", r.subscriptionController.Upcoming)
			subscriptions.GET("/:id", r.subscriptionController.Get)
			subscriptions.PATCH("/:id", r.subscriptionController.Update)
			subscriptions.DELETE("/:id", r.subscriptionController.Delete)
		}
	}

	if r.analyticsController != nil {
		analytics := v1.Group("/analytics")
		{
			analytics.GET("/summary", r.analyticsController.Summary)
			analytics.GET("/total", r.analyticsController.Total)
			analytics.GET("/categories", r.analyticsController.Breakdown)
			analytics.GET("/top", r.analyticsController.Top)
		}
	}

	if r.categoryController != nil {
		categories := v1.Group("/categories")
		{
			categories.GET("", r.categoryController.List)
			categories.POST("", r.categoryController.Create)
			categories.DELETE("/:id", r.categoryController.Delete)
		}
	}

	if r.notificationController != nil {
		notifications := v1.Group("/notifications")
		{
			notifications.GET("", r.notificationController.List)
			notifications.POST("/read-all", r.notificationController.MarkAllRead)
			notifications.POST("/:id/read", r.notificationController.MarkRead)
			notifications.DELETE("/:id", r.notificationController.Delete)
		}
	}

	if r.settingsController != nil {
		settings := v1.Group("/settings")
		{
			settings.GET("", r.settingsController.Get)
			settings.PATCH("", r.settingsController.Update)
		}
	}
}
