// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/brokerdash/backend/internal/integration/entrypoint/controller"
	"github.com/brokerdash/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine              *gin.Engine
	healthController    *controller.HealthController
	dashboardController *controller.DashboardController
	rateLimiter         *middleware.RateLimiter
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	dashboardController *controller.DashboardController,
	rateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:    healthController,
		dashboardController: dashboardController,
		rateLimiter:         rateLimiter,
		authMiddleware:      authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Default middleware: logger and recovery
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		// Dashboard routes (require authentication)
		if r.dashboardController != nil && r.authMiddleware != nil {
			dashboard := v1.Group("/dashboard")
			if r.rateLimiter != nil {
				dashboard.Use(r.rateLimiter.Middleware())
			}
			dashboard.Use(r.authMiddleware.Authenticate())
			{
				dashboard.GET("/operations", r.dashboardController.ListOperations)
				dashboard.GET("/totals", r.dashboardController.GetTotals)
				dashboard.GET("/types", r.dashboardController.GetTypeBreakdown)
				dashboard.GET("/groups", r.dashboardController.GetGroupSummary)
				dashboard.GET("/series", r.dashboardController.GetSeries)
				dashboard.GET("/kpis", r.dashboardController.GetKPIs)
				dashboard.GET("/ranking", r.dashboardController.GetRanking)
				dashboard.GET("/expenses", r.dashboardController.GetExpenseSummary)
			}
		}
	}
}
