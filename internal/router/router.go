package router

import (
	"github.com/gin-gonic/gin"

	"github.com/pulseplan/backend/internal/api"
	"github.com/pulseplan/backend/internal/middleware"
	"github.com/pulseplan/backend/internal/service"
)

// Handlers bundles the API handlers the router mounts.
type Handlers struct {
	Auth      *api.AuthHandler
	Profile   *api.ProfileHandler
	Meal      *api.MealHandler
	Weight    *api.WeightHandler
	Dashboard *api.DashboardHandler
	Plan      *api.PlanHandler
	Exercise  *api.ExerciseHandler
	Feedback  *api.FeedbackHandler
}

// SetupRouter configures the application routes. The rate limit handlers may
// be nil; the guarded endpoints are then unthrottled.
func SetupRouter(h Handlers, authService service.IAuthService, planRateLimit, scanRateLimit gin.HandlerFunc) *gin.Engine {
	router := gin.Default()

	// CORS middleware
	router.Use(middleware.CORS())

	// API v1 routes
	v1 := router.Group("/api/v1")

	// Public routes
	h.Auth.RegisterRoutes(v1)

	// Feedback accepts anonymous submissions but attributes them to the user
	// when the request carries a valid token.
	feedback := v1.Group("")
	feedback.Use(middleware.OptionalAuthMiddleware(authService))
	h.Feedback.RegisterRoutes(feedback)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	{
		h.Profile.RegisterRoutes(protected)
		h.Meal.RegisterRoutes(protected, scanRateLimit)
		h.Weight.RegisterRoutes(protected)
		h.Dashboard.RegisterRoutes(protected)
		h.Exercise.RegisterRoutes(protected)
		h.Plan.RegisterRoutes(protected, planRateLimit)
	}

	return router
}
