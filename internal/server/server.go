package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pulseplan/backend/internal/api"
	"github.com/pulseplan/backend/internal/middleware"
	"github.com/pulseplan/backend/internal/router"
	"github.com/pulseplan/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
}

// Services bundles the service layer the server wires into handlers.
// Optional collaborators (Plan, Vision, Email) may be nil; the matching
// endpoints then degrade instead of failing startup.
type Services struct {
	Auth     service.IAuthService
	Profile  service.IProfileService
	Meal     service.IMealService
	Weight   service.IWeightService
	Plan     service.IPlanService
	Vision   service.IVisionService
	Feedback service.IFeedbackService
	Email    service.IEmailService
}

// NewServer creates a new server instance. redisClient may be nil; the rate
// limited endpoints are then unthrottled.
func NewServer(db *gorm.DB, svcs Services, redisClient *redis.Client) *Server {
	handlers := router.Handlers{
		Auth:      api.NewAuthHandler(svcs.Auth, svcs.Email),
		Profile:   api.NewProfileHandler(svcs.Profile),
		Meal:      api.NewMealHandler(svcs.Meal, svcs.Vision),
		Weight:    api.NewWeightHandler(svcs.Weight),
		Dashboard: api.NewDashboardHandler(svcs.Profile, svcs.Meal),
		Plan:      api.NewPlanHandler(svcs.Plan, svcs.Profile, svcs.Meal, db),
		Exercise:  api.NewExerciseHandler(),
		Feedback:  api.NewFeedbackHandler(svcs.Feedback),
	}

	var planRateLimit, scanRateLimit gin.HandlerFunc
	if redisClient != nil {
		planRateLimit = middleware.NewPlanGenerationRateLimiter(redisClient).RateLimitMiddleware()
		scanRateLimit = middleware.NewMealScanRateLimiter(redisClient).RateLimitMiddleware()
	}

	return &Server{
		router: router.SetupRouter(handlers, svcs.Auth, planRateLimit, scanRateLimit),
		db:     db,
	}
}

// Start starts the server and blocks until shutdown
func (s *Server) Start(port string) error {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	s.http = srv

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return srv.Shutdown(ctx)
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}

// Router exposes the gin engine for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}
