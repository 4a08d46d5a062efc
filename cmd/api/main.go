package main

import (
	"context"
	"log"

	"github.com/pulseplan/backend/config"
	"github.com/pulseplan/backend/internal/database"
	"github.com/pulseplan/backend/internal/server"
	"github.com/pulseplan/backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Redis backs plan drafts and the plan-generation rate limiter
	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Redis unavailable, plan drafts and rate limiting disabled: %v", err)
		redisClient = nil
	}

	// Initialize services
	emailService := service.NewEmailService()
	svcs := server.Services{
		Auth:     service.NewAuthService(db, cfg.JWTSecret),
		Profile:  service.NewProfileService(db, emailService),
		Meal:     service.NewMealService(db, service.NewEmbeddingService()),
		Weight:   service.NewWeightService(db),
		Feedback: service.NewFeedbackService(db, emailService),
		Email:    emailService,
	}

	if planService, err := service.NewPlanService(); err != nil {
		log.Printf("Plan generation disabled: %v", err)
	} else {
		svcs.Plan = planService
	}

	s3Config, err := config.NewS3Config(context.Background())
	if err != nil {
		log.Printf("S3 unavailable, scanned photos will not be stored: %v", err)
		s3Config = nil
	}
	if visionService, err := service.NewVisionService(s3Config); err != nil {
		log.Printf("Photo scanning disabled: %v", err)
	} else {
		svcs.Vision = visionService
	}

	// Create and start server
	srv := server.NewServer(db, svcs, redisClient)
	if err := srv.Start(cfg.ServerPort); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
