package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pulseplan/backend/internal/models"
	"github.com/pulseplan/backend/internal/types"
)

type FeedbackService struct {
	db           *gorm.DB
	emailService IEmailService
}

var _ IFeedbackService = (*FeedbackService)(nil)

func NewFeedbackService(db *gorm.DB, emailService IEmailService) *FeedbackService {
	return &FeedbackService{
		db:           db,
		emailService: emailService,
	}
}

func (s *FeedbackService) CreateFeedback(ctx context.Context, req *types.CreateFeedbackRequest, userID *uuid.UUID) (*models.Feedback, error) {
	feedback := &models.Feedback{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		UserAgent:   req.UserAgent,
		Status:      "open",
	}

	if err := s.db.WithContext(ctx).Create(feedback).Error; err != nil {
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}

	// Load user information for the email notification
	var user *models.User
	if userID != nil {
		var u models.User
		if err := s.db.WithContext(ctx).First(&u, "id = ?", *userID).Error; err != nil {
			log.Printf("[FeedbackService] could not load user for notification: %v", err)
		} else {
			user = &u
		}
	}

	if s.emailService != nil {
		go func() {
			if err := s.emailService.SendFeedbackNotification(feedback, user); err != nil {
				log.Printf("[FeedbackService] failed to send notification: %v", err)
			}
		}()
	}

	return feedback, nil
}

func (s *FeedbackService) GetFeedback(ctx context.Context, id uuid.UUID) (*models.Feedback, error) {
	var feedback models.Feedback
	if err := s.db.WithContext(ctx).Preload("User").First(&feedback, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("feedback not found")
		}
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}
	return &feedback, nil
}
