package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"skillup/api/internal/ids"
	"skillup/api/internal/models"
	"skillup/api/internal/repository"
)

type FeedbackService struct {
	feedback *repository.FeedbackRepository
	log      zerolog.Logger
	now      func() time.Time
}

func NewFeedbackService(feedback *repository.FeedbackRepository, log zerolog.Logger) *FeedbackService {
	return &FeedbackService{
		feedback: feedback,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Submit accepts feedback from anyone. A nil session files it as anonymous.
func (s *FeedbackService) Submit(ctx context.Context, session *models.Session, message, category string) (models.Feedback, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return models.Feedback{}, NewValidationError("Message is required")
	}
	category = strings.TrimSpace(category)
	if category == "" {
		category = "general"
	}

	feedback := models.Feedback{
		ID:        ids.NewWithPrefix("feedback"),
		UserName:  "Anonymous",
		UserEmail: "No email provided",
		Message:   message,
		Category:  category,
		Timestamp: s.now(),
		Status:    models.FeedbackUnread,
	}
	if session != nil {
		if session.UserID != "" {
			userID := session.UserID
			feedback.UserID = &userID
		}
		if session.FullName != "" {
			feedback.UserName = session.FullName
		}
		if session.Email != "" {
			feedback.UserEmail = session.Email
		}
	}

	if err := s.feedback.Save(ctx, feedback); err != nil {
		return models.Feedback{}, err
	}
	return feedback, nil
}

// List returns all feedback, newest first.
func (s *FeedbackService) List(ctx context.Context) ([]models.Feedback, error) {
	items, err := s.feedback.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp)
	})
	return items, nil
}

func (s *FeedbackService) UpdateStatus(ctx context.Context, id string, status models.FeedbackStatus) (models.Feedback, error) {
	if !status.Valid() {
		return models.Feedback{}, NewValidationError("Invalid status")
	}

	feedback, err := s.feedback.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrFeedbackNotFound) {
			return models.Feedback{}, NewNotFoundError("Feedback not found")
		}
		return models.Feedback{}, err
	}

	now := s.now()
	feedback.Status = status
	feedback.UpdatedAt = &now
	if err := s.feedback.Save(ctx, feedback); err != nil {
		return models.Feedback{}, err
	}
	return feedback, nil
}
