package repository

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"skillup/api/internal/kv"
	"skillup/api/internal/models"
)

var ErrFeedbackNotFound = errors.New("feedback not found")

const feedbackPrefix = "feedback:"

type FeedbackRepository struct {
	records records[models.Feedback]
}

func NewFeedbackRepository(store kv.Store, log zerolog.Logger) *FeedbackRepository {
	return &FeedbackRepository{records: records[models.Feedback]{store: store, log: log}}
}

func (r *FeedbackRepository) Get(ctx context.Context, id string) (models.Feedback, error) {
	feedback, err := r.records.get(ctx, feedbackPrefix+id)
	if errors.Is(err, kv.ErrNotFound) {
		return models.Feedback{}, ErrFeedbackNotFound
	}
	return feedback, err
}

func (r *FeedbackRepository) Save(ctx context.Context, feedback models.Feedback) error {
	return r.records.put(ctx, feedbackPrefix+feedback.ID, feedback)
}

func (r *FeedbackRepository) List(ctx context.Context) ([]models.Feedback, error) {
	items, err := r.records.list(ctx, feedbackPrefix)
	if err != nil {
		return nil, err
	}
	return values(items), nil
}
