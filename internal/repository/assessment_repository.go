package repository

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"skillup/api/internal/kv"
	"skillup/api/internal/models"
)

var ErrAssessmentNotFound = errors.New("assessment not found")

const assessmentPrefix = "assessment:"

type AssessmentRepository struct {
	records records[models.Assessment]
}

func NewAssessmentRepository(store kv.Store, log zerolog.Logger) *AssessmentRepository {
	return &AssessmentRepository{records: records[models.Assessment]{store: store, log: log}}
}

func (r *AssessmentRepository) Get(ctx context.Context, userID string) (models.Assessment, error) {
	assessment, err := r.records.get(ctx, assessmentPrefix+userID)
	if errors.Is(err, kv.ErrNotFound) {
		return models.Assessment{}, ErrAssessmentNotFound
	}
	return assessment, err
}

// Save overwrites any earlier attempt.
func (r *AssessmentRepository) Save(ctx context.Context, assessment models.Assessment) error {
	return r.records.put(ctx, assessmentPrefix+assessment.UserID, assessment)
}

func (r *AssessmentRepository) Delete(ctx context.Context, userID string) error {
	return r.records.store.Delete(ctx, assessmentPrefix+userID)
}
