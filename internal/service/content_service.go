package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"skillup/api/internal/models"
	"skillup/api/internal/repository"
)

// Generator is the typed face of the content generation gateway.
type Generator interface {
	GenerateAssessment(ctx context.Context) ([]models.Question, error)
	AnalyzeAssessment(ctx context.Context, responses []models.AssessmentResponse) (models.Analysis, error)
	GenerateModules(ctx context.Context, careerPath string, hasAssessment bool) ([]models.Module, error)
	GenerateLesson(ctx context.Context, title, description string) (models.Lesson, error)
}

type ContentService struct {
	generator   Generator
	assessments *repository.AssessmentRepository
	log         zerolog.Logger
	now         func() time.Time
}

func NewContentService(generator Generator, assessments *repository.AssessmentRepository, log zerolog.Logger) *ContentService {
	return &ContentService{
		generator:   generator,
		assessments: assessments,
		log:         log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *ContentService) GenerateAssessment(ctx context.Context) ([]models.Question, error) {
	questions, err := s.generator.GenerateAssessment(ctx)
	if err != nil {
		return nil, generationError(err)
	}
	return questions, nil
}

// AnalyzeAssessment asks the model for an analysis and stores it together with
// the responses, replacing any earlier attempt. A nil slice means the caller
// sent no responses at all.
func (s *ContentService) AnalyzeAssessment(ctx context.Context, userID string, responses []models.AssessmentResponse) (models.Analysis, error) {
	if responses == nil {
		return models.Analysis{}, NewValidationError("Invalid responses")
	}

	analysis, err := s.generator.AnalyzeAssessment(ctx, responses)
	if err != nil {
		return models.Analysis{}, generationError(err)
	}

	assessment := models.Assessment{
		UserID:      userID,
		Responses:   responses,
		Analysis:    analysis,
		CompletedAt: s.now(),
	}
	if err := s.assessments.Save(ctx, assessment); err != nil {
		return models.Analysis{}, err
	}
	return analysis, nil
}

// GetAssessment returns nil when the user has not taken the assessment.
func (s *ContentService) GetAssessment(ctx context.Context, userID string) (*models.Assessment, error) {
	assessment, err := s.assessments.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrAssessmentNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &assessment, nil
}

func (s *ContentService) GenerateModules(ctx context.Context, careerPath string, hasAssessment bool) ([]models.Module, error) {
	modules, err := s.generator.GenerateModules(ctx, strings.TrimSpace(careerPath), hasAssessment)
	if err != nil {
		return nil, generationError(err)
	}
	return modules, nil
}

func (s *ContentService) GenerateLesson(ctx context.Context, title, description string) (models.Lesson, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Lesson{}, NewValidationError("Module title required")
	}

	lesson, err := s.generator.GenerateLesson(ctx, title, strings.TrimSpace(description))
	if err != nil {
		return models.Lesson{}, generationError(err)
	}
	return lesson, nil
}
