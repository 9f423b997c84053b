package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"skillup/api/internal/models"
)

//go:generate mockgen -destination=mock/completer_mock.go -package=mock skillup/api/internal/llm Completer

// Completer is a single blocking prompt-in, text-out call.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// RawSink keeps model output that failed extraction or validation.
type RawSink interface {
	Store(ctx context.Context, kind string, raw string, reason error) (string, error)
}

// Gateway turns requests into prompts and model text into typed results.
// Callers see either a validated value or an error wrapping ErrGeneration,
// ErrTruncated or ErrUpstream.
type Gateway struct {
	completer Completer
	sink      RawSink
	log       zerolog.Logger
}

// NewGateway accepts a nil sink.
func NewGateway(completer Completer, sink RawSink, log zerolog.Logger) *Gateway {
	return &Gateway{completer: completer, sink: sink, log: log}
}

func (g *Gateway) GenerateAssessment(ctx context.Context) ([]models.Question, error) {
	var questions []models.Question
	err := g.run(ctx, "assessment", assessmentPrompt(), ShapeArray, &questions, func() error {
		if len(questions) == 0 {
			return errors.New("no questions")
		}
		for i, q := range questions {
			if err := q.Validate(); err != nil {
				return fmt.Errorf("question %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (g *Gateway) AnalyzeAssessment(ctx context.Context, responses []models.AssessmentResponse) (models.Analysis, error) {
	prompt, err := analysisPrompt(responses)
	if err != nil {
		return models.Analysis{}, err
	}

	var analysis models.Analysis
	err = g.run(ctx, "analysis", prompt, ShapeObject, &analysis, func() error {
		return analysis.Validate()
	})
	if err != nil {
		return models.Analysis{}, err
	}
	return analysis, nil
}

func (g *Gateway) GenerateModules(ctx context.Context, careerPath string, hasAssessment bool) ([]models.Module, error) {
	var modules []models.Module
	err := g.run(ctx, "modules", modulesPrompt(careerPath, hasAssessment), ShapeArray, &modules, func() error {
		if len(modules) == 0 {
			return errors.New("no modules")
		}
		for i := range modules {
			if err := modules[i].Validate(); err != nil {
				return fmt.Errorf("module %d: %w", i, err)
			}
			if modules[i].ID == "" {
				modules[i].ID = models.FlexID(fmt.Sprintf("module-%d", i+1))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return modules, nil
}

func (g *Gateway) GenerateLesson(ctx context.Context, title, description string) (models.Lesson, error) {
	var lesson models.Lesson
	err := g.run(ctx, "lesson", lessonPrompt(title, description), ShapeObject, &lesson, func() error {
		return lesson.Validate()
	})
	if err != nil {
		return models.Lesson{}, err
	}
	return lesson, nil
}

// run calls the model, extracts shape into out and applies validate.
func (g *Gateway) run(ctx context.Context, kind, prompt string, shape Shape, out any, validate func() error) error {
	raw, err := g.completer.Complete(ctx, prompt)
	if err != nil {
		g.log.Error().Err(err).Str("kind", kind).Msg("completion failed")
		return err
	}

	if err := Extract(raw, shape, out); err != nil {
		g.quarantine(ctx, kind, raw, err)
		return err
	}
	if err := validate(); err != nil {
		err = fmt.Errorf("%w: %v", ErrGeneration, err)
		g.quarantine(ctx, kind, raw, err)
		return err
	}
	return nil
}

func (g *Gateway) quarantine(ctx context.Context, kind, raw string, reason error) {
	event := g.log.Error().Err(reason).Str("kind", kind).Int("raw_len", len(raw))
	if g.sink != nil {
		key, err := g.sink.Store(context.WithoutCancel(ctx), kind, raw, reason)
		if err != nil {
			g.log.Warn().Err(err).Str("kind", kind).Msg("quarantine model output failed")
		} else {
			event = event.Str("quarantine_key", key)
		}
	}
	event.Msg("model output rejected")
}
