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

type ProgressService struct {
	users    *repository.UserRepository
	progress *repository.ProgressRepository
	badges   *repository.BadgeRepository
	log      zerolog.Logger
	now      func() time.Time
}

func NewProgressService(
	users *repository.UserRepository,
	progress *repository.ProgressRepository,
	badges *repository.BadgeRepository,
	log zerolog.Logger,
) *ProgressService {
	return &ProgressService{
		users:    users,
		progress: progress,
		badges:   badges,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

type ProgressInput struct {
	ModuleID           string
	ModuleName         string
	Completed          bool
	ProgressPercentage float64
}

// UpdateProgress ratchets the stored percentage, latches completion and, on the
// first completion only, awards XP and badges. Every call moves the user's
// last-accessed pointer to this module.
func (s *ProgressService) UpdateProgress(ctx context.Context, userID string, input ProgressInput) (models.Progress, error) {
	input.ModuleID = strings.TrimSpace(input.ModuleID)
	if input.ModuleID == "" {
		return models.Progress{}, NewValidationError("Missing moduleId")
	}

	existing, err := s.progress.Get(ctx, userID, input.ModuleID)
	if err != nil && !errors.Is(err, repository.ErrProgressNotFound) {
		return models.Progress{}, err
	}

	now := s.now()
	wasCompleted := existing.Completed
	firstCompletion := input.Completed && !wasCompleted

	record := models.Progress{
		UserID:             userID,
		ModuleID:           input.ModuleID,
		ModuleName:         firstNonEmpty(input.ModuleName, existing.ModuleName, input.ModuleID),
		Completed:          wasCompleted || input.Completed,
		CompletedAt:        existing.CompletedAt,
		ProgressPercentage: max(existing.ProgressPercentage, clampPercentage(input.ProgressPercentage)),
		UpdatedAt:          now,
		LastAccessed:       now,
	}
	if firstCompletion {
		record.CompletedAt = &now
	}
	if record.Completed {
		record.ProgressPercentage = 100
	}

	if err := s.progress.Save(ctx, record); err != nil {
		return models.Progress{}, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.log.Warn().Str("user_id", userID).Msg("progress recorded for unknown user")
			return record, nil
		}
		return models.Progress{}, err
	}

	user.LastAccessedModule = &models.LastAccessedModule{
		ModuleID:           record.ModuleID,
		ModuleName:         record.ModuleName,
		ProgressPercentage: record.ProgressPercentage,
		Completed:          record.Completed,
		AccessedAt:         now,
	}
	if firstCompletion {
		user.ModulesCompleted++
		user.XP += XPPerModule
		user.Level = LevelForXP(user.XP)
	}
	if err := s.users.Save(ctx, user); err != nil {
		return models.Progress{}, err
	}

	if firstCompletion {
		if err := s.awardBadges(ctx, user); err != nil {
			return models.Progress{}, err
		}
	}
	return record, nil
}

func (s *ProgressService) awardBadges(ctx context.Context, user models.User) error {
	current, err := s.badges.Get(ctx, user.ID)
	if err != nil {
		return err
	}
	earned, changed := AwardBadges(user.ModulesCompleted, current.EarnedBadges)
	if !changed {
		return nil
	}
	s.log.Info().Str("user_id", user.ID).Strs("badges", earned).Msg("badges awarded")
	return s.badges.Save(ctx, models.Badges{UserID: user.ID, EarnedBadges: earned})
}

// ListProgress returns the user's progress keyed by module id.
func (s *ProgressService) ListProgress(ctx context.Context, userID string) (map[string]models.Progress, error) {
	records, err := s.progress.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]models.Progress, len(records))
	for _, p := range records {
		out[p.ModuleID] = p
	}
	return out, nil
}

func clampPercentage(p float64) float64 {
	return min(max(p, 0), 100)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
