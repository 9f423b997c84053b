package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"skillup/api/internal/models"
	"skillup/api/internal/repository"
	"skillup/api/internal/security"
)

type ProfileService struct {
	users    *repository.UserRepository
	sessions *repository.SessionRepository
	badges   *repository.BadgeRepository
	progress *repository.ProgressRepository
	log      zerolog.Logger
	now      func() time.Time
}

func NewProfileService(
	users *repository.UserRepository,
	sessions *repository.SessionRepository,
	badges *repository.BadgeRepository,
	progress *repository.ProgressRepository,
	log zerolog.Logger,
) *ProfileService {
	return &ProfileService{
		users:    users,
		sessions: sessions,
		badges:   badges,
		progress: progress,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

type Profile struct {
	models.Summary
	Badges             []string                   `json:"badges"`
	CompletedModules   []models.CompletedModule   `json:"completed_modules"`
	LastAccessedModule *models.LastAccessedModule `json:"last_accessed_module,omitempty"`
}

func (s *ProfileService) GetProfile(ctx context.Context, session models.Session) (Profile, error) {
	user, err := s.resolveUser(ctx, session)
	if err != nil {
		return Profile{}, err
	}

	badges, err := s.badges.Get(ctx, user.ID)
	if err != nil {
		return Profile{}, err
	}

	records, err := s.progress.ListByUser(ctx, user.ID)
	if err != nil {
		return Profile{}, err
	}
	completed := make([]models.CompletedModule, 0)
	for _, p := range records {
		if !p.Completed {
			continue
		}
		name := p.ModuleName
		if name == "" {
			name = p.ModuleID
		}
		completed = append(completed, models.CompletedModule{
			ModuleID:    p.ModuleID,
			ModuleName:  name,
			CompletedAt: p.CompletedAt,
		})
	}

	return Profile{
		Summary:            user.Summary(),
		Badges:             badges.EarnedBadges,
		CompletedModules:   completed,
		LastAccessedModule: user.LastAccessedModule,
	}, nil
}

// resolveUser looks the user up by the session's user id, then by scanning for
// that id, then by the session's email. An email match rewrites the session so
// later lookups take the direct path.
func (s *ProfileService) resolveUser(ctx context.Context, session models.Session) (models.User, error) {
	if session.UserID != "" {
		user, err := s.users.GetByID(ctx, session.UserID)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, repository.ErrUserNotFound) && !errors.Is(err, repository.ErrInvalidRecord) {
			return models.User{}, err
		}

		user, err = s.users.FindByID(ctx, session.UserID)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return models.User{}, err
		}
	}

	if session.Email == "" {
		return models.User{}, NewNotFoundError("User not found")
	}
	user, err := s.users.FindByEmail(ctx, session.Email, nil)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return models.User{}, NewNotFoundError("User not found")
		}
		return models.User{}, err
	}

	s.log.Warn().
		Str("session_user_id", session.UserID).
		Str("user_id", user.ID).
		Msg("repairing session user id from email")
	session.UserID = user.ID
	if err := s.sessions.Save(ctx, session); err != nil {
		s.log.Error().Err(err).Msg("repair session failed")
	}
	return user, nil
}

type UpdateProfileInput struct {
	FullName        *string
	Email           *string
	CurrentPassword *string
	NewPassword     *string
}

func (s *ProfileService) UpdateProfile(ctx context.Context, session models.Session, input UpdateProfileInput) (models.Summary, error) {
	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return models.Summary{}, NewNotFoundError("User not found")
		}
		return models.Summary{}, err
	}

	if input.NewPassword != nil && *input.NewPassword != "" {
		if input.CurrentPassword == nil || *input.CurrentPassword == "" {
			return models.Summary{}, NewValidationError("Current password required")
		}
		ok, err := security.VerifyPassword(*input.CurrentPassword, user.PasswordHash)
		if err != nil || !ok {
			return models.Summary{}, NewAuthError("Current password is incorrect")
		}
		hash, err := security.HashPassword(*input.NewPassword)
		if err != nil {
			return models.Summary{}, err
		}
		user.PasswordHash = hash
	}

	if input.Email != nil {
		email := normalizeEmail(*input.Email)
		if email != "" && email != user.Email {
			owner, err := s.users.FindByEmail(ctx, email, nil)
			if err == nil && owner.ID != user.ID {
				return models.Summary{}, NewConflictError("Email already in use")
			}
			if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
				return models.Summary{}, err
			}
			user.Email = email
		}
	}

	if input.FullName != nil {
		if name := strings.TrimSpace(*input.FullName); name != "" {
			user.FullName = name
		}
	}

	now := s.now()
	user.UpdatedAt = &now
	if err := s.users.Save(ctx, user); err != nil {
		return models.Summary{}, err
	}

	session.Email = user.Email
	session.FullName = user.FullName
	if err := s.sessions.Save(ctx, session); err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("refresh session copy failed")
	}

	return user.Summary(), nil
}
