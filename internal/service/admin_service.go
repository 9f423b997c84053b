package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"skillup/api/internal/models"
	"skillup/api/internal/repository"
	"skillup/api/internal/security"
)

const (
	activityWindow     = 7 * 24 * time.Hour
	engagementDays     = 7
	popularModules     = 5
	popularNameLimit   = 15
	averageTimeMinutes = 43 // no per-lesson timing is recorded yet
)

type AdminService struct {
	users       *repository.UserRepository
	sessions    *repository.SessionRepository
	progress    *repository.ProgressRepository
	assessments *repository.AssessmentRepository
	badges      *repository.BadgeRepository
	log         zerolog.Logger
	now         func() time.Time
}

func NewAdminService(
	users *repository.UserRepository,
	sessions *repository.SessionRepository,
	progress *repository.ProgressRepository,
	assessments *repository.AssessmentRepository,
	badges *repository.BadgeRepository,
	log zerolog.Logger,
) *AdminService {
	return &AdminService{
		users:       users,
		sessions:    sessions,
		progress:    progress,
		assessments: assessments,
		badges:      badges,
		log:         log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

type Stats struct {
	TotalUsers       int     `json:"total_users"`
	ActiveUsers      int     `json:"active_users"`
	ModulesCompleted int     `json:"modules_completed"`
	AvgCompletion    float64 `json:"avg_completion"`
	NewSignups       int     `json:"new_signups"`
}

func (s *AdminService) Stats(ctx context.Context) (Stats, error) {
	users, err := s.learners(ctx)
	if err != nil {
		return Stats{}, err
	}
	sessions, err := s.learnerSessions(ctx)
	if err != nil {
		return Stats{}, err
	}
	records, err := s.progress.List(ctx)
	if err != nil {
		return Stats{}, err
	}

	cutoff := s.now().Add(-activityWindow)

	active := make(map[string]struct{})
	for _, session := range sessions {
		if session.CreatedAt.After(cutoff) {
			active[session.UserID] = struct{}{}
		}
	}

	completed := 0
	for _, p := range records {
		if p.Completed {
			completed++
		}
	}

	signups := 0
	for _, user := range users {
		if user.CreatedAt.After(cutoff) {
			signups++
		}
	}

	return Stats{
		TotalUsers:       len(users),
		ActiveUsers:      len(active),
		ModulesCompleted: completed,
		AvgCompletion:    percent(completed, len(records)),
		NewSignups:       signups,
	}, nil
}

// ListUsers returns every non-admin user, newest first.
func (s *AdminService) ListUsers(ctx context.Context) ([]models.AdminView, error) {
	users, err := s.learners(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})

	out := make([]models.AdminView, 0, len(users))
	for _, user := range users {
		out = append(out, user.AdminView())
	}
	return out, nil
}

type AdminUserUpdate struct {
	Email    *string
	FullName *string
	Password *string
}

func (s *AdminService) UpdateUser(ctx context.Context, id string, input AdminUserUpdate) (models.AdminView, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return models.AdminView{}, err
	}

	if input.Email != nil {
		if email := normalizeEmail(*input.Email); email != "" && email != user.Email {
			owner, err := s.users.FindByEmail(ctx, email, nil)
			if err == nil && owner.ID != user.ID {
				return models.AdminView{}, NewConflictError("Email already in use")
			}
			if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
				return models.AdminView{}, err
			}
			user.Email = email
		}
	}
	if input.FullName != nil {
		if name := strings.TrimSpace(*input.FullName); name != "" {
			user.FullName = name
		}
	}
	if input.Password != nil && strings.TrimSpace(*input.Password) != "" {
		hash, err := security.HashPassword(*input.Password)
		if err != nil {
			return models.AdminView{}, err
		}
		user.PasswordHash = hash
	}

	now := s.now()
	user.UpdatedAt = &now
	if err := s.users.Save(ctx, user); err != nil {
		return models.AdminView{}, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user updated by admin")
	return user.AdminView(), nil
}

// DeleteUser removes the user and everything keyed by their id.
func (s *AdminService) DeleteUser(ctx context.Context, id string) error {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return err
	}

	if err := s.users.Delete(ctx, user.ID); err != nil {
		return err
	}
	sessions, err := s.sessions.DeleteByUser(ctx, user.ID)
	if err != nil {
		return err
	}
	progress, err := s.progress.DeleteByUser(ctx, user.ID)
	if err != nil {
		return err
	}
	if err := s.assessments.Delete(ctx, user.ID); err != nil {
		return err
	}
	if err := s.badges.Delete(ctx, user.ID); err != nil {
		return err
	}

	s.log.Info().
		Str("user_id", user.ID).
		Int("sessions", sessions).
		Int("progress", progress).
		Msg("user deleted")
	return nil
}

type EngagementPoint struct {
	Date  string `json:"date"`
	Users int    `json:"users"`
}

type ModuleStat struct {
	Started   int `json:"started"`
	Completed int `json:"completed"`
}

type ModulePopularity struct {
	Name        string `json:"name"`
	Completions int    `json:"completions"`
}

type DropOffSlice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

type Analytics struct {
	Engagement       []EngagementPoint     `json:"engagement"`
	ModuleStats      map[string]ModuleStat `json:"module_stats"`
	ModulePopularity []ModulePopularity    `json:"module_popularity"`
	CompletionRate   float64               `json:"completion_rate"`
	AvgTime          int                   `json:"avg_time"`
	DropOffData      []DropOffSlice        `json:"drop_off_data"`
}

func (s *AdminService) Analytics(ctx context.Context) (Analytics, error) {
	sessions, err := s.learnerSessions(ctx)
	if err != nil {
		return Analytics{}, err
	}
	records, err := s.progress.List(ctx)
	if err != nil {
		return Analytics{}, err
	}

	stats := make(map[string]ModuleStat)
	var completed, inProgress, abandoned int
	for _, p := range records {
		name := firstNonEmpty(p.ModuleName, p.ModuleID, "Unknown Module")
		stat := stats[name]
		stat.Started++
		switch {
		case p.Completed:
			stat.Completed++
			completed++
		case p.ProgressPercentage > 0:
			inProgress++
		default:
			abandoned++
		}
		stats[name] = stat
	}

	total := completed + inProgress + abandoned
	return Analytics{
		Engagement:       s.engagement(sessions),
		ModuleStats:      stats,
		ModulePopularity: popularity(stats),
		CompletionRate:   percent(completed, len(records)),
		AvgTime:          averageTimeMinutes,
		DropOffData: []DropOffSlice{
			{Name: "Completed", Value: percent(completed, total), Color: "#10b981"},
			{Name: "In Progress", Value: percent(inProgress, total), Color: "#f59e0b"},
			{Name: "Abandoned", Value: percent(abandoned, total), Color: "#ef4444"},
		},
	}, nil
}

// engagement counts distinct users per UTC day for the last seven days, oldest first.
func (s *AdminService) engagement(sessions []models.Session) []EngagementPoint {
	today := s.now().UTC().Truncate(24 * time.Hour)

	perDay := make(map[string]map[string]struct{})
	for _, session := range sessions {
		day := session.CreatedAt.UTC().Format("2006-01-02")
		if perDay[day] == nil {
			perDay[day] = make(map[string]struct{})
		}
		perDay[day][session.UserID] = struct{}{}
	}

	points := make([]EngagementPoint, 0, engagementDays)
	for i := engagementDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i).Format("2006-01-02")
		points = append(points, EngagementPoint{Date: day, Users: len(perDay[day])})
	}
	return points
}

func popularity(stats map[string]ModuleStat) []ModulePopularity {
	out := make([]ModulePopularity, 0, len(stats))
	for name, stat := range stats {
		out = append(out, ModulePopularity{Name: name, Completions: stat.Completed})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Completions != out[j].Completions {
			return out[i].Completions > out[j].Completions
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > popularModules {
		out = out[:popularModules]
	}
	for i := range out {
		out[i].Name = shorten(out[i].Name, popularNameLimit)
	}
	return out
}

func (s *AdminService) learners(ctx context.Context) ([]models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := users[:0]
	for _, user := range users {
		if !user.IsAdmin {
			out = append(out, user)
		}
	}
	return out, nil
}

func (s *AdminService) learnerSessions(ctx context.Context) ([]models.Session, error) {
	sessions, err := s.sessions.List(ctx)
	if err != nil {
		return nil, err
	}
	out := sessions[:0]
	for _, session := range sessions {
		if !session.IsAdmin && session.UserID != "" {
			out = append(out, session)
		}
	}
	return out, nil
}

func (s *AdminService) findUser(ctx context.Context, id string) (models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return models.User{}, err
	}
	user, err = s.users.FindByID(ctx, id)
	if errors.Is(err, repository.ErrUserNotFound) {
		return models.User{}, NewNotFoundError("User not found")
	}
	return user, err
}

// percent returns part/whole as a percentage rounded to one decimal, or 0 for an empty whole.
func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(whole)*1000) / 10
}

func shorten(name string, limit int) string {
	runes := []rune(name)
	if len(runes) <= limit {
		return name
	}
	return string(runes[:limit]) + "..."
}
