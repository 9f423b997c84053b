package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillup/api/internal/config"
	"skillup/api/internal/kv"
	"skillup/api/internal/models"
	"skillup/api/internal/repository"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

type testEnv struct {
	store       *kv.MemoryStore
	clock       *clock
	users       *repository.UserRepository
	sessions    *repository.SessionRepository
	badges      *repository.BadgeRepository
	progressRep *repository.ProgressRepository
	assessments *repository.AssessmentRepository
	feedbackRep *repository.FeedbackRepository
	resourceRep *repository.ResourceRepository

	auth      *AuthService
	profile   *ProfileService
	progress  *ProgressService
	feedback  *FeedbackService
	resources *ResourceService
	admin     *AdminService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := zerolog.Nop()
	store := kv.NewMemoryStore()
	c := &clock{t: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	cfg := &config.AppConfig{
		Security: config.SecurityConfig{SessionSecret: "test-secret"},
		Seed:     config.SeedConfig{AdminEmail: "admin@skillup.com", AdminPassword: "admin123", AdminName: "Admin User"},
	}

	env := &testEnv{
		store:       store,
		clock:       c,
		users:       repository.NewUserRepository(store, log),
		sessions:    repository.NewSessionRepository(store, log),
		badges:      repository.NewBadgeRepository(store, log),
		progressRep: repository.NewProgressRepository(store, log),
		assessments: repository.NewAssessmentRepository(store, log),
		feedbackRep: repository.NewFeedbackRepository(store, log),
		resourceRep: repository.NewResourceRepository(store, log),
	}

	env.auth = NewAuthService(env.users, env.sessions, env.badges, cfg, log)
	env.auth.now = c.now
	env.profile = NewProfileService(env.users, env.sessions, env.badges, env.progressRep, log)
	env.profile.now = c.now
	env.progress = NewProgressService(env.users, env.progressRep, env.badges, log)
	env.progress.now = c.now
	env.feedback = NewFeedbackService(env.feedbackRep, log)
	env.feedback.now = c.now
	env.resources = NewResourceService(env.resourceRep, log)
	env.resources.now = c.now
	env.admin = NewAdminService(env.users, env.sessions, env.progressRep, env.assessments, env.badges, log)
	env.admin.now = c.now
	return env
}

func (e *testEnv) signUp(t *testing.T, name, email string) (models.Session, models.User) {
	t.Helper()
	result, err := e.auth.SignUp(context.Background(), SignUpInput{FullName: name, Email: email, Password: "password1"})
	require.NoError(t, err)
	session := e.auth.VerifySession(context.Background(), result.SessionToken)
	require.NotNil(t, session)
	return *session, result.User
}

func requireKind(t *testing.T, err error, kind ErrorKind, msg string) {
	t.Helper()
	require.Error(t, err)
	se, ok := AsError(err)
	require.True(t, ok, "expected service error, got %v", err)
	assert.Equal(t, kind, se.Kind)
	if msg != "" {
		assert.Equal(t, msg, se.Message)
	}
}
