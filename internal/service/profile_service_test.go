package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillup/api/internal/models"
	"skillup/api/internal/security"
)

func strPtr(s string) *string { return &s }

func TestGetProfileAggregates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session, user := env.signUp(t, "Ana", "ana@example.com")

	_, err := env.progress.UpdateProgress(ctx, user.ID, ProgressInput{ModuleID: "m1", ModuleName: "Budgeting", Completed: true})
	require.NoError(t, err)
	_, err = env.progress.UpdateProgress(ctx, user.ID, ProgressInput{ModuleID: "m2", ProgressPercentage: 30})
	require.NoError(t, err)

	profile, err := env.profile.GetProfile(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, user.ID, profile.ID)
	assert.Equal(t, 50, profile.XP)
	assert.Equal(t, 1, profile.ModulesCompleted)
	assert.Equal(t, []string{"first-steps"}, profile.Badges)
	require.Len(t, profile.CompletedModules, 1)
	assert.Equal(t, "Budgeting", profile.CompletedModules[0].ModuleName)
	require.NotNil(t, profile.LastAccessedModule)
	assert.Equal(t, "m2", profile.LastAccessedModule.ModuleID)
}

func TestGetProfileRepairsSessionByEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session, user := env.signUp(t, "Ana", "ana@example.com")

	session.UserID = "user_stale"
	require.NoError(t, env.sessions.Save(ctx, session))

	profile, err := env.profile.GetProfile(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, user.ID, profile.ID)

	repaired, err := env.sessions.GetByToken(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, repaired.UserID)
}

func TestGetProfileFindsDriftedKey(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.store.Set(ctx, "user:ana@example.com", []byte(`{"id":"user_old","email":"ana@example.com","full_name":"Ana","level":1}`)))

	profile, err := env.profile.GetProfile(ctx, models.Session{Token: "t", UserID: "user_old"})
	require.NoError(t, err)
	assert.Equal(t, "user_old", profile.ID)
}

func TestGetProfileMissingUser(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.profile.GetProfile(context.Background(), models.Session{Token: "t", UserID: "user_gone", Email: "gone@example.com"})
	requireKind(t, err, KindNotFound, "User not found")
}

func TestUpdateProfilePasswordChange(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session, user := env.signUp(t, "Ana", "ana@example.com")

	_, err := env.profile.UpdateProfile(ctx, session, UpdateProfileInput{NewPassword: strPtr("newpass")})
	requireKind(t, err, KindValidation, "Current password required")

	_, err = env.profile.UpdateProfile(ctx, session, UpdateProfileInput{NewPassword: strPtr("newpass"), CurrentPassword: strPtr("wrong")})
	requireKind(t, err, KindAuth, "Current password is incorrect")

	_, err = env.profile.UpdateProfile(ctx, session, UpdateProfileInput{NewPassword: strPtr("newpass"), CurrentPassword: strPtr("password1")})
	require.NoError(t, err)

	stored, err := env.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	ok, err := security.VerifyPassword("newpass", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUpdateProfileEmailAndName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session, _ := env.signUp(t, "Ana", "ana@example.com")
	env.signUp(t, "Ben", "ben@example.com")

	_, err := env.profile.UpdateProfile(ctx, session, UpdateProfileInput{Email: strPtr("BEN@example.com")})
	requireKind(t, err, KindConflict, "Email already in use")

	summary, err := env.profile.UpdateProfile(ctx, session, UpdateProfileInput{Email: strPtr("Ana.Cruz@Example.com"), FullName: strPtr("Ana Cruz")})
	require.NoError(t, err)
	assert.Equal(t, "ana.cruz@example.com", summary.Email)
	assert.Equal(t, "Ana Cruz", summary.FullName)

	refreshed, err := env.sessions.GetByToken(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, "ana.cruz@example.com", refreshed.Email)
	assert.Equal(t, "Ana Cruz", refreshed.FullName)

	// a blank email leaves the address unchanged
	summary, err = env.profile.UpdateProfile(ctx, refreshed, UpdateProfileInput{Email: strPtr("  "), FullName: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, "ana.cruz@example.com", summary.Email)
	assert.Equal(t, "Ana Cruz", summary.FullName)

	// keeping one's own address is not a conflict
	_, err = env.profile.UpdateProfile(ctx, refreshed, UpdateProfileInput{Email: strPtr("ana.cruz@example.com")})
	assert.NoError(t, err)
}
