package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillup/api/internal/models"
)

func floatPtr(f float64) *float64 { return &f }

func TestCreateResourceDefaults(t *testing.T) {
	env := newTestEnv(t)

	res, err := env.resources.Create(context.Background(), ResourceInput{
		Name: strPtr("City Job Fair"),
		Type: strPtr("Job Fair"),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.ID, "resource_"))
	assert.Equal(t, models.ResourceJobFair, res.Type)
	assert.InDelta(t, DefaultLatitude, res.Latitude, 1e-9)
	assert.InDelta(t, DefaultLongitude, res.Longitude, 1e-9)
	assert.Equal(t, env.clock.now(), res.CreatedAt)
	assert.Nil(t, res.UpdatedAt)
}

func TestCreateResourceValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.resources.Create(ctx, ResourceInput{Name: strPtr("No type")})
	requireKind(t, err, KindValidation, "Name and type are required")

	_, err = env.resources.Create(ctx, ResourceInput{Name: strPtr("Hall"), Type: strPtr("Concert")})
	requireKind(t, err, KindValidation, "Invalid resource type")
}

func TestUpdateResourcePartial(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.resources.Create(ctx, ResourceInput{
		Name:     strPtr("TESDA Center"),
		Type:     strPtr("Training Center"),
		Address:  strPtr("Taguig"),
		Latitude: floatPtr(14.52),
	})
	require.NoError(t, err)

	env.clock.advance(time.Hour)
	updated, err := env.resources.Update(ctx, res.ID, ResourceInput{Contact: strPtr("0917 000 0000")})
	require.NoError(t, err)
	assert.Equal(t, "TESDA Center", updated.Name)
	assert.Equal(t, "Taguig", updated.Address)
	assert.Equal(t, "0917 000 0000", updated.Contact)
	assert.InDelta(t, 14.52, updated.Latitude, 1e-9)
	require.NotNil(t, updated.UpdatedAt)
	assert.Equal(t, env.clock.now(), *updated.UpdatedAt)
	assert.Equal(t, res.CreatedAt, updated.CreatedAt)

	_, err = env.resources.Update(ctx, res.ID, ResourceInput{Name: strPtr(" ")})
	requireKind(t, err, KindValidation, "Name cannot be empty")

	_, err = env.resources.Update(ctx, "resource_missing", ResourceInput{})
	requireKind(t, err, KindNotFound, "Resource not found")
}

func TestResourceListAndDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	older, err := env.resources.Create(ctx, ResourceInput{Name: strPtr("Workshop A"), Type: strPtr("Workshop")})
	require.NoError(t, err)
	env.clock.advance(time.Minute)
	newer, err := env.resources.Create(ctx, ResourceInput{Name: strPtr("Center B"), Type: strPtr("General")})
	require.NoError(t, err)

	items, err := env.resources.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, newer.ID, items[0].ID)
	assert.Equal(t, older.ID, items[1].ID)

	require.NoError(t, env.resources.Delete(ctx, older.ID))
	err = env.resources.Delete(ctx, older.ID)
	requireKind(t, err, KindNotFound, "Resource not found")

	items, err = env.resources.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
