package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/geouser/internal/lib/weather"
	"github.com/deppfellow/geouser/internal/model"
	"github.com/deppfellow/geouser/internal/repository"
)

type fakeEnricher struct {
	locations map[string]weather.Location
	calls     []string
}

func (f *fakeEnricher) Enrich(_ context.Context, zip string) (*weather.Location, error) {
	f.calls = append(f.calls, zip)

	loc, ok := f.locations[zip]
	if !ok {
		return nil, &weather.Error{Code: 404, Message: "zip not found"}
	}
	return &loc, nil
}

func newTestService(t *testing.T) (*UserService, repository.UserRepository, *fakeEnricher) {
	t.Helper()

	repo := repository.NewMemoryUserRepository()
	enricher := &fakeEnricher{locations: map[string]weather.Location{
		"10001": {Latitude: 40.7, Longitude: -73.9, OffsetSeconds: -14400, Timezone: "UTC-4"},
		"94103": {Latitude: 37.77, Longitude: -122.41, OffsetSeconds: -25200, Timezone: "UTC-7"},
	}}
	logger := zerolog.Nop()

	return NewUserService(repo, enricher, &logger), repo, enricher
}

func ptr(s string) *string { return &s }

func TestCreate_Enriches(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, "Jane", "10001")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)

	stored, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.User{
		ID:        user.ID,
		Name:      "Jane",
		Zip:       "10001",
		Latitude:  40.7,
		Longitude: -73.9,
		Timezone:  "UTC-4",
	}, *stored)
}

func TestCreate_EnrichmentFailurePersistsNothing(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, "Ghost", "00000")
	require.Error(t, err)
	assert.Nil(t, user)

	var werr *weather.Error
	require.True(t, errors.As(err, &werr))
	assert.Equal(t, 404, werr.Code)
	assert.Equal(t, "zip not found", werr.Message)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestList(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	users, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Nil(t, users)

	jane, err := svc.Create(ctx, "Jane", "10001")
	require.NoError(t, err)

	users, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, *jane, users[jane.ID])
}

func TestGet_Missing(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUpdate_NameOnlyKeepsGeo(t *testing.T) {
	svc, repo, enricher := newTestService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, "Jane", "10001")
	require.NoError(t, err)

	require.NoError(t, svc.Update(ctx, user.ID, ptr("Janet"), nil))

	stored, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Janet", stored.Name)
	assert.Equal(t, "10001", stored.Zip)
	assert.Equal(t, 40.7, stored.Latitude)
	assert.Equal(t, -73.9, stored.Longitude)
	assert.Equal(t, "UTC-4", stored.Timezone)
	assert.Equal(t, []string{"10001"}, enricher.calls, "name only updates do not enrich")
}

func TestUpdate_ZipReplacesGeoTogether(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, "Jane", "10001")
	require.NoError(t, err)

	require.NoError(t, svc.Update(ctx, user.ID, nil, ptr("94103")))

	stored, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.User{
		ID:        user.ID,
		Name:      "Jane",
		Zip:       "94103",
		Latitude:  37.77,
		Longitude: -122.41,
		Timezone:  "UTC-7",
	}, *stored)
}

func TestUpdate_EnrichmentFailureLeavesRecord(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, "Jane", "10001")
	require.NoError(t, err)

	err = svc.Update(ctx, user.ID, ptr("Janet"), ptr("00000"))

	var werr *weather.Error
	require.True(t, errors.As(err, &werr))

	stored, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, *user, *stored, "name must not be written when enrichment fails")
}

func TestUpdate_EmptyPatch(t *testing.T) {
	svc, repo, enricher := newTestService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, "Jane", "10001")
	require.NoError(t, err)

	require.NoError(t, svc.Update(ctx, user.ID, nil, nil))
	require.NoError(t, svc.Update(ctx, user.ID, nil, ptr("")))

	stored, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, *user, *stored)
	assert.Len(t, enricher.calls, 1)
}

func TestUpdate_Missing(t *testing.T) {
	svc, repo, enricher := newTestService(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Update(ctx, "missing", ptr("Ghost"), nil), repository.ErrUserNotFound)
	assert.ErrorIs(t, svc.Update(ctx, "missing", nil, ptr("10001")), repository.ErrUserNotFound)
	assert.Empty(t, enricher.calls, "unknown ids are rejected before enrichment")

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestDelete(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, "Jane", "10001")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "missing"))

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	require.NoError(t, svc.Delete(ctx, user.ID))

	_, err = svc.Get(ctx, user.ID)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}
