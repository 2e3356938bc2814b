package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/meeplemeet/meeplemeet-api/internal/availability"
	"github.com/meeplemeet/meeplemeet-api/internal/models"
	appErrors "github.com/meeplemeet/meeplemeet-api/pkg/errors"
)

type spaceRenterRepoStub struct {
	renters map[string]*models.SpaceRenter
}

func (r *spaceRenterRepoStub) FindByID(ctx context.Context, id string) (*models.SpaceRenter, error) {
	renter, ok := r.renters[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *renter
	return &clone, nil
}

func (r *spaceRenterRepoStub) List(ctx context.Context, filter models.SpaceRenterFilter) ([]models.SpaceRenter, int, error) {
	var out []models.SpaceRenter
	for _, renter := range r.renters {
		out = append(out, *renter)
	}
	return out, len(out), nil
}

func (r *spaceRenterRepoStub) Create(ctx context.Context, renter *models.SpaceRenter) error {
	renter.ID = "sr-new"
	r.renters[renter.ID] = renter
	return nil
}

func (r *spaceRenterRepoStub) Update(ctx context.Context, renter *models.SpaceRenter) error {
	stored := *renter
	r.renters[renter.ID] = &stored
	return nil
}

func (r *spaceRenterRepoStub) Delete(ctx context.Context, id string) error {
	delete(r.renters, id)
	return nil
}

func validSpaceRenterRequest() SpaceRenterRequest {
	return SpaceRenterRequest{
		Name:    "The Dice Tower",
		Address: models.Location{Name: "1 Meeple Street"},
		OpeningHours: availability.Week{
			{Day: 5, Hours: []availability.TimeSlot{{Open: "18:00", Close: "00:00"}}},
			{Day: 6, Hours: []availability.TimeSlot{{Open: "00:00", Close: "23:59"}}},
		},
		Spaces: []models.Space{{Seats: 6, CostPerHour: 12.5}, {Seats: 4, CostPerHour: 0}},
	}
}

func TestSpaceRenterServiceCreate(t *testing.T) {
	repo := &spaceRenterRepoStub{renters: map[string]*models.SpaceRenter{}}
	svc := NewSpaceRenterService(repo, shopOwners(), nil, nil, zap.NewNop())
	ctx := context.Background()

	renter, err := svc.Create(ctx, validSpaceRenterRequest(), actorFor("owner-1"))
	require.NoError(t, err)
	assert.Len(t, renter.Spaces, 2)

	_, err = svc.Create(ctx, validSpaceRenterRequest(), actorFor("player"))
	assert.True(t, errors.Is(err, appErrors.ErrForbidden))

	bad := validSpaceRenterRequest()
	bad.Spaces = []models.Space{{Seats: 0, CostPerHour: 5}}
	_, err = svc.Create(ctx, bad, actorFor("owner-1"))
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	bad = validSpaceRenterRequest()
	bad.OpeningHours = availability.Week{{Day: 7}}
	_, err = svc.Create(ctx, bad, actorFor("owner-1"))
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestSpaceRenterServiceOpeningHours(t *testing.T) {
	repo := &spaceRenterRepoStub{renters: map[string]*models.SpaceRenter{}}
	svc := NewSpaceRenterService(repo, shopOwners(), nil, nil, zap.NewNop())
	ctx := context.Background()

	renter, err := svc.Create(ctx, validSpaceRenterRequest(), actorFor("owner-1"))
	require.NoError(t, err)

	view, err := svc.OpeningHours(ctx, renter.ID)
	require.NoError(t, err)
	require.Len(t, view.Lines, 7)
	assert.Equal(t, "Sunday: Closed", view.Lines[0])
	assert.Equal(t, "Friday: 18:00 - 00:00", view.Lines[5])
	assert.Equal(t, "Saturday: Open 24 hours", view.Lines[6])

	_, err = svc.OpeningHours(ctx, "missing")
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}

func TestSpaceRenterServiceUpdateAndDelete(t *testing.T) {
	repo := &spaceRenterRepoStub{renters: map[string]*models.SpaceRenter{"sr-1": {ID: "sr-1", OwnerID: "owner-1"}}}
	store := newMemoryCache()
	store.entries["space_renter:sr-1"] = []byte(`{"id":"sr-1"}`)
	svc := NewSpaceRenterService(repo, shopOwners(), NewCacheService(store, nil, 0, nil, true), nil, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Update(ctx, "sr-1", validSpaceRenterRequest(), actorFor("player"))
	assert.True(t, errors.Is(err, appErrors.ErrForbidden))

	updated, err := svc.Update(ctx, "sr-1", validSpaceRenterRequest(), actorFor("owner-1"))
	require.NoError(t, err)
	assert.Equal(t, "The Dice Tower", updated.Name)
	assert.NotContains(t, store.entries, "space_renter:sr-1")

	require.NoError(t, svc.Delete(ctx, "sr-1", actorFor("owner-1")))
	assert.Empty(t, repo.renters)

	renters, _, err := svc.List(ctx, models.SpaceRenterFilter{})
	require.NoError(t, err)
	assert.Empty(t, renters)
}
