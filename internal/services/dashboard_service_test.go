package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"viajaia/internal/models/db_models"
	"viajaia/internal/repositories"
	"viajaia/pkg/utils"
)

type fakeDashboardRepo struct {
	itineraries int64
	days        int64
	activities  int64
	mix         []repositories.TypeCountRow
	top         []repositories.DestinationRow
	recent      []db_models.Itinerary
	err         error
}

func (r *fakeDashboardRepo) CountItineraries(context.Context, uuid.UUID) (int64, error) {
	return r.itineraries, r.err
}

func (r *fakeDashboardRepo) CountDays(context.Context, uuid.UUID) (int64, error) {
	return r.days, r.err
}

func (r *fakeDashboardRepo) CountActivities(context.Context, uuid.UUID) (int64, error) {
	return r.activities, r.err
}

func (r *fakeDashboardRepo) ActivityTypeMix(context.Context, uuid.UUID) ([]repositories.TypeCountRow, error) {
	return r.mix, r.err
}

func (r *fakeDashboardRepo) TopDestinations(context.Context, uuid.UUID, int) ([]repositories.DestinationRow, error) {
	return r.top, r.err
}

func (r *fakeDashboardRepo) RecentItineraries(context.Context, uuid.UUID, int) ([]db_models.Itinerary, error) {
	return r.recent, r.err
}

func TestBuildDashboard(t *testing.T) {
	repo := &fakeDashboardRepo{
		itineraries: 3,
		days:        12,
		activities:  40,
		mix: []repositories.TypeCountRow{
			{ActivityType: db_models.ActivityFood, Count: 15},
			{ActivityType: db_models.ActivitySightseeing, Count: 25},
		},
		top: []repositories.DestinationRow{
			{Destination: "Lisboa, Portugal", Count: 2},
			{Destination: "Salvador, Brasil", Count: 1},
		},
		recent: []db_models.Itinerary{
			{Destination: "Salvador, Brasil"},
		},
	}

	report, err := NewDashboardService(repo).BuildDashboard(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, int64(3), report.KPIs.TotalItineraries)
	assert.Equal(t, int64(12), report.KPIs.TotalDays)
	assert.Equal(t, int64(40), report.KPIs.TotalActivities)

	// The mix keeps the chart's fixed order regardless of row order.
	require.Len(t, report.ActivityMix, 2)
	assert.Equal(t, "Turismo", report.ActivityMix[0].Label)
	assert.Equal(t, int64(25), report.ActivityMix[0].Count)
	assert.Equal(t, "Gastronomia", report.ActivityMix[1].Label)

	require.Len(t, report.TopDestinations, 2)
	assert.Equal(t, "Lisboa, Portugal", report.TopDestinations[0].Destination)

	require.Len(t, report.Recent, 1)
	assert.Equal(t, "Salvador, Brasil", report.Recent[0].Destination)
}

func TestBuildDashboardRepoError(t *testing.T) {
	repo := &fakeDashboardRepo{err: errors.New("connection refused")}

	_, err := NewDashboardService(repo).BuildDashboard(context.Background(), uuid.New())
	require.ErrorIs(t, err, utils.ErrDatabaseError)
}
