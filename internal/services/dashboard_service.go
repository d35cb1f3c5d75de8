package services

import (
	"context"

	"github.com/google/uuid"

	"viajaia/internal/models/response_models"
	"viajaia/internal/repositories"
	"viajaia/pkg/utils"
)

type DashboardServiceInterface interface {
	BuildDashboard(ctx context.Context, accountID uuid.UUID) (*response_models.DashboardReport, error)
}

type DashboardService struct {
	repo repositories.DashboardRepository
}

func NewDashboardService(repo repositories.DashboardRepository) DashboardServiceInterface {
	return &DashboardService{repo: repo}
}

func (s *DashboardService) BuildDashboard(ctx context.Context, accountID uuid.UUID) (*response_models.DashboardReport, error) {
	totalItineraries, err := s.repo.CountItineraries(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	totalDays, err := s.repo.CountDays(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	totalActivities, err := s.repo.CountActivities(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	mixRows, err := s.repo.ActivityTypeMix(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	counts := make(map[string]int64, len(mixRows))
	for _, row := range mixRows {
		counts[row.ActivityType] = row.Count
	}

	destRows, err := s.repo.TopDestinations(ctx, accountID, dashboardLimit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	top := make([]response_models.TopDestination, 0, len(destRows))
	for _, row := range destRows {
		top = append(top, response_models.TopDestination{
			Destination: row.Destination,
			Count:       row.Count,
		})
	}

	recentRows, err := s.repo.RecentItineraries(ctx, accountID, dashboardLimit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	recent := make([]response_models.ItineraryResponse, 0, len(recentRows))
	for i := range recentRows {
		recent = append(recent, response_models.BuildItineraryResponse(&recentRows[i]))
	}

	return &response_models.DashboardReport{
		KPIs: response_models.DashboardKPIBlock{
			TotalItineraries: totalItineraries,
			TotalDays:        totalDays,
			TotalActivities:  totalActivities,
		},
		ActivityMix:     buildBreakdown(counts),
		TopDestinations: top,
		Recent:          recent,
	}, nil
}
