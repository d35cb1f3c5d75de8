package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "viajaia/internal/models/db_models"
)

// Row helpers
type TypeCountRow struct {
	ActivityType string `gorm:"column:activity_type"`
	Count        int64  `gorm:"column:count"`
}

type DestinationRow struct {
	Destination string `gorm:"column:destination"`
	Count       int64  `gorm:"column:count"`
}

type DashboardRepository interface {
	CountItineraries(ctx context.Context, accountID uuid.UUID) (int64, error)
	CountDays(ctx context.Context, accountID uuid.UUID) (int64, error)
	CountActivities(ctx context.Context, accountID uuid.UUID) (int64, error)
	ActivityTypeMix(ctx context.Context, accountID uuid.UUID) ([]TypeCountRow, error)
	TopDestinations(ctx context.Context, accountID uuid.UUID, limit int) ([]DestinationRow, error)
	RecentItineraries(ctx context.Context, accountID uuid.UUID, limit int) ([]dbm.Itinerary, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) CountItineraries(ctx context.Context, accountID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&dbm.Itinerary{}).
		Where("account_id = ?", accountID).
		Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountDays(ctx context.Context, accountID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&dbm.ItineraryDay{}).
		Joins("JOIN itineraries ON itinerary_days.itinerary_id = itineraries.id").
		Where("itineraries.account_id = ? AND itineraries.deleted_at IS NULL", accountID).
		Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountActivities(ctx context.Context, accountID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&dbm.ItineraryActivity{}).
		Joins("JOIN itinerary_days ON itinerary_activities.itinerary_day_id = itinerary_days.id").
		Joins("JOIN itineraries ON itinerary_days.itinerary_id = itineraries.id").
		Where("itineraries.account_id = ? AND itineraries.deleted_at IS NULL", accountID).
		Count(&n).Error
	return n, err
}

func (r *dashboardRepository) ActivityTypeMix(ctx context.Context, accountID uuid.UUID) ([]TypeCountRow, error) {
	var rows []TypeCountRow
	err := r.db.WithContext(ctx).
		Model(&dbm.ItineraryActivity{}).
		Select("itinerary_activities.activity_type AS activity_type, COUNT(*) AS count").
		Joins("JOIN itinerary_days ON itinerary_activities.itinerary_day_id = itinerary_days.id").
		Joins("JOIN itineraries ON itinerary_days.itinerary_id = itineraries.id").
		Where("itineraries.account_id = ? AND itineraries.deleted_at IS NULL", accountID).
		Group("itinerary_activities.activity_type").
		Scan(&rows).Error
	return rows, err
}

func (r *dashboardRepository) TopDestinations(ctx context.Context, accountID uuid.UUID, limit int) ([]DestinationRow, error) {
	var rows []DestinationRow
	err := r.db.WithContext(ctx).
		Model(&dbm.Itinerary{}).
		Select("destination, COUNT(*) AS count").
		Where("account_id = ?", accountID).
		Group("destination").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *dashboardRepository) RecentItineraries(ctx context.Context, accountID uuid.UUID, limit int) ([]dbm.Itinerary, error) {
	var itineraries []dbm.Itinerary
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Limit(limit).
		Find(&itineraries).Error
	return itineraries, err
}
