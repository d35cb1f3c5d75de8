package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "viajaia/internal/models/db_models"
)

// ItineraryRepository owns all itinerary reads and writes. Every operation
// is scoped by account id, so one user's rows are invisible to another's
// queries by construction.
type ItineraryRepository interface {
	Insert(ctx context.Context, itinerary *dbm.Itinerary) error
	ListByAccountID(ctx context.Context, accountID uuid.UUID, page, pageSize int) ([]dbm.Itinerary, error)
	GetByID(ctx context.Context, accountID uuid.UUID, itineraryID uuid.UUID) (*dbm.Itinerary, error)
	DeleteByID(ctx context.Context, accountID uuid.UUID, itineraryID uuid.UUID) error
}

type itineraryRepository struct {
	db *gorm.DB
}

func NewItineraryRepository(db *gorm.DB) ItineraryRepository {
	return &itineraryRepository{db: db}
}

// Insert writes the itinerary with its day and activity tree in one
// transaction; a failure anywhere leaves nothing persisted.
func (r *itineraryRepository) Insert(ctx context.Context, itinerary *dbm.Itinerary) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(itinerary).Error
	})
}

func (r *itineraryRepository) ListByAccountID(
	ctx context.Context, accountID uuid.UUID, page, pageSize int,
) ([]dbm.Itinerary, error) {

	var itineraries []dbm.Itinerary
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&itineraries).Error
	if err != nil {
		return nil, err
	}
	return itineraries, nil
}

func (r *itineraryRepository) GetByID(
	ctx context.Context, accountID uuid.UUID, itineraryID uuid.UUID,
) (*dbm.Itinerary, error) {

	var itinerary dbm.Itinerary
	err := r.db.WithContext(ctx).
		Where("id = ? AND account_id = ?", itineraryID, accountID).
		Preload("Days", func(db *gorm.DB) *gorm.DB {
			return db.Order("itinerary_days.day_number ASC")
		}).
		Preload("Days.Activities", func(db *gorm.DB) *gorm.DB {
			return db.Order("itinerary_activities.position ASC")
		}).
		First(&itinerary).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &itinerary, nil
}

// DeleteByID removes at most one itinerary and its tree. Deleting an id
// that does not exist (or belongs to someone else) is a no-op, not an error.
func (r *itineraryRepository) DeleteByID(ctx context.Context, accountID uuid.UUID, itineraryID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var itinerary dbm.Itinerary
		err := tx.Where("id = ? AND account_id = ?", itineraryID, accountID).
			First(&itinerary).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		subDayIDs := tx.Model(&dbm.ItineraryDay{}).
			Select("id").
			Where("itinerary_id = ?", itinerary.ID)

		if err := tx.Where("itinerary_day_id IN (?)", subDayIDs).
			Delete(&dbm.ItineraryActivity{}).Error; err != nil {
			return err
		}
		if err := tx.Where("itinerary_id = ?", itinerary.ID).
			Delete(&dbm.ItineraryDay{}).Error; err != nil {
			return err
		}
		if err := tx.Where("itinerary_id = ?", itinerary.ID).
			Delete(&dbm.ItineraryEmbedding{}).Error; err != nil {
			return err
		}
		return tx.Delete(&itinerary).Error
	})
}
