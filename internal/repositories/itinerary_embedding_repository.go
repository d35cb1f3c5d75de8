package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dbm "viajaia/internal/models/db_models"
)

type SimilarItineraryRow struct {
	ItineraryID uuid.UUID `gorm:"column:itinerary_id"`
	Destination string    `gorm:"column:destination"`
	Similarity  float64   `gorm:"column:similarity"`
}

type ItineraryEmbeddingRepository interface {
	Upsert(ctx context.Context, embedding *dbm.ItineraryEmbedding) error
	SearchNearest(ctx context.Context, accountID uuid.UUID, vector pgvector.Vector, excludeItineraryID uuid.UUID, limit int) ([]SimilarItineraryRow, error)
}

type itineraryEmbeddingRepository struct {
	db *gorm.DB
}

func NewItineraryEmbeddingRepository(db *gorm.DB) ItineraryEmbeddingRepository {
	return &itineraryEmbeddingRepository{db: db}
}

func (r *itineraryEmbeddingRepository) Upsert(ctx context.Context, embedding *dbm.ItineraryEmbedding) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "itinerary_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"destination", "embedding", "updated_at"}),
		}).
		Create(embedding).Error
}

// SearchNearest ranks the caller's own saved trips by cosine similarity.
func (r *itineraryEmbeddingRepository) SearchNearest(
	ctx context.Context,
	accountID uuid.UUID,
	vector pgvector.Vector,
	excludeItineraryID uuid.UUID,
	limit int,
) ([]SimilarItineraryRow, error) {

	var results []SimilarItineraryRow

	query := `
        SELECT itinerary_id, destination, (1 - (embedding <=> ?)) AS similarity
        FROM itinerary_embeddings
        WHERE account_id = ?
          AND itinerary_id <> ?
          AND deleted_at IS NULL
        ORDER BY embedding <=> ?
        LIMIT ?
    `

	vecStr := vector.String()
	err := r.db.WithContext(ctx).
		Raw(query, vecStr, accountID, excludeItineraryID, vecStr, limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
