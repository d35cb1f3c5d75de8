package db_models

import (
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// ItineraryEmbedding stores a vector for "destination + interests" so saved
// trips can be searched by similarity. Written best-effort after generation.
type ItineraryEmbedding struct {
	BaseModel
	ItineraryID uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	AccountID   uuid.UUID `gorm:"type:uuid;index"`
	Destination string
	Embedding   pgvector.Vector `gorm:"type:vector(1536)"`
}
