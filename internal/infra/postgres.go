package infra

import (
	"os"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"viajaia/internal/models/db_models"
	"viajaia/pkg/logger"
)

func InitPostgresql() *gorm.DB {
	dsn := os.Getenv("POSTGRES_URL")

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Log.Fatal("error connecting to database", zap.Error(err))
	}

	if err := Migrate(db); err != nil {
		logger.Log.Fatal("error migrating database", zap.Error(err))
	}

	return db
}

// Migrate creates the pgvector extension before AutoMigrate so the
// vector(1536) column type resolves.
func Migrate(db *gorm.DB) error {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return err
	}
	return db.AutoMigrate(
		&db_models.Account{},
		&db_models.Itinerary{},
		&db_models.ItineraryDay{},
		&db_models.ItineraryActivity{},
		&db_models.ItineraryEmbedding{},
	)
}

func ClosePostgresql(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logger.Log.Error("error getting database instance", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Log.Error("error closing database connection", zap.Error(err))
	}
}
