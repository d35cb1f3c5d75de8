package itinerary_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"viajaia/internal/api/controllers"
	"viajaia/internal/repositories"
	"viajaia/internal/services"
	mem "viajaia/pkg/memcache"
	"viajaia/pkg/utils"
)

var Module = fx.Provide(
	provideItineraryRepo,
	provideEmbeddingRepo,
	provideItineraryService,
	provideItineraryController,
)

func provideItineraryRepo(db *gorm.DB) repositories.ItineraryRepository {
	return repositories.NewItineraryRepository(db)
}

func provideEmbeddingRepo(db *gorm.DB) repositories.ItineraryEmbeddingRepository {
	return repositories.NewItineraryEmbeddingRepository(db)
}

func provideItineraryService(
	itineraryRepo repositories.ItineraryRepository,
	embeddingRepo repositories.ItineraryEmbeddingRepository,
	generator utils.GeneratorClientInterface,
	embedder utils.EmbeddingClientInterface,
	pending mem.PendingPreferenceStore,
) services.ItineraryServiceInterface {
	return services.NewItineraryService(itineraryRepo, embeddingRepo, generator, embedder, pending)
}

func provideItineraryController(itineraryService services.ItineraryServiceInterface) *controllers.ItineraryController {
	return controllers.NewItineraryController(itineraryService)
}
