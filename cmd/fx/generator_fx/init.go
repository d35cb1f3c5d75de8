// cmd/fx/generator_fx/init.go
package generator_fx

import (
	"os"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"viajaia/pkg/logger"
	"viajaia/pkg/utils"
)

var Module = fx.Provide(
	provideGeneratorClient,
	provideEmbeddingClient,
)

// provideGeneratorClient never fails at boot: a missing GEMINI_API_KEY is
// surfaced on the first generation attempt, matching the prototype.
func provideGeneratorClient() utils.GeneratorClientInterface {
	apiKey := os.Getenv("GEMINI_API_KEY")
	model := getEnvWithDefault("GEMINI_MODEL", "gemini-2.5-flash")

	if apiKey == "" {
		logger.Log.Warn("GEMINI_API_KEY not set, itinerary generation will fail until configured")
	}
	logger.Log.Info("gemini generator configured", zap.String("model", model))

	return utils.NewGeminiGeneratorClient(apiKey, model)
}

func provideEmbeddingClient() (utils.EmbeddingClientInterface, error) {
	provider := getEnvWithDefault("EMBEDDING_PROVIDER", "local")
	logger.Log.Info("embedding client configured", zap.String("provider", provider))
	return utils.NewEmbeddingClient(provider, os.Getenv("OPENAI_API_KEY"))
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
