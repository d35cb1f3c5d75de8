package mail_fx

import (
	"os"
	"strconv"

	"go.uber.org/fx"

	"viajaia/internal/services"
)

var Module = fx.Provide(provideMailService)

func provideMailService() (services.IMailService, error) {
	port, _ := strconv.Atoi(getEnvWithDefault("SMTP_PORT", "587"))

	return services.NewSMTPMailService(services.SMTPConfig{
		Host:       os.Getenv("SMTP_HOST"),
		Port:       port,
		Username:   os.Getenv("SMTP_USERNAME"),
		Password:   os.Getenv("SMTP_PASSWORD"),
		From:       getEnvWithDefault("SMTP_FROM", "no-reply@viajaia.app"),
		FromName:   getEnvWithDefault("SMTP_FROM_NAME", "ViajaIA"),
		AppName:    getEnvWithDefault("APP_NAME", "ViajaIA"),
		AppBaseURL: getEnvWithDefault("APP_BASE_URL", "http://localhost:5173"),
	})
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
