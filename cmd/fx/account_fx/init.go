package account_fx

import (
	"os"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"viajaia/internal/api/controllers"
	"viajaia/internal/repositories"
	"viajaia/internal/services"
	mem "viajaia/pkg/memcache"
)

var Module = fx.Provide(
	provideAccountRepo,
	provideAuthenticator,
	provideAccountService,
	provideAccountController,
)

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

// provideAuthenticator selects the login capability. "mock" keeps the
// prototype's fail-open login; "password" is the credential check.
func provideAuthenticator(accountRepo repositories.AccountRepository) services.Authenticator {
	if os.Getenv("AUTH_PROVIDER") == "password" {
		return services.NewPasswordAuthenticator(accountRepo)
	}
	return services.NewMockAuthenticator(accountRepo)
}

func provideAccountService(
	accountRepo repositories.AccountRepository,
	authenticator services.Authenticator,
	resetTokens mem.ResetTokenStore,
	mailService services.IMailService,
) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, authenticator, resetTokens, mailService)
}

func provideAccountController(accountService services.AccountServiceInterface) *controllers.AccountController {
	return controllers.NewAccountController(accountService)
}
