package services

import (
	"context"
	"net/url"
	"strings"

	"viajaia/internal/models/db_models"
	"viajaia/internal/models/request_models"
	"viajaia/internal/repositories"
	"viajaia/pkg/utils"
)

// Authenticator is the login capability. The password variant is the real
// credential check; the mock variant keeps the prototype's fail-open login
// available behind the same interface, selected via AUTH_PROVIDER.
type Authenticator interface {
	Authenticate(ctx context.Context, request request_models.LoginRequest) (*db_models.Account, error)
}

type PasswordAuthenticator struct {
	accountRepo repositories.AccountRepository
}

func NewPasswordAuthenticator(accountRepo repositories.AccountRepository) Authenticator {
	return &PasswordAuthenticator{accountRepo: accountRepo}
}

func (a *PasswordAuthenticator) Authenticate(ctx context.Context, request request_models.LoginRequest) (*db_models.Account, error) {
	if request.Password == "" {
		return nil, utils.ErrInvalidCredentials
	}

	account, err := a.accountRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}

	if err := utils.ComparePasswords(account.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}
	return account, nil
}

// MockAuthenticator accepts any email-shaped login. Unknown emails get an
// account fabricated on the spot, named after the email's local part.
type MockAuthenticator struct {
	accountRepo repositories.AccountRepository
}

func NewMockAuthenticator(accountRepo repositories.AccountRepository) Authenticator {
	return &MockAuthenticator{accountRepo: accountRepo}
}

func (a *MockAuthenticator) Authenticate(ctx context.Context, request request_models.LoginRequest) (*db_models.Account, error) {
	account, err := a.accountRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account != nil {
		return account, nil
	}

	name := request.Email
	if at := strings.Index(request.Email, "@"); at > 0 {
		name = request.Email[:at]
	}

	account = &db_models.Account{
		Name:      name,
		Email:     request.Email,
		Role:      db_models.RoleUser,
		AvatarURL: "https://api.dicebear.com/7.x/avataaars/svg?seed=" + url.QueryEscape(request.Email),
	}
	if err := a.accountRepo.Insert(ctx, account); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return account, nil
}
