package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"viajaia/internal/models/db_models"
	"viajaia/internal/models/request_models"
	"viajaia/internal/models/response_models"
	"viajaia/internal/repositories"
	"viajaia/pkg/logger"
	mem "viajaia/pkg/memcache"
	"viajaia/pkg/utils"
)

const resetTokenTTL = 15 * time.Minute

type AccountServiceInterface interface {
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AccountLoginResponse, error)
	CreateAccount(ctx context.Context, request request_models.SignUpRequest) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, request request_models.ForgotPasswordRequest) error
}

type AccountService struct {
	accountRepo   repositories.AccountRepository
	authenticator Authenticator
	resetTokens   mem.ResetTokenStore
	mailService   IMailService
}

func NewAccountService(
	accountRepo repositories.AccountRepository,
	authenticator Authenticator,
	resetTokens mem.ResetTokenStore,
	mailService IMailService,
) AccountServiceInterface {
	return &AccountService{
		accountRepo:   accountRepo,
		authenticator: authenticator,
		resetTokens:   resetTokens,
		mailService:   mailService,
	}
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AccountLoginResponse, error) {
	account, err := a.authenticator.Authenticate(ctx, request)
	if err != nil {
		return nil, err
	}

	token, err := utils.CreateToken(account.ID, account.Role)
	if err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	return &response_models.AccountLoginResponse{
		Token: token,
		Account: response_models.AccountResponse{
			ID:        account.ID.String(),
			Name:      account.Name,
			Email:     account.Email,
			Role:      account.Role,
			AvatarURL: account.AvatarURL,
		},
	}, nil
}

func (a *AccountService) CreateAccount(ctx context.Context, request request_models.SignUpRequest) error {
	existingAccount, err := a.accountRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existingAccount != nil {
		return utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return utils.ErrDatabaseError
	}

	newAccount := &db_models.Account{
		Name:         request.DisplayName,
		Email:        request.Email,
		PasswordHash: hashedPassword,
		Role:         db_models.RoleUser,
	}
	if err := a.accountRepo.Insert(ctx, newAccount); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

// ForgotPassword never reveals whether the email exists; unknown addresses
// are silently ignored.
func (a *AccountService) ForgotPassword(ctx context.Context, email string) error {
	account, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if account == nil {
		return nil
	}

	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		return utils.ErrDatabaseError
	}
	a.resetTokens.Set(token, account.Email, resetTokenTTL)

	if err := a.mailService.SendMailToResetPassword(account.Email, token); err != nil {
		logger.Log.Warn("reset mail not sent", zap.String("email", account.Email), zap.Error(err))
	}
	return nil
}

func (a *AccountService) ResetPassword(ctx context.Context, request request_models.ForgotPasswordRequest) error {
	email := a.resetTokens.Consume(request.Token)
	if email == "" || email != request.Email {
		return utils.ErrResetTokenInvalid
	}

	hashedPassword, err := utils.HashPassword(request.NewPassword)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if err := a.accountRepo.UpdatePasswordByEmail(ctx, email, hashedPassword); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}
