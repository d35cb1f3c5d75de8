package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"viajaia/internal/models/db_models"
	"viajaia/internal/models/request_models"
	mem "viajaia/pkg/memcache"
	"viajaia/pkg/utils"
)

type fakeAccountRepo struct {
	byEmail map[string]*db_models.Account
	updates map[string]string
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{
		byEmail: make(map[string]*db_models.Account),
		updates: make(map[string]string),
	}
}

func (r *fakeAccountRepo) FindByEmail(_ context.Context, email string) (*db_models.Account, error) {
	return r.byEmail[email], nil
}

func (r *fakeAccountRepo) Insert(_ context.Context, account *db_models.Account) error {
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	r.byEmail[account.Email] = account
	return nil
}

func (r *fakeAccountRepo) UpdatePasswordByEmail(_ context.Context, email string, passwordHash string) error {
	r.updates[email] = passwordHash
	if a := r.byEmail[email]; a != nil {
		a.PasswordHash = passwordHash
	}
	return nil
}

type fakeMailService struct {
	sentTo    []string
	lastToken string
}

func (m *fakeMailService) SendMailToResetPassword(toEmail string, token string) error {
	m.sentTo = append(m.sentTo, toEmail)
	m.lastToken = token
	return nil
}

func newTestAccountService(repo *fakeAccountRepo, auth Authenticator, mail *fakeMailService) AccountServiceInterface {
	return NewAccountService(repo, auth, mem.NewResetTokens(), mail)
}

func TestMockAuthenticatorFabricatesAccount(t *testing.T) {
	repo := newFakeAccountRepo()
	auth := NewMockAuthenticator(repo)

	account, err := auth.Authenticate(context.Background(), request_models.LoginRequest{Email: "ana.souza@example.com"})
	require.NoError(t, err)

	assert.Equal(t, "ana.souza", account.Name)
	assert.Equal(t, "ana.souza@example.com", account.Email)
	assert.Equal(t, db_models.RoleUser, account.Role)
	assert.Contains(t, account.AvatarURL, "dicebear.com")
	assert.Empty(t, account.PasswordHash)

	// The fabricated account is persisted and reused on the next login.
	again, err := auth.Authenticate(context.Background(), request_models.LoginRequest{Email: "ana.souza@example.com"})
	require.NoError(t, err)
	assert.Equal(t, account.ID, again.ID)
	assert.Len(t, repo.byEmail, 1)
}

func TestPasswordAuthenticator(t *testing.T) {
	repo := newFakeAccountRepo()
	hash, err := utils.HashPassword("correct-horse")
	require.NoError(t, err)
	require.NoError(t, repo.Insert(context.Background(), &db_models.Account{
		Name:         "Bruno",
		Email:        "bruno@example.com",
		PasswordHash: hash,
		Role:         db_models.RoleUser,
	}))

	auth := NewPasswordAuthenticator(repo)

	_, err = auth.Authenticate(context.Background(), request_models.LoginRequest{Email: "bruno@example.com"})
	require.ErrorIs(t, err, utils.ErrInvalidCredentials)

	_, err = auth.Authenticate(context.Background(), request_models.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	require.ErrorIs(t, err, utils.ErrAccountNotFound)

	_, err = auth.Authenticate(context.Background(), request_models.LoginRequest{Email: "bruno@example.com", Password: "wrong"})
	require.ErrorIs(t, err, utils.ErrInvalidCredentials)

	account, err := auth.Authenticate(context.Background(), request_models.LoginRequest{Email: "bruno@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, "Bruno", account.Name)
}

func TestLoginIssuesToken(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := newTestAccountService(repo, NewMockAuthenticator(repo), &fakeMailService{})

	resp, err := svc.Login(context.Background(), request_models.LoginRequest{Email: "carla@example.com"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, "carla", resp.Account.Name)

	claims, err := utils.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.Account.ID, claims.UserID)
	assert.Equal(t, db_models.RoleUser, claims.Role)
}

func TestCreateAccountDuplicateEmail(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := newTestAccountService(repo, NewPasswordAuthenticator(repo), &fakeMailService{})

	req := request_models.SignUpRequest{DisplayName: "Diego", Email: "diego@example.com", Password: "secret-123"}
	require.NoError(t, svc.CreateAccount(context.Background(), req))
	require.ErrorIs(t, svc.CreateAccount(context.Background(), req), utils.ErrEmailAlreadyExists)

	// The stored hash is never the plaintext password.
	stored := repo.byEmail["diego@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret-123", stored.PasswordHash)
	assert.NoError(t, utils.ComparePasswords(stored.PasswordHash, "secret-123"))
}

func TestForgotPasswordUnknownEmailIsSilent(t *testing.T) {
	repo := newFakeAccountRepo()
	mail := &fakeMailService{}
	svc := newTestAccountService(repo, NewPasswordAuthenticator(repo), mail)

	require.NoError(t, svc.ForgotPassword(context.Background(), "ghost@example.com"))
	assert.Empty(t, mail.sentTo)
}

func TestResetPasswordFlow(t *testing.T) {
	repo := newFakeAccountRepo()
	mail := &fakeMailService{}
	svc := newTestAccountService(repo, NewPasswordAuthenticator(repo), mail)

	require.NoError(t, svc.CreateAccount(context.Background(), request_models.SignUpRequest{
		DisplayName: "Elisa", Email: "elisa@example.com", Password: "old-password",
	}))

	require.NoError(t, svc.ForgotPassword(context.Background(), "elisa@example.com"))
	require.Equal(t, []string{"elisa@example.com"}, mail.sentTo)
	require.NotEmpty(t, mail.lastToken)

	// Token bound to a different email is rejected.
	err := svc.ResetPassword(context.Background(), request_models.ForgotPasswordRequest{
		Email: "other@example.com", NewPassword: "new-password", Token: mail.lastToken,
	})
	require.ErrorIs(t, err, utils.ErrResetTokenInvalid)

	// A rejected attempt consumed the token, so request a fresh one.
	require.NoError(t, svc.ForgotPassword(context.Background(), "elisa@example.com"))
	require.NoError(t, svc.ResetPassword(context.Background(), request_models.ForgotPasswordRequest{
		Email: "elisa@example.com", NewPassword: "new-password", Token: mail.lastToken,
	}))
	assert.NoError(t, utils.ComparePasswords(repo.updates["elisa@example.com"], "new-password"))

	// Single-use: the same token cannot reset twice.
	err = svc.ResetPassword(context.Background(), request_models.ForgotPasswordRequest{
		Email: "elisa@example.com", NewPassword: "another-password", Token: mail.lastToken,
	})
	require.ErrorIs(t, err, utils.ErrResetTokenInvalid)
}
