package service_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-box/internal/repository"
	"recipe-box/internal/repository/sqlite"
	"recipe-box/internal/service"
)

type authFixture struct {
	accountRepo repository.AccountRepository
	accounts    service.AccountService
	auth        service.AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	accountRepo := sqlite.NewAccountRepository(db)
	require.NoError(t, accountRepo.Init(ctx))
	tokenRepo := sqlite.NewTokenRepository(db)
	require.NoError(t, tokenRepo.Init(ctx))

	return &authFixture{
		accountRepo: accountRepo,
		accounts:    service.NewAccountService(accountRepo),
		auth:        service.NewAuthService(accountRepo, tokenRepo),
	}
}

func TestIssueTokenForValidCredentials(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.accounts.Create(ctx, "test@domain.com", "test-user-password123", "Test", "User")
	require.NoError(t, err)

	token, err := f.auth.IssueToken(ctx, "test@domain.com", "test-user-password123")
	require.NoError(t, err)
	assert.Len(t, token, 40)
}

func TestIssueTokenReusesExistingToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.accounts.Create(ctx, "test@domain.com", "goodpass", "", "")
	require.NoError(t, err)

	first, err := f.auth.IssueToken(ctx, "test@domain.com", "goodpass")
	require.NoError(t, err)
	second, err := f.auth.IssueToken(ctx, "test@domain.com", "goodpass")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestIssueTokenBadPassword(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.accounts.Create(ctx, "test@domain.com", "goodpass", "", "")
	require.NoError(t, err)

	_, err = f.auth.IssueToken(ctx, "test@domain.com", "badpass")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestIssueTokenUnknownEmail(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.auth.IssueToken(context.Background(), "nobody@domain.com", "whatever")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestIssueTokenBlankPassword(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.auth.IssueToken(context.Background(), "test@domain.com", "")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestIssueTokenInactiveAccount(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	account, err := f.accounts.Create(ctx, "test@domain.com", "goodpass", "", "")
	require.NoError(t, err)

	account.IsActive = false
	require.NoError(t, f.accountRepo.Update(ctx, account))

	_, err = f.auth.IssueToken(ctx, "test@domain.com", "goodpass")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestIssueTokenNormalizesLookupEmail(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.accounts.Create(ctx, "test@DOMAIN.com", "goodpass", "", "")
	require.NoError(t, err)

	token, err := f.auth.IssueToken(ctx, "test@Domain.COM", "goodpass")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestResolveToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	created, err := f.accounts.Create(ctx, "test@domain.com", "goodpass", "Test", "User")
	require.NoError(t, err)

	token, err := f.auth.IssueToken(ctx, "test@domain.com", "goodpass")
	require.NoError(t, err)

	account, err := f.auth.ResolveToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, account.ID)
	assert.Equal(t, "test@domain.com", account.Email)
}

func TestResolveTokenNeverCrossesAccounts(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	a, err := f.accounts.Create(ctx, "a@domain.com", "goodpassA", "", "")
	require.NoError(t, err)
	b, err := f.accounts.Create(ctx, "b@domain.com", "goodpassB", "", "")
	require.NoError(t, err)

	tokenA, err := f.auth.IssueToken(ctx, "a@domain.com", "goodpassA")
	require.NoError(t, err)
	tokenB, err := f.auth.IssueToken(ctx, "b@domain.com", "goodpassB")
	require.NoError(t, err)
	require.NotEqual(t, tokenA, tokenB)

	resolved, err := f.auth.ResolveToken(ctx, tokenA)
	require.NoError(t, err)
	assert.Equal(t, a.ID, resolved.ID)
	assert.NotEqual(t, b.ID, resolved.ID)
}

func TestResolveTokenForDeactivatedAccount(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	account, err := f.accounts.Create(ctx, "test@domain.com", "goodpass", "", "")
	require.NoError(t, err)

	token, err := f.auth.IssueToken(ctx, "test@domain.com", "goodpass")
	require.NoError(t, err)

	account.IsActive = false
	require.NoError(t, f.accountRepo.Update(ctx, account))

	_, err = f.auth.ResolveToken(ctx, token)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestResolveTokenInvalid(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.auth.ResolveToken(ctx, "")
	assert.ErrorIs(t, err, service.ErrInvalidToken)

	_, err = f.auth.ResolveToken(ctx, "deadbeefdeadbeefdeadbeefdeadbeefdeadbeef")
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}
