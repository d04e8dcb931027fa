package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"recipe-box/internal/domain"
	"recipe-box/internal/repository"
)

const tokenKeyBytes = 20

// AuthService verifies credentials and manages opaque bearer tokens.
type AuthService interface {
	IssueToken(ctx context.Context, email, password string) (string, error)
	ResolveToken(ctx context.Context, key string) (*domain.Account, error)
}

type authService struct {
	accounts repository.AccountRepository
	tokens   repository.TokenRepository
}

func NewAuthService(accounts repository.AccountRepository, tokens repository.TokenRepository) AuthService {
	return &authService{accounts: accounts, tokens: tokens}
}

// IssueToken verifies the credentials and returns the account's token key,
// creating the token row on first login and reusing it afterwards.
func (s *authService) IssueToken(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	account, err := s.accounts.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if !account.IsActive {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.GetByAccount(ctx, account.ID)
	if err == nil {
		return token.Key, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}

	key, err := generateTokenKey()
	if err != nil {
		return "", err
	}
	token = &domain.AuthToken{AccountID: account.ID, Key: key}
	if _, err := s.tokens.Create(ctx, token); err != nil {
		// a concurrent first login may have won the unique account slot
		if existing, getErr := s.tokens.GetByAccount(ctx, account.ID); getErr == nil {
			return existing.Key, nil
		}
		return "", err
	}
	return token.Key, nil
}

// ResolveToken returns the active account bound to the given token key.
func (s *authService) ResolveToken(ctx context.Context, key string) (*domain.Account, error) {
	if key == "" {
		return nil, ErrInvalidToken
	}

	token, err := s.tokens.GetByKey(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	account, err := s.accounts.GetByID(ctx, token.AccountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if !account.IsActive {
		return nil, ErrInvalidToken
	}
	return account, nil
}

func generateTokenKey() (string, error) {
	buf := make([]byte, tokenKeyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token key: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
