package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"recipe-box/internal/domain"
	"recipe-box/internal/repository"
)

// ProfileUpdate carries the optional self-service profile fields. Nil means
// "leave unchanged".
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Password  *string
}

// AccountService describes account lifecycle operations.
type AccountService interface {
	Create(ctx context.Context, email, password, firstName, lastName string) (*domain.Account, error)
	CreateSuperuser(ctx context.Context, email, password, firstName, lastName string) (*domain.Account, error)
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	UpdateProfile(ctx context.Context, id int64, update ProfileUpdate) (*domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
}

type accountService struct {
	accounts repository.AccountRepository
}

func NewAccountService(accounts repository.AccountRepository) AccountService {
	return &accountService{accounts: accounts}
}

func (s *accountService) Create(ctx context.Context, email, password, firstName, lastName string) (*domain.Account, error) {
	return s.create(ctx, email, password, firstName, lastName, false)
}

func (s *accountService) CreateSuperuser(ctx context.Context, email, password, firstName, lastName string) (*domain.Account, error) {
	return s.create(ctx, email, password, firstName, lastName, true)
}

func (s *accountService) create(ctx context.Context, email, password, firstName, lastName string, superuser bool) (*domain.Account, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, NewValidationError("email", "email is required")
	}
	if password == "" {
		return nil, NewValidationError("password", "password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		Email:        NormalizeEmail(email),
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		PasswordHash: string(hash),
		IsActive:     true,
		IsStaff:      superuser,
		IsSuperuser:  superuser,
	}

	if _, err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, NewValidationError("email", "an account with this email already exists")
		}
		return nil, err
	}

	return account, nil
}

func (s *accountService) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	return s.accounts.GetByID(ctx, id)
}

func (s *accountService) UpdateProfile(ctx context.Context, id int64, update ProfileUpdate) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.FirstName != nil {
		account.FirstName = strings.TrimSpace(*update.FirstName)
	}
	if update.LastName != nil {
		account.LastName = strings.TrimSpace(*update.LastName)
	}
	if update.Password != nil {
		if *update.Password == "" {
			return nil, NewValidationError("password", "password is required")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		account.PasswordHash = string(hash)
	}

	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *accountService) List(ctx context.Context) ([]domain.Account, error) {
	return s.accounts.List(ctx)
}

// NormalizeEmail lowercases the domain part of an email address. The local
// part keeps its casing as supplied.
func NormalizeEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}
