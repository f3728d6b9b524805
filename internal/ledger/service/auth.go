package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/kumbara-app/kumbara/internal/ledger/domain"
	"github.com/kumbara-app/kumbara/internal/ledger/store"
	"github.com/kumbara-app/kumbara/pkg/cryptox"
	"github.com/kumbara-app/kumbara/pkg/idx"
	"github.com/kumbara-app/kumbara/pkg/slogx"
)

var (
	ErrEmailRegistered    = errors.New("email_registered")
	ErrInvalidCredentials = errors.New("invalid_credentials")
)

type RegisterParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

type AuthService struct {
	Store  store.Store
	Tokens *TokenService
}

// Register creates a new user with a welcome checking account and returns
// the user together with a freshly minted token.
func (s *AuthService) Register(ctx context.Context, p RegisterParams) (domain.User, string, error) {
	l := slogx.FromContext(ctx)
	now := time.Now()

	email := strings.ToLower(strings.TrimSpace(p.Email))

	if _, err := s.Store.Users().GetUserByEmail(ctx, email); err == nil {
		return domain.User{}, "", ErrEmailRegistered
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, "", err
	}

	hash, err := cryptox.HashPassword(p.Password)
	if err != nil {
		return domain.User{}, "", err
	}

	user := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(p.FirstName),
		LastName:     strings.TrimSpace(p.LastName),
		Phone:        strings.TrimSpace(p.Phone),
		CreatedAt:    now,
		Active:       true,
	}

	welcome := domain.Account{
		ID:            idx.New().String(),
		UserID:        user.ID,
		AccountNumber: domain.GenerateAccountNumber(),
		IBAN:          domain.GenerateIBAN(),
		AccountType:   domain.AccountChecking,
		Currency:      domain.DefaultCurrency,
		Balance:       domain.WelcomeBonus,
		CreatedAt:     now,
		Active:        true,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			return err
		}
		return tx.Accounts().CreateAccount(ctx, welcome)
	})
	if err != nil {
		return domain.User{}, "", err
	}

	token, err := s.Tokens.Mint(user.ID)
	if err != nil {
		return domain.User{}, "", err
	}

	l.Info("user registered", slog.String("user_id", user.ID))
	return user, token, nil
}

// Login verifies the credentials and mints a token.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	l := slogx.FromContext(ctx)

	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, "", ErrInvalidCredentials
		}
		return domain.User{}, "", err
	}
	if !user.Active {
		return domain.User{}, "", ErrInvalidCredentials
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		l.Info("login failed", slog.String("user_id", user.ID))
		return domain.User{}, "", ErrInvalidCredentials
	}

	token, err := s.Tokens.Mint(user.ID)
	if err != nil {
		return domain.User{}, "", err
	}

	return user, token, nil
}

// GetUserByID fetches a user by id.
func (s *AuthService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}
