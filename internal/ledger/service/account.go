package service

import (
	"context"
	"errors"
	"time"

	"github.com/kumbara-app/kumbara/internal/ledger/domain"
	"github.com/kumbara-app/kumbara/internal/ledger/store"
	"github.com/kumbara-app/kumbara/pkg/idx"
)

var (
	ErrAccountNotFound    = errors.New("account_not_found")
	ErrInvalidAccountType = errors.New("invalid_account_type")
)

type AccountService struct {
	Store store.Store
}

// CreateAccount opens a new account for the user. Currency defaults when
// empty.
func (s *AccountService) CreateAccount(ctx context.Context, userID, accountType, currency string) (domain.Account, error) {
	if !domain.ValidAccountType(accountType) {
		return domain.Account{}, ErrInvalidAccountType
	}
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	account := domain.Account{
		ID:            idx.New().String(),
		UserID:        userID,
		AccountNumber: domain.GenerateAccountNumber(),
		IBAN:          domain.GenerateIBAN(),
		AccountType:   accountType,
		Currency:      currency,
		Balance:       0,
		CreatedAt:     time.Now(),
		Active:        true,
	}

	if err := s.Store.Accounts().CreateAccount(ctx, account); err != nil {
		return domain.Account{}, err
	}
	return account, nil
}

// ListAccounts returns the user's accounts, oldest first.
func (s *AccountService) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	return s.Store.Accounts().ListAccountsByUser(ctx, userID)
}

// GetOwnedAccount fetches an account and verifies it belongs to the user.
// Accounts owned by someone else are reported as not found.
func (s *AccountService) GetOwnedAccount(ctx context.Context, userID, accountID string) (domain.Account, error) {
	account, err := s.Store.Accounts().GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, ErrAccountNotFound
		}
		return domain.Account{}, err
	}
	if account.UserID != userID {
		return domain.Account{}, ErrAccountNotFound
	}
	return account, nil
}
