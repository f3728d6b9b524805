// Package store defines the persistence interfaces the ledger services
// depend on. Drivers live under store/drivers.
package store

import (
	"context"
	"errors"

	"github.com/kumbara-app/kumbara/internal/ledger/domain"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("store: not found")

// Store is the root persistence interface.
type Store interface {
	Users() Users
	Accounts() Accounts
	Transactions() Transactions
	Cards() Cards

	// WithTx executes fn within a transaction, committing on nil and
	// rolling back otherwise. Balance-mutating operations go through it.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Ping(ctx context.Context) error
	Close() error
}

// Tx is a transaction-scoped view of the repositories.
type Tx interface {
	Users() Users
	Accounts() Accounts
	Transactions() Transactions
	Cards() Cards

	Commit() error
	Rollback() error
}

type Users interface {
	CreateUser(ctx context.Context, u domain.User) error
	GetUserByID(ctx context.Context, id string) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
}

type Accounts interface {
	CreateAccount(ctx context.Context, a domain.Account) error
	GetAccountByID(ctx context.Context, id string) (domain.Account, error)
	GetAccountByIBAN(ctx context.Context, iban string) (domain.Account, error)
	ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error)
	UpdateBalance(ctx context.Context, accountID string, newBalance float64) error
}

type Transactions interface {
	CreateTransaction(ctx context.Context, t domain.Transaction) error
	// ListTransactionsByAccount returns transactions where the account is
	// either leg, most recent first, capped at limit.
	ListTransactionsByAccount(ctx context.Context, accountID string, limit int) ([]domain.Transaction, error)
	// ListRecentTransactions returns the most recent transactions across
	// any of the given accounts.
	ListRecentTransactions(ctx context.Context, accountIDs []string, limit int) ([]domain.Transaction, error)
}

type Cards interface {
	CreateCard(ctx context.Context, c domain.Card) error
	ListCardsByAccounts(ctx context.Context, accountIDs []string) ([]domain.Card, error)
}
