package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/kumbara-app/kumbara/internal/ledger/domain"
	"github.com/kumbara-app/kumbara/internal/ledger/store"
	"github.com/kumbara-app/kumbara/pkg/idx"
	"github.com/kumbara-app/kumbara/pkg/slogx"
)

var (
	ErrAmountNotPositive = errors.New("invalid_amount")
	ErrInsufficientFunds = errors.New("insufficient_funds")
	ErrInvalidBillType   = errors.New("invalid_bill_type")
)

// defaultTransactionLimit caps per-account transaction listings.
const defaultTransactionLimit = 50

// validAmount reports whether amount is a positive finite number. ParseFloat
// accepts "Inf" and "NaN", and both slip past a plain <= 0 check; an infinite
// balance would satisfy every later sufficiency check.
func validAmount(amount float64) bool {
	return amount > 0 && !math.IsInf(amount, 1)
}

type TransferResult struct {
	Transaction domain.Transaction
	NewBalance  float64
}

type TransactionService struct {
	Store store.Store
}

// Deposit credits the account and records a completed deposit entry. It
// returns the new balance.
func (s *TransactionService) Deposit(ctx context.Context, userID, accountID string, amount float64) (float64, error) {
	if !validAmount(amount) {
		return 0, ErrAmountNotPositive
	}

	var newBalance float64
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		account, err := ownedAccount(ctx, tx, userID, accountID)
		if err != nil {
			return err
		}

		newBalance = account.Balance + amount
		if err := tx.Accounts().UpdateBalance(ctx, account.ID, newBalance); err != nil {
			return err
		}

		entry := domain.Transaction{
			ID:          idx.New().String(),
			ToAccountID: &account.ID,
			ToIBAN:      &account.IBAN,
			Amount:      amount,
			Type:        domain.TransactionDeposit,
			Description: "Account deposit",
			Category:    "deposit",
			Status:      domain.StatusCompleted,
			CreatedAt:   time.Now(),
		}
		return tx.Transactions().CreateTransaction(ctx, entry)
	})
	if err != nil {
		return 0, err
	}

	slogx.FromContext(ctx).Info("deposit completed",
		slog.String("account_id", accountID),
		slog.Float64("amount", amount))
	return newBalance, nil
}

// Transfer debits the source account and credits the destination when its
// IBAN belongs to this ledger. Transfers to unknown IBANs are recorded as
// pending; the debit still applies.
func (s *TransactionService) Transfer(ctx context.Context, userID, accountID, toIBAN string, amount float64, description string) (TransferResult, error) {
	if !validAmount(amount) {
		return TransferResult{}, ErrAmountNotPositive
	}
	toIBAN = strings.TrimSpace(toIBAN)

	var result TransferResult
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		source, err := ownedAccount(ctx, tx, userID, accountID)
		if err != nil {
			return err
		}
		if source.Balance < amount {
			return ErrInsufficientFunds
		}

		result.NewBalance = source.Balance - amount
		if err := tx.Accounts().UpdateBalance(ctx, source.ID, result.NewBalance); err != nil {
			return err
		}

		entry := domain.Transaction{
			ID:            idx.New().String(),
			FromAccountID: &source.ID,
			FromIBAN:      &source.IBAN,
			ToIBAN:        &toIBAN,
			Amount:        amount,
			Type:          domain.TransactionTransfer,
			Description:   description,
			Category:      "transfer",
			Status:        domain.StatusPending,
			CreatedAt:     time.Now(),
		}

		dest, err := tx.Accounts().GetAccountByIBAN(ctx, toIBAN)
		switch {
		case err == nil:
			if err := tx.Accounts().UpdateBalance(ctx, dest.ID, dest.Balance+amount); err != nil {
				return err
			}
			entry.ToAccountID = &dest.ID
			entry.Status = domain.StatusCompleted
		case errors.Is(err, store.ErrNotFound):
			// Destination is outside this ledger; the entry stays pending.
		default:
			return err
		}

		if err := tx.Transactions().CreateTransaction(ctx, entry); err != nil {
			return err
		}
		result.Transaction = entry
		return nil
	})
	if err != nil {
		return TransferResult{}, err
	}

	slogx.FromContext(ctx).Info("transfer submitted",
		slog.String("account_id", accountID),
		slog.String("status", result.Transaction.Status),
		slog.Float64("amount", amount))
	return result, nil
}

// PayBill debits the account and records a completed bill payment entry.
// billAccountNumber is the provider-side subscriber number; it is part of the
// request contract but is not persisted with the entry.
func (s *TransactionService) PayBill(ctx context.Context, userID, accountID, billType, provider, billAccountNumber string, amount float64) (TransferResult, error) {
	if !domain.BillTypes[billType] {
		return TransferResult{}, ErrInvalidBillType
	}
	if !validAmount(amount) {
		return TransferResult{}, ErrAmountNotPositive
	}

	var result TransferResult
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		account, err := ownedAccount(ctx, tx, userID, accountID)
		if err != nil {
			return err
		}
		if account.Balance < amount {
			return ErrInsufficientFunds
		}

		result.NewBalance = account.Balance - amount
		if err := tx.Accounts().UpdateBalance(ctx, account.ID, result.NewBalance); err != nil {
			return err
		}

		entry := domain.Transaction{
			ID:            idx.New().String(),
			FromAccountID: &account.ID,
			FromIBAN:      &account.IBAN,
			Amount:        amount,
			Type:          domain.TransactionBill,
			Description:   fmt.Sprintf("%s bill payment to %s", billType, provider),
			Category:      billType,
			Status:        domain.StatusCompleted,
			CreatedAt:     time.Now(),
		}
		if err := tx.Transactions().CreateTransaction(ctx, entry); err != nil {
			return err
		}
		result.Transaction = entry
		return nil
	})
	if err != nil {
		return TransferResult{}, err
	}

	slogx.FromContext(ctx).Info("bill paid",
		slog.String("account_id", accountID),
		slog.String("bill_type", billType),
		slog.Float64("amount", amount))
	return result, nil
}

// ListForAccount returns the account's most recent transactions.
func (s *TransactionService) ListForAccount(ctx context.Context, userID, accountID string) ([]domain.Transaction, error) {
	if _, err := ownedAccount(ctx, s.Store, userID, accountID); err != nil {
		return nil, err
	}
	return s.Store.Transactions().ListTransactionsByAccount(ctx, accountID, defaultTransactionLimit)
}

// repos is the read surface shared by Store and Tx.
type repos interface {
	Accounts() store.Accounts
}

func ownedAccount(ctx context.Context, r repos, userID, accountID string) (domain.Account, error) {
	account, err := r.Accounts().GetAccountByID(ctx, accountID)
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
