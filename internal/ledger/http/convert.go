package http

import (
	"github.com/kumbara-app/kumbara/internal/ledger/domain"
	"github.com/kumbara-app/kumbara/internal/ledger/service"
	"github.com/kumbara-app/kumbara/pkg/banksdk"
)

// Converters from domain entities to the SDK wire types. Responses always
// return non-nil slices so clients see [] rather than null.

func toProfile(u domain.User) banksdk.UserProfile {
	return banksdk.UserProfile{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
	}
}

func toAccount(a domain.Account) banksdk.Account {
	return banksdk.Account{
		ID:            a.ID,
		UserID:        a.UserID,
		AccountNumber: a.AccountNumber,
		IBAN:          a.IBAN,
		AccountType:   a.AccountType,
		Currency:      a.Currency,
		Balance:       a.Balance,
		CreatedAt:     a.CreatedAt,
		Active:        a.Active,
	}
}

func toAccounts(accounts []domain.Account) []banksdk.Account {
	out := make([]banksdk.Account, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toAccount(a))
	}
	return out
}

func toTransaction(t domain.Transaction) banksdk.Transaction {
	return banksdk.Transaction{
		ID:            t.ID,
		FromAccountID: t.FromAccountID,
		ToAccountID:   t.ToAccountID,
		FromIBAN:      t.FromIBAN,
		ToIBAN:        t.ToIBAN,
		Amount:        t.Amount,
		Type:          t.Type,
		Description:   t.Description,
		Category:      t.Category,
		Status:        t.Status,
		CreatedAt:     t.CreatedAt,
	}
}

func toTransactions(transactions []domain.Transaction) []banksdk.Transaction {
	out := make([]banksdk.Transaction, 0, len(transactions))
	for _, t := range transactions {
		out = append(out, toTransaction(t))
	}
	return out
}

func toCard(c domain.Card) banksdk.Card {
	return banksdk.Card{
		ID:         c.ID,
		AccountID:  c.AccountID,
		CardNumber: c.CardNumber,
		CardType:   c.CardType,
		Limit:      c.Limit,
		Status:     c.Status,
		CreatedAt:  c.CreatedAt,
		ExpiresAt:  c.ExpiresAt,
	}
}

func toCards(cards []domain.Card) []banksdk.Card {
	out := make([]banksdk.Card, 0, len(cards))
	for _, c := range cards {
		out = append(out, toCard(c))
	}
	return out
}

func toSnapshot(d service.DashboardData) banksdk.Snapshot {
	return banksdk.Snapshot{
		TotalBalance:       d.TotalBalance,
		Accounts:           toAccounts(d.Accounts),
		RecentTransactions: toTransactions(d.RecentTransactions),
		Cards:              toCards(d.Cards),
	}
}
