package service

import (
	"context"

	"github.com/kumbara-app/kumbara/internal/ledger/domain"
	"github.com/kumbara-app/kumbara/internal/ledger/store"
)

// recentTransactionLimit is how many entries the dashboard shows.
const recentTransactionLimit = 10

// DashboardData is the aggregated read model behind GET /dashboard.
type DashboardData struct {
	TotalBalance       float64
	Accounts           []domain.Account
	RecentTransactions []domain.Transaction
	Cards              []domain.Card
}

type DashboardService struct {
	Store store.Store
}

// Dashboard aggregates the user's accounts, their combined balance, the most
// recent transactions across all accounts, and every issued card.
func (s *DashboardService) Dashboard(ctx context.Context, userID string) (DashboardData, error) {
	accounts, err := s.Store.Accounts().ListAccountsByUser(ctx, userID)
	if err != nil {
		return DashboardData{}, err
	}

	var total float64
	ids := make([]string, 0, len(accounts))
	for _, a := range accounts {
		total += a.Balance
		ids = append(ids, a.ID)
	}

	recent, err := s.Store.Transactions().ListRecentTransactions(ctx, ids, recentTransactionLimit)
	if err != nil {
		return DashboardData{}, err
	}

	cards, err := s.Store.Cards().ListCardsByAccounts(ctx, ids)
	if err != nil {
		return DashboardData{}, err
	}

	return DashboardData{
		TotalBalance:       total,
		Accounts:           accounts,
		RecentTransactions: recent,
		Cards:              cards,
	}, nil
}
