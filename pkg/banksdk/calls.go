package banksdk

import (
	"context"
	"net/url"
)

// Account, transaction and card reads outside the dashboard aggregate, plus
// the account and card creation calls. All require an authenticated session.

// Accounts lists the user's active accounts.
func (s *Session) Accounts(ctx context.Context) ([]Account, error) {
	var accounts []Account
	if apiErr := s.get(ctx, "/accounts", &accounts); apiErr != nil {
		return nil, apiErr
	}
	return accounts, nil
}

// CreateAccount opens an additional account with a zero balance.
func (s *Session) CreateAccount(ctx context.Context, accountType, currency string) (*Account, error) {
	body := CreateAccountRequest{AccountType: accountType, Currency: currency}

	var account Account
	if apiErr := s.post(ctx, "/accounts", body, &account); apiErr != nil {
		return nil, apiErr
	}
	return &account, nil
}

// AccountBalance reads a single account's balance.
func (s *Session) AccountBalance(ctx context.Context, accountID string) (*BalanceResponse, error) {
	var balance BalanceResponse
	path := "/accounts/" + url.PathEscape(accountID) + "/balance"
	if apiErr := s.get(ctx, path, &balance); apiErr != nil {
		return nil, apiErr
	}
	return &balance, nil
}

// Transactions lists the transactions touching an account, most recent
// first.
func (s *Session) Transactions(ctx context.Context, accountID string) ([]Transaction, error) {
	var transactions []Transaction
	path := "/accounts/" + url.PathEscape(accountID) + "/transactions"
	if apiErr := s.get(ctx, path, &transactions); apiErr != nil {
		return nil, apiErr
	}
	return transactions, nil
}

// Cards lists the cards issued across the user's accounts.
func (s *Session) Cards(ctx context.Context) ([]Card, error) {
	var cards []Card
	if apiErr := s.get(ctx, "/cards", &cards); apiErr != nil {
		return nil, apiErr
	}
	return cards, nil
}

// CreateCard issues a new card for one of the user's accounts. limit may be
// nil for debit cards.
func (s *Session) CreateCard(ctx context.Context, accountID, cardType string, limit *float64) (*Card, error) {
	body := CreateCardRequest{AccountID: accountID, CardType: cardType, Limit: limit}

	var card Card
	if apiErr := s.post(ctx, "/cards", body, &card); apiErr != nil {
		return nil, apiErr
	}
	return &card, nil
}
