package service

import (
	"context"
	"errors"
	"time"

	"github.com/kumbara-app/kumbara/internal/ledger/domain"
	"github.com/kumbara-app/kumbara/internal/ledger/store"
	"github.com/kumbara-app/kumbara/pkg/idx"
)

var ErrInvalidCardType = errors.New("invalid_card_type")

type CardService struct {
	Store store.Store
}

// CreateCard issues a card against one of the user's accounts.
func (s *CardService) CreateCard(ctx context.Context, userID, accountID, cardType string, limit *float64) (domain.Card, error) {
	if !domain.ValidCardType(cardType) {
		return domain.Card{}, ErrInvalidCardType
	}

	account, err := ownedAccount(ctx, s.Store, userID, accountID)
	if err != nil {
		return domain.Card{}, err
	}

	now := time.Now()
	card := domain.Card{
		ID:         idx.New().String(),
		AccountID:  account.ID,
		CardNumber: domain.GenerateCardNumber(),
		CardType:   cardType,
		Limit:      limit,
		Status:     domain.CardActive,
		CreatedAt:  now,
		ExpiresAt:  now.Add(domain.CardValidity),
	}

	if err := s.Store.Cards().CreateCard(ctx, card); err != nil {
		return domain.Card{}, err
	}
	return card, nil
}

// ListCards returns every card issued against the user's accounts.
func (s *CardService) ListCards(ctx context.Context, userID string) ([]domain.Card, error) {
	accounts, err := s.Store.Accounts().ListAccountsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(accounts))
	for _, a := range accounts {
		ids = append(ids, a.ID)
	}
	return s.Store.Cards().ListCardsByAccounts(ctx, ids)
}
