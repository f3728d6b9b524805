package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/kumbara-app/kumbara/internal/ledger/domain"
)

type cardsRepo struct {
	q dbtx
}

func (r *cardsRepo) CreateCard(ctx context.Context, c domain.Card) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO cards (id, account_id, card_number, card_type, card_limit, status, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?);
	`, c.ID, c.AccountID, c.CardNumber, c.CardType, mapOptionalFloat(c.Limit), c.Status, c.CreatedAt, c.ExpiresAt)
	return err
}

func (r *cardsRepo) ListCardsByAccounts(ctx context.Context, accountIDs []string) ([]domain.Card, error) {
	if len(accountIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(accountIDs)), ", ")
	args := make([]any, 0, len(accountIDs))
	for _, id := range accountIDs {
		args = append(args, id)
	}

	rows, err := r.q.QueryContext(ctx, `
		SELECT id, account_id, card_number, card_type, card_limit, status, created_at, expires_at
		FROM cards
		WHERE account_id IN (`+placeholders+`)
		ORDER BY created_at ASC, id ASC;
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []domain.Card
	for rows.Next() {
		var (
			c     domain.Card
			limit sql.NullFloat64
		)
		err := rows.Scan(&c.ID, &c.AccountID, &c.CardNumber, &c.CardType, &limit, &c.Status, &c.CreatedAt, &c.ExpiresAt)
		if err != nil {
			return nil, err
		}
		c.Limit = mapNullFloatPtr(limit)
		cards = append(cards, c)
	}
	return cards, rows.Err()
}
