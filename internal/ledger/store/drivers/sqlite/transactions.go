package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/kumbara-app/kumbara/internal/ledger/domain"
)

type transactionsRepo struct {
	q dbtx
}

const transactionColumns = `id, from_account_id, to_account_id, from_iban, to_iban, amount, transaction_type, description, category, status, created_at`

func (r *transactionsRepo) CreateTransaction(ctx context.Context, t domain.Transaction) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO transactions (id, from_account_id, to_account_id, from_iban, to_iban, amount, transaction_type, description, category, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`,
		t.ID,
		mapOptionalString(t.FromAccountID),
		mapOptionalString(t.ToAccountID),
		mapOptionalString(t.FromIBAN),
		mapOptionalString(t.ToIBAN),
		t.Amount, t.Type, t.Description, t.Category, t.Status, t.CreatedAt,
	)
	return err
}

func (r *transactionsRepo) ListTransactionsByAccount(ctx context.Context, accountID string, limit int) ([]domain.Transaction, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE from_account_id = ? OR to_account_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?;
	`, accountID, accountID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func (r *transactionsRepo) ListRecentTransactions(ctx context.Context, accountIDs []string, limit int) ([]domain.Transaction, error) {
	if len(accountIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(accountIDs)), ", ")
	args := make([]any, 0, 2*len(accountIDs)+1)
	for _, id := range accountIDs {
		args = append(args, id)
	}
	for _, id := range accountIDs {
		args = append(args, id)
	}
	args = append(args, limit)

	rows, err := r.q.QueryContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE from_account_id IN (`+placeholders+`) OR to_account_id IN (`+placeholders+`)
		ORDER BY created_at DESC, id DESC
		LIMIT ?;
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func scanTransactions(rows *sql.Rows) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for rows.Next() {
		var (
			t                              domain.Transaction
			fromID, toID, fromIBAN, toIBAN sql.NullString
		)
		err := rows.Scan(&t.ID, &fromID, &toID, &fromIBAN, &toIBAN, &t.Amount, &t.Type, &t.Description, &t.Category, &t.Status, &t.CreatedAt)
		if err != nil {
			return nil, err
		}
		t.FromAccountID = mapNullStringPtr(fromID)
		t.ToAccountID = mapNullStringPtr(toID)
		t.FromIBAN = mapNullStringPtr(fromIBAN)
		t.ToIBAN = mapNullStringPtr(toIBAN)
		out = append(out, t)
	}
	return out, rows.Err()
}
