package sqlite

import (
	"context"

	"github.com/kumbara-app/kumbara/internal/ledger/domain"
	"github.com/kumbara-app/kumbara/internal/ledger/store"
)

type accountsRepo struct {
	q dbtx
}

const accountColumns = `id, user_id, account_number, iban, account_type, currency, balance, created_at, is_active`

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO accounts (id, user_id, account_number, iban, account_type, currency, balance, created_at, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
	`, a.ID, a.UserID, a.AccountNumber, a.IBAN, a.AccountType, a.Currency, a.Balance, a.CreatedAt, a.Active)
	return err
}

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE id = ?;
	`, id)
	return scanAccount(row)
}

func (r *accountsRepo) GetAccountByIBAN(ctx context.Context, iban string) (domain.Account, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE iban = ?;
	`, iban)
	return scanAccount(row)
}

func (r *accountsRepo) ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE user_id = ?
		ORDER BY created_at ASC, id ASC;
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (r *accountsRepo) UpdateBalance(ctx context.Context, accountID string, newBalance float64) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE accounts SET balance = ? WHERE id = ?;
	`, newBalance, accountID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func scanAccount(row rowScanner) (domain.Account, error) {
	var a domain.Account
	err := row.Scan(&a.ID, &a.UserID, &a.AccountNumber, &a.IBAN, &a.AccountType, &a.Currency, &a.Balance, &a.CreatedAt, &a.Active)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return a, nil
}
