package sqlite

import (
	"context"

	"github.com/kumbara-app/kumbara/internal/ledger/domain"
)

type usersRepo struct {
	q dbtx
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, first_name, last_name, phone, created_at, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?);
	`, u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Phone, u.CreatedAt, u.Active)
	return err
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT id, email, password_hash, first_name, last_name, phone, created_at, is_active
		FROM users
		WHERE id = ?;
	`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT id, email, password_hash, first_name, last_name, phone, created_at, is_active
		FROM users
		WHERE email = ?;
	`, email)
	return scanUser(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Phone, &u.CreatedAt, &u.Active)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}
