// Package domain holds the ledger's core entities: users, accounts,
// transactions and cards.
package domain

import "time"

type User struct {
	ID           string
	Email        string
	PasswordHash string // argon2id encoded
	FirstName    string
	LastName     string
	Phone        string
	CreatedAt    time.Time
	Active       bool
}
