package domain

import (
	"fmt"
	"time"
)

// Card types and statuses.
const (
	CardDebit  = "debit"
	CardCredit = "credit"

	CardActive  = "active"
	CardBlocked = "blocked"
	CardExpired = "expired"
)

// CardValidity is how long a newly issued card is valid.
const CardValidity = 4 * 365 * 24 * time.Hour

type Card struct {
	ID         string
	AccountID  string
	CardNumber string // masked display form, never a full PAN
	CardType   string
	Limit      *float64
	Status     string
	CreatedAt  time.Time
	ExpiresAt  time.Time
}

// ValidCardType reports whether t is an accepted card type.
func ValidCardType(t string) bool {
	return t == CardDebit || t == CardCredit
}

// GenerateCardNumber produces the masked display form of a new card number.
// Only the last four digits are ever generated or stored.
func GenerateCardNumber() string {
	return fmt.Sprintf("4*** **** **** %04d", randBelow(10_000))
}
