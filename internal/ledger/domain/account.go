package domain

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// Account types accepted on creation.
const (
	AccountChecking   = "checking"
	AccountSavings    = "savings"
	AccountInvestment = "investment"
)

// DefaultCurrency is applied when an account is opened without one.
const DefaultCurrency = "TRY"

// WelcomeBonus is credited to the checking account opened at registration.
const WelcomeBonus = 1000.0

type Account struct {
	ID            string
	UserID        string
	AccountNumber string
	IBAN          string
	AccountType   string
	Currency      string
	Balance       float64
	CreatedAt     time.Time
	Active        bool
}

// ValidAccountType reports whether t is an accepted account type.
func ValidAccountType(t string) bool {
	return t == AccountChecking || t == AccountSavings || t == AccountInvestment
}

// GenerateIBAN produces a Turkish-format display IBAN. The bank and branch
// codes are fixed and the check digits are not really computed; this ledger
// issues identifiers, it does not participate in real clearing.
func GenerateIBAN() string {
	return fmt.Sprintf("TR32 0001 0001 %011d", randBelow(100_000_000_000))
}

// GenerateAccountNumber produces a 10-digit account number.
func GenerateAccountNumber() string {
	return fmt.Sprintf("%010d", randBelow(10_000_000_000))
}

// randBelow returns a uniform random integer in [0, n).
func randBelow(n int64) int64 {
	v, err := rand.Int(rand.Reader, big.NewInt(n))
	if err != nil {
		// Only reachable when the platform entropy source is broken.
		panic(err)
	}
	return v.Int64()
}
