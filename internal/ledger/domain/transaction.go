package domain

import "time"

// Transaction types.
const (
	TransactionDeposit  = "deposit"
	TransactionTransfer = "transfer"
	TransactionBill     = "bill_payment"
)

// Transaction statuses.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Transaction is an append-only ledger entry. From/To fields are nil when
// one leg is outside the ledger (deposits have no source, bill payments and
// transfers to unknown IBANs have no destination account).
type Transaction struct {
	ID            string
	FromAccountID *string
	ToAccountID   *string
	FromIBAN      *string
	ToIBAN        *string
	Amount        float64
	Type          string
	Description   string
	Category      string
	Status        string
	CreatedAt     time.Time
}

// BillTypes is the fixed set of payable bill categories.
var BillTypes = map[string]bool{
	"electricity": true,
	"gas":         true,
	"water":       true,
	"telecom":     true,
	"internet":    true,
}
