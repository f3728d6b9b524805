package banksdk

import "time"

// UserProfile is the immutable profile snapshot returned at login or
// register time. It is not refreshed independently.
type UserProfile struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone,omitempty"`
}

// Account is a read-only copy of a ledger account. It becomes stale
// immediately after any mutating call until the next dashboard fetch.
type Account struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	AccountNumber string    `json:"account_number"`
	IBAN          string    `json:"iban"`
	AccountType   string    `json:"account_type"`
	Currency      string    `json:"currency"`
	Balance       float64   `json:"balance"`
	CreatedAt     time.Time `json:"created_at"`
	Active        bool      `json:"is_active"`
}

// Transaction statuses and types as the ledger reports them.
const (
	TransactionDeposit  = "deposit"
	TransactionTransfer = "transfer"
	TransactionBill     = "bill_payment"

	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Transaction is append-only from the client's perspective.
type Transaction struct {
	ID            string    `json:"id"`
	FromAccountID *string   `json:"from_account_id"`
	ToAccountID   *string   `json:"to_account_id"`
	FromIBAN      *string   `json:"from_iban"`
	ToIBAN        *string   `json:"to_iban"`
	Amount        float64   `json:"amount"`
	Type          string    `json:"transaction_type"`
	Description   string    `json:"description"`
	Category      string    `json:"category,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// Card carries the masked display form of the card number only; the ledger
// never exposes full PANs.
type Card struct {
	ID         string    `json:"id"`
	AccountID  string    `json:"account_id"`
	CardNumber string    `json:"card_number"`
	CardType   string    `json:"card_type"`
	Limit      *float64  `json:"limit"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// Snapshot is the complete dashboard read model. It is replaced wholesale on
// every successful fetch, never merged field by field, so the view can never
// observe a mix of two fetches.
type Snapshot struct {
	TotalBalance       float64       `json:"total_balance"`
	Accounts           []Account     `json:"accounts"`
	RecentTransactions []Transaction `json:"recent_transactions"`
	Cards              []Card        `json:"cards"`
}

// AuthResponse is the body of successful login and register calls.
type AuthResponse struct {
	Message string      `json:"message,omitempty"`
	Token   string      `json:"token"`
	User    UserProfile `json:"user"`
}

// RegisterInput is the registration payload. Email, Password, FirstName and
// LastName are required; Phone is carried along when present.
type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// BalanceResponse is the body of GET /accounts/{id}/balance.
type BalanceResponse struct {
	Balance  float64 `json:"balance"`
	Currency string  `json:"currency"`
}

// TransferRequest is the body of POST /accounts/{id}/transfer.
type TransferRequest struct {
	ToIBAN      string  `json:"to_iban"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

// TransferResponse reports the outcome of a transfer submission.
type TransferResponse struct {
	Message       string `json:"message"`
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
}

// BillPaymentRequest is the body of POST /accounts/{id}/pay-bill.
type BillPaymentRequest struct {
	BillType      string  `json:"bill_type"`
	Provider      string  `json:"provider"`
	AccountNumber string  `json:"account_number"`
	Amount        float64 `json:"amount"`
}

// BillPaymentResponse reports the outcome of a bill payment submission.
type BillPaymentResponse struct {
	Message       string  `json:"message"`
	TransactionID string  `json:"transaction_id"`
	NewBalance    float64 `json:"new_balance"`
}

// DepositResponse reports the outcome of a deposit submission.
type DepositResponse struct {
	Message    string  `json:"message"`
	NewBalance float64 `json:"new_balance"`
}

// CreateAccountRequest is the body of POST /accounts.
type CreateAccountRequest struct {
	AccountType string `json:"account_type"`
	Currency    string `json:"currency"`
}

// CreateCardRequest is the body of POST /cards.
type CreateCardRequest struct {
	AccountID string   `json:"account_id"`
	CardType  string   `json:"card_type"`
	Limit     *float64 `json:"limit,omitempty"`
}

// HealthResponse is the body of GET /livez.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime,omitempty"`
	Version string `json:"version,omitempty"`
}

// BillTypes is the fixed set of bill categories the ledger accepts.
var BillTypes = []string{"electricity", "gas", "water", "telecom", "internet"}

// ValidBillType reports whether t is one of the enumerated bill types.
func ValidBillType(t string) bool {
	for _, known := range BillTypes {
		if t == known {
			return true
		}
	}
	return false
}
