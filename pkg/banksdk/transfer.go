package banksdk

import (
	"context"
	"net/url"
	"strings"
)

// TransferInput is the mutable draft for a money transfer. Only presence and
// a positive amount are checked client-side; IBAN format, balance and
// ownership rules are enforced by the ledger and surfaced as failures.
type TransferInput struct {
	ToIBAN      string
	Amount      float64
	Description string
}

// TransferWorkflow drives a transfer out of the user's first account in the
// current dashboard snapshot. The source account is not selectable; that is
// a deliberate property of the current design.
type TransferWorkflow struct {
	workflow

	session   *Session
	dashboard *Dashboard
	input     TransferInput
}

// NewTransferWorkflow binds the workflow to a session and the dashboard that
// both supplies the source account and is refreshed after success.
func NewTransferWorkflow(session *Session, dashboard *Dashboard) *TransferWorkflow {
	return &TransferWorkflow{session: session, dashboard: dashboard}
}

// SetInput replaces the current draft.
func (w *TransferWorkflow) SetInput(input TransferInput) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.input = input
}

// Input returns the current draft.
func (w *TransferWorkflow) Input() TransferInput {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.input
}

// Submit validates the draft, posts the transfer against the first account
// of the current snapshot and triggers a dashboard refresh on success. A
// missing IBAN, description or non-positive amount is rejected before any
// network call. The returned error is non-nil only for ErrSubmitInFlight.
func (w *TransferWorkflow) Submit(ctx context.Context) (Outcome, error) {
	var (
		input     TransferInput
		accountID string
	)
	apiErr, err := w.start(func() *APIError {
		input = w.input
		if strings.TrimSpace(input.ToIBAN) == "" {
			return validationError("Destination IBAN is required")
		}
		if !validAmount(input.Amount) {
			return validationError("Amount must be positive")
		}
		if strings.TrimSpace(input.Description) == "" {
			return validationError("Description is required")
		}

		snapshot := w.dashboard.Snapshot()
		if snapshot == nil || len(snapshot.Accounts) == 0 {
			return validationError("No source account available, refresh the dashboard first")
		}
		accountID = snapshot.Accounts[0].ID
		return nil
	})
	if err != nil {
		return Outcome{}, err
	}
	if apiErr != nil {
		return failed(apiErr), nil
	}

	body := TransferRequest{
		ToIBAN:      strings.TrimSpace(input.ToIBAN),
		Amount:      input.Amount,
		Description: input.Description,
	}

	var resp TransferResponse
	path := "/accounts/" + url.PathEscape(accountID) + "/transfer"
	if apiErr := w.session.post(ctx, path, body, &resp); apiErr != nil {
		w.finish(false)
		return failed(apiErr), nil
	}

	w.mu.Lock()
	w.state = StateSucceeded
	w.input = TransferInput{}
	w.mu.Unlock()

	return succeeded(ctx, w.dashboard, resp.Message), nil
}
