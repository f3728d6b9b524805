package banksdk

import (
	"context"
	"net/url"
	"strings"
)

// BillPaymentInput is the mutable draft for a bill payment. The bill type
// must be one of BillTypes; everything else follows the transfer contract.
type BillPaymentInput struct {
	BillType      string
	Provider      string
	AccountNumber string
	Amount        float64
}

// BillPaymentWorkflow drives the payment of a utility bill from the user's
// first account in the current dashboard snapshot.
type BillPaymentWorkflow struct {
	workflow

	session   *Session
	dashboard *Dashboard
	input     BillPaymentInput
}

// NewBillPaymentWorkflow binds the workflow to a session and the dashboard
// it refreshes after a successful submission.
func NewBillPaymentWorkflow(session *Session, dashboard *Dashboard) *BillPaymentWorkflow {
	return &BillPaymentWorkflow{session: session, dashboard: dashboard}
}

// SetInput replaces the current draft.
func (w *BillPaymentWorkflow) SetInput(input BillPaymentInput) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.input = input
}

// Input returns the current draft.
func (w *BillPaymentWorkflow) Input() BillPaymentInput {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.input
}

// Submit validates the draft, posts the bill payment and triggers a
// dashboard refresh on success. An unknown bill type, missing field or
// non-positive amount is rejected before any network call. The returned
// error is non-nil only for ErrSubmitInFlight.
func (w *BillPaymentWorkflow) Submit(ctx context.Context) (Outcome, error) {
	var (
		input     BillPaymentInput
		accountID string
	)
	apiErr, err := w.start(func() *APIError {
		input = w.input
		if !ValidBillType(input.BillType) {
			return validationError("Unknown bill type")
		}
		if strings.TrimSpace(input.Provider) == "" {
			return validationError("Provider is required")
		}
		if strings.TrimSpace(input.AccountNumber) == "" {
			return validationError("Subscriber account number is required")
		}
		if !validAmount(input.Amount) {
			return validationError("Amount must be positive")
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

	body := BillPaymentRequest{
		BillType:      input.BillType,
		Provider:      strings.TrimSpace(input.Provider),
		AccountNumber: strings.TrimSpace(input.AccountNumber),
		Amount:        input.Amount,
	}

	var resp BillPaymentResponse
	path := "/accounts/" + url.PathEscape(accountID) + "/pay-bill"
	if apiErr := w.session.post(ctx, path, body, &resp); apiErr != nil {
		w.finish(false)
		return failed(apiErr), nil
	}

	w.mu.Lock()
	w.state = StateSucceeded
	w.input = BillPaymentInput{}
	w.mu.Unlock()

	return succeeded(ctx, w.dashboard, resp.Message), nil
}
