package banksdk

import (
	"context"
	"net/url"
	"strconv"
)

// DepositInput is the mutable draft for a deposit. It is reset after a
// successful submission and preserved on failure so the user can correct and
// resubmit.
type DepositInput struct {
	AccountID string
	Amount    float64
}

// DepositWorkflow drives the deposit of an amount into one of the user's
// accounts.
type DepositWorkflow struct {
	workflow

	session   *Session
	dashboard *Dashboard
	input     DepositInput
}

// NewDepositWorkflow binds the workflow to a session and the dashboard it
// refreshes after a successful submission.
func NewDepositWorkflow(session *Session, dashboard *Dashboard) *DepositWorkflow {
	return &DepositWorkflow{session: session, dashboard: dashboard}
}

// SetInput replaces the current draft.
func (w *DepositWorkflow) SetInput(input DepositInput) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.input = input
}

// Input returns the current draft.
func (w *DepositWorkflow) Input() DepositInput {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.input
}

// Submit validates the draft, posts the deposit and triggers a dashboard
// refresh on success. A non-positive amount or missing account is rejected
// before any network call, with the state staying Idle. The returned error
// is non-nil only for ErrSubmitInFlight.
func (w *DepositWorkflow) Submit(ctx context.Context) (Outcome, error) {
	var input DepositInput
	apiErr, err := w.start(func() *APIError {
		input = w.input
		if input.AccountID == "" {
			return validationError("Select an account to deposit into")
		}
		if !validAmount(input.Amount) {
			return validationError("Amount must be positive")
		}
		return nil
	})
	if err != nil {
		return Outcome{}, err
	}
	if apiErr != nil {
		return failed(apiErr), nil
	}

	path := "/accounts/" + url.PathEscape(input.AccountID) + "/deposit?amount=" +
		strconv.FormatFloat(input.Amount, 'f', -1, 64)

	var resp DepositResponse
	if apiErr := w.session.post(ctx, path, nil, &resp); apiErr != nil {
		w.finish(false)
		return failed(apiErr), nil
	}

	w.mu.Lock()
	w.state = StateSucceeded
	w.input = DepositInput{}
	w.mu.Unlock()

	return succeeded(ctx, w.dashboard, resp.Message), nil
}
