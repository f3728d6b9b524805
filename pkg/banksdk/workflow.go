package banksdk

import (
	"context"
	"errors"
	"math"
	"sync"
)

// WorkflowState is the explicit state of a mutating workflow.
type WorkflowState string

const (
	StateIdle       WorkflowState = "idle"
	StateSubmitting WorkflowState = "submitting"
	StateSucceeded  WorkflowState = "succeeded"
	StateFailed     WorkflowState = "failed"
)

// ErrSubmitInFlight is returned when Submit is called while a previous
// submission on the same workflow instance has not completed. At most one
// mutation per workflow is ever in flight.
var ErrSubmitInFlight = errors.New("banksdk: a submission is already in flight")

// Outcome is the structured, displayable result of a workflow submission.
// Presentation is entirely the caller's concern.
type Outcome struct {
	// OK reports whether the mutation was accepted by the ledger.
	OK bool

	// Message is safe to show the user for both success and failure.
	Message string

	// Err carries the normalized failure when OK is false.
	Err *APIError

	// RefreshErr is set when the mutation succeeded but the triggered
	// dashboard refresh did not. The mutation outcome stands regardless.
	RefreshErr error
}

// workflow holds the state word shared by the three transaction workflows.
// Transitions: Idle -> Submitting -> Succeeded | Failed; Ack returns a
// terminal state to Idle. A submission refused by client-side validation
// leaves the state at Idle and never touches the network.
type workflow struct {
	mu    sync.Mutex
	state WorkflowState
}

// State returns the current workflow state.
func (w *workflow) State() WorkflowState {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == "" {
		return StateIdle
	}
	return w.state
}

// Ack observes a terminal state and returns the workflow to Idle. Calling it
// in any other state is a no-op.
func (w *workflow) Ack() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == StateSucceeded || w.state == StateFailed {
		w.state = StateIdle
	}
}

// start guards the transition into Submitting. The validate callback runs
// under the same lock as the in-flight check, so a refused submission and a
// concurrent one cannot interleave. It returns ErrSubmitInFlight when a
// submission is already running, or the validation error with the state left
// at Idle.
func (w *workflow) start(validate func() *APIError) (*APIError, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state == StateSubmitting {
		return nil, ErrSubmitInFlight
	}

	if apiErr := validate(); apiErr != nil {
		w.state = StateIdle
		return apiErr, nil
	}

	w.state = StateSubmitting
	return nil, nil
}

// finish records the terminal state of a submission.
func (w *workflow) finish(ok bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if ok {
		w.state = StateSucceeded
	} else {
		w.state = StateFailed
	}
}

// validAmount reports whether amount is a positive finite number. NaN fails
// the comparison on its own; +Inf needs the explicit check.
func validAmount(amount float64) bool {
	return amount > 0 && !math.IsInf(amount, 1)
}

// failed builds the Outcome for a rejected or failed submission.
func failed(apiErr *APIError) Outcome {
	return Outcome{OK: false, Message: apiErr.Message, Err: apiErr}
}

// succeeded builds the Outcome for an accepted mutation and triggers the
// dashboard refresh that keeps the read model consistent with server state.
// The refresh is issued only after the mutation has definitively succeeded.
func succeeded(ctx context.Context, dashboard *Dashboard, message string) Outcome {
	outcome := Outcome{OK: true, Message: message}
	if outcome.Message == "" {
		outcome.Message = "Done"
	}
	if dashboard != nil {
		outcome.RefreshErr = dashboard.Refresh(ctx)
	}
	return outcome
}
