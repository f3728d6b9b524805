package banksdk

import (
	"context"
	"net/http"
	"sync"
)

// Dashboard aggregates accounts, recent transactions, cards and the total
// balance into the single read model every view renders from.
type Dashboard struct {
	session *Session

	mu       sync.RWMutex
	snapshot *Snapshot
}

// NewDashboard binds a dashboard aggregator to an authenticated session.
func NewDashboard(session *Session) *Dashboard {
	return &Dashboard{session: session}
}

// Fetch issues one read for the full snapshot and replaces the held snapshot
// atomically on success. On failure the previous snapshot stays visible and
// the error is returned for display; the view is never cleared to an empty
// state by a failed fetch.
func (d *Dashboard) Fetch(ctx context.Context) error {
	resp, apiErr := d.session.client.do(ctx, http.MethodGet, "/dashboard", nil, d.session.Token())
	if apiErr != nil {
		return apiErr
	}

	var snapshot Snapshot
	if apiErr := decodeJSON(resp, &snapshot); apiErr != nil {
		return apiErr
	}

	d.mu.Lock()
	d.snapshot = &snapshot
	d.mu.Unlock()
	return nil
}

// Refresh is semantically identical to Fetch. It is invoked automatically
// after every successful mutating workflow, giving read-after-write
// consistency as of the most recent successful fetch. Concurrent refreshes
// are independent requests; the last response to arrive wins.
func (d *Dashboard) Refresh(ctx context.Context) error {
	return d.Fetch(ctx)
}

// Snapshot returns the last successfully fetched snapshot, or nil before the
// first fetch. The returned value is never mutated after publication.
func (d *Dashboard) Snapshot() *Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.snapshot
}
