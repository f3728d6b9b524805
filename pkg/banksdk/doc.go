// Package banksdk is the client for the Kumbara ledger service.
//
// It owns the authenticated session (login, register, logout, token
// persistence across restarts), the dashboard read model (a wholesale-replaced
// snapshot of accounts, recent transactions and cards) and the three mutating
// workflows: deposit, transfer and bill payment. A successful mutation
// triggers a dashboard refresh so the read model tracks committed server
// state; the ledger service remains the sole source of truth for balances.
//
// All failures are normalized into *APIError values carrying an error kind
// and a message suitable for direct display.
package banksdk
