package http

import (
	"encoding/json"
	"net/http"

	"github.com/kumbara-app/kumbara/internal/ledger/service"
	"github.com/kumbara-app/kumbara/pkg/banksdk"
	"github.com/kumbara-app/kumbara/pkg/httpx"
)

type AccountsHandler struct {
	AccountService *service.AccountService
}

// HandleList returns the authenticated user's accounts.
func (h *AccountsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromContext(ctx)

	accounts, err := h.AccountService.ListAccounts(ctx, userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, toAccounts(accounts))
}

// HandleCreate opens a new account for the authenticated user.
func (h *AccountsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromContext(ctx)

	var req banksdk.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		banksdk.ErrInvalidRequest.WriteError(w)
		return
	}

	account, err := h.AccountService.CreateAccount(ctx, userID, req.AccountType, req.Currency)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusCreated, toAccount(account))
}

// HandleBalance returns the balance of one owned account.
func (h *AccountsHandler) HandleBalance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromContext(ctx)

	account, err := h.AccountService.GetOwnedAccount(ctx, userID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, banksdk.BalanceResponse{
		Balance:  account.Balance,
		Currency: account.Currency,
	})
}
