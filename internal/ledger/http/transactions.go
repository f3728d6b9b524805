package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/kumbara-app/kumbara/internal/ledger/service"
	"github.com/kumbara-app/kumbara/pkg/banksdk"
	"github.com/kumbara-app/kumbara/pkg/httpx"
)

type TransactionsHandler struct {
	TransactionService *service.TransactionService
}

// HandleDeposit credits the account. The amount arrives as a query
// parameter.
func (h *TransactionsHandler) HandleDeposit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromContext(ctx)

	amount, err := strconv.ParseFloat(r.URL.Query().Get("amount"), 64)
	if err != nil {
		banksdk.ErrAmountNotPositive.WriteError(w)
		return
	}

	newBalance, err := h.TransactionService.Deposit(ctx, userID, r.PathValue("id"), amount)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, banksdk.DepositResponse{
		Message:    "Deposit successful",
		NewBalance: newBalance,
	})
}

// HandleTransfer debits the account and credits the destination IBAN when
// it belongs to this ledger.
func (h *TransactionsHandler) HandleTransfer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromContext(ctx)

	var req banksdk.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		banksdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.ToIBAN == "" {
		banksdk.ErrInvalidRequest.WriteError(w)
		return
	}

	result, err := h.TransactionService.Transfer(ctx, userID, r.PathValue("id"), req.ToIBAN, req.Amount, req.Description)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	message := "Transfer completed"
	if result.Transaction.Status == banksdk.StatusPending {
		message = "Transfer pending"
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, banksdk.TransferResponse{
		Message:       message,
		TransactionID: result.Transaction.ID,
		Status:        result.Transaction.Status,
	})
}

// HandlePayBill debits the account for a bill payment.
func (h *TransactionsHandler) HandlePayBill(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromContext(ctx)

	var req banksdk.BillPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		banksdk.ErrInvalidRequest.WriteError(w)
		return
	}

	result, err := h.TransactionService.PayBill(ctx, userID, r.PathValue("id"), req.BillType, req.Provider, req.AccountNumber, req.Amount)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, banksdk.BillPaymentResponse{
		Message:       "Bill payment successful",
		TransactionID: result.Transaction.ID,
		NewBalance:    result.NewBalance,
	})
}

// HandleList returns the account's recent transactions.
func (h *TransactionsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromContext(ctx)

	transactions, err := h.TransactionService.ListForAccount(ctx, userID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, toTransactions(transactions))
}
