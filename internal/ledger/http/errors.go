package http

import (
	"errors"
	"net/http"

	"github.com/kumbara-app/kumbara/internal/ledger/service"
	"github.com/kumbara-app/kumbara/pkg/banksdk"
	"github.com/kumbara-app/kumbara/pkg/slogx"
)

// writeServiceError maps service sentinels onto the wire error codes the
// SDK parses. Anything unmapped is logged and reported as a server error.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		banksdk.ErrInvalidCredentials.WriteError(w)
	case errors.Is(err, service.ErrEmailRegistered):
		banksdk.ErrEmailRegistered.WriteError(w)
	case errors.Is(err, service.ErrAmountNotPositive):
		banksdk.ErrAmountNotPositive.WriteError(w)
	case errors.Is(err, service.ErrInsufficientFunds):
		banksdk.ErrInsufficientFunds.WriteError(w)
	case errors.Is(err, service.ErrAccountNotFound):
		banksdk.ErrAccountNotFound.WriteError(w)
	case errors.Is(err, service.ErrInvalidBillType):
		banksdk.ErrInvalidBillType.WriteError(w)
	case errors.Is(err, service.ErrInvalidAccountType), errors.Is(err, service.ErrInvalidCardType):
		banksdk.ErrInvalidRequest.WriteError(w)
	case errors.Is(err, service.ErrInvalidToken):
		banksdk.ErrInvalidToken.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("unhandled service error", "err", err)
		banksdk.ErrServerError.WriteError(w)
	}
}
