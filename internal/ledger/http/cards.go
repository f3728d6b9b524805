package http

import (
	"encoding/json"
	"net/http"

	"github.com/kumbara-app/kumbara/internal/ledger/service"
	"github.com/kumbara-app/kumbara/pkg/banksdk"
	"github.com/kumbara-app/kumbara/pkg/httpx"
)

type CardsHandler struct {
	CardService *service.CardService
}

// HandleList returns every card issued against the user's accounts.
func (h *CardsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromContext(ctx)

	cards, err := h.CardService.ListCards(ctx, userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, toCards(cards))
}

// HandleCreate issues a new card against one of the user's accounts.
func (h *CardsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromContext(ctx)

	var req banksdk.CreateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		banksdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.AccountID == "" {
		banksdk.ErrInvalidRequest.WriteError(w)
		return
	}

	card, err := h.CardService.CreateCard(ctx, userID, req.AccountID, req.CardType, req.Limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusCreated, toCard(card))
}
