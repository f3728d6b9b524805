package http

import (
	"net/http"

	"github.com/kumbara-app/kumbara/internal/ledger/service"
	"github.com/kumbara-app/kumbara/pkg/banksdk"
	"github.com/kumbara-app/kumbara/pkg/httpx"
	"github.com/kumbara-app/kumbara/pkg/slogx"
)

type DashboardHandler struct {
	DashboardService *service.DashboardService
}

// ServeHTTP returns the aggregated dashboard for the authenticated user.
func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		banksdk.ErrInvalidToken.WriteError(w)
		return
	}

	data, err := h.DashboardService.Dashboard(ctx, userID)
	if err != nil {
		slogx.FromContext(ctx).Warn("dashboard aggregation failed", "user_id", userID, "err", err)
		banksdk.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, toSnapshot(data))
}
