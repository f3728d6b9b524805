package banksdk

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDashboardFetch(t *testing.T) {
	t.Parallel()

	snapshot := Snapshot{
		TotalBalance: 1500,
		Accounts: []Account{
			{ID: "acc1", IBAN: "TR32 0001 0001 00000000001", Balance: 1000},
			{ID: "acc2", IBAN: "TR32 0001 0001 00000000002", Balance: 500},
		},
	}

	t.Run("success replaces the snapshot wholesale", func(t *testing.T) {
		stub := newLedgerStub(t)
		stub.serveDashboard(snapshot)
		session, _ := stub.newSession()
		dashboard := NewDashboard(session)

		require.Nil(t, dashboard.Snapshot())

		require.NoError(t, dashboard.Fetch(context.Background()))

		got := dashboard.Snapshot()
		require.NotNil(t, got)
		require.Equal(t, 1500.0, got.TotalBalance)
		require.Len(t, got.Accounts, 2)
	})

	t.Run("failed fetch leaves the previous snapshot visible", func(t *testing.T) {
		stub := newLedgerStub(t)
		failing := false
		stub.mux.HandleFunc("GET /dashboard", func(w http.ResponseWriter, r *http.Request) {
			if failing {
				writeWireError(w, http.StatusInternalServerError, "server_error", "")
				return
			}
			writeWireJSON(w, http.StatusOK, snapshot)
		})
		session, _ := stub.newSession()
		dashboard := NewDashboard(session)

		require.NoError(t, dashboard.Fetch(context.Background()))
		before := dashboard.Snapshot()

		failing = true
		err := dashboard.Fetch(context.Background())
		require.Error(t, err)

		apiErr, ok := AsAPIError(err)
		require.True(t, ok)
		require.Equal(t, KindUnexpected, apiErr.Kind)
		require.Equal(t, "Something went wrong, please try again", apiErr.Message)

		require.Same(t, before, dashboard.Snapshot())
	})

	t.Run("fetch before any success yields nil snapshot", func(t *testing.T) {
		stub := newLedgerStub(t)
		stub.mux.HandleFunc("GET /dashboard", func(w http.ResponseWriter, r *http.Request) {
			writeWireError(w, http.StatusInternalServerError, "server_error", "")
		})
		session, _ := stub.newSession()
		dashboard := NewDashboard(session)

		require.Error(t, dashboard.Fetch(context.Background()))
		require.Nil(t, dashboard.Snapshot())
	})

	t.Run("repeated fetches are idempotent against unchanged state", func(t *testing.T) {
		stub := newLedgerStub(t)
		stub.serveDashboard(snapshot)
		session, _ := stub.newSession()
		dashboard := NewDashboard(session)

		require.NoError(t, dashboard.Fetch(context.Background()))
		first := dashboard.Snapshot()
		require.NoError(t, dashboard.Fetch(context.Background()))
		second := dashboard.Snapshot()

		require.NotSame(t, first, second)
		require.Equal(t, *first, *second)
		require.Equal(t, 2, stub.count("GET /dashboard"))
	})
}
