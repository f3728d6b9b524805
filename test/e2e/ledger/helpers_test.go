package ledger_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	ledgerhttp "github.com/kumbara-app/kumbara/internal/ledger/http"
	"github.com/kumbara-app/kumbara/internal/ledger/service"
	"github.com/kumbara-app/kumbara/internal/ledger/store/drivers/sqlite"
	"github.com/kumbara-app/kumbara/pkg/banksdk"
	"github.com/kumbara-app/kumbara/pkg/slogx"
	"github.com/stretchr/testify/require"
)

/*
 * End-to-end tests exercising the full stack: banksdk client against the
 * real router, services and an in-memory SQLite store.
 */

// setupLedger starts an in-process ledger service and returns its base URL.
func setupLedger(t *testing.T) string {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	tokens := &service.TokenService{
		Secret: []byte("e2e-secret"),
		Issuer: "ledger-e2e",
		TTL:    time.Hour,
	}

	logger := slogx.New(slogx.Config{
		Service: "ledger-e2e",
		Version: "test",
		Env:     "test",
		Level:   "error",
		Format:  "text",
	})

	router := ledgerhttp.NewRouter("test", logger)
	router.TokenService = tokens
	router.AuthService = &service.AuthService{Store: st, Tokens: tokens}
	router.AccountService = &service.AccountService{Store: st}
	router.TransactionService = &service.TransactionService{Store: st}
	router.CardService = &service.CardService{Store: st}
	router.DashboardService = &service.DashboardService{Store: st}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv.URL
}

// newRegisteredSession registers a fresh user and returns the live session.
func newRegisteredSession(t *testing.T, baseURL, email string) *banksdk.Session {
	t.Helper()

	client := banksdk.NewClient(baseURL)
	session := banksdk.NewSession(client, banksdk.NewMemoryTokenStore())

	err := session.Register(context.Background(), banksdk.RegisterInput{
		Email:     email,
		Password:  "Hunter2!",
		FirstName: "Ayşe",
		LastName:  "Yılmaz",
		Phone:     "+90 555 000 0000",
	})
	require.NoError(t, err)
	return session
}

// fetchedDashboard returns a dashboard that has completed one fetch.
func fetchedDashboard(t *testing.T, session *banksdk.Session) *banksdk.Dashboard {
	t.Helper()

	dashboard := banksdk.NewDashboard(session)
	require.NoError(t, dashboard.Fetch(context.Background()))
	return dashboard
}
