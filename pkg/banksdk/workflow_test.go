package banksdk

import (
	"context"
	"math"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// authedHarness returns a logged-in session and a dashboard primed with one
// source account.
func authedHarness(t *testing.T, stub *ledgerStub) (*Session, *Dashboard) {
	t.Helper()

	stub.serveAuth("/auth/login", "a@b.c", "pw", "t1", UserProfile{ID: "u1"})
	stub.serveDashboard(Snapshot{
		TotalBalance: 500,
		Accounts:     []Account{{ID: "acc1", IBAN: "TR32 0001 0001 00000000001", Balance: 500}},
	})

	session, _ := stub.newSession()
	require.NoError(t, session.Login(context.Background(), "a@b.c", "pw"))

	dashboard := NewDashboard(session)
	require.NoError(t, dashboard.Fetch(context.Background()))
	return session, dashboard
}

func TestDepositWorkflow(t *testing.T) {
	t.Parallel()

	t.Run("success refreshes the dashboard and resets the draft", func(t *testing.T) {
		stub := newLedgerStub(t)
		session, dashboard := authedHarness(t, stub)

		var gotAmount string
		stub.mux.HandleFunc("POST /accounts/acc1/deposit", func(w http.ResponseWriter, r *http.Request) {
			gotAmount = r.URL.Query().Get("amount")
			writeWireJSON(w, http.StatusOK, DepositResponse{Message: "Deposit successful", NewBalance: 600.5})
		})

		w := NewDepositWorkflow(session, dashboard)
		w.SetInput(DepositInput{AccountID: "acc1", Amount: 100.5})

		refreshesBefore := stub.count("GET /dashboard")
		outcome, err := w.Submit(context.Background())
		require.NoError(t, err)

		require.True(t, outcome.OK)
		require.Equal(t, "Deposit successful", outcome.Message)
		require.NoError(t, outcome.RefreshErr)
		require.Equal(t, "100.5", gotAmount)

		require.Equal(t, StateSucceeded, w.State())
		require.Equal(t, DepositInput{}, w.Input())
		require.Equal(t, refreshesBefore+1, stub.count("GET /dashboard"))

		w.Ack()
		require.Equal(t, StateIdle, w.State())
	})

	t.Run("server rejection preserves the draft and skips the refresh", func(t *testing.T) {
		stub := newLedgerStub(t)
		session, dashboard := authedHarness(t, stub)

		stub.mux.HandleFunc("POST /accounts/acc1/deposit", func(w http.ResponseWriter, r *http.Request) {
			writeWireError(w, http.StatusBadRequest, "invalid_amount", "Amount must be positive")
		})

		w := NewDepositWorkflow(session, dashboard)
		input := DepositInput{AccountID: "acc1", Amount: 50}
		w.SetInput(input)

		refreshesBefore := stub.count("GET /dashboard")
		outcome, err := w.Submit(context.Background())
		require.NoError(t, err)

		require.False(t, outcome.OK)
		require.Equal(t, "invalid_amount", outcome.Err.Code)
		require.Equal(t, KindValidation, outcome.Err.Kind)

		require.Equal(t, StateFailed, w.State())
		require.Equal(t, input, w.Input())
		require.Equal(t, refreshesBefore, stub.count("GET /dashboard"))
	})

	t.Run("non-positive amount never reaches the network", func(t *testing.T) {
		stub := newLedgerStub(t)
		session, dashboard := authedHarness(t, stub)
		requestsBefore := stub.total()

		w := NewDepositWorkflow(session, dashboard)
		w.SetInput(DepositInput{AccountID: "acc1", Amount: 0})

		outcome, err := w.Submit(context.Background())
		require.NoError(t, err)

		require.False(t, outcome.OK)
		require.Equal(t, KindValidation, outcome.Err.Kind)
		require.Equal(t, StateIdle, w.State())
		require.Equal(t, requestsBefore, stub.total())
	})

	t.Run("non-finite amount never reaches the network", func(t *testing.T) {
		stub := newLedgerStub(t)
		session, dashboard := authedHarness(t, stub)
		requestsBefore := stub.total()

		w := NewDepositWorkflow(session, dashboard)
		for _, amount := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
			w.SetInput(DepositInput{AccountID: "acc1", Amount: amount})

			outcome, err := w.Submit(context.Background())
			require.NoError(t, err)

			require.False(t, outcome.OK)
			require.Equal(t, KindValidation, outcome.Err.Kind)
			require.Equal(t, StateIdle, w.State())
		}
		require.Equal(t, requestsBefore, stub.total())
	})
}

func TestTransferWorkflow(t *testing.T) {
	t.Parallel()

	t.Run("empty IBAN is rejected without a request", func(t *testing.T) {
		stub := newLedgerStub(t)
		session, dashboard := authedHarness(t, stub)
		requestsBefore := stub.total()

		w := NewTransferWorkflow(session, dashboard)
		w.SetInput(TransferInput{ToIBAN: "  ", Amount: 50, Description: "rent"})

		outcome, err := w.Submit(context.Background())
		require.NoError(t, err)

		require.False(t, outcome.OK)
		require.Equal(t, KindValidation, outcome.Err.Kind)
		require.Equal(t, StateIdle, w.State())
		require.Equal(t, requestsBefore, stub.total())
	})

	t.Run("success debits the first snapshot account", func(t *testing.T) {
		stub := newLedgerStub(t)
		session, dashboard := authedHarness(t, stub)

		var gotBody TransferRequest
		stub.mux.HandleFunc("POST /accounts/acc1/transfer", func(w http.ResponseWriter, r *http.Request) {
			decodeBody(r, &gotBody)
			writeWireJSON(w, http.StatusOK, TransferResponse{
				Message:       "Transfer completed",
				TransactionID: "tx1",
				Status:        StatusCompleted,
			})
		})

		w := NewTransferWorkflow(session, dashboard)
		w.SetInput(TransferInput{ToIBAN: "TR32 0001 0001 00000000002", Amount: 100.5, Description: "rent"})

		outcome, err := w.Submit(context.Background())
		require.NoError(t, err)

		require.True(t, outcome.OK)
		require.Equal(t, "Transfer completed", outcome.Message)
		require.Equal(t, 100.5, gotBody.Amount)
		require.Equal(t, "TR32 0001 0001 00000000002", gotBody.ToIBAN)
		require.Equal(t, TransferInput{}, w.Input())
	})

	t.Run("insufficient funds surfaces the server message", func(t *testing.T) {
		stub := newLedgerStub(t)
		session, dashboard := authedHarness(t, stub)

		stub.mux.HandleFunc("POST /accounts/acc1/transfer", func(w http.ResponseWriter, r *http.Request) {
			writeWireError(w, http.StatusBadRequest, "insufficient_funds", "Insufficient funds")
		})

		w := NewTransferWorkflow(session, dashboard)
		input := TransferInput{ToIBAN: "TR32 0001 0001 00000000002", Amount: 9000, Description: "rent"}
		w.SetInput(input)

		outcome, err := w.Submit(context.Background())
		require.NoError(t, err)

		require.False(t, outcome.OK)
		require.Equal(t, "Insufficient funds", outcome.Message)
		require.Equal(t, StateFailed, w.State())
		require.Equal(t, input, w.Input())
	})
}

func TestBillPaymentWorkflow(t *testing.T) {
	t.Parallel()

	t.Run("unknown bill type is rejected client-side", func(t *testing.T) {
		stub := newLedgerStub(t)
		session, dashboard := authedHarness(t, stub)
		requestsBefore := stub.total()

		w := NewBillPaymentWorkflow(session, dashboard)
		w.SetInput(BillPaymentInput{BillType: "cable", Provider: "p", AccountNumber: "1", Amount: 10})

		outcome, err := w.Submit(context.Background())
		require.NoError(t, err)

		require.False(t, outcome.OK)
		require.Equal(t, KindValidation, outcome.Err.Kind)
		require.Equal(t, requestsBefore, stub.total())
	})

	t.Run("success pays from the first snapshot account", func(t *testing.T) {
		stub := newLedgerStub(t)
		session, dashboard := authedHarness(t, stub)

		var gotBody BillPaymentRequest
		stub.mux.HandleFunc("POST /accounts/acc1/pay-bill", func(w http.ResponseWriter, r *http.Request) {
			decodeBody(r, &gotBody)
			writeWireJSON(w, http.StatusOK, BillPaymentResponse{
				Message:       "Bill payment successful",
				TransactionID: "tx2",
				NewBalance:    400,
			})
		})

		w := NewBillPaymentWorkflow(session, dashboard)
		w.SetInput(BillPaymentInput{BillType: "electricity", Provider: "BEDAS", AccountNumber: "42", Amount: 100})

		outcome, err := w.Submit(context.Background())
		require.NoError(t, err)

		require.True(t, outcome.OK)
		require.Equal(t, "electricity", gotBody.BillType)
		require.Equal(t, BillPaymentInput{}, w.Input())
		require.Equal(t, StateSucceeded, w.State())
	})
}

func TestSubmitInFlightGuard(t *testing.T) {
	t.Parallel()

	stub := newLedgerStub(t)
	session, dashboard := authedHarness(t, stub)

	entered := make(chan struct{})
	release := make(chan struct{})
	stub.mux.HandleFunc("POST /accounts/acc1/deposit", func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		writeWireJSON(w, http.StatusOK, DepositResponse{Message: "ok"})
	})

	w := NewDepositWorkflow(session, dashboard)
	w.SetInput(DepositInput{AccountID: "acc1", Amount: 10})

	type result struct {
		outcome Outcome
		err     error
	}
	done := make(chan result, 1)
	go func() {
		outcome, err := w.Submit(context.Background())
		done <- result{outcome, err}
	}()

	select {
	case <-entered:
	case <-time.After(5 * time.Second):
		t.Fatal("first submission never reached the server")
	}
	require.Equal(t, StateSubmitting, w.State())

	_, err := w.Submit(context.Background())
	require.ErrorIs(t, err, ErrSubmitInFlight)

	close(release)
	first := <-done
	require.NoError(t, first.err)
	require.True(t, first.outcome.OK)
	require.Equal(t, StateSucceeded, w.State())
}
