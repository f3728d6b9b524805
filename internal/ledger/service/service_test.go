package service

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/kumbara-app/kumbara/internal/ledger/domain"
	"github.com/kumbara-app/kumbara/internal/ledger/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

// newTestServices builds the full service stack over a fresh in-memory
// database.
type testServices struct {
	Auth         *AuthService
	Tokens       *TokenService
	Accounts     *AccountService
	Transactions *TransactionService
	Cards        *CardService
	Dashboard    *DashboardService
}

func newTestServices(t *testing.T) testServices {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())

	tokens := &TokenService{
		Secret: []byte("test-secret"),
		Issuer: "ledger-test",
		TTL:    time.Hour,
	}
	return testServices{
		Auth:         &AuthService{Store: st, Tokens: tokens},
		Tokens:       tokens,
		Accounts:     &AccountService{Store: st},
		Transactions: &TransactionService{Store: st},
		Cards:        &CardService{Store: st},
		Dashboard:    &DashboardService{Store: st},
	}
}

func registerUser(t *testing.T, svc testServices, email string) domain.User {
	t.Helper()

	user, _, err := svc.Auth.Register(context.Background(), RegisterParams{
		Email:     email,
		Password:  "hunter2",
		FirstName: "Ayşe",
		LastName:  "Yılmaz",
	})
	require.NoError(t, err)
	return user
}

func firstAccount(t *testing.T, svc testServices, userID string) domain.Account {
	t.Helper()

	accounts, err := svc.Accounts.ListAccounts(context.Background(), userID)
	require.NoError(t, err)
	require.NotEmpty(t, accounts)
	return accounts[0]
}

func TestRegister(t *testing.T) {
	t.Parallel()

	t.Run("opens a welcome checking account", func(t *testing.T) {
		svc := newTestServices(t)
		user := registerUser(t, svc, "ayse@example.com")

		account := firstAccount(t, svc, user.ID)
		require.Equal(t, domain.AccountChecking, account.AccountType)
		require.Equal(t, domain.DefaultCurrency, account.Currency)
		require.Equal(t, domain.WelcomeBonus, account.Balance)
		require.Regexp(t, `^TR32 0001 0001 \d{11}$`, account.IBAN)
	})

	t.Run("rejects duplicate emails case-insensitively", func(t *testing.T) {
		svc := newTestServices(t)
		registerUser(t, svc, "ayse@example.com")

		_, _, err := svc.Auth.Register(context.Background(), RegisterParams{
			Email: "AYSE@example.com", Password: "pw", FirstName: "A", LastName: "B",
		})
		require.ErrorIs(t, err, ErrEmailRegistered)
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()

	svc := newTestServices(t)
	registered := registerUser(t, svc, "ayse@example.com")

	t.Run("valid credentials mint a verifiable token", func(t *testing.T) {
		user, token, err := svc.Auth.Login(context.Background(), "ayse@example.com", "hunter2")
		require.NoError(t, err)
		require.Equal(t, registered.ID, user.ID)

		subject, err := svc.Tokens.Verify(token)
		require.NoError(t, err)
		require.Equal(t, registered.ID, subject)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		_, _, err := svc.Auth.Login(context.Background(), "ayse@example.com", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email is rejected identically", func(t *testing.T) {
		_, _, err := svc.Auth.Login(context.Background(), "nobody@example.com", "hunter2")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestTokenVerify(t *testing.T) {
	t.Parallel()

	tokens := &TokenService{Secret: []byte("s1"), Issuer: "ledger-test", TTL: time.Hour}

	t.Run("garbage token is rejected", func(t *testing.T) {
		_, err := tokens.Verify("not-a-token")
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		other := &TokenService{Secret: []byte("s2"), Issuer: "ledger-test", TTL: time.Hour}
		forged, err := other.Mint("u1")
		require.NoError(t, err)

		_, err = tokens.Verify(forged)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		expired := &TokenService{Secret: []byte("s1"), Issuer: "ledger-test", TTL: -time.Minute}
		token, err := expired.Mint("u1")
		require.NoError(t, err)

		_, err = tokens.Verify(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestDeposit(t *testing.T) {
	t.Parallel()

	t.Run("credits the balance and records the entry", func(t *testing.T) {
		svc := newTestServices(t)
		user := registerUser(t, svc, "ayse@example.com")
		account := firstAccount(t, svc, user.ID)

		newBalance, err := svc.Transactions.Deposit(context.Background(), user.ID, account.ID, 100.50)
		require.NoError(t, err)
		require.Equal(t, domain.WelcomeBonus+100.50, newBalance)

		entries, err := svc.Transactions.ListForAccount(context.Background(), user.ID, account.ID)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		require.Equal(t, domain.TransactionDeposit, entries[0].Type)
		require.Equal(t, domain.StatusCompleted, entries[0].Status)
		require.Equal(t, 100.50, entries[0].Amount)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		svc := newTestServices(t)
		user := registerUser(t, svc, "ayse@example.com")
		account := firstAccount(t, svc, user.ID)

		_, err := svc.Transactions.Deposit(context.Background(), user.ID, account.ID, 0)
		require.ErrorIs(t, err, ErrAmountNotPositive)

		_, err = svc.Transactions.Deposit(context.Background(), user.ID, account.ID, -5)
		require.ErrorIs(t, err, ErrAmountNotPositive)
	})

	t.Run("rejects non-finite amounts", func(t *testing.T) {
		svc := newTestServices(t)
		user := registerUser(t, svc, "ayse@example.com")
		account := firstAccount(t, svc, user.ID)

		for _, amount := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
			_, err := svc.Transactions.Deposit(context.Background(), user.ID, account.ID, amount)
			require.ErrorIs(t, err, ErrAmountNotPositive)

			_, err = svc.Transactions.Transfer(context.Background(), user.ID, account.ID, "TR32 0001 0001 00000000001", amount, "")
			require.ErrorIs(t, err, ErrAmountNotPositive)

			_, err = svc.Transactions.PayBill(context.Background(), user.ID, account.ID, "electricity", "BEDAŞ", "12345", amount)
			require.ErrorIs(t, err, ErrAmountNotPositive)
		}

		// An inflated balance never existed, so later sufficiency checks hold.
		accounts, err := svc.Accounts.ListAccounts(context.Background(), user.ID)
		require.NoError(t, err)
		require.Equal(t, domain.WelcomeBonus, accounts[0].Balance)
	})

	t.Run("rejects accounts owned by someone else", func(t *testing.T) {
		svc := newTestServices(t)
		owner := registerUser(t, svc, "owner@example.com")
		intruder := registerUser(t, svc, "intruder@example.com")
		account := firstAccount(t, svc, owner.ID)

		_, err := svc.Transactions.Deposit(context.Background(), intruder.ID, account.ID, 10)
		require.ErrorIs(t, err, ErrAccountNotFound)
	})
}

func TestTransfer(t *testing.T) {
	t.Parallel()

	t.Run("between ledger accounts completes and moves the money", func(t *testing.T) {
		svc := newTestServices(t)
		sender := registerUser(t, svc, "sender@example.com")
		receiver := registerUser(t, svc, "receiver@example.com")
		from := firstAccount(t, svc, sender.ID)
		to := firstAccount(t, svc, receiver.ID)

		result, err := svc.Transactions.Transfer(context.Background(), sender.ID, from.ID, to.IBAN, 100.50, "rent")
		require.NoError(t, err)

		require.Equal(t, domain.StatusCompleted, result.Transaction.Status)
		require.Equal(t, domain.WelcomeBonus-100.50, result.NewBalance)
		require.NotNil(t, result.Transaction.ToAccountID)
		require.Equal(t, to.ID, *result.Transaction.ToAccountID)

		updatedTo := firstAccount(t, svc, receiver.ID)
		require.Equal(t, domain.WelcomeBonus+100.50, updatedTo.Balance)
	})

	t.Run("to an unknown IBAN stays pending but still debits", func(t *testing.T) {
		svc := newTestServices(t)
		sender := registerUser(t, svc, "sender@example.com")
		from := firstAccount(t, svc, sender.ID)

		result, err := svc.Transactions.Transfer(context.Background(), sender.ID, from.ID, "TR32 9999 9999 00000000000", 100.50, "external")
		require.NoError(t, err)

		require.Equal(t, domain.StatusPending, result.Transaction.Status)
		require.Nil(t, result.Transaction.ToAccountID)
		require.Equal(t, domain.WelcomeBonus-100.50, result.NewBalance)

		updated := firstAccount(t, svc, sender.ID)
		require.Equal(t, domain.WelcomeBonus-100.50, updated.Balance)
	})

	t.Run("insufficient funds leaves the balance untouched", func(t *testing.T) {
		svc := newTestServices(t)
		sender := registerUser(t, svc, "sender@example.com")
		from := firstAccount(t, svc, sender.ID)

		_, err := svc.Transactions.Transfer(context.Background(), sender.ID, from.ID, "TR32 9999 9999 00000000000", domain.WelcomeBonus+1, "too much")
		require.ErrorIs(t, err, ErrInsufficientFunds)

		updated := firstAccount(t, svc, sender.ID)
		require.Equal(t, domain.WelcomeBonus, updated.Balance)

		entries, err := svc.Transactions.ListForAccount(context.Background(), sender.ID, from.ID)
		require.NoError(t, err)
		require.Empty(t, entries)
	})
}

func TestPayBill(t *testing.T) {
	t.Parallel()

	t.Run("debits and records a categorized entry", func(t *testing.T) {
		svc := newTestServices(t)
		user := registerUser(t, svc, "ayse@example.com")
		account := firstAccount(t, svc, user.ID)

		result, err := svc.Transactions.PayBill(context.Background(), user.ID, account.ID, "electricity", "BEDAS", "42", 250)
		require.NoError(t, err)

		require.Equal(t, domain.WelcomeBonus-250, result.NewBalance)
		require.Equal(t, domain.TransactionBill, result.Transaction.Type)
		require.Equal(t, "electricity", result.Transaction.Category)
		require.Equal(t, domain.StatusCompleted, result.Transaction.Status)
	})

	t.Run("rejects unknown bill types before touching the balance", func(t *testing.T) {
		svc := newTestServices(t)
		user := registerUser(t, svc, "ayse@example.com")
		account := firstAccount(t, svc, user.ID)

		_, err := svc.Transactions.PayBill(context.Background(), user.ID, account.ID, "cable", "X", "1", 10)
		require.ErrorIs(t, err, ErrInvalidBillType)

		updated := firstAccount(t, svc, user.ID)
		require.Equal(t, domain.WelcomeBonus, updated.Balance)
	})
}

func TestDashboard(t *testing.T) {
	t.Parallel()

	svc := newTestServices(t)
	user := registerUser(t, svc, "ayse@example.com")
	checking := firstAccount(t, svc, user.ID)

	savings, err := svc.Accounts.CreateAccount(context.Background(), user.ID, domain.AccountSavings, "")
	require.NoError(t, err)

	_, err = svc.Transactions.Deposit(context.Background(), user.ID, savings.ID, 500)
	require.NoError(t, err)

	_, err = svc.Cards.CreateCard(context.Background(), user.ID, checking.ID, domain.CardDebit, nil)
	require.NoError(t, err)

	// More deposits than the dashboard window holds.
	for i := 0; i < 12; i++ {
		_, err := svc.Transactions.Deposit(context.Background(), user.ID, checking.ID, 1)
		require.NoError(t, err)
	}

	data, err := svc.Dashboard.Dashboard(context.Background(), user.ID)
	require.NoError(t, err)

	require.Len(t, data.Accounts, 2)
	require.Equal(t, domain.WelcomeBonus+500+12, data.TotalBalance)
	require.Len(t, data.RecentTransactions, recentTransactionLimit)
	require.Len(t, data.Cards, 1)

	// Most recent first.
	for i := 1; i < len(data.RecentTransactions); i++ {
		require.False(t, data.RecentTransactions[i-1].CreatedAt.Before(data.RecentTransactions[i].CreatedAt))
	}
}

func TestCards(t *testing.T) {
	t.Parallel()

	svc := newTestServices(t)
	user := registerUser(t, svc, "ayse@example.com")
	account := firstAccount(t, svc, user.ID)

	t.Run("issued card is masked and active", func(t *testing.T) {
		card, err := svc.Cards.CreateCard(context.Background(), user.ID, account.ID, domain.CardDebit, nil)
		require.NoError(t, err)

		require.Regexp(t, `^4\*\*\* \*\*\*\* \*\*\*\* \d{4}$`, card.CardNumber)
		require.Equal(t, domain.CardActive, card.Status)
		require.True(t, card.ExpiresAt.After(time.Now()))

		cards, err := svc.Cards.ListCards(context.Background(), user.ID)
		require.NoError(t, err)
		require.Len(t, cards, 1)
	})

	t.Run("rejects unknown card types", func(t *testing.T) {
		_, err := svc.Cards.CreateCard(context.Background(), user.ID, account.ID, "prepaid", nil)
		require.ErrorIs(t, err, ErrInvalidCardType)
	})
}
