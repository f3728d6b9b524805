// Command kumbara is a terminal client for the ledger service. It is a thin
// view layer: all state and transport live in pkg/banksdk.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/kumbara-app/kumbara/pkg/banksdk"
)

const defaultServerURL = "http://localhost:8080"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		usage()
		return nil
	}

	serverURL := os.Getenv("KUMBARA_SERVER_URL")
	if serverURL == "" {
		serverURL = defaultServerURL
	}

	store, err := banksdk.NewFileTokenStore(os.Getenv("KUMBARA_CONFIG_DIR"))
	if err != nil {
		return err
	}

	client := banksdk.NewClient(serverURL)
	session := banksdk.NewSession(client, store)
	if err := session.Restore(); err != nil {
		fmt.Fprintln(os.Stderr, "warning: could not restore session:", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login":
		return cmdLogin(ctx, session, rest)
	case "register":
		return cmdRegister(ctx, session, rest)
	case "logout":
		session.Logout()
		fmt.Println("Logged out.")
		return nil
	case "dashboard":
		return cmdDashboard(ctx, session)
	case "accounts":
		return cmdAccounts(ctx, session)
	case "deposit":
		return cmdDeposit(ctx, session, rest)
	case "transfer":
		return cmdTransfer(ctx, session, rest)
	case "pay-bill":
		return cmdPayBill(ctx, session, rest)
	case "health":
		return cmdHealth(ctx, client)
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: kumbara <command> [flags]

commands:
  login      -email -password
  register   -email -password -first-name -last-name [-phone]
  logout
  dashboard
  accounts
  deposit    -account -amount
  transfer   -to-iban -amount -description
  pay-bill   -type -provider -account-number -amount
  health`)
}

func cmdLogin(ctx context.Context, session *banksdk.Session, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	_ = fs.Parse(args)

	if err := session.Login(ctx, *email, *password); err != nil {
		return err
	}
	if user, ok := session.User(); ok {
		fmt.Printf("Welcome back, %s.\n", user.FirstName)
	}
	return nil
}

func cmdRegister(ctx context.Context, session *banksdk.Session, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	input := banksdk.RegisterInput{}
	fs.StringVar(&input.Email, "email", "", "account email")
	fs.StringVar(&input.Password, "password", "", "account password")
	fs.StringVar(&input.FirstName, "first-name", "", "first name")
	fs.StringVar(&input.LastName, "last-name", "", "last name")
	fs.StringVar(&input.Phone, "phone", "", "phone number (optional)")
	_ = fs.Parse(args)

	if err := session.Register(ctx, input); err != nil {
		return err
	}
	if user, ok := session.User(); ok {
		fmt.Printf("Welcome, %s. A checking account has been opened for you.\n", user.FirstName)
	}
	return nil
}

func cmdDashboard(ctx context.Context, session *banksdk.Session) error {
	dashboard := banksdk.NewDashboard(session)
	if err := dashboard.Fetch(ctx); err != nil {
		return err
	}
	snap := dashboard.Snapshot()

	fmt.Printf("Total balance: %.2f\n\n", snap.TotalBalance)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ACCOUNT\tIBAN\tTYPE\tBALANCE")
	for _, a := range snap.Accounts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f %s\n", a.AccountNumber, a.IBAN, a.AccountType, a.Balance, a.Currency)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "RECENT\tAMOUNT\tSTATUS\tDESCRIPTION")
	for _, t := range snap.RecentTransactions {
		fmt.Fprintf(w, "%s\t%.2f\t%s\t%s\n", t.Type, t.Amount, t.Status, t.Description)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "CARD\tTYPE\tSTATUS\tEXPIRES")
	for _, c := range snap.Cards {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.CardNumber, c.CardType, c.Status, c.ExpiresAt.Format("01/06"))
	}
	return w.Flush()
}

func cmdAccounts(ctx context.Context, session *banksdk.Session) error {
	accounts, err := session.Accounts(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tACCOUNT\tIBAN\tTYPE\tBALANCE")
	for _, a := range accounts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f %s\n", a.ID, a.AccountNumber, a.IBAN, a.AccountType, a.Balance, a.Currency)
	}
	return w.Flush()
}

func cmdDeposit(ctx context.Context, session *banksdk.Session, args []string) error {
	fs := flag.NewFlagSet("deposit", flag.ExitOnError)
	account := fs.String("account", "", "account id")
	amount := fs.Float64("amount", 0, "amount to deposit")
	_ = fs.Parse(args)

	dashboard := banksdk.NewDashboard(session)
	workflow := banksdk.NewDepositWorkflow(session, dashboard)
	workflow.SetInput(banksdk.DepositInput{AccountID: *account, Amount: *amount})

	outcome, err := workflow.Submit(ctx)
	if err != nil {
		return err
	}
	return report(outcome)
}

func cmdTransfer(ctx context.Context, session *banksdk.Session, args []string) error {
	fs := flag.NewFlagSet("transfer", flag.ExitOnError)
	toIBAN := fs.String("to-iban", "", "destination IBAN")
	amount := fs.Float64("amount", 0, "amount to transfer")
	description := fs.String("description", "", "transfer description")
	_ = fs.Parse(args)

	dashboard := banksdk.NewDashboard(session)
	if err := dashboard.Fetch(ctx); err != nil {
		return err
	}

	workflow := banksdk.NewTransferWorkflow(session, dashboard)
	workflow.SetInput(banksdk.TransferInput{
		ToIBAN:      *toIBAN,
		Amount:      *amount,
		Description: *description,
	})

	outcome, err := workflow.Submit(ctx)
	if err != nil {
		return err
	}
	return report(outcome)
}

func cmdPayBill(ctx context.Context, session *banksdk.Session, args []string) error {
	fs := flag.NewFlagSet("pay-bill", flag.ExitOnError)
	billType := fs.String("type", "", "bill type (electricity, gas, water, telecom, internet)")
	provider := fs.String("provider", "", "billing provider name")
	accountNumber := fs.String("account-number", "", "subscriber account number at the provider")
	amount := fs.Float64("amount", 0, "amount to pay")
	_ = fs.Parse(args)

	dashboard := banksdk.NewDashboard(session)
	if err := dashboard.Fetch(ctx); err != nil {
		return err
	}

	workflow := banksdk.NewBillPaymentWorkflow(session, dashboard)
	workflow.SetInput(banksdk.BillPaymentInput{
		BillType:      *billType,
		Provider:      *provider,
		AccountNumber: *accountNumber,
		Amount:        *amount,
	})

	outcome, err := workflow.Submit(ctx)
	if err != nil {
		return err
	}
	return report(outcome)
}

func cmdHealth(ctx context.Context, client *banksdk.Client) error {
	health, err := client.Health(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("status: %s  uptime: %s  version: %s\n", health.Status, health.Uptime, health.Version)
	return nil
}

func report(outcome banksdk.Outcome) error {
	if !outcome.OK {
		return outcome.Err
	}
	fmt.Println(outcome.Message)
	if outcome.RefreshErr != nil {
		fmt.Fprintln(os.Stderr, "warning: dashboard refresh failed:", outcome.RefreshErr)
	}
	return nil
}
