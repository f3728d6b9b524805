// Package http exposes the ledger's REST API. Handlers speak the same wire
// types and error codes the banksdk client parses.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/kumbara-app/kumbara/internal/ledger/service"
	"github.com/kumbara-app/kumbara/pkg/httpx"
	"github.com/kumbara-app/kumbara/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	AuthService        *service.AuthService
	TokenService       *service.TokenService
	AccountService     *service.AccountService
	TransactionService *service.TransactionService
	CardService        *service.CardService
	DashboardService   *service.DashboardService
}

func NewRouter(buildVersion string, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerDashboard()
	r.registerAccounts()
	r.registerCards()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	// Credential endpoints get the strict limit to slow brute forcing.
	r.Mux.Handle("POST /auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerDashboard() {
	h := &DashboardHandler{DashboardService: r.DashboardService}

	r.Mux.Handle("GET /dashboard",
		httpx.Chain(h,
			httpx.AuthnMiddleware(r.TokenService),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerAccounts() {
	accounts := &AccountsHandler{AccountService: r.AccountService}
	transactions := &TransactionsHandler{TransactionService: r.TransactionService}

	secured := func(h http.Handler) http.Handler {
		return httpx.Chain(h,
			httpx.AuthnMiddleware(r.TokenService),
			httpx.RateLimitByIP(httpx.LenientLimit),
		)
	}

	r.Mux.Handle("GET /accounts", secured(http.HandlerFunc(accounts.HandleList)))
	r.Mux.Handle("POST /accounts", secured(http.HandlerFunc(accounts.HandleCreate)))
	r.Mux.Handle("GET /accounts/{id}/balance", secured(http.HandlerFunc(accounts.HandleBalance)))
	r.Mux.Handle("GET /accounts/{id}/transactions", secured(http.HandlerFunc(transactions.HandleList)))

	r.Mux.Handle("POST /accounts/{id}/deposit", secured(http.HandlerFunc(transactions.HandleDeposit)))
	r.Mux.Handle("POST /accounts/{id}/transfer", secured(http.HandlerFunc(transactions.HandleTransfer)))
	r.Mux.Handle("POST /accounts/{id}/pay-bill", secured(http.HandlerFunc(transactions.HandlePayBill)))
}

func (r *Router) registerCards() {
	h := &CardsHandler{CardService: r.CardService}

	secured := func(handler http.Handler) http.Handler {
		return httpx.Chain(handler,
			httpx.AuthnMiddleware(r.TokenService),
			httpx.RateLimitByIP(httpx.LenientLimit),
		)
	}

	r.Mux.Handle("GET /cards", secured(http.HandlerFunc(h.HandleList)))
	r.Mux.Handle("POST /cards", secured(http.HandlerFunc(h.HandleCreate)))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
}
