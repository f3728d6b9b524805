package banksdk

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// ledgerStub is an in-process fake of the ledger service. It records how
// often each route was hit so tests can assert that rejected submissions
// never reach the network.
type ledgerStub struct {
	mux *http.ServeMux
	srv *httptest.Server

	mu   sync.Mutex
	hits map[string]int
}

func newLedgerStub(t *testing.T) *ledgerStub {
	t.Helper()

	s := &ledgerStub{
		mux:  http.NewServeMux(),
		hits: make(map[string]int),
	}
	s.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits[r.Method+" "+r.URL.Path]++
		s.mu.Unlock()
		s.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(s.srv.Close)
	return s
}

func (s *ledgerStub) count(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[route]
}

func (s *ledgerStub) total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.hits {
		n += c
	}
	return n
}

// newSession builds a session against the stub with an in-memory token
// store.
func (s *ledgerStub) newSession() (*Session, *MemoryTokenStore) {
	store := NewMemoryTokenStore()
	return NewSession(NewClient(s.srv.URL), store), store
}

// serveAuth registers a login/register handler that accepts one credential
// pair and returns the canonical auth payload.
func (s *ledgerStub) serveAuth(path, email, password, token string, user UserProfile) {
	s.mux.HandleFunc("POST "+path, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		decodeBody(r, &req)
		if req.Email != email || req.Password != password {
			writeWireError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid credentials")
			return
		}
		writeWireJSON(w, http.StatusOK, AuthResponse{Token: token, User: user})
	})
}

// serveDashboard registers a dashboard handler returning the given snapshot.
func (s *ledgerStub) serveDashboard(snapshot Snapshot) {
	s.mux.HandleFunc("GET /dashboard", func(w http.ResponseWriter, r *http.Request) {
		writeWireJSON(w, http.StatusOK, snapshot)
	})
}
