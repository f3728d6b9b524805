package banksdk

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"
)

// Session owns the current bearer token and authenticated user profile.
// Both are replaced as whole values under one lock, so readers never observe
// a partially updated session. Every other component only reads it.
//
// A session ends in one of two ways: an explicit Logout, or the gateway
// rejecting the bearer token on an authenticated request. Both clear the
// token from memory and durable storage, so a dead token is never replayed.
type Session struct {
	client *Client
	store  TokenStore

	mu    sync.RWMutex
	token string
	user  *UserProfile
}

// NewSession binds a session to a gateway client and a durable token store.
func NewSession(client *Client, store TokenStore) *Session {
	return &Session{client: client, store: store}
}

// Restore loads a persisted token from durable storage, if any, so the
// gateway is authenticated before the first request after a restart.
//
// The user profile is only known from a login or register response and is
// not restored: a restored session is treated as fully authenticated for
// request purposes, but User reports absent until a profile-bearing call
// succeeds. Callers must handle that combination.
func (s *Session) Restore() error {
	token, err := s.store.Load()
	if err != nil {
		return err
	}
	if token == "" {
		return nil
	}

	s.mu.Lock()
	s.token = token
	s.user = nil
	s.mu.Unlock()
	return nil
}

// Login authenticates with the ledger service. On success the token and
// profile are installed atomically and the token is persisted; on failure the
// session is left unchanged and the returned *APIError carries a displayable
// message.
func (s *Session) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return validationError("Email and password are required")
	}

	body := map[string]string{"email": email, "password": password}
	return s.authenticate(ctx, "/auth/login", body)
}

// Register creates a new ledger user and installs the resulting session
// under the same contract as Login. The required fields are checked before
// any network call is attempted.
func (s *Session) Register(ctx context.Context, input RegisterInput) error {
	input.Email = strings.TrimSpace(input.Email)
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)

	if input.Email == "" || input.Password == "" || input.FirstName == "" || input.LastName == "" {
		return validationError("Email, password, first name and last name are required")
	}

	return s.authenticate(ctx, "/auth/register", input)
}

func (s *Session) authenticate(ctx context.Context, path string, body any) error {
	resp, apiErr := s.client.do(ctx, http.MethodPost, path, body, "")
	if apiErr != nil {
		return apiErr
	}

	var auth AuthResponse
	if apiErr := decodeJSON(resp, &auth); apiErr != nil {
		return apiErr
	}
	if auth.Token == "" {
		return unexpectedError(nil)
	}

	user := auth.User
	s.mu.Lock()
	s.token = auth.Token
	s.user = &user
	s.mu.Unlock()

	if err := s.store.Save(auth.Token); err != nil {
		// The in-memory session is installed and usable; only restart
		// restoration is affected.
		slog.Warn("failed to persist session token", "err", err)
	}

	return nil
}

// Logout unconditionally clears the token and profile from memory and
// durable storage. It never fails and makes no server call.
func (s *Session) Logout() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if err := s.store.Clear(); err != nil {
		slog.Warn("failed to clear persisted token", "err", err)
	}
}

// Token returns the current bearer token, "" when unauthenticated.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the authenticated profile. ok is false when no profile is
// held, which includes restored sessions that have not logged in again.
func (s *Session) User() (UserProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return UserProfile{}, false
	}
	return *s.user, true
}

// Authenticated reports whether a token is currently held.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// get performs an authenticated GET and decodes the response into target.
func (s *Session) get(ctx context.Context, path string, target any) *APIError {
	token := s.Token()
	resp, apiErr := s.client.do(ctx, http.MethodGet, path, nil, token)
	if apiErr != nil {
		s.invalidateToken(token, apiErr)
		return apiErr
	}
	return decodeJSON(resp, target)
}

// post performs an authenticated POST and decodes the response into target,
// which may be nil.
func (s *Session) post(ctx context.Context, path string, body, target any) *APIError {
	token := s.Token()
	resp, apiErr := s.client.do(ctx, http.MethodPost, path, body, token)
	if apiErr != nil {
		s.invalidateToken(token, apiErr)
		return apiErr
	}
	return decodeJSON(resp, target)
}

// invalidateToken destroys the session after the gateway rejected its bearer
// token. The token that made the failing request is compared against the
// current one, so a concurrent re-login is never wiped by a straggling
// response for the old token.
func (s *Session) invalidateToken(token string, apiErr *APIError) {
	if apiErr.Kind != KindAuth || token == "" {
		return
	}

	s.mu.Lock()
	if s.token != token {
		s.mu.Unlock()
		return
	}
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if err := s.store.Clear(); err != nil {
		slog.Warn("failed to clear persisted token", "err", err)
	}
}
