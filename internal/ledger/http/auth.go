package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/kumbara-app/kumbara/internal/ledger/service"
	"github.com/kumbara-app/kumbara/pkg/banksdk"
	"github.com/kumbara-app/kumbara/pkg/httpx"
)

type AuthHandler struct {
	AuthService *service.AuthService
}

// HandleLogin verifies credentials and returns a bearer token with the
// user's profile.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		banksdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		banksdk.ErrInvalidRequest.WriteError(w)
		return
	}

	user, token, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, banksdk.AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    toProfile(user),
	})
}

// HandleRegister creates a user, opens their welcome account and returns a
// bearer token.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req banksdk.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		banksdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" ||
		strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		banksdk.ErrInvalidRequest.WriteError(w)
		return
	}

	user, token, err := h.AuthService.Register(r.Context(), service.RegisterParams{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusCreated, banksdk.AuthResponse{
		Message: "User registered successfully",
		Token:   token,
		User:    toProfile(user),
	})
}
