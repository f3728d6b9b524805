package banksdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/kumbara-app/kumbara/pkg/httpx"
)

// ErrorKind classifies a failed operation so callers can decide how to react
// without inspecting HTTP details.
type ErrorKind string

const (
	// KindAuth covers bad credentials and invalid or expired tokens.
	KindAuth ErrorKind = "auth"
	// KindValidation covers business rules the server rejected
	// (insufficient balance, malformed IBAN, unknown account).
	KindValidation ErrorKind = "validation"
	// KindNetwork means no response reached the client at all.
	KindNetwork ErrorKind = "network"
	// KindUnexpected is everything else, including malformed response bodies.
	KindUnexpected ErrorKind = "unexpected"
)

// genericMessage is shown when the server supplies no displayable explanation.
const genericMessage = "Something went wrong, please try again"

// networkMessage is shown when the server could not be reached at all.
const networkMessage = "Could not reach the bank, check your connection"

// APIError is the single error shape for every failed call. It is shared
// with the ledger service, whose handlers write the same wire format.
type APIError struct {
	// Kind classifies the failure for callers.
	Kind ErrorKind `json:"-"`

	// Status is the HTTP status code, 0 for network failures.
	Status int `json:"-"`

	// Code is a stable machine-readable error code.
	Code string `json:"error"`

	// Message is safe to display to the user verbatim.
	Message string `json:"message"`

	cause error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying transport or decoding error, if any.
func (e *APIError) Unwrap() error { return e.cause }

// WriteError writes this error to an HTTP response writer. Used by the
// ledger service handlers so client and server agree on the wire format.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, e.Status, map[string]string{
		"error":   e.Code,
		"message": e.Message,
	})
}

// AsAPIError extracts an *APIError from err, if there is one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// kindForStatus maps an HTTP status to an error kind.
func kindForStatus(status int) ErrorKind {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return KindAuth
	case status == http.StatusBadRequest ||
		status == http.StatusNotFound ||
		status == http.StatusUnprocessableEntity:
		return KindValidation
	default:
		return KindUnexpected
	}
}

// newServerError builds a predefined error the ledger handlers can write.
func newServerError(status int, code, message string) *APIError {
	return &APIError{
		Kind:    kindForStatus(status),
		Status:  status,
		Code:    code,
		Message: message,
	}
}

// Predefined server errors. The ledger service returns these; the SDK parses
// them back into the same values' shape.
var (
	ErrInvalidRequest     = newServerError(http.StatusBadRequest, "invalid_request", "The request is malformed or missing required parameters")
	ErrInvalidCredentials = newServerError(http.StatusUnauthorized, "invalid_credentials", "Invalid credentials")
	ErrInvalidToken       = newServerError(http.StatusUnauthorized, "invalid_token", "The access token is missing, invalid or expired")
	ErrEmailRegistered    = newServerError(http.StatusBadRequest, "email_registered", "Email already registered")
	ErrAmountNotPositive  = newServerError(http.StatusBadRequest, "invalid_amount", "Amount must be positive")
	ErrInsufficientFunds  = newServerError(http.StatusBadRequest, "insufficient_funds", "Insufficient funds")
	ErrAccountNotFound    = newServerError(http.StatusNotFound, "account_not_found", "Account not found")
	ErrInvalidBillType    = newServerError(http.StatusBadRequest, "invalid_bill_type", "Unknown bill type")
	ErrServerError        = newServerError(http.StatusInternalServerError, "server_error", "Internal server error")
)

// networkError wraps a transport failure where no response arrived.
func networkError(err error) *APIError {
	return &APIError{
		Kind:    KindNetwork,
		Code:    "network_error",
		Message: networkMessage,
		cause:   err,
	}
}

// unexpectedError wraps a malformed or undecodable response.
func unexpectedError(err error) *APIError {
	return &APIError{
		Kind:    KindUnexpected,
		Code:    "unexpected_error",
		Message: genericMessage,
		cause:   err,
	}
}

// validationError builds a client-side rejection that never left the process.
func validationError(message string) *APIError {
	return &APIError{
		Kind:    KindValidation,
		Status:  http.StatusBadRequest,
		Code:    "invalid_input",
		Message: message,
	}
}

// parseErrorResponse normalizes a non-2xx response body into an *APIError.
// The server-supplied message is preferred; absent or unreadable payloads
// fall back to a fixed generic message.
func parseErrorResponse(status int, body []byte) *APIError {
	apiErr := &APIError{
		Kind:    kindForStatus(status),
		Status:  status,
		Code:    "server_error",
		Message: genericMessage,
	}

	var wire struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &wire); err == nil {
		if wire.Error != "" {
			apiErr.Code = wire.Error
		}
		if wire.Message != "" {
			apiErr.Message = wire.Message
		}
	}

	return apiErr
}
