package storefront

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error represents a business rejection from a backend service.
type Error struct {
	// StatusCode is the HTTP status code.
	StatusCode int `json:"-"`
	// Message is the server-provided error message.
	Message string `json:"error"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("storefront: %s (HTTP %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("storefront: request rejected (HTTP %d)", e.StatusCode)
}

// IsNotFound returns true if the target resource does not exist or is no
// longer available (e.g. a marketplace listing already sold or canceled).
func (e *Error) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized returns true for rejected credentials.
func (e *Error) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsForbidden returns true when the account is not allowed to act,
// e.g. a banned account attempting to sign in.
func (e *Error) IsForbidden() bool {
	return e.StatusCode == http.StatusForbidden
}

// IsValidation returns true for rejected request payloads, including
// insufficient funds and duplicate registrations.
func (e *Error) IsValidation() bool {
	return e.StatusCode == http.StatusBadRequest
}

// parseError converts a non-2xx response into an *Error. The services
// respond with {"error": "..."}; anything unparseable keeps an empty
// message and the caller's fallback text applies.
func parseError(statusCode int, body []byte) error {
	apiErr := &Error{StatusCode: statusCode}
	if len(body) > 0 {
		_ = json.Unmarshal(body, apiErr)
	}
	return apiErr
}
