package gymsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error codes written by the server.
const (
	ErrorCodeInvalidRequest    = "invalid_request"
	ErrorCodeNotFound          = "not_found"
	ErrorCodeExpiredToken      = "expired_token"
	ErrorCodeOverdueFee        = "overdue_fee"
	ErrorCodeServerError       = "server_error"
	ErrorCodeInvalidToken      = "invalid_token"
	ErrorCodeInsufficientScope = "insufficient_scope"
	ErrorCodeRateLimitExceeded = "rate_limit_exceeded"
	ErrorCodeWrongScanner      = "wrong_scanner"
)

// APIError is a non-2xx response from the service.
type APIError struct {
	StatusCode int `json:"-"`

	// Code is the machine-readable error code (e.g. "overdue_fee")
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// ErrInsufficientScope is returned by a Session before any request is made
// when its declared scopes cannot satisfy the endpoint.
var ErrInsufficientScope = errors.New("gymsdk: session lacks the required scope")

func hasCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// IsNotFound reports whether err is a 404 from the service.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsExpiredToken reports whether a check-in failed on an expired QR token.
func IsExpiredToken(err error) bool { return hasCode(err, ErrorCodeExpiredToken) }

// IsWrongScanner reports whether a QR code was presented to the wrong side:
// a member code scanned by its own member, or an entrance code at the desk.
func IsWrongScanner(err error) bool { return hasCode(err, ErrorCodeWrongScanner) }

// IsOverdueFee reports whether a check-in was refused because dues are not current.
func IsOverdueFee(err error) bool { return hasCode(err, ErrorCodeOverdueFee) }

// parseErrorResponse turns an error response into an *APIError. Returns nil
// for 2xx.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
