// Package apierr provides shared error sentinels for the remote correction
// clients. Provider-specific failures are classified into these sentinels at
// the adapter boundary, so callers never inspect HTTP details.
//
// Adapters wrap with fmt.Errorf("%s: %w", msg, sentinel); callers check with
// errors.Is(err, apierr.ErrTimeout) etc. There is no retry helper: remote
// correction makes a single attempt and falls back locally.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel errors for API interaction failures.
var (
	// ErrRateLimit indicates the API rate limit was exceeded.
	ErrRateLimit = errors.New("rate limit exceeded")

	// ErrQuotaExceeded indicates the API quota was exceeded (billing issue).
	ErrQuotaExceeded = errors.New("quota exceeded")

	// ErrTimeout indicates a request timed out or the server was unavailable.
	ErrTimeout = errors.New("request timeout")

	// ErrAuthFailed indicates API authentication failed (invalid key).
	ErrAuthFailed = errors.New("authentication failed")

	// ErrBadRequest indicates a client error (4xx) that is not otherwise classified.
	ErrBadRequest = errors.New("bad request")

	// ErrMalformedResponse indicates a response that could not be used:
	// undecodable, empty, or implausible for the request.
	ErrMalformedResponse = errors.New("malformed response")
)

// FromStatus maps an HTTP status code and provider message to a sentinel.
// Returns nil for 2xx codes. Unknown codes wrap ErrBadRequest.
func FromStatus(code int, message string) error {
	if code >= 200 && code < 300 {
		return nil
	}
	if message == "" {
		message = http.StatusText(code)
	}

	switch code {
	case http.StatusTooManyRequests:
		// Distinguish a temporary rate limit from an exhausted quota.
		lower := strings.ToLower(message)
		if strings.Contains(lower, "quota") || strings.Contains(lower, "billing") {
			return fmt.Errorf("%s: %w", message, ErrQuotaExceeded)
		}
		return fmt.Errorf("%s: %w", message, ErrRateLimit)
	case http.StatusPaymentRequired:
		return fmt.Errorf("%s: %w", message, ErrQuotaExceeded)
	case http.StatusUnauthorized:
		return fmt.Errorf("%s: %w", message, ErrAuthFailed)
	case http.StatusRequestTimeout, http.StatusGatewayTimeout,
		http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
		return fmt.Errorf("%s: %w", message, ErrTimeout)
	default:
		return fmt.Errorf("status %d: %s: %w", code, message, ErrBadRequest)
	}
}
