package apierr_test

// Coverage Notes:
// - Sentinel identity and distinctness with errors.Is.
// - FromStatus classification for every mapped status family.

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/alnah/go-promptcraft/internal/apierr"
)

var allSentinels = []error{
	apierr.ErrRateLimit,
	apierr.ErrQuotaExceeded,
	apierr.ErrTimeout,
	apierr.ErrAuthFailed,
	apierr.ErrBadRequest,
	apierr.ErrMalformedResponse,
}

// ---------------------------------------------------------------------------
// TestSentinelErrorDistinct - sentinels are distinct from each other
// ---------------------------------------------------------------------------

func TestSentinelErrorDistinct(t *testing.T) {
	t.Parallel()

	for i, a := range allSentinels {
		wrapped := fmt.Errorf("some context: %w", a)
		if !errors.Is(wrapped, a) {
			t.Errorf("errors.Is(wrapped, %v) = false, want true", a)
		}
		for j, b := range allSentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("errors.Is(%v, %v) = true, want false", a, b)
			}
		}
	}
}

// ---------------------------------------------------------------------------
// TestFromStatus - HTTP status codes map onto sentinels
// ---------------------------------------------------------------------------

func TestFromStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		code    int
		message string
		want    error
	}{
		{"rate limit", http.StatusTooManyRequests, "slow down", apierr.ErrRateLimit},
		{"quota via 429", http.StatusTooManyRequests, "You exceeded your current quota", apierr.ErrQuotaExceeded},
		{"billing via 429", http.StatusTooManyRequests, "check your billing details", apierr.ErrQuotaExceeded},
		{"payment required", http.StatusPaymentRequired, "", apierr.ErrQuotaExceeded},
		{"unauthorized", http.StatusUnauthorized, "bad key", apierr.ErrAuthFailed},
		{"request timeout", http.StatusRequestTimeout, "", apierr.ErrTimeout},
		{"gateway timeout", http.StatusGatewayTimeout, "", apierr.ErrTimeout},
		{"server error", http.StatusInternalServerError, "boom", apierr.ErrTimeout},
		{"unavailable", http.StatusServiceUnavailable, "", apierr.ErrTimeout},
		{"bad request", http.StatusBadRequest, "missing text", apierr.ErrBadRequest},
		{"not found", http.StatusNotFound, "", apierr.ErrBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := apierr.FromStatus(tt.code, tt.message)
			if !errors.Is(err, tt.want) {
				t.Errorf("FromStatus(%d, %q) = %v, want %v", tt.code, tt.message, err, tt.want)
			}
		})
	}
}

func TestFromStatus_Success(t *testing.T) {
	t.Parallel()

	for _, code := range []int{http.StatusOK, http.StatusCreated, http.StatusNoContent} {
		if err := apierr.FromStatus(code, "ignored"); err != nil {
			t.Errorf("FromStatus(%d) = %v, want nil", code, err)
		}
	}
}

func TestFromStatus_EmptyMessageUsesStatusText(t *testing.T) {
	t.Parallel()

	err := apierr.FromStatus(http.StatusUnauthorized, "")
	if !strings.Contains(err.Error(), "Unauthorized") {
		t.Errorf("error %q should contain status text", err)
	}
}
