package shipengine

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// RetriesHeader carries the configured retry budget on retried attempts.
const RetriesHeader = "Retries"

const maxBackoff = 30 * time.Second

// retryOnRateLimit lists the methods that are resent after an HTTP 429.
// A 429 is rejected before processing, so POST is safe to resend.
var retryOnRateLimit = map[string]bool{
	http.MethodGet:     true,
	http.MethodDelete:  true,
	http.MethodHead:    true,
	http.MethodOptions: true,
	http.MethodPut:     true,
	http.MethodPost:    true,
	http.MethodPatch:   false,
}

// maxAttempts returns the total number of attempts allowed for method.
func maxAttempts(method string, retries int) int {
	if retries < 0 || !retryOnRateLimit[strings.ToUpper(method)] {
		return 1
	}
	return retries + 1
}

// retryDelay returns how long to wait before the attempt following a 429.
// Retry-After wins when present; otherwise base doubles per attempt.
func retryDelay(resp *http.Response, base time.Duration, attempt int) time.Duration {
	if d := parseRetryAfter(resp); d > 0 {
		return d
	}
	if base <= 0 {
		return 0
	}
	delay := base
	for i := 1; i < attempt && delay < maxBackoff; i++ {
		delay *= 2
	}
	return min(delay, maxBackoff)
}

// parseRetryAfter reads Retry-After as seconds or an HTTP date.
// It returns 0 when the header is missing or invalid.
func parseRetryAfter(resp *http.Response) time.Duration {
	if resp == nil {
		return 0
	}
	header := strings.TrimSpace(resp.Header.Get("Retry-After"))
	if header == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(header); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}

	if at, err := http.ParseTime(header); err == nil {
		if delay := time.Until(at); delay > 0 {
			return delay
		}
	}

	return 0
}

// fitsDeadline reports whether waiting d still leaves time before ctx expires.
func fitsDeadline(ctx context.Context, d time.Duration) bool {
	deadline, ok := ctx.Deadline()
	if !ok {
		return true
	}
	return time.Until(deadline) > d
}
