package shipengine

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// RequestOption customizes a single call.
type RequestOption func(*requestOptions)

type requestOptions struct {
	overrides      Overrides
	idempotencyKey string
}

func collectRequestOptions(opts []RequestOption) requestOptions {
	var ro requestOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&ro)
		}
	}
	return ro
}

// WithOverrides merges o onto the request overrides collected so far.
// Set fields of o replace earlier values.
func WithOverrides(o Overrides) RequestOption {
	return func(ro *requestOptions) {
		if o.APIKey.IsSet() {
			ro.overrides.APIKey = o.APIKey
		}
		if o.BaseURL.IsSet() {
			ro.overrides.BaseURL = o.BaseURL
		}
		if o.Retries.IsSet() {
			ro.overrides.Retries = o.Retries
		}
		if o.Timeout.IsSet() {
			ro.overrides.Timeout = o.Timeout
		}
		if o.ConnectTimeout.IsSet() {
			ro.overrides.ConnectTimeout = o.ConnectTimeout
		}
		if o.PageSize.IsSet() {
			ro.overrides.PageSize = o.PageSize
		}
		if o.Logger.IsSet() {
			ro.overrides.Logger = o.Logger
		}
	}
}

// WithAPIKey overrides the API key for one call.
func WithAPIKey(key string) RequestOption {
	return func(ro *requestOptions) { ro.overrides.APIKey = Some(key) }
}

// WithBaseURL overrides the base URL for one call.
func WithBaseURL(u string) RequestOption {
	return func(ro *requestOptions) { ro.overrides.BaseURL = Some(u) }
}

// WithRetries overrides the rate limit retry budget for one call.
func WithRetries(n int) RequestOption {
	return func(ro *requestOptions) { ro.overrides.Retries = Some(n) }
}

// WithTimeout overrides the total deadline for one call.
func WithTimeout(d time.Duration) RequestOption {
	return func(ro *requestOptions) { ro.overrides.Timeout = Some(d) }
}

// WithConnectTimeout overrides the connection deadline for one call.
func WithConnectTimeout(d time.Duration) RequestOption {
	return func(ro *requestOptions) { ro.overrides.ConnectTimeout = Some(d) }
}

// WithPageSize overrides the default page size for one list call.
func WithPageSize(n int) RequestOption {
	return func(ro *requestOptions) { ro.overrides.PageSize = Some(n) }
}

// WithLogger overrides the logger for one call. A nil logger disables logging.
func WithLogger(l *zerolog.Logger) RequestOption {
	return func(ro *requestOptions) { ro.overrides.Logger = Some(l) }
}

// WithIdempotencyKey sends key in the Idempotency-Key header.
func WithIdempotencyKey(key string) RequestOption {
	return func(ro *requestOptions) { ro.idempotencyKey = key }
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithHTTPClient replaces the client built from the configuration.
// The supplied client is used for every call, including those with a
// different connect timeout. c itself is not modified; the executor uses
// a copy whose transport adds request logging.
func WithHTTPClient(c *http.Client) ExecutorOption {
	return func(e *Executor) {
		if c != nil {
			e.custom = withLogging(c)
		}
	}
}

// WithRetryBackoff sets the base delay between rate limited attempts when
// the response carries no Retry-After header. The delay doubles per attempt.
func WithRetryBackoff(d time.Duration) ExecutorOption {
	return func(e *Executor) { e.backoff = d }
}

// WithRateLimiter makes every attempt wait on l before it is sent.
func WithRateLimiter(l *rate.Limiter) ExecutorOption {
	return func(e *Executor) { e.limiter = l }
}

// WithUserAgent replaces the User-Agent header value.
func WithUserAgent(ua string) ExecutorOption {
	return func(e *Executor) { e.userAgent = ua }
}
