package shipengine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Request headers.
const (
	HeaderAPIKey         = "API-Key"
	HeaderIdempotencyKey = "Idempotency-Key"
)

const defaultRetryBackoff = time.Second

// Executor sends requests to ShipEngine using a base Configuration.
// It is safe for concurrent use.
type Executor struct {
	config    Configuration
	custom    *http.Client
	backoff   time.Duration
	limiter   *rate.Limiter
	userAgent string

	once   sync.Once
	client *http.Client
}

// NewExecutor returns an Executor for cfg.
func NewExecutor(cfg Configuration, opts ...ExecutorOption) *Executor {
	e := &Executor{
		config:    cfg,
		backoff:   defaultRetryBackoff,
		userAgent: UserAgent(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the base configuration.
func (e *Executor) Config() Configuration {
	return e.config
}

// Effective returns the configuration a call with opts would use.
func (e *Executor) Effective(opts ...RequestOption) (Configuration, error) {
	ro := collectRequestOptions(opts)
	return e.config.Merge(ro.overrides)
}

// Get sends a GET with params as the query string.
func (e *Executor) Get(ctx context.Context, path string, params Params, opts ...RequestOption) (Body, error) {
	return e.send(ctx, http.MethodGet, path, params, opts)
}

// Post sends a POST with params as the JSON body.
func (e *Executor) Post(ctx context.Context, path string, params Params, opts ...RequestOption) (Body, error) {
	return e.send(ctx, http.MethodPost, path, params, opts)
}

// Put sends a PUT with params as the JSON body.
func (e *Executor) Put(ctx context.Context, path string, params Params, opts ...RequestOption) (Body, error) {
	return e.send(ctx, http.MethodPut, path, params, opts)
}

// Patch sends a PATCH with params as the JSON body.
func (e *Executor) Patch(ctx context.Context, path string, params Params, opts ...RequestOption) (Body, error) {
	return e.send(ctx, http.MethodPatch, path, params, opts)
}

// Delete sends a DELETE with params as the query string.
func (e *Executor) Delete(ctx context.Context, path string, params Params, opts ...RequestOption) (Body, error) {
	return e.send(ctx, http.MethodDelete, path, params, opts)
}

func (e *Executor) send(ctx context.Context, method, path string, params Params, opts []RequestOption) (Body, error) {
	var body Body
	if err := e.Do(ctx, method, path, params, &body, opts...); err != nil {
		return nil, err
	}
	if body == nil {
		body = Body{}
	}
	return body, nil
}

// Do sends one logical request and decodes a 2xx JSON response into out.
// in is the JSON body for POST, PUT and PATCH and must be a map for the
// other methods. out may be nil to discard the response, or a *[]byte
// to receive the raw body.
//
// Rate limited requests are resent according to the retry policy. Failed
// responses are returned as *Error. Failures without a usable response
// are returned as *TransportError, or as a timeout *Error when the
// configured deadline passed.
func (e *Executor) Do(ctx context.Context, method, path string, in, out any, opts ...RequestOption) error {
	method = strings.ToUpper(method)
	ro := collectRequestOptions(opts)

	cfg, err := e.config.Merge(ro.overrides)
	if err != nil {
		return err
	}

	log := zerolog.Nop()
	if cfg.Logger() != nil {
		log = *cfg.Logger()
	}

	target, payload, err := buildTarget(cfg.BaseURL(), method, path, in)
	if err != nil {
		return &TransportError{Op: "request", Method: method, URL: path, Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout())
	defer cancel()
	ctx = withLogger(ctx, cfg.Logger())

	client, release := e.clientFor(cfg)
	defer release()

	req, err := e.newRequest(ctx, method, target, payload, cfg, ro.idempotencyKey)
	if err != nil {
		return &TransportError{Op: "request", Method: method, URL: target, Err: err}
	}

	if err := e.wait(ctx); err != nil {
		return e.failure(ctx, "send", method, target, err)
	}

	rc := e.retryClient(client, method, path, cfg, log)
	resp, err := rc.Do(req)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return e.failure(ctx, "send", method, target, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return e.failure(ctx, "read", method, target, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := responseError(resp.StatusCode, data, cfg)
		log.Debug().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Str("kind", apiErr.Kind.String()).
			Str("code", string(apiErr.Code)).
			Str("request_id", apiErr.RequestID).
			Msg("ShipEngine returned an error")
		return apiErr
	}

	if raw, ok := out.(*[]byte); ok {
		*raw = data
		return nil
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &TransportError{Op: "decode", Method: method, URL: target, Err: err}
	}
	return nil
}

func (e *Executor) newRequest(ctx context.Context, method, target string, payload []byte, cfg Configuration, idempotencyKey string) (*retryablehttp.Request, error) {
	var body any
	if payload != nil {
		body = payload
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set(HeaderAPIKey, cfg.APIKey())
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", e.userAgent)
	if idempotencyKey != "" {
		req.Header.Set(HeaderIdempotencyKey, idempotencyKey)
	}
	return req, nil
}

// retryClient wraps client with the rate limit policy and the merged
// retry budget of one call.
func (e *Executor) retryClient(client *http.Client, method, path string, cfg Configuration, log zerolog.Logger) *retryablehttp.Client {
	attempts := maxAttempts(method, cfg.Retries())
	attempt := 0

	return &retryablehttp.Client{
		HTTPClient: client,
		RetryMax:   attempts - 1,
		CheckRetry: func(ctx context.Context, resp *http.Response, err error) (bool, error) {
			attempt++
			if err != nil || resp.StatusCode != http.StatusTooManyRequests || attempt >= attempts {
				return false, nil
			}
			return fitsDeadline(ctx, retryDelay(resp, e.backoff, attempt)), nil
		},
		Backoff: func(_, _ time.Duration, n int, resp *http.Response) time.Duration {
			delay := retryDelay(resp, e.backoff, n+1)
			log.Warn().
				Str("method", method).
				Str("path", path).
				Int("attempt", n+1).
				Int("retries", cfg.Retries()).
				Dur("delay", delay).
				Msg("Rate limited by ShipEngine, retrying")
			return delay
		},
		PrepareRetry: func(req *http.Request) error {
			req.Header.Set(RetriesHeader, strconv.Itoa(cfg.Retries()))
			return e.wait(req.Context())
		},
		ErrorHandler: retryablehttp.PassthroughErrorHandler,
	}
}

// wait blocks on the rate limiter. A wait that cannot finish before the
// call's deadline is reported as a deadline error straight away.
func (e *Executor) wait(ctx context.Context) error {
	if e.limiter == nil {
		return nil
	}
	err := e.limiter.Wait(ctx)
	if err == nil || ctx.Err() != nil {
		return err
	}
	if _, ok := ctx.Deadline(); ok {
		return fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
	}
	return err
}

// clientFor returns the HTTP client for cfg and a release func.
// Calls keeping the base connect timeout share one lazily built client.
func (e *Executor) clientFor(cfg Configuration) (*http.Client, func()) {
	if e.custom != nil {
		return e.custom, func() {}
	}
	if cfg.ConnectTimeout() == e.config.ConnectTimeout() {
		e.once.Do(func() {
			e.client = newHTTPClient(e.config.ConnectTimeout())
		})
		return e.client, func() {}
	}
	c := newHTTPClient(cfg.ConnectTimeout())
	return c, c.CloseIdleConnections
}

// failure converts an error without a response. Expiry of the call's
// own deadline becomes a timeout *Error.
func (e *Executor) failure(ctx context.Context, op, method, target string, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return NewTimeoutError(err)
	}
	return &TransportError{Op: op, Method: method, URL: target, Err: err}
}
