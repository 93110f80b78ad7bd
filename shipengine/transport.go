package shipengine

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// sensitiveParams are query parameter names redacted from logged URLs.
// Matched case-insensitively as substrings.
var sensitiveParams = []string{
	"api_key",
	"apikey",
	"token",
	"password",
	"secret",
	"key",
	"credential",
}

type loggerKey struct{}

// withLogger attaches the configured request logger to ctx.
// A nil logger leaves ctx untouched and the round trip unlogged.
func withLogger(ctx context.Context, l *zerolog.Logger) context.Context {
	if l == nil {
		return ctx
	}
	return context.WithValue(ctx, loggerKey{}, l)
}

func loggerFrom(ctx context.Context) *zerolog.Logger {
	l, _ := ctx.Value(loggerKey{}).(*zerolog.Logger)
	return l
}

// loggingTransport logs one line per round trip to the logger carried by
// the request context. Headers and bodies are never logged.
type loggingTransport struct {
	base http.RoundTripper
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	log := loggerFrom(req.Context())
	if log == nil {
		return t.base.RoundTrip(req)
	}

	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		log.Debug().
			Str("method", req.Method).
			Str("url", sanitizeURL(req.URL)).
			Dur("duration", duration).
			Err(err).
			Msg("ShipEngine request failed")
		return nil, err
	}

	event := log.Debug()
	if resp.StatusCode >= 400 {
		event = log.Warn()
	}
	event.
		Str("method", req.Method).
		Str("url", sanitizeURL(req.URL)).
		Int("status", resp.StatusCode).
		Int64("duration_ms", duration.Milliseconds()).
		Msg("ShipEngine request")

	return resp, nil
}

// newHTTPClient builds a client whose dialer and TLS handshake are bound
// by connectTimeout. The total deadline comes from the request context.
func newHTTPClient(connectTimeout time.Duration) *http.Client {
	dialer := &net.Dialer{
		Timeout:   connectTimeout,
		KeepAlive: 30 * time.Second,
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = dialer.DialContext
	transport.TLSHandshakeTimeout = connectTimeout
	transport.MaxIdleConnsPerHost = 10

	return &http.Client{
		Transport: &loggingTransport{base: transport},
	}
}

// withLogging returns a copy of c whose transport logs round trips.
func withLogging(c *http.Client) *http.Client {
	base := c.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	if _, ok := base.(*loggingTransport); ok {
		return c
	}
	wrapped := *c
	wrapped.Transport = &loggingTransport{base: base}
	return &wrapped
}

// sanitizeURL removes sensitive query parameter values before logging.
func sanitizeURL(u *url.URL) string {
	if u == nil {
		return ""
	}

	q := u.Query()
	for param := range q {
		if isSensitiveParam(param) {
			q.Set(param, "[REDACTED]")
		}
	}

	safe := *u
	safe.User = nil
	safe.RawQuery = q.Encode()
	return safe.String()
}

func isSensitiveParam(param string) bool {
	lower := strings.ToLower(param)
	for _, sensitive := range sensitiveParams {
		if strings.Contains(lower, sensitive) {
			return true
		}
	}
	return false
}
