package shipengine

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newTestExecutor(t *testing.T, handler http.HandlerFunc, o Overrides, opts ...ExecutorOption) *Executor {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	o.BaseURL = Some(server.URL)
	cfg, err := NewConfiguration("test-key", o)
	require.NoError(t, err)

	opts = append([]ExecutorOption{WithRetryBackoff(time.Millisecond)}, opts...)
	return NewExecutor(cfg, opts...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func TestExecutorGetSendsHeadersAndQuery(t *testing.T) {
	e := newTestExecutor(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/labels", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get(HeaderAPIKey))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.True(t, strings.HasPrefix(r.Header.Get("User-Agent"), "shipctl/"))
		assert.Empty(t, r.Header.Get(HeaderIdempotencyKey))
		assert.Empty(t, r.Header.Get(RetriesHeader))

		q := r.URL.Query()
		assert.Equal(t, "completed", q.Get("label_status"))
		assert.Equal(t, []string{"se-1", "se-2"}, q["carrier_id"])
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "true", q.Get("batch"))
		assert.False(t, q.Has("missing"))

		body, _ := io.ReadAll(r.Body)
		assert.Empty(t, body)

		writeJSON(w, http.StatusOK, map[string]any{"labels": []any{}, "page": 2})
	}, Overrides{})

	body, err := e.Get(context.Background(), "/v1/labels", Params{
		"label_status": "completed",
		"carrier_id":   []string{"se-1", "se-2"},
		"page":         2,
		"batch":        true,
		"missing":      nil,
	})
	require.NoError(t, err)
	assert.Equal(t, float64(2), body["page"])
}

func TestExecutorPostSendsJSONBody(t *testing.T) {
	e := newTestExecutor(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "abc-123", r.Header.Get(HeaderIdempotencyKey))

		var got map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "se-1", got["carrier_id"])
		assert.NotContains(t, got, "idempotency_key")

		writeJSON(w, http.StatusOK, map[string]any{"label_id": "se-label"})
	}, Overrides{})

	body, err := e.Post(context.Background(), "/v1/labels", Params{"carrier_id": "se-1"},
		WithIdempotencyKey("abc-123"))
	require.NoError(t, err)
	assert.Equal(t, "se-label", body["label_id"])
}

func TestExecutorOmitsEmptyBody(t *testing.T) {
	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodPatch} {
		t.Run(method, func(t *testing.T) {
			e := newTestExecutor(t, func(w http.ResponseWriter, r *http.Request) {
				body, _ := io.ReadAll(r.Body)
				assert.Empty(t, body)
				w.WriteHeader(http.StatusNoContent)
			}, Overrides{})

			err := e.Do(context.Background(), method, "/v1/labels/se-1/void", Params{}, nil)
			require.NoError(t, err)
		})
	}
}

func TestExecutorEmptySuccessBody(t *testing.T) {
	e := newTestExecutor(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, Overrides{})

	body, err := e.Delete(context.Background(), "/v1/tags/old", nil)
	require.NoError(t, err)
	assert.NotNil(t, body)
	assert.Empty(t, body)
}

func TestExecutorDecodesArrays(t *testing.T) {
	e := newTestExecutor(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{{"status": "verified"}, {"status": "error"}})
	}, Overrides{})

	var out []Body
	err := e.Do(context.Background(), http.MethodPost, "/v1/addresses/validate", []Params{{"city_locality": "Austin"}}, &out)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "error", out[1]["status"])
}

func TestExecutorRetriesRateLimit(t *testing.T) {
	var attempts atomic.Int32
	e := newTestExecutor(t, func(w http.ResponseWriter, r *http.Request) {
		n := attempts.Add(1)
		if n == 1 {
			assert.Empty(t, r.Header.Get(RetriesHeader))
			writeJSON(w, http.StatusTooManyRequests, map[string]any{})
			return
		}
		assert.Equal(t, "1", r.Header.Get(RetriesHeader))
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}, Overrides{Retries: Some(1)})

	body, err := e.Get(context.Background(), "/v1/carriers", nil)
	require.NoError(t, err)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, int32(2), attempts.Load())
}

func TestExecutorRetriesPostOnRateLimit(t *testing.T) {
	var attempts atomic.Int32
	e := newTestExecutor(t, func(w http.ResponseWriter, r *http.Request) {
		var got map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "se-1", got["rate_id"], "body must be resent on every attempt")

		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}, Overrides{Retries: Some(2)})

	_, err := e.Post(context.Background(), "/v1/labels", Params{"rate_id": "se-1"})
	require.NoError(t, err)
	assert.Equal(t, int32(3), attempts.Load())
}

func TestExecutorRateLimitWithoutRetries(t *testing.T) {
	var attempts atomic.Int32
	e := newTestExecutor(t, func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}, Overrides{Retries: Some(0)})

	_, err := e.Get(context.Background(), "/v1/carriers", nil)
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, KindRateLimit, apiErr.Kind)
	assert.Equal(t, 0, apiErr.Retries)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, "You have exceeded the rate limit.", apiErr.Message)
	assert.Equal(t, int32(1), attempts.Load())
}

func TestExecutorRateLimitExhausted(t *testing.T) {
	var attempts atomic.Int32
	e := newTestExecutor(t, func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		writeJSON(w, http.StatusTooManyRequests, map[string]any{
			"request_id": "req-429",
			"errors": []any{map[string]any{
				"error_source": "shipengine",
				"error_type":   "system",
				"error_code":   "rate_limit_exceeded",
				"message":      "Too many requests.",
			}},
		})
	}, Overrides{Retries: Some(2)})

	_, err := e.Get(context.Background(), "/v1/carriers", nil)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, KindRateLimit, apiErr.Kind)
	assert.Equal(t, 2, apiErr.Retries)
	assert.Equal(t, "Too many requests.", apiErr.Message)
	assert.Equal(t, "req-429", apiErr.RequestID)
	assert.Equal(t, int32(3), attempts.Load())
}

func TestExecutorPatchIsNotRetried(t *testing.T) {
	var attempts atomic.Int32
	e := newTestExecutor(t, func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}, Overrides{Retries: Some(3)})

	_, err := e.Patch(context.Background(), "/v1/insurance/shipsurance/add_funds", Params{"amount": 10})

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, KindRateLimit, apiErr.Kind)
	assert.Equal(t, 3, apiErr.Retries)
	assert.Equal(t, int32(1), attempts.Load())
}

func TestExecutorDoesNotRetryOtherStatuses(t *testing.T) {
	var attempts atomic.Int32
	e := newTestExecutor(t, func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}, Overrides{Retries: Some(3)})

	_, err := e.Get(context.Background(), "/v1/carriers", nil)
	require.Error(t, err)
	assert.Equal(t, int32(1), attempts.Load())
}

func TestExecutorSecurityError(t *testing.T) {
	e := newTestExecutor(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"request_id": "req-401",
			"errors": []any{map[string]any{
				"error_source": "shipengine",
				"error_type":   "security",
				"error_code":   "unauthorized",
				"message":      "bad key",
			}},
		})
	}, Overrides{})

	_, err := e.Get(context.Background(), "/v1/carriers", nil)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, KindSecurity, apiErr.Kind)
	assert.Equal(t, "bad key", apiErr.Message)
	assert.Equal(t, CodeUnauthorized, apiErr.Code)
	assert.Equal(t, "security", apiErr.Type)
	assert.Equal(t, "req-401", apiErr.RequestID)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.ErrorIs(t, err, ErrSecurity)
}

func TestExecutorErrorTypeIsAuthoritative(t *testing.T) {
	e := newTestExecutor(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusForbidden, map[string]any{
			"errors": []any{map[string]any{
				"error_type": "validation",
				"error_code": "invalid_field_value",
				"message":    "weight is required",
			}},
		})
	}, Overrides{})

	_, err := e.Get(context.Background(), "/v1/rates", nil)
	assert.ErrorIs(t, err, ErrValidation)
	assert.NotErrorIs(t, err, ErrSecurity)
}

func TestExecutorToleratesKeyShapes(t *testing.T) {
	e := newTestExecutor(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"RequestId":"req-shape","Errors":[{"ErrorType":"business_rules","errorCode":"invalid_status","Message":"nope","error-source":"carrier"}]}`)
	}, Overrides{})

	_, err := e.Post(context.Background(), "/v1/batches/se-1/process/labels", nil)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, KindBusinessRules, apiErr.Kind)
	assert.Equal(t, CodeInvalidStatus, apiErr.Code)
	assert.Equal(t, "nope", apiErr.Message)
	assert.Equal(t, "carrier", apiErr.Source)
	assert.Equal(t, "req-shape", apiErr.RequestID)
}

func TestExecutorGenericErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"empty 500", http.StatusInternalServerError, "", "HTTP 500"},
		{"html 502", http.StatusBadGateway, "<html>bad gateway</html>", "HTTP 502"},
		{"no errors array", http.StatusNotFound, `{"request_id":"req-404"}`, "HTTP 404"},
		{"empty errors array", http.StatusBadRequest, `{"errors":[]}`, "HTTP 400"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestExecutor(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}, Overrides{})

			_, err := e.Get(context.Background(), "/v1/labels/se-1", nil)

			var apiErr *Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, KindUnknown, apiErr.Kind)
			assert.Regexp(t, `HTTP \d{3}`, apiErr.Message)
			assert.Equal(t, tt.message, apiErr.Message)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestExecutorMalformedSuccessBody(t *testing.T) {
	e := newTestExecutor(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, `{"labels": [`)
	}, Overrides{})

	_, err := e.Get(context.Background(), "/v1/labels", nil)

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, "decode", transportErr.Op)

	var apiErr *Error
	assert.False(t, errors.As(err, &apiErr))
}

func TestExecutorConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	cfg, err := NewConfiguration("test-key", Overrides{BaseURL: Some(server.URL)})
	require.NoError(t, err)

	_, err = NewExecutor(cfg).Get(context.Background(), "/v1/carriers", nil)

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, "send", transportErr.Op)
	assert.Equal(t, http.MethodGet, transportErr.Method)
}

func TestExecutorTimeout(t *testing.T) {
	e := newTestExecutor(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}, Overrides{})

	start := time.Now()
	_, err := e.Get(context.Background(), "/v1/carriers", nil, WithTimeout(50*time.Millisecond))
	assert.Less(t, time.Since(start), time.Second)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, KindTimeout, apiErr.Kind)
	assert.Equal(t, RateLimitDocsURL, apiErr.URL)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestExecutorCallerCancellation(t *testing.T) {
	e := newTestExecutor(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not be sent")
	}, Overrides{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Get(ctx, "/v1/carriers", nil)

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExecutorOverridesDoNotLeak(t *testing.T) {
	var keys []string
	e := newTestExecutor(t, func(w http.ResponseWriter, r *http.Request) {
		keys = append(keys, r.Header.Get(HeaderAPIKey))
		writeJSON(w, http.StatusOK, map[string]any{})
	}, Overrides{})

	ctx := context.Background()
	_, err := e.Get(ctx, "/v1/carriers", nil, WithAPIKey("one-off"))
	require.NoError(t, err)
	_, err = e.Get(ctx, "/v1/carriers", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"one-off", "test-key"}, keys)
	assert.Equal(t, "test-key", e.Config().APIKey())
}

func TestExecutorInvalidOverrideSendsNothing(t *testing.T) {
	var attempts atomic.Int32
	e := newTestExecutor(t, func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
	}, Overrides{})

	_, err := e.Get(context.Background(), "/v1/carriers", nil, WithTimeout(-1))

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Timeout must be greater than zero.", apiErr.Message)
	assert.Equal(t, int32(0), attempts.Load())
}

func TestExecutorQueryParamsMustBeAMap(t *testing.T) {
	e := newTestExecutor(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not be sent")
	}, Overrides{})

	err := e.Do(context.Background(), http.MethodGet, "/v1/carriers", []string{"x"}, nil)

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, "request", transportErr.Op)
}

func TestExecutorRawBody(t *testing.T) {
	e := newTestExecutor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		io.WriteString(w, "%PDF-1.4")
	}, Overrides{})

	var data []byte
	err := e.Do(context.Background(), http.MethodGet, "/v1/downloads/10/abc/label.pdf", nil, &data)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))
}

func TestExecutorClientReuse(t *testing.T) {
	cfg, err := NewConfiguration("key", Overrides{})
	require.NoError(t, err)
	e := NewExecutor(cfg)

	first, _ := e.clientFor(cfg)
	second, _ := e.clientFor(cfg)
	assert.Same(t, first, second)

	sameConnect, err := cfg.Merge(Overrides{APIKey: Some("other"), Timeout: Some(time.Second)})
	require.NoError(t, err)
	shared, _ := e.clientFor(sameConnect)
	assert.Same(t, first, shared)

	otherConnect, err := cfg.Merge(Overrides{ConnectTimeout: Some(time.Second)})
	require.NoError(t, err)
	dedicated, release := e.clientFor(otherConnect)
	defer release()
	assert.NotSame(t, first, dedicated)
}

func TestExecutorWithHTTPClientAndLimiter(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		writeJSON(w, http.StatusOK, map[string]any{})
	}))
	defer server.Close()

	cfg, err := NewConfiguration("key", Overrides{BaseURL: Some(server.URL)})
	require.NoError(t, err)

	custom := &http.Client{Timeout: 5 * time.Second}
	e := NewExecutor(cfg,
		WithHTTPClient(custom),
		WithRateLimiter(rate.NewLimiter(rate.Inf, 1)),
		WithUserAgent("custom-agent/1.0"),
	)

	client, _ := e.clientFor(cfg)
	assert.NotSame(t, custom, client)
	assert.Equal(t, custom.Timeout, client.Timeout)
	assert.IsType(t, &loggingTransport{}, client.Transport)
	assert.Nil(t, custom.Transport)

	for range 3 {
		_, err := e.Get(context.Background(), "/v1/tags", nil)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), attempts.Load())
}

func TestExecutorLogsWithConfiguredLogger(t *testing.T) {
	var buf strings.Builder
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	e := newTestExecutor(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{})
	}, Overrides{Logger: Some(&logger)})

	_, err := e.Get(context.Background(), "/v1/carriers", Params{"api_key": "secret"})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "ShipEngine request")
	assert.Contains(t, out, "REDACTED")
	assert.NotContains(t, out, "secret")
	assert.NotContains(t, out, "test-key")
}

func TestExecutorLimiterDeadlineIsTimeout(t *testing.T) {
	var attempts atomic.Int32
	e := newTestExecutor(t, func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		writeJSON(w, http.StatusOK, map[string]any{})
	}, Overrides{Timeout: Some(100 * time.Millisecond)},
		WithRateLimiter(rate.NewLimiter(rate.Every(10*time.Second), 1)))

	_, err := e.Get(context.Background(), "/v1/tags", nil)
	require.NoError(t, err)

	start := time.Now()
	_, err = e.Get(context.Background(), "/v1/tags", nil)
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr), "got %T", err)
	assert.Equal(t, KindTimeout, apiErr.Kind)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, int32(1), attempts.Load())
}

func TestExecutorRetryAfterBeyondDeadline(t *testing.T) {
	var attempts atomic.Int32
	e := newTestExecutor(t, func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.Header().Set("Retry-After", "30")
		writeJSON(w, http.StatusTooManyRequests, map[string]any{})
	}, Overrides{Retries: Some(3), Timeout: Some(500 * time.Millisecond)})

	start := time.Now()
	_, err := e.Get(context.Background(), "/v1/labels", nil)
	assert.Less(t, time.Since(start), 500*time.Millisecond)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, KindRateLimit, apiErr.Kind)
	assert.Equal(t, int32(1), attempts.Load())
}

func TestExecutorIgnoresDefaultContextLogger(t *testing.T) {
	var buf strings.Builder
	global := zerolog.New(&buf).Level(zerolog.DebugLevel)

	prev := zerolog.DefaultContextLogger
	zerolog.DefaultContextLogger = &global
	t.Cleanup(func() { zerolog.DefaultContextLogger = prev })

	e := newTestExecutor(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{})
	}, Overrides{})

	_, err := e.Get(context.Background(), "/v1/carriers", nil)
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestExecutorCustomClientLogs(t *testing.T) {
	var buf strings.Builder
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	e := newTestExecutor(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{})
	}, Overrides{Logger: Some(&logger)}, WithHTTPClient(&http.Client{}))

	_, err := e.Get(context.Background(), "/v1/carriers", nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "ShipEngine request")
}
