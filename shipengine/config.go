package shipengine

import (
	"time"

	"github.com/rs/zerolog"
)

// Defaults applied to every field a caller leaves unset.
const (
	DefaultBaseURL        = "https://api.shipengine.com"
	DefaultRetries        = 1
	DefaultTimeout        = 60 * time.Second
	DefaultConnectTimeout = 10 * time.Second
	DefaultPageSize       = 50
)

// Field labels used in validation messages.
const (
	labelAPIKey         = "A ShipEngine API key"
	labelBaseURL        = "Base URL"
	labelRetries        = "Retries"
	labelTimeout        = "Timeout"
	labelConnectTimeout = "Connect timeout"
	labelPageSize       = "Page size"
)

// Configuration holds the request defaults for a client. It is an
// immutable value: Merge returns a new Configuration and never changes
// the receiver, so one Configuration may be shared by any number of
// goroutines.
type Configuration struct {
	apiKey         string
	baseURL        string
	retries        int
	timeout        time.Duration
	connectTimeout time.Duration
	pageSize       int
	logger         *zerolog.Logger
}

// Overrides is a partial Configuration. Only fields that are set take
// part in a merge; unset fields inherit from the receiver.
type Overrides struct {
	APIKey         Optional[string]
	BaseURL        Optional[string]
	Retries        Optional[int]
	Timeout        Optional[time.Duration]
	ConnectTimeout Optional[time.Duration]
	PageSize       Optional[int]
	Logger         Optional[*zerolog.Logger]
}

// IsEmpty reports whether no field is set.
func (o Overrides) IsEmpty() bool {
	return !o.APIKey.IsSet() &&
		!o.BaseURL.IsSet() &&
		!o.Retries.IsSet() &&
		!o.Timeout.IsSet() &&
		!o.ConnectTimeout.IsSet() &&
		!o.PageSize.IsSet() &&
		!o.Logger.IsSet()
}

// NewConfiguration builds a validated Configuration from apiKey, the
// package defaults and any set override fields. An APIKey set in o
// takes precedence over apiKey.
func NewConfiguration(apiKey string, o Overrides) (Configuration, error) {
	base := Configuration{
		apiKey:         apiKey,
		baseURL:        DefaultBaseURL,
		retries:        DefaultRetries,
		timeout:        DefaultTimeout,
		connectTimeout: DefaultConnectTimeout,
		pageSize:       DefaultPageSize,
	}
	return base.apply(o)
}

// Merge returns a new Configuration with the set fields of o replacing
// the receiver's values. The result is validated; on error the zero
// Configuration is returned. The receiver is never modified.
func (c Configuration) Merge(o Overrides) (Configuration, error) {
	if o.IsEmpty() {
		return c, nil
	}
	return c.apply(o)
}

func (c Configuration) apply(o Overrides) (Configuration, error) {
	next := Configuration{
		apiKey:         o.APIKey.Or(c.apiKey),
		baseURL:        o.BaseURL.Or(c.baseURL),
		retries:        o.Retries.Or(c.retries),
		timeout:        o.Timeout.Or(c.timeout),
		connectTimeout: o.ConnectTimeout.Or(c.connectTimeout),
		pageSize:       o.PageSize.Or(c.pageSize),
		logger:         o.Logger.Or(c.logger),
	}
	if err := next.validate(); err != nil {
		return Configuration{}, err
	}
	return next, nil
}

func (c Configuration) validate() error {
	// A blank key is reported as missing rather than empty.
	if c.apiKey == "" {
		return RequiredFieldMissing(labelAPIKey)
	}
	if err := RequireNonWhitespaceString(labelAPIKey, c.apiKey); err != nil {
		return err
	}
	if err := RequireNonEmptyString(labelBaseURL, c.baseURL); err != nil {
		return err
	}
	if err := RequireNonNegativeInteger(labelRetries, c.retries); err != nil {
		return err
	}
	if err := RequirePositiveInteger(labelTimeout, int64(c.timeout)); err != nil {
		return err
	}
	if err := RequirePositiveInteger(labelConnectTimeout, int64(c.connectTimeout)); err != nil {
		return err
	}
	return RequirePositiveInteger(labelPageSize, c.pageSize)
}

// APIKey returns the key sent in the API-Key header.
func (c Configuration) APIKey() string { return c.apiKey }

// BaseURL returns the URL every request path is appended to.
func (c Configuration) BaseURL() string { return c.baseURL }

// Retries returns how many extra attempts a rate limited request gets.
func (c Configuration) Retries() int { return c.retries }

// Timeout returns the total deadline of one call, retries included.
func (c Configuration) Timeout() time.Duration { return c.timeout }

// ConnectTimeout returns the deadline for establishing a connection.
func (c Configuration) ConnectTimeout() time.Duration { return c.connectTimeout }

// PageSize returns the default page size for list calls.
func (c Configuration) PageSize() int { return c.pageSize }

// Logger returns the configured logger or nil.
func (c Configuration) Logger() *zerolog.Logger { return c.logger }
