package shipengine

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultSource identifies errors raised by this client rather than a carrier.
const DefaultSource = "shipengine"

// RateLimitDocsURL is attached to every TimeoutError.
const RateLimitDocsURL = "https://www.shipengine.com/docs/rate-limits"

const (
	rateLimitMessage = "You have exceeded the rate limit."
	timeoutMessage   = "The request took longer than the configured timeout."
	invariantPrefix  = "INVARIANT ERROR: "
)

// Kind is the local classification of an Error.
type Kind int

const (
	// KindUnknown covers error types this client does not recognize.
	KindUnknown Kind = iota
	KindValidation
	KindBusinessRules
	KindAccountStatus
	KindSecurity
	KindSystem
	// KindRateLimit and KindTimeout are specializations of KindSystem.
	KindRateLimit
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindBusinessRules:
		return "business rules"
	case KindAccountStatus:
		return "account status"
	case KindSecurity:
		return "security"
	case KindSystem:
		return "system"
	case KindRateLimit:
		return "rate limit"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Sentinel errors for use with errors.Is.
var (
	ErrValidation    = errors.New("shipengine: validation error")
	ErrBusinessRules = errors.New("shipengine: business rules error")
	ErrAccountStatus = errors.New("shipengine: account status error")
	ErrSecurity      = errors.New("shipengine: security error")
	// ErrSystem also matches rate limit and timeout errors.
	ErrSystem      = errors.New("shipengine: system error")
	ErrRateLimited = errors.New("shipengine: rate limit exceeded")
	ErrTimeout     = errors.New("shipengine: request timed out")
)

// Error is returned for every failure reported by ShipEngine and for
// input rejected before a request is made.
type Error struct {
	Kind Kind
	// Type is the error_type tag. For unrecognized types it holds the raw wire value.
	Type    string
	Code    ErrorCode
	Message string
	// Source is who raised the error: shipengine or a carrier.
	Source    string
	RequestID string
	// URL points to documentation, set on timeout errors.
	URL string
	// Retries is the retry budget in effect, set on rate limit errors.
	Retries int
	// StatusCode is the HTTP status when the error came from a response.
	StatusCode int
	Cause      error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("shipengine ")
	b.WriteString(e.Kind.String())
	b.WriteString(" error")
	if e.Code != "" {
		fmt.Fprintf(&b, " [%s]", e.Code)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.RequestID != "" {
		fmt.Fprintf(&b, " (request_id=%s)", e.RequestID)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches the package sentinels against the error kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrValidation:
		return e.Kind == KindValidation
	case ErrBusinessRules:
		return e.Kind == KindBusinessRules
	case ErrAccountStatus:
		return e.Kind == KindAccountStatus
	case ErrSecurity:
		return e.Kind == KindSecurity
	case ErrSystem:
		return e.Kind == KindSystem || e.Kind == KindRateLimit || e.Kind == KindTimeout
	case ErrRateLimited:
		return e.Kind == KindRateLimit
	case ErrTimeout:
		return e.Kind == KindTimeout
	}
	return false
}

// IsRetryable reports whether waiting and resending the same request may succeed.
func (e *Error) IsRetryable() bool {
	return e.Kind == KindRateLimit || e.Kind == KindTimeout
}

// ErrorDetail is one entry of the errors array in a ShipEngine error response.
type ErrorDetail struct {
	Source    string `json:"error_source"`
	Type      string `json:"error_type"`
	Code      string `json:"error_code"`
	Message   string `json:"message"`
	RequestID string `json:"-"`
}

// Classify turns a remote error description into a typed *Error.
// The error type decides the kind; system errors are further split by code.
// Unrecognized types produce a KindUnknown error carrying the raw type.
// A nil cfg is allowed; rate limit errors then report zero retries.
func Classify(d ErrorDetail, cfg *Configuration) *Error {
	code, _ := ParseErrorCode(d.Code)
	source := d.Source
	if source == "" {
		source = DefaultSource
	}

	base := &Error{
		Type:      d.Type,
		Code:      code,
		Message:   d.Message,
		Source:    source,
		RequestID: d.RequestID,
	}

	typ, ok := ParseErrorType(d.Type)
	if !ok {
		base.Kind = KindUnknown
		return base
	}
	base.Type = string(typ)

	switch typ {
	case TypeValidation:
		base.Kind = KindValidation
	case TypeBusinessRules:
		base.Kind = KindBusinessRules
	case TypeAccountStatus:
		base.Kind = KindAccountStatus
	case TypeSecurity:
		base.Kind = KindSecurity
	case TypeSystem:
		switch code {
		case CodeRateLimitExceeded:
			retries := 0
			if cfg != nil {
				retries = cfg.Retries()
			}
			err := NewRateLimitError(retries, d.Source, d.RequestID)
			if d.Message != "" {
				err.Message = d.Message
			}
			return err
		case CodeTimeout:
			err := NewTimeoutError(nil)
			err.RequestID = d.RequestID
			return err
		default:
			base.Kind = KindSystem
		}
	default:
		// wallet, funding_sources
		base.Kind = KindUnknown
	}
	return base
}

// InvalidFieldValue returns a validation error with code invalid_field_value.
func InvalidFieldValue(message string) *Error {
	return &Error{
		Kind:    KindValidation,
		Type:    string(TypeValidation),
		Code:    CodeInvalidFieldValue,
		Message: message,
		Source:  DefaultSource,
	}
}

// RequiredFieldMissing returns a validation error for an absent required field.
func RequiredFieldMissing(field string) *Error {
	return &Error{
		Kind:    KindValidation,
		Type:    string(TypeValidation),
		Code:    CodeFieldValueRequired,
		Message: field + " must be specified.",
		Source:  DefaultSource,
	}
}

// InvariantError reports a state that should be impossible.
func InvariantError(message string) *Error {
	return &Error{
		Kind:    KindSystem,
		Type:    string(TypeSystem),
		Code:    CodeUnspecified,
		Message: invariantPrefix + message,
		Source:  DefaultSource,
	}
}

// NewRateLimitError returns an error for an exhausted HTTP 429 retry budget.
func NewRateLimitError(retries int, source, requestID string) *Error {
	if source == "" {
		source = DefaultSource
	}
	return &Error{
		Kind:       KindRateLimit,
		Type:       string(TypeSystem),
		Code:       CodeRateLimitExceeded,
		Message:    rateLimitMessage,
		Source:     source,
		RequestID:  requestID,
		Retries:    retries,
		StatusCode: 429,
	}
}

// NewTimeoutError returns an error for a request that ran past its deadline.
func NewTimeoutError(cause error) *Error {
	return &Error{
		Kind:    KindTimeout,
		Type:    string(TypeSystem),
		Code:    CodeTimeout,
		Message: timeoutMessage,
		Source:  DefaultSource,
		URL:     RateLimitDocsURL,
		Cause:   cause,
	}
}

// TransportError is a failure where no usable HTTP response was received.
// It is never classified as a ShipEngine API error.
type TransportError struct {
	// Op is the step that failed: "request", "send", "read" or "decode".
	Op     string
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("shipengine: %s %s %s: %v", e.Op, e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
