package shipengine

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigurationDefaults(t *testing.T) {
	cfg, err := NewConfiguration("TEST_key", Overrides{})
	require.NoError(t, err)

	assert.Equal(t, "TEST_key", cfg.APIKey())
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL())
	assert.Equal(t, 1, cfg.Retries())
	assert.Equal(t, 60*time.Second, cfg.Timeout())
	assert.Equal(t, 10*time.Second, cfg.ConnectTimeout())
	assert.Equal(t, 50, cfg.PageSize())
	assert.Nil(t, cfg.Logger())
}

func TestNewConfigurationInvalid(t *testing.T) {
	tests := []struct {
		name      string
		apiKey    string
		overrides Overrides
		message   string
		code      ErrorCode
	}{
		{
			name:    "empty api key",
			apiKey:  "",
			message: "A ShipEngine API key must be specified.",
			code:    CodeFieldValueRequired,
		},
		{
			name:    "whitespace api key",
			apiKey:  "   ",
			message: "A ShipEngine API key cannot be all whitespace.",
			code:    CodeInvalidFieldValue,
		},
		{
			name:      "empty base url",
			apiKey:    "key",
			overrides: Overrides{BaseURL: Some("")},
			message:   "Base URL cannot be empty.",
			code:      CodeInvalidFieldValue,
		},
		{
			name:      "negative retries",
			apiKey:    "key",
			overrides: Overrides{Retries: Some(-1)},
			message:   "Retries must be zero or greater.",
			code:      CodeInvalidFieldValue,
		},
		{
			name:      "zero timeout",
			apiKey:    "key",
			overrides: Overrides{Timeout: Some(time.Duration(0))},
			message:   "Timeout must be greater than zero.",
			code:      CodeInvalidFieldValue,
		},
		{
			name:      "negative timeout",
			apiKey:    "key",
			overrides: Overrides{Timeout: Some(-time.Second)},
			message:   "Timeout must be greater than zero.",
			code:      CodeInvalidFieldValue,
		},
		{
			name:      "zero connect timeout",
			apiKey:    "key",
			overrides: Overrides{ConnectTimeout: Some(time.Duration(0))},
			message:   "Connect timeout must be greater than zero.",
			code:      CodeInvalidFieldValue,
		},
		{
			name:      "zero page size",
			apiKey:    "key",
			overrides: Overrides{PageSize: Some(0)},
			message:   "Page size must be greater than zero.",
			code:      CodeInvalidFieldValue,
		},
		{
			name:      "negative page size",
			apiKey:    "key",
			overrides: Overrides{PageSize: Some(-5)},
			message:   "Page size must be greater than zero.",
			code:      CodeInvalidFieldValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewConfiguration(tt.apiKey, tt.overrides)
			require.Error(t, err)
			assert.Equal(t, Configuration{}, cfg)

			var apiErr *Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, KindValidation, apiErr.Kind)
			assert.Equal(t, tt.message, apiErr.Message)
			assert.Equal(t, tt.code, apiErr.Code)
			assert.Equal(t, DefaultSource, apiErr.Source)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestConfigurationMergeEmptyIsIdentity(t *testing.T) {
	logger := zerolog.Nop()
	cfg, err := NewConfiguration("key", Overrides{
		BaseURL:  Some("https://example.test"),
		Retries:  Some(4),
		Timeout:  Some(5 * time.Second),
		PageSize: Some(10),
		Logger:   Some(&logger),
	})
	require.NoError(t, err)

	merged, err := cfg.Merge(Overrides{})
	require.NoError(t, err)
	assert.Equal(t, cfg, merged)
}

func TestConfigurationMergeSubset(t *testing.T) {
	base, err := NewConfiguration("base-key", Overrides{Retries: Some(3)})
	require.NoError(t, err)
	before := base

	merged, err := base.Merge(Overrides{
		APIKey:   Some("override-key"),
		PageSize: Some(100),
	})
	require.NoError(t, err)

	assert.Equal(t, "override-key", merged.APIKey())
	assert.Equal(t, 100, merged.PageSize())
	assert.Equal(t, 3, merged.Retries())
	assert.Equal(t, base.BaseURL(), merged.BaseURL())
	assert.Equal(t, base.Timeout(), merged.Timeout())
	assert.Equal(t, base.ConnectTimeout(), merged.ConnectTimeout())

	assert.Equal(t, before, base, "receiver must not change")
	assert.Equal(t, "base-key", base.APIKey())
	assert.Equal(t, DefaultPageSize, base.PageSize())
}

func TestConfigurationMergeZeroValueIsAnOverride(t *testing.T) {
	base, err := NewConfiguration("key", Overrides{Retries: Some(5)})
	require.NoError(t, err)

	merged, err := base.Merge(Overrides{Retries: Some(0)})
	require.NoError(t, err)
	assert.Equal(t, 0, merged.Retries())
	assert.Equal(t, 5, base.Retries())
}

func TestConfigurationMergeInvalidOverride(t *testing.T) {
	base, err := NewConfiguration("key", Overrides{})
	require.NoError(t, err)

	tests := []struct {
		name      string
		overrides Overrides
		message   string
	}{
		{"empty api key", Overrides{APIKey: Some("")}, "A ShipEngine API key must be specified."},
		{"negative timeout", Overrides{Timeout: Some(-time.Millisecond)}, "Timeout must be greater than zero."},
		{"negative retries", Overrides{Retries: Some(-2)}, "Retries must be zero or greater."},
		{"zero page size", Overrides{PageSize: Some(0)}, "Page size must be greater than zero."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := base.Merge(tt.overrides)
			require.Error(t, err)

			var apiErr *Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.message, apiErr.Message)
			assert.Equal(t, "key", base.APIKey())
		})
	}
}

func TestOverridesIsEmpty(t *testing.T) {
	assert.True(t, Overrides{}.IsEmpty())
	assert.False(t, Overrides{PageSize: Some(1)}.IsEmpty())
	assert.False(t, Overrides{Logger: Some[*zerolog.Logger](nil)}.IsEmpty())
}

func TestOptional(t *testing.T) {
	none := None[int]()
	assert.False(t, none.IsSet())
	assert.Equal(t, 7, none.Or(7))

	zero := Some(0)
	v, ok := zero.Get()
	assert.True(t, ok)
	assert.Equal(t, 0, v)
	assert.Equal(t, 0, zero.Or(7))
}
