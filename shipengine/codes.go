package shipengine

import "strings"

// ErrorType is the category of an error reported by ShipEngine.
type ErrorType string

// Known error types.
const (
	TypeAccountStatus  ErrorType = "account_status"
	TypeSecurity       ErrorType = "security"
	TypeValidation     ErrorType = "validation"
	TypeBusinessRules  ErrorType = "business_rules"
	TypeSystem         ErrorType = "system"
	TypeWallet         ErrorType = "wallet"
	TypeFundingSources ErrorType = "funding_sources"
)

var errorTypes = []ErrorType{
	TypeAccountStatus,
	TypeSecurity,
	TypeValidation,
	TypeBusinessRules,
	TypeSystem,
	TypeWallet,
	TypeFundingSources,
}

// ErrorCode is a machine readable reason attached to an error.
type ErrorCode string

// Known error codes.
const (
	CodeMinimumPostalCodeVerificationFailed ErrorCode = "minimum_postal_code_verification_failed"
	CodeAutoFundNotSupported                ErrorCode = "auto_fund_not_supported"
	CodeBatchCannotBeModified               ErrorCode = "batch_cannot_be_modified"
	CodeCarrierNotConnected                 ErrorCode = "carrier_not_connected"
	CodeCarrierNotSupported                 ErrorCode = "carrier_not_supported"
	CodeConfirmationNotSupported            ErrorCode = "confirmation_not_supported"
	CodeFieldConflict                       ErrorCode = "field_conflict"
	CodeFieldValueRequired                  ErrorCode = "field_value_required"
	CodeForbidden                           ErrorCode = "forbidden"
	CodeIdentifierConflict                  ErrorCode = "identifier_conflict"
	CodeIdentifiersMustMatch                ErrorCode = "identifiers_must_match"
	CodeIncompatiblePairedLabels            ErrorCode = "incompatible_paired_labels"
	CodeInvalidAddress                      ErrorCode = "invalid_address"
	CodeInvalidBillingPlan                  ErrorCode = "invalid_billing_plan"
	CodeInvalidChargeEvent                  ErrorCode = "invalid_charge_event"
	CodeInvalidFieldValue                   ErrorCode = "invalid_field_value"
	CodeInvalidIdentifier                   ErrorCode = "invalid_identifier"
	CodeInvalidStatus                       ErrorCode = "invalid_status"
	CodeInvalidStringLength                 ErrorCode = "invalid_string_length"
	CodeLabelImagesNotSupported             ErrorCode = "label_images_not_supported"
	CodeMeterFailure                        ErrorCode = "meter_failure"
	CodeNotFound                            ErrorCode = "not_found"
	CodeRateLimitExceeded                   ErrorCode = "rate_limit_exceeded"
	CodeRequestBodyRequired                 ErrorCode = "request_body_required"
	CodeReturnLabelNotSupported             ErrorCode = "return_label_not_supported"
	CodeSubscriptionInactive                ErrorCode = "subscription_inactive"
	CodeTermsNotAccepted                    ErrorCode = "terms_not_accepted"
	CodeTimeout                             ErrorCode = "timeout"
	CodeTrackingNotSupported                ErrorCode = "tracking_not_supported"
	CodeTrialExpired                        ErrorCode = "trial_expired"
	CodeUnauthorized                        ErrorCode = "unauthorized"
	CodeUnspecified                         ErrorCode = "unspecified"
	CodeVerificationFailure                 ErrorCode = "verification_failure"
	CodeWarehouseConflict                   ErrorCode = "warehouse_conflict"
	CodeWebhookEventTypeConflict            ErrorCode = "webhook_event_type_conflict"
	CodeFundingSourceMissingConfiguration   ErrorCode = "funding_source_missing_configuration"
	CodeFundingSourceError                  ErrorCode = "funding_source_error"
)

var errorCodes = []ErrorCode{
	CodeMinimumPostalCodeVerificationFailed,
	CodeAutoFundNotSupported,
	CodeBatchCannotBeModified,
	CodeCarrierNotConnected,
	CodeCarrierNotSupported,
	CodeConfirmationNotSupported,
	CodeFieldConflict,
	CodeFieldValueRequired,
	CodeForbidden,
	CodeIdentifierConflict,
	CodeIdentifiersMustMatch,
	CodeIncompatiblePairedLabels,
	CodeInvalidAddress,
	CodeInvalidBillingPlan,
	CodeInvalidChargeEvent,
	CodeInvalidFieldValue,
	CodeInvalidIdentifier,
	CodeInvalidStatus,
	CodeInvalidStringLength,
	CodeLabelImagesNotSupported,
	CodeMeterFailure,
	CodeNotFound,
	CodeRateLimitExceeded,
	CodeRequestBodyRequired,
	CodeReturnLabelNotSupported,
	CodeSubscriptionInactive,
	CodeTermsNotAccepted,
	CodeTimeout,
	CodeTrackingNotSupported,
	CodeTrialExpired,
	CodeUnauthorized,
	CodeUnspecified,
	CodeVerificationFailure,
	CodeWarehouseConflict,
	CodeWebhookEventTypeConflict,
	CodeFundingSourceMissingConfiguration,
	CodeFundingSourceError,
}

var (
	typeLookup = make(map[string]ErrorType, len(errorTypes))
	codeLookup = make(map[string]ErrorCode, len(errorCodes))
)

func init() {
	for _, t := range errorTypes {
		typeLookup[string(t)] = t
	}
	for _, c := range errorCodes {
		codeLookup[string(c)] = c
	}
}

// ParseErrorType resolves a wire value to a known ErrorType.
// Lookup ignores case and surrounding whitespace. Unknown values return ("", false).
func ParseErrorType(s string) (ErrorType, bool) {
	t, ok := typeLookup[normalizeSymbol(s)]
	return t, ok
}

// ParseErrorCode resolves a wire value to a known ErrorCode.
// Lookup ignores case and surrounding whitespace. Unknown values return ("", false).
func ParseErrorCode(s string) (ErrorCode, bool) {
	c, ok := codeLookup[normalizeSymbol(s)]
	return c, ok
}

func normalizeSymbol(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
